package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/stockflow/internal/config"
	"github.com/san-kum/stockflow/internal/experiment"
	"github.com/san-kum/stockflow/internal/export"
	"github.com/san-kum/stockflow/internal/logging"
	"github.com/san-kum/stockflow/internal/sysdyn"
	"github.com/san-kum/stockflow/internal/viz"
)

var (
	configFile string
	start      float64
	end        float64
	step       float64
	workers    int
	sweepJobs  int
	format     string
	plot       bool
	logLevel   string
	logFormat  string
	frameRate  int
	sweepFlow  string
	sweepParam string
	sweepVals  string
	minimize   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "stockflow",
		Short:         "stock and flow simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a model",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runModel,
	}
	addRunFlags(runCmd)
	runCmd.Flags().IntVar(&workers, "workers", 1, "goroutines used to evaluate flows")
	runCmd.Flags().StringVar(&format, "format", "table", "output format (table, csv, json, svg)")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot each stock after the run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in models",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSTOCKS\tFLOWS\tSTART\tEND\tSTEP")
			for _, name := range config.ListPresets() {
				def := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%g\t%g\t%g\n",
					name, len(def.Stocks), len(def.Flows), def.Run.Start, def.Run.End, def.Run.Step)
			}
			return w.Flush()
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "check a model definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if err := config.Validate(def); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d stocks, %d flows)\n", def.Name, len(def.Stocks), len(def.Flows))
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "step a model with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "run a model once per parameter value",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepJobs, "jobs", 4, "models run concurrently")
	sweepCmd.Flags().StringVar(&sweepFlow, "flow", "", "flow whose parameter is swept")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "k", "parameter name")
	sweepCmd.Flags().StringVar(&sweepVals, "values", "", "comma separated parameter values")
	sweepCmd.Flags().StringVar(&minimize, "minimize", "", "report the value minimizing this metric")
	_ = sweepCmd.MarkFlagRequired("flow")
	_ = sweepCmd.MarkFlagRequired("values")

	rootCmd.AddCommand(runCmd, presetsCmd, validateCmd, liveCmd, sweepCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "model definition (yaml or hcl)")
	cmd.Flags().Float64Var(&start, "start", 0, "start time")
	cmd.Flags().Float64Var(&end, "end", 100, "end time")
	cmd.Flags().Float64Var(&step, "step", 1, "time step")
}

func newLogger(w io.Writer) *slog.Logger {
	return logging.NewLogger(logLevel, logFormat, w)
}

// loadDefinition resolves the model from --config or a preset name and
// applies any run flags given on the command line.
func loadDefinition(cmd *cobra.Command, args []string) (*config.Definition, error) {
	var def *config.Definition
	switch {
	case configFile != "":
		d, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		def = d
	default:
		name := "exponential"
		if len(args) > 0 {
			name = args[0]
		}
		def = config.GetPreset(name)
		if def == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", name, strings.Join(config.ListPresets(), ", "))
		}
	}

	if cmd.Flags().Changed("start") {
		def.Run.Start = start
	}
	if cmd.Flags().Changed("end") {
		def.Run.End = end
	}
	if cmd.Flags().Changed("step") {
		def.Run.Step = step
	}
	return def, nil
}

func runModel(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr())

	exp := experiment.New(def, experiment.NewRegistry(),
		experiment.WithLogger(logger),
		experiment.WithWorkers(workers),
	)
	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "table":
		fmt.Fprintln(out, viz.Summary(result))
	case "csv":
		err = export.WriteCSV(out, result.Trajectory)
	case "json":
		err = export.WriteJSON(out, result)
	case "svg":
		err = export.WriteSVG(out, result.Trajectory, 800, 400)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if plot {
		graph, err := viz.Plot(result.Trajectory, 80, 10)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, graph)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(cmd, args)
	if err != nil {
		return err
	}
	if err := config.Validate(def); err != nil {
		return err
	}

	// The TUI owns the terminal, so diagnostics are dropped.
	m, err := experiment.Build(def, experiment.NewRegistry(), sysdyn.WithLogger(logging.Discard()))
	if err != nil {
		return err
	}

	live := viz.NewLive(cmd.Context(), m, def.Run.Start, def.Run.End, def.Run.Step, frameRate)
	p := tea.NewProgram(live, tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(cmd, args)
	if err != nil {
		return err
	}
	values, err := parseValues(sweepVals)
	if err != nil {
		return err
	}

	points, err := experiment.Sweep(cmd.Context(), def, experiment.NewRegistry(),
		sweepFlow, sweepParam, values, sweepJobs,
		experiment.WithLogger(newLogger(cmd.ErrOrStderr())),
	)
	if err != nil {
		return err
	}

	names := make([]string, len(def.Stocks))
	for i, s := range def.Stocks {
		names[i] = s.Name
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(sweepParam), strings.ToUpper(strings.Join(names, "\t")))
	for _, p := range points {
		final := p.Result.Trajectory.Final()
		cols := make([]string, len(final))
		for i, v := range final {
			cols[i] = strconv.FormatFloat(v, 'f', 4, 64)
		}
		fmt.Fprintf(w, "%g\t%s\n", p.Value, strings.Join(cols, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if minimize != "" {
		best, ok := experiment.Best(points, minimize)
		if !ok {
			return fmt.Errorf("no run reported metric %s", minimize)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nbest %s=%g (%s=%.6f)\n", sweepParam, best.Value, minimize, best.Result.Metrics[minimize])
	}
	return nil
}

func parseValues(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid sweep value %q: %w", f, err)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no sweep values given")
	}
	return values, nil
}
