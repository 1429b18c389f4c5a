package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/stockflow/internal/experiment"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(22)
	numStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Align(lipgloss.Right).Width(14)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// Summary renders the final stock values and metrics of a run.
func Summary(result *experiment.Result) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(result.Model)) + "\n")
	b.WriteString(MetricLabel.Render(fmt.Sprintf("t=%g..%g  step=%g  steps=%d",
		result.Run.Start, result.Run.End, result.Run.Step, result.Steps)) + "\n\n")

	b.WriteString(HeaderStyle.Render("STOCKS") + "\n")
	for _, name := range result.Trajectory.Names {
		v := result.Final[name]
		b.WriteString(nameStyle.Render(name) + numStyle.Render(fmt.Sprintf("%.4f", v)) + "\n")
	}

	if len(result.Metrics) > 0 {
		b.WriteString("\n" + HeaderStyle.Render("METRICS") + "\n")
		keys := make([]string, 0, len(result.Metrics))
		for k := range result.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(nameStyle.Render(k) + numStyle.Render(fmt.Sprintf("%.6f", result.Metrics[k])) + "\n")
		}
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}
