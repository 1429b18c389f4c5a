package viz

import (
	"context"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/stockflow/internal/config"
	"github.com/san-kum/stockflow/internal/equations"
	"github.com/san-kum/stockflow/internal/experiment"
	"github.com/san-kum/stockflow/internal/sysdyn"
)

func exponentialModel() (*sysdyn.Model, *sysdyn.Stock, *sysdyn.Stock) {
	m := sysdyn.New("exponential")
	a := m.CreateStock("pop1", 100)
	b := m.CreateStock("pop2", 0)
	m.CreateFlow("growth", equations.NewExponential(), a, b)
	return m, a, b
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tickN(l Live, n int) Live {
	for i := 0; i < n; i++ {
		next, _ := l.Update(TickMsg{})
		l = next.(Live)
	}
	return l
}

func TestLiveMatchesExecute(t *testing.T) {
	m, a, b := exponentialModel()
	l := NewLive(context.Background(), m, 0, 100, 1, 30)
	l = tickN(l, 150)

	if !l.Done() {
		t.Fatal("expected run to be done")
	}
	if l.Steps() != 100 {
		t.Errorf("expected 100 steps, got %d", l.Steps())
	}
	if math.Abs(a.Value()-36.6032) > 1e-4 || math.Abs(b.Value()-63.3968) > 1e-4 {
		t.Errorf("unexpected values: pop1=%.6f pop2=%.6f", a.Value(), b.Value())
	}
	if m.Time() != 100 {
		t.Errorf("expected time 100, got %v", m.Time())
	}
}

func TestLivePauseAndReset(t *testing.T) {
	m, a, _ := exponentialModel()
	l := NewLive(context.Background(), m, 0, 100, 1, 30)
	l = tickN(l, 5)

	next, _ := l.Update(key(" "))
	l = next.(Live)
	l = tickN(l, 5)
	if l.Steps() != 5 {
		t.Errorf("expected paused at 5 steps, got %d", l.Steps())
	}

	next, _ = l.Update(key("r"))
	l = next.(Live)
	if l.Steps() != 0 || a.Value() != 100 || m.Time() != 0 {
		t.Errorf("reset failed: steps=%d pop1=%v time=%v", l.Steps(), a.Value(), m.Time())
	}
	if len(l.history[0]) != 1 {
		t.Errorf("expected history to hold only the initial value, got %d", len(l.history[0]))
	}
}

func TestLiveQuit(t *testing.T) {
	m, _, _ := exponentialModel()
	l := NewLive(context.Background(), m, 0, 10, 1, 30)

	_, cmd := l.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestLiveUnknownStock(t *testing.T) {
	m := sysdyn.New("broken")
	a := m.CreateStock("a", 1)
	m.CreateFlow("f", equations.NewExponential(), a, sysdyn.NewStock("ghost", 0))

	l := NewLive(context.Background(), m, 0, 10, 1, 30)
	if !l.Done() || l.Err() == nil {
		t.Fatal("expected validation error")
	}
	l = tickN(l, 3)
	if l.Steps() != 0 {
		t.Errorf("expected no steps, got %d", l.Steps())
	}
	if !strings.Contains(l.View(), "ERROR") {
		t.Error("expected error status in view")
	}
}

func TestLiveView(t *testing.T) {
	m, _, _ := exponentialModel()
	l := tickN(NewLive(context.Background(), m, 0, 10, 1, 30), 3)

	view := l.View()
	for _, want := range []string{"EXPONENTIAL", "pop1", "pop2", "RUNNING"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 4); got != "────" {
		t.Errorf("expected placeholder, got %q", got)
	}
	series := make([]float64, 100)
	for i := range series {
		series[i] = float64(i)
	}
	if n := len([]rune(stripANSI(Sparkline(series, 20)))); n != 20 {
		t.Errorf("expected 20 glyphs, got %d", n)
	}
}

func TestPlot(t *testing.T) {
	rec := sysdyn.NewRecorder([]string{"pop1", "pop2"})
	m, _, _ := exponentialModel()
	m.AddObserver(rec)
	if err := m.Execute(context.Background(), 0, 20, 1); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	out, err := Plot(rec.Trajectory(), 40, 5)
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if !strings.Contains(out, "pop1 vs time") || !strings.Contains(out, "pop2 vs time") {
		t.Errorf("missing captions in plot:\n%s", out)
	}

	if _, err := Plot(&sysdyn.Trajectory{}, 40, 5); err == nil {
		t.Error("expected error for empty trajectory")
	}
}

func TestSummary(t *testing.T) {
	result := &experiment.Result{
		Model:      "exponential",
		Run:        config.RunConfig{Start: 0, End: 100, Step: 1},
		Trajectory: &sysdyn.Trajectory{Names: []string{"pop1", "pop2"}},
		Final:      map[string]float64{"pop1": 36.6032, "pop2": 63.3968},
		Metrics:    map[string]float64{"conservation_drift": 0},
		Steps:      100,
	}

	out := Summary(result)
	for _, want := range []string{"EXPONENTIAL", "pop1", "36.6032", "63.3968", "conservation_drift", "steps=100"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEscape = false
		case !inEscape:
			b.WriteRune(r)
		}
	}
	return b.String()
}
