package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/stockflow/internal/experiment"
)

// Number is a float64 that survives JSON encoding when it is not finite.
// NaN and the infinities are written as the strings "NaN", "+Inf" and "-Inf".
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	v := float64(n)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("export: invalid number %q", s)
		}
		*n = Number(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

type ExportData struct {
	ID      string            `json:"id"`
	Model   string            `json:"model"`
	Start   float64           `json:"start"`
	End     float64           `json:"end"`
	Step    float64           `json:"step"`
	Steps   int               `json:"steps"`
	Stocks  []string          `json:"stocks"`
	Times   []float64         `json:"times"`
	States  [][]Number        `json:"states"`
	Final   map[string]Number `json:"final"`
	Metrics map[string]Number `json:"metrics"`
}

func NewExportData(result *experiment.Result) ExportData {
	traj := result.Trajectory
	data := ExportData{
		ID:      result.ID,
		Model:   result.Model,
		Start:   result.Run.Start,
		End:     result.Run.End,
		Step:    result.Run.Step,
		Steps:   result.Steps,
		Stocks:  traj.Names,
		Times:   traj.Times,
		States:  make([][]Number, len(traj.States)),
		Final:   numbers(result.Final),
		Metrics: numbers(result.Metrics),
	}
	for i, s := range traj.States {
		row := make([]Number, len(s))
		for j, v := range s {
			row[j] = Number(v)
		}
		data.States[i] = row
	}
	return data
}

func numbers(m map[string]float64) map[string]Number {
	out := make(map[string]Number, len(m))
	for k, v := range m {
		out[k] = Number(v)
	}
	return out
}

func WriteJSON(w io.Writer, result *experiment.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(result))
}
