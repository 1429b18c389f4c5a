package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/stockflow/internal/sysdyn"
)

// WriteCSV writes one row per recorded time: time followed by every stock.
func WriteCSV(w io.Writer, traj *sysdyn.Trajectory) error {
	cw := csv.NewWriter(w)

	header := []string{"time"}
	for i, name := range traj.Names {
		if name == "" {
			name = fmt.Sprintf("x%d", i)
		}
		header = append(header, name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, state := range traj.States {
		row := []string{strconv.FormatFloat(traj.Times[i], 'f', 6, 64)}
		for _, val := range state {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
