package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/stockflow/internal/sysdyn"
)

// maxPlots caps the number of stocks drawn by Plot.
const maxPlots = 6

// Plot draws one chart per stock in traj, in registration order.
func Plot(traj *sysdyn.Trajectory, width, height int) (string, error) {
	if traj == nil || len(traj.States) == 0 {
		return "", fmt.Errorf("no data to plot")
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 10
	}

	n := min(len(traj.States[0]), maxPlots)
	var b strings.Builder
	for i := 0; i < n; i++ {
		graph := asciigraph.Plot(traj.Series(i),
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(caption(traj, i)),
		)
		b.WriteString(graph)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

func caption(traj *sysdyn.Trajectory, i int) string {
	if i < len(traj.Names) && traj.Names[i] != "" {
		return traj.Names[i] + " vs time"
	}
	return fmt.Sprintf("x%d vs time", i)
}
