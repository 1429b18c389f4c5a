package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/san-kum/stockflow/internal/sysdyn"
)

var palette = []string{"#00ff88", "#00ccff", "#ffcc00", "#ff00ff", "#ff4444", "#ffffff"}

// WriteSVG draws every stock of traj as a line over time, sharing one
// vertical scale.
func WriteSVG(w io.Writer, traj *sysdyn.Trajectory, width, height int) error {
	if len(traj.Names) == 0 {
		return fmt.Errorf("export: trajectory has no stocks")
	}
	if len(traj.Times) < 2 {
		return fmt.Errorf("export: need at least two samples, got %d", len(traj.Times))
	}

	minX, maxX := traj.Times[0], traj.Times[len(traj.Times)-1]
	minY, maxY := traj.States[0][0], traj.States[0][0]
	for _, s := range traj.States {
		for _, v := range s {
			if v < minY {
				minY = v
			}
			if v > maxY {
				maxY = v
			}
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i := range traj.Names {
		color := palette[i%len(palette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" data-stock="%s" d="M`, color, html.EscapeString(traj.Names[i])))
		for k, t := range traj.Times {
			x := (t - minX) / rangeX * float64(width)
			y := float64(height) - (traj.States[k][i]-minY)/rangeY*float64(height)
			if k == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
