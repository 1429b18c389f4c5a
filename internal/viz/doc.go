// Package viz renders simulation results in the terminal.
//
//   - [Plot]: asciigraph line chart per stock
//   - [Summary]: lipgloss table of final values and run metrics
//   - [Live]: Bubble Tea program that steps a model once per tick
//
// # Key Bindings
//
//	Space - Pause/Resume stepping
//	R     - Reset stocks to their initial values
//	Q     - Quit
package viz
