package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kokodio/tdd/pkg/cloud"
	"github.com/kokodio/tdd/pkg/metrics"
)

// summarize measures a layout around its own center.
func summarize(l cloud.Layout) metrics.Summary {
	return metrics.Summarize(l.Rectangles, l.Center)
}

// statsCommand creates the stats command for inspecting a layout.
func (c *CLI) statsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats [layout.json]",
		Short: "Print the shape metrics of a layout",
		Long: `Print the shape metrics of a layout.

Density is the covered area divided by the area of the circle that holds all
but the farthest 2% of rectangles. Centering is the distance of the
area-weighted centroid from the center, relative to the enclosing radius.
Quadrant shares split the area by rectangle midpoint.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFiles([]string{"json"}),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := cloud.ReadLayoutFile(args[0])
			if err != nil {
				return fmt.Errorf("load layout %s: %w", args[0], err)
			}
			s := summarize(l)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			printKeyValue("Strategy", string(l.Strategy))
			printKeyValue("Center", fmt.Sprintf("(%d, %d)", l.Center.X, l.Center.Y))
			fmt.Println(statsTable(s))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the metrics as JSON")

	return cmd
}

// quadrantRows lists the quadrants in reading order.
var quadrantRows = []struct {
	q    metrics.Quadrant
	name string
}{
	{metrics.TopLeft, "Top left"},
	{metrics.TopRight, "Top right"},
	{metrics.BottomLeft, "Bottom left"},
	{metrics.BottomRight, "Bottom right"},
}

// statsTable renders a summary as a two-column table.
func statsTable(s metrics.Summary) string {
	rows := [][]string{
		{"Rectangles", fmt.Sprintf("%d", s.Rectangles)},
		{"Total area", fmt.Sprintf("%d", s.TotalArea)},
		{"Bounds", fmt.Sprintf("%d×%d at (%d, %d)", s.Bounds.Size.Width, s.Bounds.Size.Height, s.Bounds.Location.X, s.Bounds.Location.Y)},
		{"Radius", fmt.Sprintf("%.1f (max %.1f)", s.Radius, s.MaxRadius)},
		{"Density", fmt.Sprintf("%.3f", s.Density)},
		{"Centering", fmt.Sprintf("%.3f", s.Centering)},
		{"Centroid", fmt.Sprintf("(%.1f, %.1f)", s.CentroidX, s.CentroidY)},
		{"Radius σ", fmt.Sprintf("%.1f (mean %.1f)", s.StdDevRadius, s.MeanRadius)},
	}
	for _, qr := range quadrantRows {
		rows = append(rows, []string{qr.name, fmt.Sprintf("%.1f%%", 100*s.Quadrants[qr.q])})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).PaddingRight(1)
	valueStyle := lipgloss.NewStyle().Foreground(colorCyan).PaddingLeft(1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Metric", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return keyStyle
			default:
				return valueStyle
			}
		})
	return t.String()
}
