package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// NetWorthChart plots net worth by age as a block-character line chart, with a marker
// column at the retirement age
type NetWorthChart struct {
	Title         string
	Ages          []int
	Values        []float64
	RetirementAge int
	Width         int
	Height        int
}

// NewNetWorthChart creates a chart for a projection
func NewNetWorthChart(title string, ages []int, values []float64) *NetWorthChart {
	return &NetWorthChart{
		Title:  title,
		Ages:   ages,
		Values: values,
		Width:  60,
		Height: 12,
	}
}

// WithRetirementAge marks the column where withdrawals begin
func (c *NetWorthChart) WithRetirementAge(age int) *NetWorthChart {
	c.RetirementAge = age
	return c
}

// WithSize sets the chart dimensions, including the y-axis labels
func (c *NetWorthChart) WithSize(width, height int) *NetWorthChart {
	c.Width = width
	c.Height = height
	return c
}

const yAxisWidth = 9

// Render returns the styled chart
func (c *NetWorthChart) Render() string {
	if len(c.Values) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var out strings.Builder
	if c.Title != "" {
		out.WriteString(tuistyles.TitleStyle.Render(c.Title))
		out.WriteString("\n")
	}

	plotWidth := max(2, c.Width-yAxisWidth-3)
	height := max(2, c.Height)
	maxVal := 0.0
	for _, v := range c.Values {
		maxVal = math.Max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", plotWidth))
	}

	column := func(i int) int {
		if len(c.Values) == 1 {
			return 0
		}
		return int(float64(i) / float64(len(c.Values)-1) * float64(plotWidth-1))
	}
	row := func(v float64) int {
		y := height - 1 - int(math.Round(v/maxVal*float64(height-1)))
		return max(0, min(height-1, y))
	}

	if idx := c.indexOfAge(c.RetirementAge); idx >= 0 {
		x := column(idx)
		for y := range grid {
			grid[y][x] = '┊'
		}
	}
	for i, v := range c.Values {
		x, y := column(i), row(v)
		if i > 0 {
			drawLine(grid, column(i-1), row(c.Values[i-1]), x, y)
		}
		grid[y][x] = '●'
	}

	lineStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorChartLine1)
	axisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for y, line := range grid {
		label := ""
		if y == 0 || y == height-1 || y == height/2 {
			label = FormatCompact(maxVal * float64(height-1-y) / float64(height-1))
		}
		out.WriteString(axisStyle.Render(label))
		out.WriteString(" │ ")
		out.WriteString(lineStyle.Render(string(line)))
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth+1))
	out.WriteString("└─")
	out.WriteString(strings.Repeat("─", plotWidth))
	out.WriteString("\n")
	out.WriteString(c.renderAgeLabels(plotWidth))
	return out.String()
}

func (c *NetWorthChart) indexOfAge(age int) int {
	for i, a := range c.Ages {
		if a == age {
			return i
		}
	}
	return -1
}

// renderAgeLabels prints the first, middle and last ages under the axis
func (c *NetWorthChart) renderAgeLabels(plotWidth int) string {
	if len(c.Ages) == 0 {
		return ""
	}
	first := fmt.Sprintf("%d", c.Ages[0])
	last := fmt.Sprintf("%d", c.Ages[len(c.Ages)-1])
	gap := max(1, plotWidth-len(first)-len(last))
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).
		Render(strings.Repeat(" ", yAxisWidth+3) + first + strings.Repeat(" ", gap) + last + "  age")
}

// drawLine connects two grid cells using Bresenham's algorithm without overwriting
// points already drawn
func drawLine(grid [][]rune, x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) && grid[y0][x0] != '●' {
			grid[y0][x0] = '•'
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FormatCompact abbreviates large amounts for axis labels, e.g. 4.6M or 850K
func FormatCompact(value float64) string {
	switch {
	case math.Abs(value) >= 1e9:
		return fmt.Sprintf("%.1fB", value/1e9)
	case math.Abs(value) >= 1e6:
		return fmt.Sprintf("%.1fM", value/1e6)
	case math.Abs(value) >= 1e3:
		return fmt.Sprintf("%.0fK", value/1e3)
	}
	return fmt.Sprintf("%.0f", value)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
