// Package components provides reusable UI components.
package components

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/Coder-ak/svitlo-e-stats/internal/stats"
	"github.com/Coder-ak/svitlo-e-stats/internal/ui/styles"
)

// AccessChart renders the per-category access time series as a multi-series
// line graph. It is a thin adapter over asciigraph: range state, fetching,
// and series assembly happen elsewhere; the chart just draws what it is
// given and keeps the last-good data visible through errors.
type AccessChart struct {
	width  int
	height int

	series  stats.Series
	startMs int64
	endMs   int64

	loading bool
	errText string
}

// NewAccessChart creates a chart with minimum usable dimensions.
func NewAccessChart() *AccessChart {
	return &AccessChart{width: 80, height: 12}
}

// SetSize updates the chart dimensions.
func (c *AccessChart) SetSize(width, height int) {
	if width >= 40 {
		c.width = width
	}
	if height >= 6 {
		c.height = height
	}
}

// SetData replaces the visible series and its time bounds.
func (c *AccessChart) SetData(series stats.Series, startMs, endMs int64) {
	c.series = series
	c.startMs = startMs
	c.endMs = endMs
}

// SetLoading toggles the loading indicator. Existing data stays rendered.
func (c *AccessChart) SetLoading(loading bool) {
	c.loading = loading
}

// SetError attaches an error line, or clears it when empty. Last-good data
// stays rendered underneath.
func (c *AccessChart) SetError(text string) {
	c.errText = text
}

// HasData reports whether there is anything to plot.
func (c *AccessChart) HasData() bool {
	for _, points := range c.series {
		if len(points) > 0 {
			return true
		}
	}
	return false
}

// View renders the chart.
func (c *AccessChart) View() string {
	var sections []string

	if c.errText != "" {
		sections = append(sections, styles.ErrorStyle.Render("✗ "+c.errText))
	} else if c.loading {
		sections = append(sections, styles.InfoStyle.Render("Loading…"))
	}

	if !c.HasData() {
		if len(sections) == 0 {
			sections = append(sections, styles.InfoStyle.Render("No data in the selected range"))
		}
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections, c.renderGraph(), c.renderAxis())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderGraph plots all categories over the union of their timestamps.
func (c *AccessChart) renderGraph() string {
	categories := c.series.Categories()
	timestamps := c.unionTimestamps()

	graphWidth := c.width - 10 // room for Y-axis labels
	if graphWidth < 30 {
		graphWidth = 30
	}
	graphHeight := c.height - 4 // caption, axis, status lines
	if graphHeight < 3 {
		graphHeight = 3
	}

	data := make([][]float64, len(categories))
	for i, category := range categories {
		aligned := alignSeries(c.series[category], timestamps)
		data[i] = resample(aligned, graphWidth)
	}

	graph := asciigraph.PlotMany(data,
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.SeriesColors(styles.SeriesColors(len(categories))...),
		asciigraph.SeriesLegends(categories...),
	)
	return strings.TrimRight(graph, "\n")
}

// renderAxis draws the visible time bounds under the graph.
func (c *AccessChart) renderAxis() string {
	start := time.UnixMilli(c.startMs).Format("Jan 02 15:04")
	end := time.UnixMilli(c.endMs).Format("Jan 02 15:04")

	gap := c.width - len(start) - len(end) - 4
	if gap < 1 {
		gap = 1
	}
	return styles.MutedStyle.Render(fmt.Sprintf("  %s%s%s", start, strings.Repeat(" ", gap), end))
}

// unionTimestamps returns the sorted union of all categories' timestamps.
func (c *AccessChart) unionTimestamps() []int64 {
	seen := make(map[int64]struct{})
	for _, points := range c.series {
		for _, p := range points {
			seen[p.Timestamp] = struct{}{}
		}
	}
	timestamps := make([]int64, 0, len(seen))
	for ts := range seen {
		timestamps = append(timestamps, ts)
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] < timestamps[j] })
	return timestamps
}

// alignSeries projects points onto the timestamp union, filling gaps with
// zero so all plotted rows have equal length.
func alignSeries(points []stats.Point, timestamps []int64) []float64 {
	byTime := make(map[int64]float64, len(points))
	for _, p := range points {
		byTime[p.Timestamp] = p.Value
	}
	values := make([]float64, len(timestamps))
	for i, ts := range timestamps {
		values[i] = byTime[ts]
	}
	return values
}

// resample downsamples data to fit the graph width using bucket averaging.
func resample(data []float64, width int) []float64 {
	if len(data) <= width {
		return data
	}

	result := make([]float64, width)
	bucketSize := float64(len(data)) / float64(width)

	for i := 0; i < width; i++ {
		start := int(float64(i) * bucketSize)
		end := int(float64(i+1) * bucketSize)
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			start = end - 1
		}

		sum := 0.0
		for j := start; j < end; j++ {
			sum += data[j]
		}
		result[i] = sum / float64(end-start)
	}
	return result
}
