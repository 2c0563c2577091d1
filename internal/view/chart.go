package view

import "github.com/msomdec/eco-track/internal/domain"

// Chart geometry, in SVG user units.
const (
	chartHeight    = 160
	chartBarWidth  = 28
	chartBarGap    = 12
	chartLabelRoom = 24
)

// Bar is one week in the points chart.
type Bar struct {
	X, Y, Width, Height int
	LabelX             int
	Week               string
	Points             int
}

// Chart is a precomputed SVG bar chart of points per ISO week.
type Chart struct {
	Width  int
	Height int
	BaseY  int
	Bars   []Bar
}

// BuildChart lays out one bar per week, scaled so the tallest bar fills the
// plot height. Weeks are drawn in the order given.
func BuildChart(weeks []domain.WeekPoints) Chart {
	c := Chart{
		Height: chartHeight + chartLabelRoom,
		BaseY:  chartHeight,
	}
	if len(weeks) == 0 {
		return c
	}

	peak := 0
	for _, w := range weeks {
		peak = max(peak, w.Points)
	}

	c.Bars = make([]Bar, len(weeks))
	for i, w := range weeks {
		h := 0
		if peak > 0 && w.Points > 0 {
			h = max(1, w.Points*chartHeight/peak)
		}
		x := chartBarGap + i*(chartBarWidth+chartBarGap)
		c.Bars[i] = Bar{
			X:      x,
			Y:      chartHeight - h,
			Width:  chartBarWidth,
			Height: h,
			LabelX: x + chartBarWidth/2,
			Week:   w.Week,
			Points: w.Points,
		}
	}
	c.Width = chartBarGap + len(weeks)*(chartBarWidth+chartBarGap)
	return c
}
