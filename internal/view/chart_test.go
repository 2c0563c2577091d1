package view

import (
	"testing"

	"github.com/msomdec/eco-track/internal/domain"
)

func TestBuildChart_Empty(t *testing.T) {
	c := BuildChart(nil)
	if len(c.Bars) != 0 {
		t.Fatalf("expected no bars, got %d", len(c.Bars))
	}
	if c.Width != 0 {
		t.Errorf("expected zero width, got %d", c.Width)
	}
}

func TestBuildChart_ScalesToTallestBar(t *testing.T) {
	c := BuildChart([]domain.WeekPoints{
		{Week: "2024-01", Points: 10},
		{Week: "2024-02", Points: 40},
		{Week: "2024-03", Points: 0},
	})

	if len(c.Bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(c.Bars))
	}
	if c.Bars[1].Height != chartHeight {
		t.Errorf("tallest bar height = %d, want %d", c.Bars[1].Height, chartHeight)
	}
	if c.Bars[0].Height != chartHeight/4 {
		t.Errorf("quarter bar height = %d, want %d", c.Bars[0].Height, chartHeight/4)
	}
	if c.Bars[2].Height != 0 {
		t.Errorf("zero-point bar height = %d, want 0", c.Bars[2].Height)
	}
	for i, b := range c.Bars {
		if b.Y+b.Height != c.BaseY {
			t.Errorf("bar %d does not sit on the baseline: y=%d h=%d", i, b.Y, b.Height)
		}
	}
	if c.Bars[0].X >= c.Bars[1].X {
		t.Error("bars should be laid out left to right in input order")
	}
}

func TestBuildChart_SmallValuesStayVisible(t *testing.T) {
	c := BuildChart([]domain.WeekPoints{
		{Week: "2024-01", Points: 1},
		{Week: "2024-02", Points: 1000},
	})
	if c.Bars[0].Height < 1 {
		t.Errorf("expected a visible bar for a non-zero week, got height %d", c.Bars[0].Height)
	}
}
