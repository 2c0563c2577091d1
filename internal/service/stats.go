package service

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/msomdec/eco-track/internal/domain"
)

// TotalPoints sums the points of all actions. It returns 0 for no actions.
func TotalPoints(actions []domain.Action) int {
	total := 0
	for _, a := range actions {
		total += a.Points
	}
	return total
}

// WeekKey formats an ISO year and week number as "<ISO year>-<2-digit week>".
func WeekKey(year, week int) string {
	return fmt.Sprintf("%d-%02d", year, week)
}

// PointsByWeek groups actions by ISO week (weeks start on Monday; week 1
// contains the year's first Thursday) and sums their points. The result is
// ordered by ISO year, then week number.
func PointsByWeek(actions []domain.Action) []domain.WeekPoints {
	type isoWeek struct{ year, week int }

	sums := make(map[isoWeek]int)
	for _, a := range actions {
		y, w := a.Date.ISOWeek()
		sums[isoWeek{y, w}] += a.Points
	}

	weeks := make([]domain.WeekPoints, 0, len(sums))
	for k, points := range sums {
		weeks = append(weeks, domain.WeekPoints{
			Week:   WeekKey(k.year, k.week),
			Year:   k.year,
			Number: k.week,
			Points: points,
		})
	}
	slices.SortFunc(weeks, func(a, b domain.WeekPoints) int {
		return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.Number, b.Number))
	})
	return weeks
}

// TierFor classifies a points total. Lower bounds are inclusive.
func TierFor(total int) domain.Tier {
	switch {
	case total >= domain.PlatinumThreshold:
		return domain.TierPlatinum
	case total >= domain.GoldThreshold:
		return domain.TierGold
	case total >= domain.SilverThreshold:
		return domain.TierSilver
	default:
		return domain.TierBronze
	}
}

// PointsToNextTier returns how many more points are needed to move up a
// tier, or 0 at Platinum.
func PointsToNextTier(total int) int {
	switch TierFor(total) {
	case domain.TierBronze:
		return domain.SilverThreshold - total
	case domain.TierSilver:
		return domain.GoldThreshold - total
	case domain.TierGold:
		return domain.PlatinumThreshold - total
	default:
		return 0
	}
}

// Summarize reduces one user's actions into dashboard figures.
func Summarize(actions []domain.Action) domain.Summary {
	total := TotalPoints(actions)
	return domain.Summary{
		TotalPoints:      total,
		Tier:             TierFor(total),
		PointsToNextTier: PointsToNextTier(total),
		ActionCount:      len(actions),
		Weeks:            PointsByWeek(actions),
	}
}
