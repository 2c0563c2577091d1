package domain

// Tier is a coarse classification derived from a user's total points.
type Tier string

const (
	TierBronze   Tier = "Bronze"
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierPlatinum Tier = "Platinum"
)

// Lower bounds (inclusive) of each tier above Bronze.
const (
	SilverThreshold   = 50
	GoldThreshold     = 100
	PlatinumThreshold = 200
)

// WeekPoints is the sum of points earned during one ISO week.
type WeekPoints struct {
	Week   string // "<ISO year>-<2-digit week>", e.g. "2024-05"
	Year   int
	Number int
	Points int
}

// Summary holds the dashboard figures for one user.
type Summary struct {
	TotalPoints      int
	Tier             Tier
	PointsToNextTier int // 0 once Platinum is reached
	ActionCount      int
	Weeks            []WeekPoints // Ascending by year, then week
}
