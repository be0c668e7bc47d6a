package domain

import "time"

// Round is one week's lottery game, identified by its ISO (year, week) pair.
// At most one non-deleted round is active at any time.
type Round struct {
	ID             uint       `json:"id"`
	Year           int        `json:"year"`
	WeekNumber     int        `json:"week_number"`
	WinningNumbers []int      `json:"winning_numbers,omitempty"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
}

// IsClosed reports whether winning numbers have been drawn for the round.
// A closed round never reopens.
func (r *Round) IsClosed() bool {
	return len(r.WinningNumbers) > 0
}

// Revenue split applied to a closed round's digital revenue for reporting.
// The engine never moves funds itself.
const (
	PrizePoolPercent   = 70
	ClubSupportPercent = 30
)

// ClosureSummary is returned when a round is closed and scored.
type ClosureSummary struct {
	RoundID        uint  `json:"round_id"`
	Year           int   `json:"year"`
	WeekNumber     int   `json:"week_number"`
	WinningNumbers []int `json:"winning_numbers"`
	TotalBoards    int   `json:"total_boards"`
	WinningBoards  int   `json:"winning_boards"`
	DigitalRevenue int   `json:"digital_revenue"`
	PrizePool      int   `json:"prize_pool"`
	ClubSupport    int   `json:"club_support"`
}
