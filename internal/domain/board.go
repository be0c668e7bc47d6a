package domain

import (
	"errors"
	"sort"
	"time"
)

const (
	MinBoardNumbers = 5
	MaxBoardNumbers = 8

	MinNumber = 1
	MaxNumber = 16

	WinningNumberCount = 3
)

// BoardPrices maps a board's number count to its price in units.
// Every extra number doubles the price, because a bigger board is more
// likely to contain all three winning numbers.
var BoardPrices = map[int]int{
	5: 20,
	6: 40,
	7: 80,
	8: 160,
}

var (
	ErrInvalidNumberCount = errors.New("a board must have between 5 and 8 numbers")
	ErrNumberOutOfRange   = errors.New("numbers must be between 1 and 16")
	ErrDuplicateNumbers   = errors.New("numbers must be distinct")
	ErrInvalidWinningSet  = errors.New("exactly 3 distinct winning numbers between 1 and 16 are required")
)

// Board is a player's set of numbers for one round. Price is fixed at
// purchase time and covers the whole prepaid repeat span; rollover boards
// spawned by round closure carry price 0.
type Board struct {
	ID                   uint      `json:"id"`
	PlayerID             uint      `json:"player_id"`
	RoundID              uint      `json:"round_id"`
	Numbers              []int     `json:"numbers"`
	Price                int       `json:"price"`
	IsWinning            bool      `json:"is_winning"`
	RepeatWeeksRemaining int       `json:"repeat_weeks_remaining"`
	RepeatActive         bool      `json:"repeat_active"`
	CreatedAt            time.Time `json:"created_at"`
}

// ContainsAll reports whether the board holds every winning number.
// Extra numbers never disqualify a board.
func (b *Board) ContainsAll(winning []int) bool {
	for _, w := range winning {
		found := false
		for _, n := range b.Numbers {
			if n == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// PriceForCount returns the price for a board of n numbers.
func PriceForCount(n int) (int, error) {
	price, ok := BoardPrices[n]
	if !ok {
		return 0, ErrInvalidNumberCount
	}

	return price, nil
}

// ValidateBoardNumbers checks a candidate board and returns the numbers in
// canonical (sorted ascending) order for storage.
func ValidateBoardNumbers(numbers []int) ([]int, error) {
	if len(numbers) < MinBoardNumbers || len(numbers) > MaxBoardNumbers {
		return nil, ErrInvalidNumberCount
	}

	return canonicalize(numbers)
}

// ValidateWinningNumbers checks a winning draw and returns it sorted.
func ValidateWinningNumbers(numbers []int) ([]int, error) {
	if len(numbers) != WinningNumberCount {
		return nil, ErrInvalidWinningSet
	}

	sorted, err := canonicalize(numbers)
	if err != nil {
		return nil, ErrInvalidWinningSet
	}

	return sorted, nil
}

func canonicalize(numbers []int) ([]int, error) {
	sorted := make([]int, len(numbers))
	copy(sorted, numbers)
	sort.Ints(sorted)

	for i, n := range sorted {
		if n < MinNumber || n > MaxNumber {
			return nil, ErrNumberOutOfRange
		}
		if i > 0 && sorted[i-1] == n {
			return nil, ErrDuplicateNumbers
		}
	}

	return sorted, nil
}
