package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceForCount(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		want    int
		wantErr error
	}{
		{"five numbers", 5, 20, nil},
		{"six numbers", 6, 40, nil},
		{"seven numbers", 7, 80, nil},
		{"eight numbers", 8, 160, nil},
		{"four numbers rejected", 4, 0, ErrInvalidNumberCount},
		{"nine numbers rejected", 9, 0, ErrInvalidNumberCount},
		{"zero rejected", 0, 0, ErrInvalidNumberCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PriceForCount(tt.count)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateBoardNumbers(t *testing.T) {
	tests := []struct {
		name    string
		numbers []int
		want    []int
		wantErr error
	}{
		{"minimal board", []int{5, 3, 1, 16, 9}, []int{1, 3, 5, 9, 16}, nil},
		{"maximal board", []int{1, 2, 3, 4, 5, 6, 7, 8}, []int{1, 2, 3, 4, 5, 6, 7, 8}, nil},
		{"too few", []int{1, 2, 3, 4}, nil, ErrInvalidNumberCount},
		{"too many", []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, nil, ErrInvalidNumberCount},
		{"zero out of range", []int{0, 2, 3, 4, 5}, nil, ErrNumberOutOfRange},
		{"seventeen out of range", []int{1, 2, 3, 4, 17}, nil, ErrNumberOutOfRange},
		{"duplicate", []int{1, 2, 3, 4, 4}, nil, ErrDuplicateNumbers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateBoardNumbers(tt.numbers)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateBoardNumbersDoesNotMutateInput(t *testing.T) {
	in := []int{9, 5, 1, 3, 7}
	_, err := ValidateBoardNumbers(in)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 5, 1, 3, 7}, in)
}

func TestValidateWinningNumbers(t *testing.T) {
	tests := []struct {
		name    string
		numbers []int
		wantErr error
	}{
		{"valid triple", []int{4, 11, 16}, nil},
		{"two numbers", []int{4, 11}, ErrInvalidWinningSet},
		{"four numbers", []int{1, 2, 3, 4}, ErrInvalidWinningSet},
		{"out of range", []int{0, 5, 9}, ErrInvalidWinningSet},
		{"duplicate", []int{7, 7, 9}, ErrInvalidWinningSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateWinningNumbers(tt.numbers)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBoardContainsAll(t *testing.T) {
	tests := []struct {
		name    string
		board   []int
		winning []int
		want    bool
	}{
		{"all three present", []int{1, 2, 3, 4, 5}, []int{1, 2, 3}, true},
		{"one missing", []int{1, 2, 3, 4, 5}, []int{1, 2, 6}, false},
		{"none present", []int{10, 11, 12, 13, 14}, []int{1, 2, 3}, false},
		{"eight number board hit", []int{1, 4, 6, 8, 10, 12, 14, 16}, []int{4, 10, 16}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Board{Numbers: tt.board}
			assert.Equal(t, tt.want, b.ContainsAll(tt.winning))
		})
	}
}
