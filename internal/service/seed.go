package service

import (
	"context"

	"github.com/klublotto/klublotto-api/internal/config"
	"github.com/klublotto/klublotto-api/internal/domain"
	"github.com/klublotto/klublotto-api/internal/pkg/clock"
	"github.com/klublotto/klublotto-api/internal/repository"
)

const defaultSeedYears = 20

// SeedService pre-generates one round per ISO (year, week) far into the
// future, so the engine never needs a scheduler: closing a round simply
// activates the next pre-existing row. Safe to re-run at every boot.
type SeedService struct {
	repo  RoundRepository
	clk   clock.Clock
	years int
}

func NewSeedService(repo RoundRepository, clk clock.Clock, conf *config.LotteryConfig) *SeedService {
	years := defaultSeedYears
	if conf != nil && conf.SeedYears > 0 {
		years = conf.SeedYears
	}

	return &SeedService{
		repo:  repo,
		clk:   clk,
		years: years,
	}
}

// SeedRounds creates any missing rounds from the current ISO week through
// the seed horizon, and activates the current week's round when no round is
// active at all.
func (s *SeedService) SeedRounds(ctx context.Context) (repository.SeedOutcome, error) {
	currentYear, currentWeek := s.clk.Now().ISOWeek()

	var weeks []domain.Round
	for year := currentYear; year < currentYear+s.years; year++ {
		total := clock.WeeksInYear(year)
		for week := 1; week <= total; week++ {
			if year == currentYear && week < currentWeek {
				continue
			}
			weeks = append(weeks, domain.Round{Year: year, WeekNumber: week})
		}
	}

	outcome, err := s.repo.SeedRounds(ctx, weeks, currentYear, currentWeek)
	if err != nil {
		return repository.SeedOutcome{}, err
	}

	return outcome, nil
}
