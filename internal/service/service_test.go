package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/klublotto/klublotto-api/internal/domain"
	"github.com/klublotto/klublotto-api/internal/pkg/clock"
	"github.com/klublotto/klublotto-api/internal/repository"
	"github.com/klublotto/klublotto-api/internal/repository/dao"
)

// testEnv wires the full service stack onto an in-memory sqlite database,
// with a fake clock pinned to a Tuesday well before the weekly cutoff.
type testEnv struct {
	db      *gorm.DB
	clk     *clock.Fake
	loc     *time.Location
	rounds  *RoundService
	wagers  *WagerService
	ledger  *LedgerService
	players *PlayerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// One shared in-memory database per test, named after the test so
	// parallel tests never collide.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, dao.InitTables(db))

	loc, err := time.LoadLocation("Europe/Copenhagen")
	require.NoError(t, err)

	// Tuesday of ISO week 36 of 2026, days before Saturday 17:00.
	clk := clock.NewFake(time.Date(2026, time.September, 1, 10, 0, 0, 0, loc))

	roundRepo := repository.NewRoundRepository(dao.NewRoundDAO(db))
	boardRepo := repository.NewBoardRepository(dao.NewBoardDAO(db))
	ledgerRepo := repository.NewLedgerRepository(dao.NewTransactionDAO(db))
	playerRepo := repository.NewPlayerRepository(dao.NewPlayerDAO(db))

	cutoff := Cutoff{Location: loc, Weekday: time.Saturday, Hour: 17}

	return &testEnv{
		db:      db,
		clk:     clk,
		loc:     loc,
		rounds:  NewRoundService(roundRepo, clk),
		wagers:  NewWagerService(boardRepo, roundRepo, playerRepo, clk, cutoff),
		ledger:  NewLedgerService(ledgerRepo, playerRepo, clk),
		players: NewPlayerService(playerRepo, clk),
	}
}

func (e *testEnv) createRound(t *testing.T, year, week int, active bool) dao.Round {
	t.Helper()

	round := dao.Round{Year: year, WeekNumber: week, IsActive: active}
	require.NoError(t, e.db.Create(&round).Error)

	return round
}

func (e *testEnv) createPlayer(t *testing.T, name, email string) domain.Player {
	t.Helper()

	player, err := e.players.CreatePlayer(context.Background(), name, email, "20304050")
	require.NoError(t, err)

	return player
}

// fund submits and approves a deposit so the player has spendable balance.
func (e *testEnv) fund(t *testing.T, playerID uint, reference string, amount int) {
	t.Helper()

	transaction, err := e.ledger.SubmitDeposit(context.Background(), playerID, reference, amount)
	require.NoError(t, err)

	_, err = e.ledger.Approve(context.Background(), transaction.ID)
	require.NoError(t, err)
}
