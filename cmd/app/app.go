package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/klublotto/klublotto-api/internal/api"
	"github.com/klublotto/klublotto-api/internal/config"
	"github.com/klublotto/klublotto-api/internal/db"
	"github.com/klublotto/klublotto-api/internal/logger"
	"github.com/klublotto/klublotto-api/internal/pkg/clock"
	"github.com/klublotto/klublotto-api/internal/repository"
	"github.com/klublotto/klublotto-api/internal/repository/dao"
	"github.com/klublotto/klublotto-api/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}

	if conf.Lottery.SeedOnBoot {
		if err = seedRounds(postgresDB, conf); err != nil {
			return fmt.Errorf("failed to seed rounds -> %w", err)
		}
	}

	s := api.NewServer(conf, postgresDB, clock.System())

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

func seedRounds(postgresDB *gorm.DB, conf *config.AppConfig) error {
	roundDAO := dao.NewRoundDAO(postgresDB)
	repo := repository.NewRoundRepository(roundDAO)
	seeder := service.NewSeedService(repo, clock.System(), conf.Lottery)

	summary, err := seeder.SeedRounds(context.Background())
	if err != nil {
		return err
	}

	zap.L().Info("round seeding finished",
		zap.Int("created", summary.Created),
		zap.Int("existing", summary.Existing),
		zap.Bool("activated", summary.Activated),
	)

	return nil
}
