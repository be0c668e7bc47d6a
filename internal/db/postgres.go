package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/klublotto/klublotto-api/internal/config"
)

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		conf.Host, conf.Port, conf.User, conf.Password, conf.DBName, conf.SSLMode,
	)

	return OpenPostgresWithURL(dsn)
}

func OpenPostgresWithURL(url string) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(url), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	return database, nil
}
