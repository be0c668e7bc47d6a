package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Lottery  *LotteryConfig  `mapstructure:"lottery"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	BaseURL            string   `mapstructure:"base_url"`
	Port               string   `mapstructure:"port"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// LotteryConfig holds the club-level lottery settings. CutoffWeekday follows
// time.Weekday numbering (Sunday = 0), so Saturday is 6.
type LotteryConfig struct {
	Timezone      string `mapstructure:"timezone"`
	CutoffWeekday int    `mapstructure:"cutoff_weekday"`
	CutoffHour    int    `mapstructure:"cutoff_hour"`
	SeedOnBoot    bool   `mapstructure:"seed_on_boot"`
	SeedYears     int    `mapstructure:"seed_years"`
}

func Load(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	return conf, nil
}
