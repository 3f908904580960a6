package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hongminglow/chama-backend/internal/cli"
	"github.com/hongminglow/chama-backend/internal/config"
	postgres "github.com/hongminglow/chama-backend/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	deps := cli.Deps{
		OpenUsers: func(ctx context.Context) (cli.UserAdmin, error) {
			cfg, err := loadConfig()
			if err != nil {
				return nil, err
			}
			store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
		OpenDB: func() (*sql.DB, error) {
			cfg, err := loadConfig()
			if err != nil {
				return nil, err
			}
			return postgres.OpenSQL(cfg.DatabaseURL)
		},
	}

	if err := cli.NewRootCommand(deps).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return config.Config{}, fmt.Errorf("no database url configured for APP_ENV=%s", cfg.Env)
	}
	return cfg, nil
}
