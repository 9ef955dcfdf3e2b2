package main

import (
	"log"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toomajBandad/MoonShop-Backend/pkg/config"
	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

var (
	envFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:           "moonshop",
	Short:         "MoonShop e-commerce backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("warning: could not load %s: %v", envFile, err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().String("database-url", "", "database DSN (postgres://... or sqlite://...)")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error")

	_ = v.BindPFlag("DATABASE_URL", rootCmd.PersistentFlags().Lookup("database-url"))
	_ = v.BindPFlag("LOG_LEVEL", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(serveCmd, categoriesCmd)
}

// loadConfig reads flags and environment and installs the default logger.
func loadConfig() (config.Config, *slog.Logger) {
	cfg := config.Load(v)
	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)
	return cfg, logger
}
