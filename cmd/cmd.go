package cmd

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gazette-dev/gazette/internal/infrastructure/config"
	"github.com/gazette-dev/gazette/pkg/logger"
)

const serviceName = "gazette"

var rootCmd = &cobra.Command{
	Use:   serviceName,
	Short: "Gazette content publishing backend",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Overload(); err != nil {
			log.Println("Error loading .env file, skipping")
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err.Error())
	}
}

// loadConfig reads the configuration and initialises the singleton logger
// from it. Warnings raised while loading go to a plain stderr logger since
// the configured one does not exist yet.
func loadConfig(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	boot := zerolog.New(os.Stderr).With().Timestamp().Str("service", serviceName).Logger()

	cfg, err := config.Load(ctx, boot)
	if err != nil {
		return nil, boot, err
	}

	l := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: serviceName,
		Env:     cfg.Env,
	})
	return cfg, l, nil
}
