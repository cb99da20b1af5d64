package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fabianopolone123/ERP-TI/internal"
	"github.com/fabianopolone123/ERP-TI/internal/core/database"
	"github.com/fabianopolone123/ERP-TI/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "erp-ti",
	Short:        "ERP-TI",
	Long:         `Helpdesk tickets, staff board and IT asset registers for the IT department.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads config.yml from path with ENV_ overrides, or plain environment
// variables when running in a container.
func loadConfig(path string) (*internal.Config, error) {
	if os.Getenv("APP_ENV") == "production" || os.Getenv("DOCKER_ENV") == "true" {
		cfg := internal.LoadConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("error validating config from environment: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("ENV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	cfg := internal.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}
	return cfg, nil
}

// bootstrap loads config, sets up logging and opens the database.
func bootstrap() (*Application, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger.Setup(logger.Options{Env: cfg.Env, Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	lg := logger.LoggerWrapper()

	db, err := database.Open(cfg.Database, lg)
	if err != nil {
		return nil, err
	}
	return NewApplication(cfg, db, lg)
}

// withApp runs fn against a bootstrapped application and closes it afterwards.
func withApp(fn func(cmd *cobra.Command, args []string, app *Application) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() {
			if err := app.Close(); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		}()
		return fn(cmd, args, app)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "directory containing config.yml")

	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(importLegacyCmd)
	rootCmd.AddCommand(ticketCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(recordCmd)
}
