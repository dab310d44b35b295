package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/numbercruncher/internal/common"
	"github.com/Veraticus/numbercruncher/internal/config"
	"github.com/Veraticus/numbercruncher/internal/render"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "crunch",
		Short: "📊 Rental income pivots from yearly inventory exports",
		Long: `numbercruncher: cleans yearly rental inventory exports, groups raw
categories into umbrella taxa and pivots income by category and year.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/numbercruncher/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("ledger", "", "ledger database path (default: ~/.local/share/numbercruncher/ledger.db)")
	rootCmd.PersistentFlags().Bool("no-ledger", false, "do not record loads and reports")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("ledger.path", rootCmd.PersistentFlags().Lookup("ledger"))

	// Add commands
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(taxaCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		var userErr *common.UserError
		if errors.As(err, &userErr) {
			fmt.Fprintln(os.Stderr, render.FormatError(userErr.Error()))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.ExpandPath(config.DefaultConfigDir))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables, e.g. CRUNCH_REPORT_ORIENTATION, optionally from ./.env
	_ = godotenv.Load()
	viper.SetEnvPrefix("CRUNCH")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := readConfig(viper.GetViper(), cfgFile); err != nil {
		return err
	}

	if noLedger, _ := cmd.Flags().GetBool("no-ledger"); noLedger {
		viper.Set("ledger.enabled", false)
	}

	if err := common.SetupLogger(os.Stderr, viper.GetString("logging.level"), viper.GetString("logging.format")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		slog.Debug("Loaded config", "file", used)
	}
	return nil
}

// readConfig reads the config file. A missing default config is fine and
// defaults apply; a --config path that does not exist is a user error.
func readConfig(v *viper.Viper, explicit string) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	if explicit != "" && errors.Is(err, fs.ErrNotExist) {
		return common.NewUserError("config file not found", fmt.Errorf("%w: %s", common.ErrMissingConfig, explicit))
	}
	return fmt.Errorf("failed to read config: %w", err)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "crunch version %s\n", version)
		},
	}
}
