package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/openmined/pdfdesk/internal/config"
	"github.com/openmined/pdfdesk/internal/utils"
	"github.com/openmined/pdfdesk/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "PDFDESK"

var home, _ = os.UserHomeDir()

type configKey struct{}

var rootCmd = &cobra.Command{
	Use:           "pdfdesk",
	Short:         "PDFDesk CLI",
	Version:       version.Detailed(),
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		cmd.SilenceUsage = true
		closeLog, err := setupLogging(cfg, cmd.Name() != "view")
		if err != nil {
			return err
		}
		cobra.OnFinalize(closeLog)

		cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().SortFlags = false
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigPath, "PDFDesk config file")
	rootCmd.PersistentFlags().StringP("server", "s", config.DefaultServerURL, "PDFDesk server")
	rootCmd.PersistentFlags().String("statedir", config.DefaultStateDir, "directory for local state and logs")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
}

func main() {
	// Setup root context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", red.Render("ERROR"), userMessage(err))
		stop()
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	// a local .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	configPath := resolveConfigPath(cmd)
	v.SetConfigFile(configPath)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, ok := err.(viper.ConfigFileNotFoundError)
		if !enoent && !ok {
			return nil, fmt.Errorf("config read '%s': %w", v.ConfigFileUsed(), err)
		}
	}

	flags := cmd.Flags()
	v.BindPFlag("server_url", flags.Lookup("server"))
	v.BindPFlag("state_dir", flags.Lookup("statedir"))
	v.BindPFlag("log_level", flags.Lookup("log-level"))

	return &config.Config{
		ServerURL: v.GetString("server_url"),
		StateDir:  v.GetString("state_dir"),
		LogLevel:  v.GetString("log_level"),
		Path:      configPath,
	}, nil
}

func configFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{
		ServerURL: config.DefaultServerURL,
		StateDir:  config.DefaultStateDir,
		LogLevel:  config.DefaultLogLevel,
	}
}

// setupLogging writes every record to the log file and, unless a full screen ui
// owns the terminal, records at the configured level to stderr.
func setupLogging(cfg *config.Config, console bool) (func(), error) {
	logFile := cfg.LogFilePath()
	if err := utils.EnsureParent(logFile); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	level := parseLevel(cfg.LogLevel)
	handlers := []slog.Handler{
		slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}

	if console {
		handlers = append(handlers, tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05.000",
			NoColor:    !isTerminal(os.Stderr),
		}))
	}

	slog.SetDefault(slog.New(utils.NewMultiLogHandler(handlers...)))
	return func() { file.Close() }, nil
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
