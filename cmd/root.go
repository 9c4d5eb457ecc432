package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/proxy6/config"
	"github.com/s0up4200/proxy6/filter"
	"github.com/s0up4200/proxy6/px6"
)

var (
	appVersion = "dev"
	buildTime  = "unknown"

	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  px6.API
	filters *filter.Manager

	// Shared command flags
	versionFlag string
	noConfirm   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "proxy6",
	Short: "Manage proxy6.net proxies from the command line",
	Long: `proxy6 is a CLI for the proxy6 (px6.link) API. It lets you check prices,
buy and prolong proxies, list and filter your proxies, and verify that
they are working.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// SetVersion sets the build version reported by the version and update commands
func SetVersion(version, built string) {
	appVersion = version
	buildTime = built
	rootCmd.Version = version
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	userAgent := cfg.PX6.UserAgent
	if userAgent == "" {
		userAgent = "proxy6-cli/" + appVersion
	}

	pxClient, err := px6.NewClient(cfg.PX6.APIKey, logger,
		px6.WithBaseURL(cfg.PX6.BaseURL),
		px6.WithTimeout(cfg.PX6.Timeout),
		px6.WithUserAgent(userAgent),
		px6.WithRateLimit(cfg.PX6.RateLimit, cfg.PX6.Burst),
	)
	if err != nil {
		return fmt.Errorf("failed to create px6 client: %w", err)
	}
	client = pxClient

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return err
	}

	logger.Debug().
		Str("base_url", pxClient.BaseURL()).
		Dur("timeout", cfg.PX6.Timeout).
		Float64("rate_limit", cfg.PX6.RateLimit).
		Int("presets", len(cfg.Filter.Presets)).
		Msg("Initialized px6 client")

	return nil
}

// skipInit replaces initializeApp for commands that run without a config
func skipInit(cmd *cobra.Command, args []string) error {
	logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true})
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// confirm asks a yes/no question unless --no-confirm was given
func confirm(question string) bool {
	if noConfirm {
		return true
	}
	fmt.Printf("%s [y/N]: ", question)
	var response string
	_, _ = fmt.Scanln(&response)
	return strings.ToLower(strings.TrimSpace(response)) == "y"
}
