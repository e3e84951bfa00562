// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/kfinance/internal/config"
	"fjacquet/kfinance/internal/container"
	"fjacquet/kfinance/internal/logging"
	"fjacquet/kfinance/internal/render"
	"fjacquet/kfinance/internal/session"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to every command
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	Output     string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "kfinance",
		Short: "A personal finance tracker for expenses, revenues, groceries and card charges.",
		Long: `kfinance keeps a local record of expenses, revenues, supermarket purchases and
credit card charges per user, shows a dashboard with totals and charts, and
exports the collections as CSV files or Google Sheets.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: teardown,
	}

	// SharedFlags holds the values of the persistent flags
	SharedFlags = CommonFlags{}

	appContainer *container.Container
	injected     bool
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default $HOME/.kfinance/config.yaml)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", container.FormatText, "Output format (text or json)")
}

func setup(cmd *cobra.Command, args []string) error {
	if appContainer != nil {
		return nil
	}

	cfg, err := config.LoadConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	appContainer = c
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if appContainer == nil || injected {
		return
	}
	if err := appContainer.Close(); err != nil {
		appContainer.GetLogger().WithError(err).Warn("Failed to close container")
	}
	appContainer = nil
}

// SetContainer installs a prebuilt container. Commands use it instead of
// loading configuration, and it is not closed after each command.
func SetContainer(c *container.Container) {
	appContainer = c
	injected = c != nil
}

// GetContainer returns the application container, or nil before setup.
func GetContainer() *container.Container {
	return appContainer
}

// GetConfig returns the loaded configuration, or nil before setup.
func GetConfig() *config.Config {
	if appContainer == nil {
		return nil
	}
	return appContainer.GetConfig()
}

// GetLogger returns the container logger, falling back to a default logrus adapter.
func GetLogger() logging.Logger {
	if appContainer == nil {
		return logging.NewLogrusAdapter("info", "text")
	}
	return appContainer.GetLogger()
}

// Sink returns the presentation sink selected by --output, writing to the command's stdout.
func Sink(cmd *cobra.Command) (render.Sink, error) {
	return container.NewSink(cmd.OutOrStdout(), SharedFlags.Output)
}

// Session opens the logged-in user's session.
func Session(cmd *cobra.Command) (*session.Session, error) {
	if appContainer == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return appContainer.OpenSession(cmd.Context())
}

// Message renders a one-line status message.
func Message(cmd *cobra.Command, format string, args ...interface{}) error {
	sink, err := Sink(cmd)
	if err != nil {
		return err
	}
	return sink.Render(render.SlotMessage, fmt.Sprintf(format, args...))
}
