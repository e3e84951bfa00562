// Package container provides dependency injection for the kfinance application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/kfinance/internal/config"
	"fjacquet/kfinance/internal/dashboard"
	"fjacquet/kfinance/internal/export"
	"fjacquet/kfinance/internal/logging"
	"fjacquet/kfinance/internal/recorderror"
	"fjacquet/kfinance/internal/render"
	"fjacquet/kfinance/internal/session"
	"fjacquet/kfinance/internal/store"
)

// Output formats accepted by NewSink.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     store.Store
	users     *session.Users
	session   *session.Session
	assembler *dashboard.Assembler
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	s, err := store.New(store.Options{
		Backend:    cfg.Data.Backend,
		Directory:  cfg.DataDirectory(),
		FilePath:   cfg.Data.FilePath,
		SQLitePath: cfg.Data.SQLitePath,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	assembler := dashboard.NewAssembler(dashboard.Options{
		MonthsBack:        cfg.Dashboard.MonthsBack,
		TopProducts:       cfg.Dashboard.TopProducts,
		TopEstablishments: cfg.Dashboard.TopEstablishments,
		Locale:            cfg.Display.Locale,
	})

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldBackend, cfg.Data.Backend))

	return &Container{
		logger:    logger,
		config:    cfg,
		store:     s,
		users:     session.NewUsers(s, logger),
		session:   session.New(s, logger),
		assembler: assembler,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the record store.
func (c *Container) GetStore() store.Store {
	return c.store
}

// GetUsers returns the user registry.
func (c *Container) GetUsers() *session.Users {
	return c.users
}

// GetSession returns the session. It has no user until OpenSession succeeds.
func (c *Container) GetSession() *session.Session {
	return c.session
}

// GetAssembler returns the dashboard assembler.
func (c *Container) GetAssembler() *dashboard.Assembler {
	return c.assembler
}

// OpenSession loads the current user's data into the session.
// It fails with ErrNotLoggedIn when nobody is logged in.
func (c *Container) OpenSession(ctx context.Context) (*session.Session, error) {
	user, ok, err := c.users.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, recorderror.ErrNotLoggedIn
	}
	c.session.Open(ctx, user)
	return c.session, nil
}

// NewExporter returns an exporter for the configured target. directory
// overrides the configured CSV directory when not empty.
func (c *Container) NewExporter(ctx context.Context, directory string) (*export.Exporter, error) {
	switch c.config.Export.Target {
	case config.TargetSheets:
		w, err := export.NewSheetsWriter(ctx, export.SheetsConfig{
			CredentialsFile: c.config.Export.Sheets.CredentialsFile,
			SpreadsheetID:   c.config.Export.Sheets.SpreadsheetID,
		}, c.logger)
		if err != nil {
			return nil, err
		}
		return export.NewExporter(w, c.logger), nil
	default:
		if directory == "" {
			directory = c.config.Export.Directory
		}
		return export.NewExporter(export.NewCSVWriter(filepath.Clean(directory), c.config.DelimiterRune(), c.logger), c.logger), nil
	}
}

// NewSink returns a presentation sink writing to out in the given format.
func NewSink(out io.Writer, format string) (render.Sink, error) {
	switch format {
	case FormatText, "":
		return render.NewTerminal(out), nil
	case FormatJSON:
		return render.NewJSON(out), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (must be 'text' or 'json')", format)
	}
}

// Close releases the record store.
func (c *Container) Close() error {
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("failed to close record store: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}
