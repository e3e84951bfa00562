// Package roottest runs commands against an in-memory container.
package roottest

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"fjacquet/kfinance/cmd/root"
	"fjacquet/kfinance/internal/config"
	"fjacquet/kfinance/internal/container"
	"fjacquet/kfinance/internal/logging"
	"fjacquet/kfinance/internal/models"
	"fjacquet/kfinance/internal/session"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

var initOnce sync.Once

// NewContainer returns a memory-backed container with a mock logger.
func NewContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := config.Default()
	cfg.Data.Backend = "memory"
	cfg.Export.Directory = t.TempDir()
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

// LoggedIn registers and logs in a test user.
func LoggedIn(t *testing.T, c *container.Container) models.User {
	t.Helper()
	ctx := context.Background()
	_, err := c.GetUsers().Register(ctx, session.RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "secret1", Confirm: "secret1",
	})
	require.NoError(t, err)
	user, err := c.GetUsers().Login(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	return user
}

// Run executes root with args using c, registering cmd first when needed,
// and returns everything written to stdout and stderr.
func Run(t *testing.T, c *container.Container, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	initOnce.Do(root.Init)

	registered := false
	for _, sub := range root.Cmd.Commands() {
		if sub == cmd {
			registered = true
		}
	}
	if !registered {
		root.Cmd.AddCommand(cmd)
	}

	root.SetContainer(c)
	t.Cleanup(func() { root.SetContainer(nil) })
	resetFlags(root.Cmd)

	var buf bytes.Buffer
	root.Cmd.SetOut(&buf)
	root.Cmd.SetErr(&buf)
	root.Cmd.SetArgs(args)
	err := root.Cmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
