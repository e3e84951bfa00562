package list_test

import (
	"context"
	"errors"
	"testing"

	"fjacquet/kfinance/cmd/list"
	"fjacquet/kfinance/cmd/root/roottest"
	"fjacquet/kfinance/internal/models"
	"fjacquet/kfinance/internal/recorderror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommand_Metadata(t *testing.T) {
	assert.Contains(t, list.Cmd.Use, "list")
	assert.Contains(t, list.Cmd.Long, "index to pass to the remove command")
}

func TestListCommand(t *testing.T) {
	ctx := context.Background()
	c := roottest.NewContainer(t)
	roottest.LoggedIn(t, c)

	out, err := roottest.Run(t, c, list.Cmd, "list", "expenses")
	require.NoError(t, err)
	assert.Contains(t, out, "No expenses recorded yet")

	sess, err := c.OpenSession(ctx)
	require.NoError(t, err)
	_, err = sess.AddExpense(ctx, models.ExpenseInput{Date: "2026-10-01", Category: "Food", Description: "Lunch", Value: "25.5"})
	require.NoError(t, err)
	_, err = sess.AddExpense(ctx, models.ExpenseInput{Date: "2026-10-02", Category: "Transport", Description: "Bus", Value: "4.4"})
	require.NoError(t, err)

	out, err = roottest.Run(t, c, list.Cmd, "list", "expense")
	require.NoError(t, err)
	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "01/10/2026")
	assert.Contains(t, out, "25.50")
	assert.Contains(t, out, "Bus")

	out, err = roottest.Run(t, c, list.Cmd, "list", "expenses", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"slot":"records"`)
	assert.Contains(t, out, `["1","02/10/2026","Transport","Bus","4.40","",""]`)
}

func TestListCommand_UnknownKind(t *testing.T) {
	c := roottest.NewContainer(t)
	roottest.LoggedIn(t, c)

	_, err := roottest.Run(t, c, list.Cmd, "list", "loans")
	assert.True(t, errors.Is(err, recorderror.ErrUnknownKind))
}
