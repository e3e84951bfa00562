package session

import (
	"context"
	"errors"
	"testing"

	"fjacquet/kfinance/internal/logging"
	"fjacquet/kfinance/internal/models"
	"fjacquet/kfinance/internal/recorderror"
	"fjacquet/kfinance/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = models.User{ID: "u1", Name: "Ana", Email: "ana@example.com", Password: "secret1"}

func openSession(t *testing.T, s store.Store) *Session {
	t.Helper()
	sess := New(s, logging.NewMockLogger())
	sess.Open(context.Background(), testUser)
	return sess
}

func expenseInput(desc, value string) models.ExpenseInput {
	return models.ExpenseInput{Date: "2026-10-01", Category: "Food", Description: desc, Value: value}
}

func TestSession_RequiresUser(t *testing.T) {
	ctx := context.Background()
	sess := New(store.NewMemoryStore(), logging.NewMockLogger())

	_, err := sess.AddExpense(ctx, expenseInput("x", "1"))
	assert.True(t, errors.Is(err, recorderror.ErrNotLoggedIn))
	assert.True(t, errors.Is(sess.Delete(ctx, models.KindExpense, 0), recorderror.ErrNotLoggedIn))
	assert.True(t, errors.Is(sess.AddCategory(ctx, "Pets"), recorderror.ErrNotLoggedIn))

	_, ok := sess.User()
	assert.False(t, ok)
	assert.Equal(t, models.DefaultCategories(), sess.Categories())
}

func TestSession_AddPersistsImmediately(t *testing.T) {
	ctx := context.Background()
	backing := store.NewMemoryStore()
	sess := openSession(t, backing)

	e, err := sess.AddExpense(ctx, expenseInput("lunch", "25.50"))
	require.NoError(t, err)
	_, err = sess.AddRevenue(ctx, models.RevenueInput{Date: "2026-10-05", Source: "Job", Description: "salary", Value: "3000"})
	require.NoError(t, err)
	_, err = sess.AddSupermarketItem(ctx, models.SupermarketInput{Date: "2026-10-02", Store: "Mart", Product: "Rice", Quantity: "2", UnitValue: "5"})
	require.NoError(t, err)
	_, err = sess.AddCardCharge(ctx, models.CardInput{Name: "Visa", Date: "2026-10-03", Establishment: "Cinema", Value: "40"})
	require.NoError(t, err)

	reopened := openSession(t, backing)
	require.Len(t, reopened.Expenses(), 1)
	assert.Equal(t, e.ID, reopened.Expenses()[0].ID)
	assert.True(t, decimal.NewFromFloat(25.5).Equal(reopened.Expenses()[0].Value))
	assert.Len(t, reopened.Revenues(), 1)
	assert.Len(t, reopened.Supermarket(), 1)
	assert.True(t, decimal.NewFromInt(10).Equal(reopened.Supermarket()[0].TotalValue))
	assert.Len(t, reopened.Cards(), 1)
	assert.Equal(t, int64(1), reopened.Cards()[0].Installments)
}

func TestSession_OpenDefaultsMalformedFields(t *testing.T) {
	ctx := context.Background()
	backing := store.NewMemoryStore()
	expensesKey := store.UserKey(testUser.ID, models.CollectionExpenses)
	require.NoError(t, backing.Set(ctx, expensesKey,
		[]byte(`[{"id":"e1","date":"2026-10-01","category":"Food","value":50},{"id":"e2","date":"2026-10-02","category":"Food","value":""}]`)))
	require.NoError(t, backing.Set(ctx, store.UserKey(testUser.ID, models.CollectionSupermarket),
		[]byte(`[{"id":"s1","date":"2026-10-01","product":"Rice","quantity":1.5,"totalValue":30}]`)))

	sess := openSession(t, backing)

	expenses := sess.Expenses()
	require.Len(t, expenses, 2)
	assert.True(t, decimal.NewFromInt(50).Equal(expenses[0].Value))
	assert.True(t, expenses[1].Value.IsZero())
	assert.Equal(t, "e2", expenses[1].ID)

	items := sess.Supermarket()
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].Quantity)
	assert.True(t, decimal.NewFromInt(30).Equal(items[0].TotalValue))

	_, ok, err := backing.Get(ctx, expensesKey)
	require.NoError(t, err)
	assert.True(t, ok, "the stored collection must survive")
}

func TestSession_AddWarnsOnUnrecognizedDate(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewMockLogger()
	sess := New(store.NewMemoryStore(), logger)
	sess.Open(ctx, testUser)

	_, err := sess.AddExpense(ctx, expenseInput("lunch", "10"))
	require.NoError(t, err)
	assert.Empty(t, logger.GetEntriesByLevel("WARN"))

	in := expenseInput("dinner", "20")
	in.Date = "next friday"
	_, err = sess.AddExpense(ctx, in)
	require.NoError(t, err)
	assert.Len(t, sess.Expenses(), 2, "the record is kept")
	assert.True(t, logger.HasEntry("WARN", "Record date not recognized, it is left out of monthly charts"))
}

func TestSession_AddValidationLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	backing := store.NewMockStore()
	sess := openSession(t, backing)

	_, err := sess.AddExpense(ctx, models.ExpenseInput{Description: "x"})
	var verr *recorderror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 0, sess.Len(models.KindExpense))
	assert.Equal(t, 0, backing.SetCalls)
}

func TestSession_AddStoreFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	backing := store.NewMockStore()
	sess := openSession(t, backing)
	backing.SetError = errors.New("disk full")

	_, err := sess.AddCardCharge(ctx, models.CardInput{Name: "Visa", Date: "2026-10-03", Establishment: "Shop", Value: "1"})
	require.Error(t, err)
	assert.Equal(t, 0, sess.Len(models.KindCard))
}

func TestSession_DeleteShiftsIndices(t *testing.T) {
	ctx := context.Background()
	backing := store.NewMemoryStore()
	sess := openSession(t, backing)

	for _, d := range []string{"a", "b", "c"} {
		_, err := sess.AddExpense(ctx, expenseInput(d, "1"))
		require.NoError(t, err)
	}

	require.NoError(t, sess.Delete(ctx, models.KindExpense, 0))
	require.NoError(t, sess.Delete(ctx, models.KindExpense, 0))

	remaining := sess.Expenses()
	require.Len(t, remaining, 1)
	assert.Equal(t, "c", remaining[0].Description)

	err := sess.Delete(ctx, models.KindExpense, 1)
	assert.True(t, errors.Is(err, recorderror.ErrIndexOutOfRange))
	assert.Len(t, sess.Expenses(), 1)

	reopened := openSession(t, backing)
	require.Len(t, reopened.Expenses(), 1)
	assert.Equal(t, "c", reopened.Expenses()[0].Description)
}

func TestSession_DeleteEveryKind(t *testing.T) {
	ctx := context.Background()
	sess := openSession(t, store.NewMemoryStore())

	_, err := sess.AddRevenue(ctx, models.RevenueInput{Date: "2026-10-05", Source: "Job", Description: "salary", Value: "1"})
	require.NoError(t, err)
	_, err = sess.AddSupermarketItem(ctx, models.SupermarketInput{Date: "2026-10-02", Store: "Mart", Product: "Rice"})
	require.NoError(t, err)
	_, err = sess.AddCardCharge(ctx, models.CardInput{Name: "Visa", Date: "2026-10-03", Establishment: "Shop", Value: "1"})
	require.NoError(t, err)

	for _, kind := range []models.Kind{models.KindRevenue, models.KindSupermarket, models.KindCard} {
		require.NoError(t, sess.Delete(ctx, kind, 0), kind)
		assert.Equal(t, 0, sess.Len(kind))
		assert.Error(t, sess.Delete(ctx, kind, 0))
	}
	assert.True(t, errors.Is(sess.Delete(ctx, models.Kind("loan"), 0), recorderror.ErrUnknownKind))
}

func TestSession_DeleteStoreFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	backing := store.NewMockStore()
	sess := openSession(t, backing)
	_, err := sess.AddExpense(ctx, expenseInput("a", "1"))
	require.NoError(t, err)

	backing.SetError = errors.New("disk full")
	require.Error(t, sess.Delete(ctx, models.KindExpense, 0))
	assert.Len(t, sess.Expenses(), 1)
}

func TestSession_AccessorsReturnCopies(t *testing.T) {
	ctx := context.Background()
	sess := openSession(t, store.NewMemoryStore())
	_, err := sess.AddExpense(ctx, expenseInput("a", "1"))
	require.NoError(t, err)

	snap := sess.Snapshot()
	snap.Expenses[0].Description = "mutated"
	assert.Equal(t, "a", sess.Expenses()[0].Description)
}

func TestSession_Categories(t *testing.T) {
	ctx := context.Background()
	backing := store.NewMemoryStore()
	sess := openSession(t, backing)

	require.NoError(t, sess.AddCategory(ctx, "Pets"))
	assert.True(t, errors.Is(sess.AddCategory(ctx, "Pets"), recorderror.ErrDuplicateCategory))

	removed, err := sess.RemoveCategory(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Food", removed)
	assert.NotContains(t, sess.Categories(), "Food")

	_, err = sess.RemoveCategory(ctx, 99)
	assert.True(t, errors.Is(err, recorderror.ErrIndexOutOfRange))

	// defaults are re-seeded on the next load, custom entries survive
	reopened := openSession(t, backing)
	names := reopened.Categories()
	assert.Equal(t, models.DefaultCategories(), names[:8])
	assert.Contains(t, names, "Pets")

	require.NoError(t, reopened.ResetCategories(ctx))
	assert.Equal(t, models.DefaultCategories(), reopened.Categories())
}

func TestSession_CategoryStoreFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	backing := store.NewMockStore()
	sess := openSession(t, backing)
	backing.SetError = errors.New("disk full")

	assert.Error(t, sess.AddCategory(ctx, "Pets"))
	assert.NotContains(t, sess.Categories(), "Pets")

	_, err := sess.RemoveCategory(ctx, 0)
	assert.Error(t, err)
	assert.Equal(t, models.DefaultCategories(), sess.Categories())
}

func TestSession_ResetClearsState(t *testing.T) {
	ctx := context.Background()
	sess := openSession(t, store.NewMemoryStore())
	_, err := sess.AddExpense(ctx, expenseInput("a", "1"))
	require.NoError(t, err)
	require.NoError(t, sess.AddCategory(ctx, "Pets"))

	sess.Reset()
	_, ok := sess.User()
	assert.False(t, ok)
	assert.Empty(t, sess.Expenses())
	assert.Equal(t, models.DefaultCategories(), sess.Categories())
}

func TestSession_UsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	backing := store.NewMemoryStore()
	sess := openSession(t, backing)
	_, err := sess.AddExpense(ctx, expenseInput("mine", "1"))
	require.NoError(t, err)

	other := New(backing, logging.NewMockLogger())
	other.Open(ctx, models.User{ID: "u2"})
	assert.Empty(t, other.Expenses())
}
