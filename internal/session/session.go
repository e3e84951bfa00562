// Package session owns the active user's record collections and category set,
// persisting every change to the record store as soon as it is made.
package session

import (
	"context"
	"fmt"

	"fjacquet/kfinance/internal/dashboard"
	"fjacquet/kfinance/internal/dateutils"
	"fjacquet/kfinance/internal/logging"
	"fjacquet/kfinance/internal/models"
	"fjacquet/kfinance/internal/recorderror"
	"fjacquet/kfinance/internal/store"
)

// Session holds the state of one logged-in user. It is not safe for concurrent use.
type Session struct {
	store  store.Store
	logger logging.Logger

	user *models.User
	cols *store.Collections

	expenses    []models.Expense
	revenues    []models.Revenue
	supermarket []models.SupermarketItem
	cards       []models.CardCharge
	categories  *models.Categories
}

// New returns a session with no user and the default categories.
func New(s store.Store, logger logging.Logger) *Session {
	return &Session{
		store:      s,
		logger:     logger,
		categories: models.NewCategories(),
	}
}

// Open loads the collections of user, replacing any previous state.
// Saved categories are merged into the defaults.
func (s *Session) Open(ctx context.Context, user models.User) {
	s.Reset()
	s.user = &user
	s.cols = store.NewCollections(s.store, user.ID, s.logger)

	s.expenses = store.Load[models.Expense](ctx, s.cols, models.CollectionExpenses)
	s.revenues = store.Load[models.Revenue](ctx, s.cols, models.CollectionRevenues)
	s.supermarket = store.Load[models.SupermarketItem](ctx, s.cols, models.CollectionSupermarket)
	s.cards = store.Load[models.CardCharge](ctx, s.cols, models.CollectionCards)
	s.categories.Merge(store.Load[string](ctx, s.cols, models.CollectionCategories))

	s.logger.Debug("Session opened",
		logging.F(logging.FieldUser, user.ID),
		logging.F(logging.FieldCount, len(s.expenses)+len(s.revenues)+len(s.supermarket)+len(s.cards)))
}

// Reset drops the user and every collection, and restores the default categories.
func (s *Session) Reset() {
	s.user = nil
	s.cols = nil
	s.expenses = nil
	s.revenues = nil
	s.supermarket = nil
	s.cards = nil
	s.categories = models.NewCategories()
}

// User returns the session user.
func (s *Session) User() (models.User, bool) {
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) requireUser() error {
	if s.user == nil {
		return recorderror.ErrNotLoggedIn
	}
	return nil
}

// Snapshot copies the four collections for the dashboard assembler.
func (s *Session) Snapshot() dashboard.Snapshot {
	return dashboard.Snapshot{
		Expenses:    s.Expenses(),
		Revenues:    s.Revenues(),
		Supermarket: s.Supermarket(),
		Cards:       s.Cards(),
	}
}

// Expenses returns a copy of the expense collection.
func (s *Session) Expenses() []models.Expense { return clone(s.expenses) }

// Revenues returns a copy of the revenue collection.
func (s *Session) Revenues() []models.Revenue { return clone(s.revenues) }

// Supermarket returns a copy of the supermarket collection.
func (s *Session) Supermarket() []models.SupermarketItem { return clone(s.supermarket) }

// Cards returns a copy of the card collection.
func (s *Session) Cards() []models.CardCharge { return clone(s.cards) }

// Len returns the current size of the collection of kind.
func (s *Session) Len(kind models.Kind) int {
	switch kind {
	case models.KindExpense:
		return len(s.expenses)
	case models.KindRevenue:
		return len(s.revenues)
	case models.KindSupermarket:
		return len(s.supermarket)
	case models.KindCard:
		return len(s.cards)
	default:
		return 0
	}
}

// AddExpense validates in, appends the expense and persists the collection.
func (s *Session) AddExpense(ctx context.Context, in models.ExpenseInput) (models.Expense, error) {
	if err := s.requireUser(); err != nil {
		return models.Expense{}, err
	}
	e, err := models.NewExpense(in)
	if err != nil {
		return models.Expense{}, err
	}
	next := append(clone(s.expenses), e)
	if err := s.cols.Save(ctx, models.CollectionExpenses, next); err != nil {
		return models.Expense{}, err
	}
	s.expenses = next
	s.logAdded(models.KindExpense, e.ID, e.Date)
	return e, nil
}

// AddRevenue validates in, appends the revenue and persists the collection.
func (s *Session) AddRevenue(ctx context.Context, in models.RevenueInput) (models.Revenue, error) {
	if err := s.requireUser(); err != nil {
		return models.Revenue{}, err
	}
	r, err := models.NewRevenue(in)
	if err != nil {
		return models.Revenue{}, err
	}
	next := append(clone(s.revenues), r)
	if err := s.cols.Save(ctx, models.CollectionRevenues, next); err != nil {
		return models.Revenue{}, err
	}
	s.revenues = next
	s.logAdded(models.KindRevenue, r.ID, r.Date)
	return r, nil
}

// AddSupermarketItem validates in, appends the item and persists the collection.
func (s *Session) AddSupermarketItem(ctx context.Context, in models.SupermarketInput) (models.SupermarketItem, error) {
	if err := s.requireUser(); err != nil {
		return models.SupermarketItem{}, err
	}
	item, err := models.NewSupermarketItem(in)
	if err != nil {
		return models.SupermarketItem{}, err
	}
	next := append(clone(s.supermarket), item)
	if err := s.cols.Save(ctx, models.CollectionSupermarket, next); err != nil {
		return models.SupermarketItem{}, err
	}
	s.supermarket = next
	s.logAdded(models.KindSupermarket, item.ID, item.Date)
	return item, nil
}

// AddCardCharge validates in, appends the charge and persists the collection.
func (s *Session) AddCardCharge(ctx context.Context, in models.CardInput) (models.CardCharge, error) {
	if err := s.requireUser(); err != nil {
		return models.CardCharge{}, err
	}
	c, err := models.NewCardCharge(in)
	if err != nil {
		return models.CardCharge{}, err
	}
	next := append(clone(s.cards), c)
	if err := s.cols.Save(ctx, models.CollectionCards, next); err != nil {
		return models.CardCharge{}, err
	}
	s.cards = next
	s.logAdded(models.KindCard, c.ID, c.Date)
	return c, nil
}

// logAdded also warns when date will be left out of the monthly charts.
func (s *Session) logAdded(kind models.Kind, id, date string) {
	s.logger.Info("Record added",
		logging.F(logging.FieldKind, string(kind)),
		logging.F(logging.FieldRecordID, id))
	if !dateutils.IsValid(date) {
		s.logger.Warn("Record date not recognized, it is left out of monthly charts",
			logging.F(logging.FieldRecordID, id),
			logging.F(logging.FieldDate, date))
	}
}

// Delete removes the entry at index from the collection of kind and persists it.
// index is checked against the collection as it is now.
func (s *Session) Delete(ctx context.Context, kind models.Kind, index int) error {
	if err := s.requireUser(); err != nil {
		return err
	}

	var err error
	switch kind {
	case models.KindExpense:
		s.expenses, err = deleteAt(ctx, s.cols, kind.Collection(), s.expenses, index)
	case models.KindRevenue:
		s.revenues, err = deleteAt(ctx, s.cols, kind.Collection(), s.revenues, index)
	case models.KindSupermarket:
		s.supermarket, err = deleteAt(ctx, s.cols, kind.Collection(), s.supermarket, index)
	case models.KindCard:
		s.cards, err = deleteAt(ctx, s.cols, kind.Collection(), s.cards, index)
	default:
		return fmt.Errorf("%w: %q", recorderror.ErrUnknownKind, kind)
	}
	if err != nil {
		return err
	}

	s.logger.Info("Record deleted",
		logging.F(logging.FieldKind, string(kind)),
		logging.F(logging.FieldIndex, index))
	return nil
}

// deleteAt persists records without the entry at index and returns the new
// slice. On failure the original slice is returned unchanged.
func deleteAt[T any](ctx context.Context, cols *store.Collections, name string, records []T, index int) ([]T, error) {
	if index < 0 || index >= len(records) {
		return records, &recorderror.IndexError{Collection: name, Index: index, Length: len(records)}
	}
	next := make([]T, 0, len(records)-1)
	next = append(next, records[:index]...)
	next = append(next, records[index+1:]...)
	if err := cols.Save(ctx, name, next); err != nil {
		return records, err
	}
	return next, nil
}

// Categories returns the active category names.
func (s *Session) Categories() []string {
	return s.categories.Names()
}

// AddCategory adds name to the active set and persists it.
func (s *Session) AddCategory(ctx context.Context, name string) error {
	if err := s.requireUser(); err != nil {
		return err
	}
	if err := s.categories.Add(name); err != nil {
		return err
	}
	if err := s.saveCategories(ctx); err != nil {
		_, _ = s.categories.RemoveAt(s.categories.Len() - 1)
		return err
	}
	s.logger.Info("Category added", logging.F(logging.FieldCategory, name))
	return nil
}

// RemoveCategory removes the category at index, defaults included, and persists the set.
func (s *Session) RemoveCategory(ctx context.Context, index int) (string, error) {
	if err := s.requireUser(); err != nil {
		return "", err
	}
	before := s.categories.Names()
	removed, err := s.categories.RemoveAt(index)
	if err != nil {
		return "", err
	}
	if err := s.saveCategories(ctx); err != nil {
		s.categories = restoreCategories(before)
		return "", err
	}
	s.logger.Info("Category removed", logging.F(logging.FieldCategory, removed))
	return removed, nil
}

// ResetCategories restores the defaults and persists them.
func (s *Session) ResetCategories(ctx context.Context) error {
	if err := s.requireUser(); err != nil {
		return err
	}
	before := s.categories.Names()
	s.categories.Reset()
	if err := s.saveCategories(ctx); err != nil {
		s.categories = restoreCategories(before)
		return err
	}
	return nil
}

func (s *Session) saveCategories(ctx context.Context) error {
	return s.cols.Save(ctx, models.CollectionCategories, s.categories.Names())
}

func restoreCategories(names []string) *models.Categories {
	c := &models.Categories{}
	c.Merge(names)
	return c
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
