package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/kfinance/internal/logging"
	"fjacquet/kfinance/internal/models"
	"fjacquet/kfinance/internal/recorderror"
	"fjacquet/kfinance/internal/store"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// RegisterInput holds the registration form values.
type RegisterInput struct {
	Name, Email, Password, Confirm string
}

// Users is the local user registry. Passwords are stored and compared as given.
type Users struct {
	store  store.Store
	logger logging.Logger
}

// NewUsers returns a registry backed by s.
func NewUsers(s store.Store, logger logging.Logger) *Users {
	return &Users{store: s, logger: logger}
}

// List returns every registered user. A missing or corrupt registry is empty.
func (u *Users) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := store.ReadJSON(ctx, u.store, store.KeyUsers, &users, u.logger); err != nil {
		return nil, err
	}
	return users, nil
}

// Register validates in and adds a new user.
func (u *Users) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", in.Name}, {"email", in.Email}, {"password", in.Password}, {"confirm", in.Confirm},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return models.User{}, &recorderror.ValidationError{Kind: "user", Fields: missing}
	}
	if in.Password != in.Confirm {
		return models.User{}, &recorderror.ValidationError{Kind: "user", Reason: "passwords do not match"}
	}
	if len(in.Password) < MinPasswordLength {
		return models.User{}, &recorderror.ValidationError{
			Kind:   "user",
			Reason: fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
		}
	}

	users, err := u.List(ctx)
	if err != nil {
		return models.User{}, err
	}
	email := strings.TrimSpace(in.Email)
	for _, existing := range users {
		if existing.Email == email {
			return models.User{}, recorderror.ErrUserExists
		}
	}

	user := models.User{
		ID:        models.NewID(),
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		Password:  in.Password,
		CreatedAt: models.Now().UTC().Format(time.RFC3339),
	}
	if err := store.WriteJSON(ctx, u.store, store.KeyUsers, append(users, user)); err != nil {
		return models.User{}, fmt.Errorf("saving users: %w", err)
	}

	u.logger.Info("User registered", logging.F(logging.FieldUser, user.ID))
	return user, nil
}

// Login checks the credentials and records the user as current.
func (u *Users) Login(ctx context.Context, email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, &recorderror.ValidationError{Kind: "login", Reason: "email and password are required"}
	}

	users, err := u.List(ctx)
	if err != nil {
		return models.User{}, err
	}

	for _, user := range users {
		if user.Email != email {
			continue
		}
		if user.Password != password {
			return models.User{}, fmt.Errorf("%w: wrong password", recorderror.ErrInvalidCredentials)
		}
		if err := store.WriteJSON(ctx, u.store, store.KeyCurrentUser, user); err != nil {
			return models.User{}, fmt.Errorf("saving current user: %w", err)
		}
		u.logger.Info("User logged in", logging.F(logging.FieldUser, user.ID))
		return user, nil
	}
	return models.User{}, fmt.Errorf("%w: user not found", recorderror.ErrInvalidCredentials)
}

// Current returns the logged-in user, if any.
func (u *Users) Current(ctx context.Context) (models.User, bool, error) {
	var user models.User
	ok, err := store.ReadJSON(ctx, u.store, store.KeyCurrentUser, &user, u.logger)
	if err != nil || !ok || user.ID == "" {
		return models.User{}, false, err
	}
	return user, true, nil
}

// Logout forgets the current user. Their data stays in the store.
func (u *Users) Logout(ctx context.Context) error {
	return u.store.Delete(ctx, store.KeyCurrentUser)
}

// PruneOrphans removes data keys that belong to no registered user.
func (u *Users) PruneOrphans(ctx context.Context) ([]string, error) {
	users, err := u.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(users))
	for i, user := range users {
		ids[i] = user.ID
	}
	return store.PruneOrphans(ctx, u.store, ids, u.logger)
}
