package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/kfinance/internal/logging"
)

// Global keys shared by every user.
const (
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
)

const userKeyPrefix = "user_"

// UserKey returns the namespaced key of a user's collection.
func UserKey(userID, name string) string {
	return userKeyPrefix + userID + "_" + name
}

// ReadJSON decodes the value under key into dst.
// A missing key reports false. A value that fails to decode is removed from the
// store, logged, and also reports false so callers fall back to their default.
func ReadJSON(ctx context.Context, s Store, key string, dst interface{}, logger logging.Logger) (bool, error) {
	data, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(data, dst); err != nil {
		logger.WithError(err).Warn("Removing corrupt store entry", logging.F(logging.FieldKey, key))
		if delErr := s.Delete(ctx, key); delErr != nil {
			logger.WithError(delErr).Error("Failed to remove corrupt store entry", logging.F(logging.FieldKey, key))
		}
		return false, nil
	}
	return true, nil
}

// WriteJSON encodes v and stores it under key.
func WriteJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}

// Collections reads and writes named collections for one user.
type Collections struct {
	store  Store
	userID string
	logger logging.Logger
}

// NewCollections scopes s to userID.
func NewCollections(s Store, userID string, logger logging.Logger) *Collections {
	return &Collections{store: s, userID: userID, logger: logger}
}

// Key returns the store key backing the named collection.
func (c *Collections) Key(name string) string {
	return UserKey(c.userID, name)
}

// Save persists records as the named collection.
func (c *Collections) Save(ctx context.Context, name string, records interface{}) error {
	if err := WriteJSON(ctx, c.store, c.Key(name), records); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	return nil
}

// Load returns the named collection, or an empty slice when the entry is
// missing, unreadable or not a JSON array. Only a document that is not an array
// is removed. Elements that fail to decode are skipped and logged, and the
// stored entry is kept. Read failures are logged, never returned.
func Load[T any](ctx context.Context, c *Collections, name string) []T {
	var raw []json.RawMessage
	ok, err := ReadJSON(ctx, c.store, c.Key(name), &raw, c.logger)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to read collection, using empty default",
			logging.F(logging.FieldCollection, name),
			logging.F(logging.FieldUser, c.userID))
		return []T{}
	}
	if !ok {
		return []T{}
	}

	records := make([]T, 0, len(raw))
	for i, elem := range raw {
		var record T
		if err := json.Unmarshal(elem, &record); err != nil {
			c.logger.WithError(err).Warn("Skipping unreadable record",
				logging.F(logging.FieldCollection, name),
				logging.F(logging.FieldIndex, i))
			continue
		}
		records = append(records, record)
	}
	return records
}

// PruneOrphans removes per-user keys whose user id is not in validIDs and
// returns the removed keys.
func PruneOrphans(ctx context.Context, s Store, validIDs []string, logger logging.Logger) ([]string, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, key := range keys {
		if !strings.HasPrefix(key, userKeyPrefix) || ownedByAny(key, validIDs) {
			continue
		}
		if err := s.Delete(ctx, key); err != nil {
			return removed, err
		}
		logger.Info("Removed orphaned store entry", logging.F(logging.FieldKey, key))
		removed = append(removed, key)
	}
	return removed, nil
}

func ownedByAny(key string, ids []string) bool {
	for _, id := range ids {
		if strings.HasPrefix(key, userKeyPrefix+id+"_") {
			return true
		}
	}
	return false
}

// Clear removes every key from the store and returns how many were removed.
func Clear(ctx context.Context, s Store) (int, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return 0, err
	}
	for i, key := range keys {
		if err := s.Delete(ctx, key); err != nil {
			return i, err
		}
	}
	return len(keys), nil
}
