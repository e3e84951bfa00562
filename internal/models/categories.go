package models

import "fjacquet/kfinance/internal/recorderror"

// DefaultCategories returns the seeded category names in display order.
func DefaultCategories() []string {
	return []string{"Food", "Transport", "Housing", "Health", "Education", "Leisure", "Clothing", "Other"}
}

// Categories is an insertion-ordered set of case-sensitive category names.
type Categories struct {
	names []string
}

// NewCategories returns a set seeded with the defaults.
func NewCategories() *Categories {
	c := &Categories{}
	c.Merge(DefaultCategories())
	return c
}

// Merge adds every name not yet present, keeping first-seen order. Blank names are skipped.
func (c *Categories) Merge(names []string) {
	for _, name := range names {
		if name == "" || c.Contains(name) {
			continue
		}
		c.names = append(c.names, name)
	}
}

// Add appends name, failing with ErrDuplicateCategory when present.
func (c *Categories) Add(name string) error {
	if name == "" {
		return &recorderror.ValidationError{Kind: "category", Fields: []string{"name"}}
	}
	if c.Contains(name) {
		return recorderror.ErrDuplicateCategory
	}
	c.names = append(c.names, name)
	return nil
}

// RemoveAt removes the entry at index. Defaults may be removed from the active set.
func (c *Categories) RemoveAt(index int) (string, error) {
	if index < 0 || index >= len(c.names) {
		return "", &recorderror.IndexError{Collection: CollectionCategories, Index: index, Length: len(c.names)}
	}
	removed := c.names[index]
	c.names = append(c.names[:index:index], c.names[index+1:]...)
	return removed, nil
}

// Reset restores the default set.
func (c *Categories) Reset() {
	c.names = nil
	c.Merge(DefaultCategories())
}

// Contains reports whether name is in the set.
func (c *Categories) Contains(name string) bool {
	for _, n := range c.names {
		if n == name {
			return true
		}
	}
	return false
}

// Names returns a copy of the names in order.
func (c *Categories) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of categories.
func (c *Categories) Len() int {
	return len(c.names)
}
