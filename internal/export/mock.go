package export

import (
	"context"
	"sync"
)

// MockSheetsAPI records calls in memory and can be told to fail.
type MockSheetsAPI struct {
	mu sync.Mutex

	CreatedID   string
	CreateError error
	EnsureError error
	WriteError  error

	Created []string
	Tabs    map[string][]string
	Values  map[string][][]interface{}
}

// NewMockSheetsAPI returns a mock that hands out createdID for new spreadsheets.
func NewMockSheetsAPI(createdID string) *MockSheetsAPI {
	return &MockSheetsAPI{
		CreatedID: createdID,
		Tabs:      make(map[string][]string),
		Values:    make(map[string][][]interface{}),
	}
}

func (m *MockSheetsAPI) CreateSpreadsheet(_ context.Context, title string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return "", m.CreateError
	}
	m.Created = append(m.Created, title)
	return m.CreatedID, nil
}

func (m *MockSheetsAPI) EnsureTab(_ context.Context, spreadsheetID, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.EnsureError != nil {
		return m.EnsureError
	}
	for _, t := range m.Tabs[spreadsheetID] {
		if t == title {
			return nil
		}
	}
	m.Tabs[spreadsheetID] = append(m.Tabs[spreadsheetID], title)
	return nil
}

func (m *MockSheetsAPI) ReplaceValues(_ context.Context, spreadsheetID, tab string, values [][]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteError != nil {
		return m.WriteError
	}
	m.Values[spreadsheetID+"!"+tab] = values
	return nil
}
