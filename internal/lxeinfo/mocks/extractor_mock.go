package mocks

import (
	"context"

	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/models"
)

// MockExtractor はExtractorのモック実装です
type MockExtractor struct {
	Data      *models.ExtractedData
	Error     error
	CallCount int
	LastPath  string
}

// Extract はモック実装です
func (m *MockExtractor) Extract(ctx context.Context, path string, password string, force bool) (*models.ExtractedData, error) {
	m.CallCount++
	m.LastPath = path
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Data, nil
}
