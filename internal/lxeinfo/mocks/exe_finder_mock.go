package mocks

// MockExeFileFinder はExeFileFinderのモック実装です
type MockExeFileFinder struct {
	FoundFile string
	Error     error
}

// Find はモック実装です
func (m *MockExeFileFinder) Find() (string, error) {
	if m.Error != nil {
		return "", m.Error
	}
	return m.FoundFile, nil
}
