// Package dashboard holds the client-side application state shared between
// visualization views: the last analysis result, the active view, and the
// hover highlight channel coupling the 2D charts to the crystal display.
package dashboard

import (
	"sync"

	"github.com/xailabs/insightflow/internal/models"
)

// View names one dashboard tab.
type View string

const (
	ViewOverview  View = "Overview"
	ViewAnalytics View = "Analytics"
	ViewReports   View = "Reports"
	ViewModels    View = "Models"
	ViewSettings  View = "Settings"
)

// Store is the single mutable slot for the current analysis result and the
// active view. Results are replaced wholesale, never merged; there is no way
// to mutate a sub-field of a loaded result.
type Store struct {
	mu     sync.RWMutex
	result *models.AnalysisResult
	view   View
}

func NewStore() *Store {
	return &Store{view: ViewOverview}
}

// SetResult installs a new result and resets the active view to Overview.
func (s *Store) SetResult(r *models.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = r
	s.view = ViewOverview
}

// Clear drops the loaded result and returns to Overview.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = nil
	s.view = ViewOverview
}

func (s *Store) Result() *models.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

func (s *Store) ActiveView() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SelectView switches the active view. With no result loaded only Settings
// is reachable; every other request is a no-op. Returns whether the view
// actually changed.
func (s *Store) SelectView(v View) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil && v != ViewSettings {
		return false
	}

	s.view = v
	return true
}
