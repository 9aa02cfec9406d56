package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xailabs/insightflow/internal/models"
)

func sampleResult() *models.AnalysisResult {
	return &models.AnalysisResult{Summary: "test"}
}

func TestStoreDefaults(t *testing.T) {
	s := NewStore()

	assert.Nil(t, s.Result())
	assert.Equal(t, ViewOverview, s.ActiveView())
}

func TestSelectViewGating(t *testing.T) {
	s := NewStore()

	// No result loaded: only Settings is reachable.
	assert.False(t, s.SelectView(ViewAnalytics))
	assert.Equal(t, ViewOverview, s.ActiveView())

	assert.True(t, s.SelectView(ViewSettings))
	assert.Equal(t, ViewSettings, s.ActiveView())

	s.SetResult(sampleResult())
	assert.True(t, s.SelectView(ViewAnalytics))
	assert.Equal(t, ViewAnalytics, s.ActiveView())
}

func TestSetResultResetsView(t *testing.T) {
	s := NewStore()
	s.SetResult(sampleResult())
	s.SelectView(ViewReports)

	s.SetResult(sampleResult())
	assert.Equal(t, ViewOverview, s.ActiveView())
}

func TestClearBehavesAsNeverLoaded(t *testing.T) {
	s := NewStore()
	s.SetResult(sampleResult())
	s.SelectView(ViewModels)

	s.Clear()

	assert.Nil(t, s.Result())
	assert.Equal(t, ViewOverview, s.ActiveView())
	assert.False(t, s.SelectView(ViewAnalytics))
	assert.Equal(t, ViewOverview, s.ActiveView())
	assert.True(t, s.SelectView(ViewSettings))
}

func TestResultReplacedWholesale(t *testing.T) {
	s := NewStore()
	first := sampleResult()
	second := &models.AnalysisResult{Summary: "second"}

	s.SetResult(first)
	s.SetResult(second)

	assert.Same(t, second, s.Result())
}
