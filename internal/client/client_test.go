package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xailabs/insightflow/internal/dashboard"
	"github.com/xailabs/insightflow/internal/extractor"
	"github.com/xailabs/insightflow/internal/models"
)

func textFile(name, content string) extractor.UploadedFile {
	return extractor.UploadedFile{
		Name:        name,
		ContentType: "text/plain",
		Data:        []byte(content),
	}
}

func resultWithSummary(summary string) *models.AnalysisResult {
	return &models.AnalysisResult{
		Summary:   summary,
		ModelInfo: models.ModelInfo{Model: "llama-3.3-70b-versatile", TokensUsed: 137, LatencyMs: 42},
	}
}

func analyzeServer(t *testing.T, handler func(w http.ResponseWriter, req *models.AnalysisRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/analyze", r.URL.Path)
		var req models.AnalysisRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		handler(w, &req)
	}))
}

func TestAnalyzeEndToEnd(t *testing.T) {
	var received *models.AnalysisRequest
	srv := analyzeServer(t, func(w http.ResponseWriter, req *models.AnalysisRequest) {
		received = req
		json.NewEncoder(w).Encode(resultWithSummary("revenue analysis"))
	})
	defer srv.Close()

	store := dashboard.NewStore()
	c := New(srv.URL, store)

	var updates []Progress
	result, err := c.Analyze(context.Background(), textFile("q3.txt", "quarterly revenue rose 12%"), func(p Progress) {
		updates = append(updates, p)
	})
	require.NoError(t, err)

	assert.Equal(t, "quarterly revenue rose 12%", received.Content)
	assert.Equal(t, "q3.txt", received.FileName)

	// The client trusts the proxy's ground-truth usage numbers as-is.
	assert.Equal(t, 137, result.ModelInfo.TokensUsed)
	assert.Same(t, result, store.Result())
	assert.Equal(t, dashboard.ViewOverview, store.ActiveView())

	// Stage progression is observable and non-decreasing.
	require.NotEmpty(t, updates)
	assert.Equal(t, StageReading, updates[0].Stage)
	assert.Equal(t, StageComplete, updates[len(updates)-1].Stage)
	assert.Equal(t, 100, updates[len(updates)-1].Percent)
	last := 0
	for _, u := range updates {
		assert.GreaterOrEqual(t, u.Percent, last, "progress must never go backwards")
		last = u.Percent
	}
}

func TestAnalyzeSurfacesServerErrorMessage(t *testing.T) {
	srv := analyzeServer(t, func(w http.ResponseWriter, req *models.AnalysisRequest) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to parse AI response"})
	})
	defer srv.Close()

	c := New(srv.URL, dashboard.NewStore())

	var failed bool
	_, err := c.Analyze(context.Background(), textFile("q3.txt", "data"), func(p Progress) {
		if p.Stage == StageFailed {
			failed = true
			assert.Zero(t, p.Percent, "progress resets to 0 on failure")
		}
	})

	require.Error(t, err)
	assert.Equal(t, "Failed to parse AI response", err.Error())
	assert.True(t, failed)
}

func TestAnalyzeFallbackErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)

	_, err := c.Analyze(context.Background(), textFile("q3.txt", "data"), nil)

	require.Error(t, err)
	assert.Equal(t, "Analysis failed", err.Error())
}

func TestAnalyzeMalformedSuccessBodyIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)

	_, err := c.Analyze(context.Background(), textFile("q3.txt", "data"), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode analysis response")
}

func TestStaleCompletionDoesNotOverwriteStore(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	srv := analyzeServer(t, func(w http.ResponseWriter, req *models.AnalysisRequest) {
		if req.FileName == "slow.txt" {
			close(started)
			<-release
		}
		json.NewEncoder(w).Encode(resultWithSummary(fmt.Sprintf("result for %s", req.FileName)))
	})
	defer srv.Close()

	store := dashboard.NewStore()
	c := New(srv.URL, store)

	slowErr := make(chan error, 1)
	go func() {
		_, err := c.Analyze(context.Background(), textFile("slow.txt", "old data"), nil)
		slowErr <- err
	}()

	<-started

	// A newer upload begins while the first is still in flight.
	fast, err := c.Analyze(context.Background(), textFile("fast.txt", "new data"), nil)
	require.NoError(t, err)
	assert.Equal(t, "result for fast.txt", fast.Summary)

	close(release)
	assert.ErrorIs(t, <-slowErr, ErrSuperseded)

	// The store still holds the newest result.
	require.NotNil(t, store.Result())
	assert.Equal(t, "result for fast.txt", store.Result().Summary)
}

func TestExtractionFailureFailsBeforeUpload(t *testing.T) {
	calls := 0
	srv := analyzeServer(t, func(w http.ResponseWriter, req *models.AnalysisRequest) {
		calls++
		json.NewEncoder(w).Encode(resultWithSummary("never"))
	})
	defer srv.Close()

	c := New(srv.URL, nil)

	_, err := c.Analyze(context.Background(), extractor.UploadedFile{
		Name:        "empty.txt",
		ContentType: "text/plain",
	}, nil)

	require.Error(t, err)
	assert.Zero(t, calls, "no request may be sent when extraction fails")
}
