// Package client drives a file through the full analysis pipeline: extract
// text locally, post it to the analysis endpoint, and install the result in
// the dashboard store. The pipeline is a linear state machine with an
// observable progress channel.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xailabs/insightflow/internal/dashboard"
	"github.com/xailabs/insightflow/internal/extractor"
	"github.com/xailabs/insightflow/internal/models"
)

// ErrSuperseded is returned when a newer upload started before this one
// finished; the stale result is discarded and never reaches the store.
var ErrSuperseded = errors.New("analysis superseded by a newer upload")

// Stage is one named step of the analysis state machine. Transitions are
// strictly forward; any stage can fall to StageFailed.
type Stage int

const (
	StageIdle Stage = iota
	StageReading
	StagePDFParsing
	StageUploading
	StageModelAnalyzing
	StageSynthesizing
	StageComplete
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "Idle"
	case StageReading:
		return "Reading file..."
	case StagePDFParsing:
		return "Parsing PDF document..."
	case StageUploading:
		return "Uploading to neural engine..."
	case StageModelAnalyzing:
		return "AI analyzing patterns..."
	case StageSynthesizing:
		return "Synthesizing insights..."
	case StageComplete:
		return "Complete!"
	case StageFailed:
		return "Failed"
	}
	return "Unknown"
}

// Progress is one observable stage update. Percent is non-decreasing over
// the lifetime of a single analysis, except the reset to 0 on failure.
type Progress struct {
	Stage   Stage
	Label   string
	Percent int
}

// ProgressFunc observes stage transitions. It is called from the goroutine
// running Analyze and must not block.
type ProgressFunc func(Progress)

// Client submits analysis requests to a running server. Safe for concurrent
// use; overlapping analyses are serialized by supersession tokens so only
// the newest run may update the store.
type Client struct {
	baseURL string
	http    *http.Client
	store   *dashboard.Store

	seq        atomic.Uint64
	mu         sync.Mutex
	processing bool
}

// New builds a client for the given server base URL. The store may be nil
// when the caller only wants the returned result.
func New(baseURL string, store *dashboard.Store) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 120 * time.Second},
		store:   store,
	}
}

// IsProcessing reports whether an analysis is currently in flight. The UI
// uses this to disable new uploads while one is running.
func (c *Client) IsProcessing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.processing
}

// Analyze runs one file through the pipeline. The call makes exactly one
// request attempt; retries are up to the user. On success the result is
// installed in the store unless a newer Analyze call has started since.
func (c *Client) Analyze(ctx context.Context, file extractor.UploadedFile, onProgress ProgressFunc) (*models.AnalysisResult, error) {
	token := c.seq.Add(1)

	c.mu.Lock()
	c.processing = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.processing = false
		c.mu.Unlock()
	}()

	emit := newEmitter(onProgress)

	emit(StageReading, 0)

	if extractor.IsPDF(file.Name, file.ContentType) {
		emit(StagePDFParsing, 0)
	}

	content, err := extractor.Extract(file)
	if err != nil {
		emit(StageFailed, 0)
		return nil, err
	}

	emit(StageUploading, 25)

	result, err := c.post(ctx, &models.AnalysisRequest{
		Content:  content.Text,
		FileName: content.SourceFileName,
		FileType: content.SourceFileType,
	}, emit)
	if err != nil {
		emit(StageFailed, 0)
		return nil, err
	}

	emit(StageComplete, 100)

	// A newer upload owns the store now; drop this run's result.
	if c.seq.Load() != token {
		return nil, ErrSuperseded
	}

	if c.store != nil {
		c.store.SetResult(result)
	}

	return result, nil
}

func (c *Client) post(ctx context.Context, req *models.AnalysisRequest, emit func(Stage, int)) (*models.AnalysisResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	emit(StageModelAnalyzing, 50)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	emit(StageSynthesizing, 80)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errorMessage(respBody))
	}

	// A body that is not valid JSON is a distinct failure from an
	// HTTP-level error; the server said 200 but the payload is unusable.
	var result models.AnalysisResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}

	return &result, nil
}

// errorMessage pulls the error field out of an error response body, falling
// back to a generic message when the body is not parseable.
func errorMessage(body []byte) string {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	return "Analysis failed"
}

// newEmitter wraps the progress callback, clamping percent so observers see
// a non-decreasing sequence even if stages report out of order. The failure
// reset to 0 bypasses the clamp.
func newEmitter(onProgress ProgressFunc) func(Stage, int) {
	last := 0
	return func(stage Stage, percent int) {
		if onProgress == nil {
			return
		}
		if stage != StageFailed {
			if percent < last {
				percent = last
			}
			last = percent
		}
		onProgress(Progress{Stage: stage, Label: stage.String(), Percent: percent})
	}
}
