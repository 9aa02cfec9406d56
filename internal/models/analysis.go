package models

import (
	"fmt"
	"time"
)

// Sentiment is the overall tone the model assigns to the document.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentMixed    Sentiment = "mixed"
)

// Severity grades a detected anomaly.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// AnalysisRequest is the body of POST /api/v1/analyze. FileName and
// FileType are advisory metadata; only Content is required.
type AnalysisRequest struct {
	Content  string `json:"content"`
	FileName string `json:"fileName,omitempty"`
	FileType string `json:"fileType,omitempty"`
}

// DataPoint is one labeled value in a chart series or a sentiment breakdown.
type DataPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type SentimentSummary struct {
	Overall   Sentiment   `json:"overall"`
	Score     float64     `json:"score"`
	Breakdown []DataPoint `json:"breakdown"`
}

// Metric values are display strings ("1,247", "+12.4%"), not numbers.
type Metric struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change"`
}

type Anomaly struct {
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Confidence  float64  `json:"confidence"`
}

type ChartData struct {
	TimeSeries   []DataPoint `json:"timeSeries"`
	Distribution []DataPoint `json:"distribution"`
	Categories   []DataPoint `json:"categories"`
}

// ModelInfo describes the provider call that produced the result. Model,
// TokensUsed and LatencyMs are always overwritten server-side with ground
// truth from the actual call; Confidence is the only field trusted from
// model output.
type ModelInfo struct {
	Model      string  `json:"model"`
	TokensUsed int     `json:"tokensUsed"`
	LatencyMs  int64   `json:"latencyMs"`
	Confidence float64 `json:"confidence,omitempty"`
}

// AnalysisResult is the canonical structured output every view consumes.
// It is constructed wholesale by the analysis service and never mutated
// field-by-field afterwards.
type AnalysisResult struct {
	Summary         string           `json:"summary"`
	KeyFindings     []string         `json:"keyFindings"`
	Sentiment       SentimentSummary `json:"sentiment"`
	Recommendations []string         `json:"recommendations"`
	Metrics         []Metric         `json:"metrics"`
	Anomalies       []Anomaly        `json:"anomalies"`
	ChartData       ChartData        `json:"chartData"`
	ModelInfo       ModelInfo        `json:"modelInfo"`
}

func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed:
		return true
	}
	return false
}

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// Validate checks the result against the schema contract at the system
// boundary. The model occasionally returns JSON that parses but does not
// match the required shape; that must fail here rather than reach a view.
func (r *AnalysisResult) Validate() error {
	if r.Summary == "" {
		return fmt.Errorf("missing summary")
	}
	if len(r.KeyFindings) == 0 {
		return fmt.Errorf("missing keyFindings")
	}
	if !r.Sentiment.Overall.Valid() {
		return fmt.Errorf("invalid sentiment.overall %q", r.Sentiment.Overall)
	}
	if r.Sentiment.Score < 0 || r.Sentiment.Score > 1 {
		return fmt.Errorf("sentiment.score %v out of range [0,1]", r.Sentiment.Score)
	}
	if len(r.Sentiment.Breakdown) == 0 {
		return fmt.Errorf("missing sentiment.breakdown")
	}
	for i, a := range r.Anomalies {
		if !a.Severity.Valid() {
			return fmt.Errorf("anomalies[%d]: invalid severity %q", i, a.Severity)
		}
		if a.Confidence < 0 || a.Confidence > 1 {
			return fmt.Errorf("anomalies[%d]: confidence %v out of range [0,1]", i, a.Confidence)
		}
	}
	if len(r.ChartData.TimeSeries) == 0 {
		return fmt.Errorf("missing chartData.timeSeries")
	}
	if len(r.ChartData.Distribution) == 0 {
		return fmt.Errorf("missing chartData.distribution")
	}
	if len(r.ChartData.Categories) == 0 {
		return fmt.Errorf("missing chartData.categories")
	}
	if r.ModelInfo.Confidence < 0 || r.ModelInfo.Confidence > 1 {
		return fmt.Errorf("modelInfo.confidence %v out of range [0,1]", r.ModelInfo.Confidence)
	}
	return nil
}

// AnalysisRecord is the persisted history entry for one completed analysis.
// Only the result and file metadata are stored; the uploaded bytes and
// extracted text never leave the request that carried them.
type AnalysisRecord struct {
	ID         string          `json:"id" db:"id"`
	FileName   string          `json:"file_name" db:"file_name"`
	FileType   string          `json:"file_type" db:"file_type"`
	Model      string          `json:"model" db:"model"`
	TokensUsed int             `json:"tokens_used" db:"tokens_used"`
	LatencyMs  int64           `json:"latency_ms" db:"latency_ms"`
	Result     *AnalysisResult `json:"result" db:"-"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}
