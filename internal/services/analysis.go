package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xailabs/insightflow/internal/analyzer"
	"github.com/xailabs/insightflow/internal/config"
	"github.com/xailabs/insightflow/internal/metrics"
	"github.com/xailabs/insightflow/internal/models"
	"github.com/xailabs/insightflow/internal/repository"
	"github.com/xailabs/insightflow/internal/storage"
	"github.com/xailabs/insightflow/internal/utils"
)

type AnalysisService interface {
	Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResult, error)
	GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error)
	ListAnalyses(ctx context.Context, limit int) ([]models.AnalysisRecord, error)
	ExportAnalysis(ctx context.Context, id string) (string, error)
}

type analysisService struct {
	repo    repository.Repository
	llm     analyzer.Analyzer
	storage storage.Storage // nil when export is disabled
	cfg     *config.Config
	logger  *utils.Logger
}

func NewService(repo repository.Repository, llm analyzer.Analyzer, store storage.Storage, cfg *config.Config, logger *utils.Logger) AnalysisService {
	return &analysisService{
		repo:    repo,
		llm:     llm,
		storage: store,
		cfg:     cfg,
		logger:  logger,
	}
}

// Analyze runs one document through the model and shapes the response.
// Exactly one upstream call is made per invocation; there are no retries
// and no caching, so identical input may yield different output.
func (s *analysisService) Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResult, error) {
	if req.Content == "" {
		return nil, utils.NewBadRequestError("No content provided")
	}

	if !s.cfg.GroqConfigured() {
		return nil, utils.NewInternalError("GROQ_API_KEY not configured. Add your key to the server environment")
	}

	content := truncateContent(req.Content, s.cfg.MaxContentChars)

	start := time.Now()

	completion, err := s.llm.Analyze(ctx, content, req.FileName, req.FileType)
	if err != nil {
		s.logger.Error("Provider call failed", "error", err, "file_name", req.FileName)
		metrics.AnalysisTotal.WithLabelValues("error").Inc()
		return nil, utils.NewInternalError(err.Error())
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(completion.Content), &result); err != nil {
		s.logger.Error("Model returned non-JSON output", "error", err, "content_length", len(completion.Content))
		metrics.AnalysisTotal.WithLabelValues("parse_error").Inc()
		return nil, utils.NewInternalError("Failed to parse AI response")
	}

	// The model's own numbers for these three fields are never trusted;
	// confidence is the only modelInfo value carried over from its output.
	result.ModelInfo.Model = completion.Model
	result.ModelInfo.TokensUsed = completion.TotalTokens
	result.ModelInfo.LatencyMs = completion.LatencyMs

	if err := result.Validate(); err != nil {
		s.logger.Error("Model output failed schema validation", "error", err)
		metrics.AnalysisTotal.WithLabelValues("invalid").Inc()
		return nil, utils.NewInternalError("AI response did not match the expected schema")
	}

	metrics.AnalysisTotal.WithLabelValues("success").Inc()
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	metrics.LLMTokensUsed.WithLabelValues(completion.Model).Add(float64(completion.TotalTokens))
	metrics.LLMLatency.Observe(float64(completion.LatencyMs) / 1000)

	// History is best-effort; a storage hiccup must not fail an analysis
	// that already succeeded upstream.
	rec := &models.AnalysisRecord{
		ID:         utils.GenerateID(),
		FileName:   req.FileName,
		FileType:   req.FileType,
		Model:      result.ModelInfo.Model,
		TokensUsed: result.ModelInfo.TokensUsed,
		LatencyMs:  result.ModelInfo.LatencyMs,
		Result:     &result,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Warn("Failed to persist analysis record", "error", err, "id", rec.ID)
	}

	s.logger.Info("Analysis completed",
		"id", rec.ID,
		"file_name", req.FileName,
		"model", result.ModelInfo.Model,
		"tokens_used", result.ModelInfo.TokensUsed,
		"latency_ms", result.ModelInfo.LatencyMs)

	return &result, nil
}

func (s *analysisService) GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get analysis", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve analysis")
	}
	if rec == nil {
		return nil, utils.NewNotFoundError("Analysis not found")
	}

	return rec, nil
}

func (s *analysisService) ListAnalyses(ctx context.Context, limit int) ([]models.AnalysisRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	records, err := s.repo.List(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list analyses", "error", err)
		return nil, utils.NewInternalError("Failed to list analyses")
	}

	return records, nil
}

// ExportAnalysis serializes a stored analysis to the report bucket and
// returns the object key.
func (s *analysisService) ExportAnalysis(ctx context.Context, id string) (string, error) {
	if s.storage == nil {
		return "", utils.NewServiceUnavailableError("Report export storage is not configured")
	}

	rec, err := s.GetAnalysis(ctx, id)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", utils.NewInternalError("Failed to encode report")
	}

	key := fmt.Sprintf("reports/%s.json", rec.ID)
	if err := s.storage.Upload(ctx, key, data, "application/json"); err != nil {
		s.logger.Error("Failed to export report", "error", err, "id", id)
		return "", utils.NewInternalError("Failed to export report")
	}

	metrics.ReportsExported.Inc()
	s.logger.Info("Report exported", "id", id, "key", key)

	return key, nil
}

// truncateContent keeps the first max characters of content. The cut is
// rune-aligned so a multi-byte character is never split.
func truncateContent(content string, max int) string {
	if max <= 0 {
		return content
	}

	runes := []rune(content)
	if len(runes) <= max {
		return content
	}

	return string(runes[:max])
}
