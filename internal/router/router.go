package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xailabs/insightflow/internal/handlers"
	"github.com/xailabs/insightflow/internal/metrics"
	"github.com/xailabs/insightflow/internal/middleware"
	"github.com/xailabs/insightflow/internal/services"
	"github.com/xailabs/insightflow/internal/utils"
)

func NewRouter(service services.AnalysisService, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	analysisHandler := handlers.NewAnalysisHandler(service, logger)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	// Analysis endpoints
	api.HandleFunc("/analyze", analysisHandler.Analyze).Methods(http.MethodPost)
	api.HandleFunc("/analyses", analysisHandler.ListAnalyses).Methods(http.MethodGet)
	api.HandleFunc("/analyses/{id}", analysisHandler.GetAnalysis).Methods(http.MethodGet)
	api.HandleFunc("/analyses/{id}/export", analysisHandler.ExportAnalysis).Methods(http.MethodPost)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return r
}
