package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter 注册全部路由
func NewRouter(h *ClinicalHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Ok(map[string]string{"status": "ok"}))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/vitals/evaluate", h.EvaluateVitals)
		r.Post("/labs/interpret", h.InterpretLab)
		r.Post("/labs/analyze/export", h.ExportLabAnalysis)

		r.Route("/patients/{patientID}", func(r chi.Router) {
			r.Post("/vitals", h.SubmitReading)
			r.Post("/medications/check", h.CheckMedication)
			r.Post("/labs/analyze", h.AnalyzeLabReport)
			r.Get("/alerts", h.ListAlerts)
		})

		r.Post("/alerts/{alertID}/acknowledge", h.AcknowledgeAlert)
	})

	return r
}

// requestLogger 使用 zap 记录每个请求
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
