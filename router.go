package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (cfg *apiConfig) routes(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/", handlerRoot)
	r.Get("/getanalytics", cfg.handlerGetAnalytics)

	r.Post("/ats_fit_analysis", cfg.handlerAtsFitAnalysis)
	r.Post("/jdgenerate", cfg.handlerGenerateJD)
	r.Post("/checkinclusivity", cfg.handlerCheckInclusivity)
	r.Post("/policyqa", cfg.handlerPolicyQA)
	r.Post("/onboardingqa", cfg.handlerOnboardingQA)
	r.Post("/interviewgenerate", cfg.handlerGenerateInterview)
	r.Post("/jobfit", cfg.handlerJobFit)
	r.Post("/summarizecandidate", cfg.handlerSummarizeCandidate)
	r.Post("/generateoffer", cfg.handlerGenerateOffer)
	r.Post("/generateperformance", cfg.handlerGeneratePerformance)

	r.Route("/screenings", func(r chi.Router) {
		r.Get("/", cfg.handlerListScreenings)
		r.Get("/{id}", cfg.handlerGetScreening)
		r.Get("/{id}/documents/{kind}", cfg.handlerScreeningDocument)
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
