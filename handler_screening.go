package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/muhammadolammi/hrassist/internal/analytics"
	"github.com/muhammadolammi/hrassist/internal/database"
	"github.com/muhammadolammi/hrassist/internal/retry"
	"golang.org/x/sync/errgroup"
)

const (
	defaultScreeningLimit = 20
	maxScreeningLimit     = 100
)

// parseScreening pulls the JSON object out of a screening reply.
func parseScreening(reply string) (ScreeningResult, error) {
	raw, err := ExtractJSONObject(reply)
	if err != nil {
		return ScreeningResult{}, err
	}
	var result ScreeningResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return ScreeningResult{}, err
	}
	return result, nil
}

type screeningDocs struct {
	resumeText, jdText string
	resumeKey, jdKey   string
}

func (cfg *apiConfig) screeningDocuments(ctx context.Context, resume, jd upload) (screeningDocs, error) {
	var docs screeningDocs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docs.resumeText, docs.resumeKey, err = cfg.documentText(gctx, resume, false)
		return err
	})
	g.Go(func() error {
		var err error
		docs.jdText, docs.jdKey, err = cfg.documentText(gctx, jd, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return screeningDocs{}, err
	}
	return docs, nil
}

func (cfg *apiConfig) handlerAtsFitAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := cfg.parseForm(w, r); err != nil {
		respondWithRequestError(w, err)
		return
	}
	resume, err := readUpload(r, "resume")
	if err != nil {
		respondWithRequestError(w, err)
		return
	}
	jd, err := readUpload(r, "jd")
	if err != nil {
		respondWithRequestError(w, err)
		return
	}

	docs, err := cfg.screeningDocuments(ctx, resume, jd)
	if err != nil {
		respondWithRequestError(w, err)
		return
	}

	start := time.Now()
	reply, err := cfg.Screener.Screen(ctx, screeningMessage(docs.resumeText, docs.jdText))
	cfg.Metrics.ObserveLLM("ats_fit_analysis", start, err)
	if err != nil {
		cfg.Logger.ErrorContext(ctx, "screening failed", "error", err)
		respondWithError(w, http.StatusBadGateway, fmt.Sprintf("An unexpected error occurred during analysis: %v", err))
		return
	}

	result, err := parseScreening(reply)
	if err != nil {
		cfg.Logger.WarnContext(ctx, "unparseable screening reply", "error", err)
		respondWithError(w, http.StatusBadGateway,
			fmt.Sprintf("Failed to parse AI response. Error: %v. Raw response: '%s...'", err, truncate(reply, 200)))
		return
	}

	if result.FitAnalysis.FitScore != nil {
		cfg.recordEvent(ctx, analytics.ScoreRecorded, analytics.FitScore{
			Role:  result.Role(),
			Score: int(*result.FitAnalysis.FitScore),
		})
	}

	if cfg.Screenings != nil {
		if id, err := cfg.saveScreening(ctx, result, docs); err != nil {
			cfg.Logger.ErrorContext(ctx, "failed to save screening", "error", err)
		} else {
			result.ID = &id
		}
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (cfg *apiConfig) saveScreening(ctx context.Context, result ScreeningResult, docs screeningDocs) (uuid.UUID, error) {
	body, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal screening: %w", err)
	}
	params := database.CreateScreeningParams{
		ID:        uuid.New(),
		Role:      result.Role(),
		Result:    body,
		ResumeKey: sql.NullString{String: docs.resumeKey, Valid: docs.resumeKey != ""},
		JdKey:     sql.NullString{String: docs.jdKey, Valid: docs.jdKey != ""},
	}
	if fs := result.FitAnalysis.FitScore; fs != nil {
		params.FitScore = sql.NullInt32{Int32: int32(*fs), Valid: true}
	}

	saved, err := retry.Do(ctx, 3, func() (database.Screening, error) {
		return cfg.Screenings.CreateScreening(ctx, params)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return saved.ID, nil
}

// screeningByID answers 404 itself when the store is off, the id is bad or
// the row is missing.
func (cfg *apiConfig) screeningByID(w http.ResponseWriter, r *http.Request) (database.Screening, bool) {
	if cfg.Screenings == nil {
		respondWithError(w, http.StatusNotFound, "screening history is not enabled")
		return database.Screening{}, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "screening not found")
		return database.Screening{}, false
	}
	s, err := cfg.Screenings.GetScreening(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		respondWithError(w, http.StatusNotFound, "screening not found")
		return database.Screening{}, false
	}
	if err != nil {
		cfg.Logger.ErrorContext(r.Context(), "failed to load screening", "id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "could not load screening")
		return database.Screening{}, false
	}
	return s, true
}

func (cfg *apiConfig) handlerGetScreening(w http.ResponseWriter, r *http.Request) {
	s, ok := cfg.screeningByID(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, databaseScreeningToScreening(s))
}

func (cfg *apiConfig) handlerListScreenings(w http.ResponseWriter, r *http.Request) {
	if cfg.Screenings == nil {
		respondWithError(w, http.StatusNotFound, "screening history is not enabled")
		return
	}
	role := strings.TrimSpace(r.URL.Query().Get("role"))
	if role == "" {
		respondWithError(w, http.StatusBadRequest, "role query parameter is required")
		return
	}
	limit := defaultScreeningLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxScreeningLimit)
	}

	rows, err := cfg.Screenings.ListScreeningsByRole(r.Context(), database.ListScreeningsByRoleParams{
		Role:  role,
		Limit: int32(limit),
	})
	if err != nil {
		cfg.Logger.ErrorContext(r.Context(), "failed to list screenings", "role", role, "error", err)
		respondWithError(w, http.StatusInternalServerError, "could not list screenings")
		return
	}
	out := make([]Screening, 0, len(rows))
	for _, row := range rows {
		out = append(out, databaseScreeningToScreening(row))
	}
	respondWithJSON(w, http.StatusOK, out)
}

func (cfg *apiConfig) handlerScreeningDocument(w http.ResponseWriter, r *http.Request) {
	s, ok := cfg.screeningByID(w, r)
	if !ok {
		return
	}
	var key string
	switch chi.URLParam(r, "kind") {
	case "resume":
		key = s.ResumeKey.String
	case "jd":
		key = s.JdKey.String
	default:
		respondWithError(w, http.StatusBadRequest, "document kind must be resume or jd")
		return
	}
	if key == "" || cfg.Archiver == nil {
		respondWithError(w, http.StatusNotFound, "document was not archived")
		return
	}

	data, err := cfg.Archiver.Download(r.Context(), key)
	if err != nil {
		cfg.Logger.ErrorContext(r.Context(), "failed to download document", "key", key, "error", err)
		respondWithError(w, http.StatusNotFound, "document not available")
		return
	}
	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
