package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/muhammadolammi/hrassist/internal/analytics"
)

// complete runs one model call for task and writes the error response itself
// on failure.
func (cfg *apiConfig) complete(ctx context.Context, w http.ResponseWriter, task, prompt string) (string, bool) {
	start := time.Now()
	reply, err := cfg.LLM.Complete(ctx, prompt)
	cfg.Metrics.ObserveLLM(task, start, err)
	if err != nil {
		cfg.Logger.ErrorContext(ctx, "model call failed", "task", task, "error", err)
		respondWithError(w, http.StatusBadGateway, fmt.Sprintf("An error occurred: %v", err))
		return "", false
	}
	return reply, true
}

func (cfg *apiConfig) handlerGenerateJD(w http.ResponseWriter, r *http.Request) {
	if err := cfg.parseForm(w, r); err != nil {
		respondWithRequestError(w, err)
		return
	}
	v, err := formValues(r, "role", "level", "skills", "tone")
	if err != nil {
		respondWithRequestError(w, err)
		return
	}

	reply, ok := cfg.complete(r.Context(), w, "jd_generate", jdPrompt(v["role"], v["level"], v["skills"], v["tone"]))
	if !ok {
		return
	}
	cfg.recordEvent(r.Context(), analytics.DocumentGenerated, nil)
	respondWithJSON(w, http.StatusOK, textResult{Result: reply})
}

func (cfg *apiConfig) handlerCheckInclusivity(w http.ResponseWriter, r *http.Request) {
	if err := cfg.parseForm(w, r); err != nil {
		respondWithRequestError(w, err)
		return
	}
	v, err := formValues(r, "jd_text")
	if err != nil {
		respondWithRequestError(w, err)
		return
	}

	reply, ok := cfg.complete(r.Context(), w, "check_inclusivity", inclusivityPrompt(v["jd_text"]))
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, textResult{Result: reply})
}

func (cfg *apiConfig) handlerGenerateInterview(w http.ResponseWriter, r *http.Request) {
	if err := cfg.parseForm(w, r); err != nil {
		respondWithRequestError(w, err)
		return
	}
	jd, err := readUpload(r, "jd")
	if err != nil {
		respondWithRequestError(w, err)
		return
	}
	jdText, _, err := cfg.documentText(r.Context(), jd, false)
	if err != nil {
		respondWithRequestError(w, err)
		return
	}

	reply, ok := cfg.complete(r.Context(), w, "interview_generate", interviewPrompt(jdText))
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, textResult{Result: reply})
}

func (cfg *apiConfig) handlerJobFit(w http.ResponseWriter, r *http.Request) {
	if err := cfg.parseForm(w, r); err != nil {
		respondWithRequestError(w, err)
		return
	}
	v, err := formValues(r, "candidate_profile")
	if err != nil {
		respondWithRequestError(w, err)
		return
	}
	jd, err := readUpload(r, "jd")
	if err != nil {
		respondWithRequestError(w, err)
		return
	}
	jdText, _, err := cfg.documentText(r.Context(), jd, false)
	if err != nil {
		respondWithRequestError(w, err)
		return
	}

	reply, ok := cfg.complete(r.Context(), w, "job_fit", jobFitPrompt(v["candidate_profile"], jdText))
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, textResult{Result: reply})
}

func (cfg *apiConfig) handlerSummarizeCandidate(w http.ResponseWriter, r *http.Request) {
	if err := cfg.parseForm(w, r); err != nil {
		respondWithRequestError(w, err)
		return
	}
	resume, err := readUpload(r, "resume")
	if err != nil {
		respondWithRequestError(w, err)
		return
	}
	resumeText, _, err := cfg.documentText(r.Context(), resume, false)
	if err != nil {
		respondWithRequestError(w, err)
		return
	}

	reply, ok := cfg.complete(r.Context(), w, "summarize_candidate", candidateSummaryPrompt(resumeText))
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, textResult{Result: reply})
}

func (cfg *apiConfig) handlerGenerateOffer(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadBytes)
	var details OfferDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid offer details: %v", err))
		return
	}
	if missing := details.missingFields(); len(missing) > 0 {
		respondWithError(w, http.StatusBadRequest, "missing fields: "+strings.Join(missing, ", "))
		return
	}
	if *details.Salary < 0 {
		respondWithError(w, http.StatusBadRequest, "salary must not be negative")
		return
	}

	reply, ok := cfg.complete(r.Context(), w, "generate_offer", offerLetterPrompt(details))
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, textResult{Result: reply})
}

func (cfg *apiConfig) handlerGeneratePerformance(w http.ResponseWriter, r *http.Request) {
	if err := cfg.parseForm(w, r); err != nil {
		respondWithRequestError(w, err)
		return
	}
	v, err := formValues(r, "points", "employee_name", "review_period")
	if err != nil {
		respondWithRequestError(w, err)
		return
	}

	reply, ok := cfg.complete(r.Context(), w, "generate_performance",
		performanceReviewPrompt(v["points"], v["employee_name"], v["review_period"]))
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, textResult{Result: reply})
}
