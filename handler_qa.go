package main

import (
	"net/http"

	"github.com/muhammadolammi/hrassist/internal/analytics"
)

func (cfg *apiConfig) handlerPolicyQA(w http.ResponseWriter, r *http.Request) {
	if err := cfg.parseForm(w, r); err != nil {
		respondWithRequestError(w, err)
		return
	}
	v, err := formValues(r, "question")
	if err != nil {
		respondWithRequestError(w, err)
		return
	}
	doc, err := readUpload(r, "policy_doc")
	if err != nil {
		respondWithRequestError(w, err)
		return
	}

	policyText, _, err := cfg.documentText(r.Context(), doc, true)
	if err != nil {
		respondWithRequestError(w, err)
		return
	}

	// Asked questions count even when the model fails to answer.
	cfg.recordEvent(r.Context(), analytics.QuestionAsked, v["question"])
	reply, ok := cfg.complete(r.Context(), w, "policy_qa", policyPrompt(policyText, v["question"]))
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, textResult{Result: reply})
}

func (cfg *apiConfig) handlerOnboardingQA(w http.ResponseWriter, r *http.Request) {
	if err := cfg.parseForm(w, r); err != nil {
		respondWithRequestError(w, err)
		return
	}
	v, err := formValues(r, "question")
	if err != nil {
		respondWithRequestError(w, err)
		return
	}
	guide, err := readUpload(r, "onboarding_guide")
	if err != nil {
		respondWithRequestError(w, err)
		return
	}

	guideText, _, err := cfg.documentText(r.Context(), guide, true)
	if err != nil {
		respondWithRequestError(w, err)
		return
	}
	reply, ok := cfg.complete(r.Context(), w, "onboarding_qa", onboardingPrompt(guideText, v["question"]))
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, textResult{Result: reply})
}
