package main

import (
	"net/http"
)

func handlerRoot(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the AI-Powered HR Assistant API",
	})
}

// handlerGetAnalytics always answers 200; an unreadable log summarizes as empty.
func (cfg *apiConfig) handlerGetAnalytics(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, cfg.Analytics.Summarize())
}
