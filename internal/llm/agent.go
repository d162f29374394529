package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/muhammadolammi/hrassist/internal/retry"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

type ScreenerConfig struct {
	APIKey      string
	Model       string
	Name        string
	Description string
	Instruction string
	Attempts    int
}

// Screener runs resume screenings through an ADK agent. Every call gets its
// own throwaway session.
type Screener struct {
	runner   *runner.Runner
	sessions session.Service
	appName  string
	attempts int
	logger   *slog.Logger
}

func NewScreener(ctx context.Context, cfg ScreenerConfig, logger *slog.Logger) (*Screener, error) {
	gm, err := gemini.NewModel(ctx, cfg.Model, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}
	return newScreener(gm, cfg, logger)
}

func newScreener(lm model.LLM, cfg ScreenerConfig, logger *slog.Logger) (*Screener, error) {
	screeningAgent, err := llmagent.New(llmagent.Config{
		Name:        cfg.Name,
		Model:       lm,
		Description: cfg.Description,
		Instruction: cfg.Instruction,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        screeningAgent.Name(),
		Agent:          screeningAgent,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 2
	}
	return &Screener{
		runner:   r,
		sessions: sessions,
		appName:  screeningAgent.Name(),
		attempts: attempts,
		logger:   logger,
	}, nil
}

// Screen sends message to the agent and returns its final response text.
// Each attempt runs in a fresh session so a retry never sees the history of
// a failed one.
func (s *Screener) Screen(ctx context.Context, message string) (string, error) {
	return retry.Do(ctx, s.attempts, func() (string, error) {
		return s.screenOnce(ctx, message)
	})
}

func (s *Screener) screenOnce(ctx context.Context, message string) (string, error) {
	created, err := s.sessions.Create(ctx, &session.CreateRequest{
		AppName:   s.appName,
		UserID:    "hrassist",
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	sess := created.Session
	defer func() {
		err := s.sessions.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
			AppName:   sess.AppName(),
			UserID:    sess.UserID(),
			SessionID: sess.ID(),
		})
		if err != nil {
			s.logger.Warn("failed to delete agent session", "session_id", sess.ID(), "error", err)
		}
	}()

	stream := s.runner.Run(ctx, sess.UserID(), sess.ID(), &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: message},
		},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", err
		}
		if event != nil && event.IsFinalResponse() && event.Content != nil && len(event.Content.Parts) > 0 {
			output = event.Content.Parts[0].Text
		}
	}
	if output == "" {
		return "", ErrEmptyResponse
	}
	return output, nil
}
