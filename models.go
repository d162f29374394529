package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/hrassist/internal/analytics"
	"github.com/muhammadolammi/hrassist/internal/database"
	"github.com/muhammadolammi/hrassist/internal/metrics"
	"github.com/muhammadolammi/hrassist/internal/storage"
)

type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Screener interface {
	Screen(ctx context.Context, message string) (string, error)
}

type ScreeningStore interface {
	CreateScreening(ctx context.Context, arg database.CreateScreeningParams) (database.Screening, error)
	GetScreening(ctx context.Context, id uuid.UUID) (database.Screening, error)
	ListScreeningsByRole(ctx context.Context, arg database.ListScreeningsByRoleParams) ([]database.Screening, error)
}

type AnalyticsPublisher interface {
	PublishAnalyticsUpdate(kind analytics.EventKind) error
}

type apiConfig struct {
	LLM            Completer
	Screener       Screener
	Analytics      *analytics.Log
	Screenings     ScreeningStore // nil when DB_URL is unset
	Archiver       storage.Archiver
	Publisher      AnalyticsPublisher // nil when RABBITMQ_URL is unset
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
	MaxUploadBytes int64
}

// FitScore is the model's 0-100 score. Models return it as a number or as a
// string such as "85", "85%" or "85/100". Anything else fails to decode.
type FitScore int

func (f *FitScore) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case string:
		s := strings.TrimSpace(t)
		if i := strings.IndexByte(s, '/'); i >= 0 {
			s = strings.TrimSpace(s[:i])
		}
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("fit_score %q is not a number", t)
		}
		n = parsed
	default:
		return fmt.Errorf("fit_score has unexpected type %T", v)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fmt.Errorf("fit_score %v is not a finite number", n)
	}
	n = math.Round(n)
	if n < 0 || n > 100 {
		return fmt.Errorf("fit_score %v outside 0-100", n)
	}
	*f = FitScore(n)
	return nil
}

type FitAnalysis struct {
	FitScore       *FitScore `json:"fit_score,omitempty"`
	Summary        string    `json:"summary"`
	MatchingSkills []string  `json:"matching_skills"`
	MissingSkills  []string  `json:"missing_skills"`
}

type ContactInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type WorkExperience struct {
	JobTitle         string   `json:"job_title"`
	Company          string   `json:"company"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	Responsibilities []string `json:"responsibilities"`
}

type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationDate string `json:"graduation_date"`
}

type AtsParsing struct {
	ContactInfo         ContactInfo      `json:"contact_info"`
	ProfessionalSummary string           `json:"professional_summary"`
	WorkExperience      []WorkExperience `json:"work_experience"`
	Education           []Education      `json:"education"`
	Skills              []string         `json:"skills"`
}

type ScreeningResult struct {
	ID          *uuid.UUID  `json:"id,omitempty"`
	FitAnalysis FitAnalysis `json:"fit_analysis"`
	AtsParsing  AtsParsing  `json:"ats_parsing"`
}

// Role is the candidate's most recent job title, or "" when the model
// returned no work experience.
func (r ScreeningResult) Role() string {
	if len(r.AtsParsing.WorkExperience) == 0 {
		return ""
	}
	return strings.TrimSpace(r.AtsParsing.WorkExperience[0].JobTitle)
}

type Screening struct {
	ID        uuid.UUID       `json:"id"`
	Role      string          `json:"role"`
	FitScore  *int            `json:"fit_score"`
	Result    json.RawMessage `json:"result"`
	ResumeKey string          `json:"resume_key,omitempty"`
	JDKey     string          `json:"jd_key,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func databaseScreeningToScreening(s database.Screening) Screening {
	out := Screening{
		ID:        s.ID,
		Role:      s.Role,
		Result:    s.Result,
		ResumeKey: s.ResumeKey.String,
		JDKey:     s.JdKey.String,
		CreatedAt: s.CreatedAt,
	}
	if s.FitScore.Valid {
		score := int(s.FitScore.Int32)
		out.FitScore = &score
	}
	return out
}

type OfferDetails struct {
	CandidateName  string   `json:"candidate_name"`
	JobTitle       string   `json:"job_title"`
	StartDate      string   `json:"start_date"`
	Salary         *float64 `json:"salary"`
	ManagerName    string   `json:"manager_name"`
	ExpirationDate string   `json:"expiration_date"`
}

// missingFields lists required fields that are empty.
func (d OfferDetails) missingFields() []string {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check("candidate_name", d.CandidateName)
	check("job_title", d.JobTitle)
	check("start_date", d.StartDate)
	if d.Salary == nil {
		missing = append(missing, "salary")
	}
	check("manager_name", d.ManagerName)
	check("expiration_date", d.ExpirationDate)
	return missing
}
