// Package analytics keeps the HR assistant's usage log: fit scores from
// resume screenings, a count of generated job descriptions and the policy
// questions people ask. The log is one JSON document on disk, owned by a
// single Log value that serializes every read-modify-write of it.
package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// UnknownRole labels fit scores recorded without a role.
const UnknownRole = "Unknown Role"

// ErrInvalidEvent is wrapped by every validation failure returned from Record.
var ErrInvalidEvent = errors.New("invalid analytics event")

type EventKind string

const (
	ScoreRecorded     EventKind = "score_recorded"
	DocumentGenerated EventKind = "document_generated"
	QuestionAsked     EventKind = "question_asked"
)

func (k EventKind) String() string { return string(k) }

// FitScore is one screening outcome. Role may be empty.
type FitScore struct {
	Role  string `json:"role"`
	Score int    `json:"score"`
}

// UnmarshalJSON rejects entries without a score so a hand-edited log with a
// broken entry is treated as corrupt rather than silently scoring zero.
func (f *FitScore) UnmarshalJSON(b []byte) error {
	var raw struct {
		Role  string `json:"role"`
		Score *int   `json:"score"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Score == nil {
		return errors.New("fit score entry has no score")
	}
	f.Role = raw.Role
	f.Score = *raw.Score
	return nil
}

func (f FitScore) validate() error {
	if f.Score < 0 || f.Score > 100 {
		return fmt.Errorf("%w: score %d outside 0-100", ErrInvalidEvent, f.Score)
	}
	return nil
}

// normalize checks that payload matches kind and returns it in the form the
// log stores.
func normalize(kind EventKind, payload any) (any, error) {
	switch kind {
	case ScoreRecorded:
		var fs FitScore
		switch p := payload.(type) {
		case FitScore:
			fs = p
		case *FitScore:
			if p == nil {
				return nil, fmt.Errorf("%w: %s needs a fit score payload", ErrInvalidEvent, kind)
			}
			fs = *p
		default:
			return nil, fmt.Errorf("%w: %s needs a fit score payload, got %T", ErrInvalidEvent, kind, payload)
		}
		fs.Role = strings.TrimSpace(fs.Role)
		if err := fs.validate(); err != nil {
			return nil, err
		}
		return fs, nil

	case DocumentGenerated:
		return nil, nil

	case QuestionAsked:
		q, ok := payload.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s needs a question string, got %T", ErrInvalidEvent, kind, payload)
		}
		q = strings.TrimSpace(q)
		if q == "" {
			return nil, fmt.Errorf("%w: empty question", ErrInvalidEvent)
		}
		return q, nil

	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidEvent, kind)
	}
}
