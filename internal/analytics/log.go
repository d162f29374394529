package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// document is the on-disk layout of the log.
type document struct {
	FitScores       []FitScore `json:"fit_scores"`
	JDsGenerated    int        `json:"jds_generated"`
	PolicyQuestions []string   `json:"policy_questions"`
}

func emptyDocument() document {
	return document{
		FitScores:       []FitScore{},
		PolicyQuestions: []string{},
	}
}

// Log owns the analytics file. All access to the file goes through one Log;
// Record holds the write lock for the whole read-modify-write cycle and
// Summarize holds the read lock while it reads the file.
type Log struct {
	path   string
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewLog(path string, logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{path: path, logger: logger}
}

func (l *Log) Path() string { return l.path }

// Record applies one event to the log. Validation failures wrap
// ErrInvalidEvent and leave the file untouched. An unreadable or corrupt file
// is replaced by the empty document before the event is applied; only a
// failure to write the new document is returned.
func (l *Log) Record(kind EventKind, payload any) error {
	value, err := normalize(kind, payload)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.load()
	if err != nil {
		l.logger.Warn("analytics log unreadable, starting from empty document",
			"path", l.path,
			"error", err,
		)
		doc = emptyDocument()
	}

	switch kind {
	case ScoreRecorded:
		doc.FitScores = append(doc.FitScores, value.(FitScore))
	case DocumentGenerated:
		doc.JDsGenerated++
	case QuestionAsked:
		doc.PolicyQuestions = append(doc.PolicyQuestions, value.(string))
	}

	if err := l.save(doc); err != nil {
		return fmt.Errorf("record %s: %w", kind, err)
	}
	return nil
}

func (l *Log) RecordScore(role string, score int) error {
	return l.Record(ScoreRecorded, FitScore{Role: role, Score: score})
}

func (l *Log) RecordDocumentGenerated() error {
	return l.Record(DocumentGenerated, nil)
}

func (l *Log) RecordQuestion(question string) error {
	return l.Record(QuestionAsked, question)
}

// Summarize computes the aggregate view. It never fails: a missing or corrupt
// file yields the zero Summary.
func (l *Log) Summarize() Summary {
	l.mu.RLock()
	doc, err := l.load()
	l.mu.RUnlock()

	if err != nil {
		l.logger.Warn("analytics log unreadable, serving empty summary",
			"path", l.path,
			"error", err,
		)
		return emptySummary()
	}
	return summarize(doc)
}

// load reads the document. A missing file is the empty document, not an error.
func (l *Log) load() (document, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return emptyDocument(), nil
	}
	if err != nil {
		return document{}, fmt.Errorf("read %s: %w", l.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("parse %s: %w", l.path, err)
	}
	for _, entry := range doc.FitScores {
		if err := entry.validate(); err != nil {
			return document{}, fmt.Errorf("parse %s: %w", l.path, err)
		}
	}
	if doc.JDsGenerated < 0 {
		return document{}, fmt.Errorf("parse %s: negative jds_generated %d", l.path, doc.JDsGenerated)
	}
	if doc.FitScores == nil {
		doc.FitScores = []FitScore{}
	}
	if doc.PolicyQuestions == nil {
		doc.PolicyQuestions = []string{}
	}
	return doc, nil
}

// save writes the document to a temp file next to the log and renames it into
// place, so readers only ever see a complete document.
func (l *Log) save(doc document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode analytics log: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename has succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		return fmt.Errorf("replace %s: %w", l.path, err)
	}
	return nil
}
