package analytics

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type LogSuite struct {
	suite.Suite
	dir string
	log *Log
}

func (s *LogSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.log = NewLog(filepath.Join(s.dir, "analytics_data.json"), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLogSuite(t *testing.T) {
	suite.Run(t, new(LogSuite))
}

func (s *LogSuite) TestEmptyLog() {
	s.Run("missing file summarizes to zero values", func() {
		sum := s.log.Summarize()
		s.Equal(0, sum.TotalScreenings)
		s.Equal(0, sum.TotalDocumentsGenerated)
		s.Equal(0.0, sum.AverageFitScore)
		s.Empty(sum.AverageScoreByRole)
		s.Empty(sum.TopPolicyQuestions)
	})

	s.Run("summarize does not create the file", func() {
		s.log.Summarize()
		_, err := os.Stat(s.log.Path())
		s.True(errors.Is(err, os.ErrNotExist))
	})
}

func (s *LogSuite) TestScores() {
	s.Run("counts every recorded screening", func() {
		for i := 0; i < 7; i++ {
			s.Require().NoError(s.log.RecordScore("Engineer", 50+i))
		}
		s.Equal(7, s.log.Summarize().TotalScreenings)
	})
}

func (s *LogSuite) TestAverageFitScore() {
	s.Require().NoError(s.log.RecordScore("Engineer", 80))
	s.Require().NoError(s.log.RecordScore("Designer", 71))
	s.Require().NoError(s.log.RecordScore("Engineer", 60))

	// (80+71+60)/3 = 70.333...
	s.Equal(70.33, s.log.Summarize().AverageFitScore)
}

func (s *LogSuite) TestAverageByRole() {
	s.Require().NoError(s.log.RecordScore("Engineer", 80))
	s.Require().NoError(s.log.RecordScore("Engineer", 60))
	s.Require().NoError(s.log.RecordScore("Designer", 55))

	sum := s.log.Summarize()
	s.Equal(70.0, sum.AverageScoreByRole["Engineer"])
	s.Equal(55.0, sum.AverageScoreByRole["Designer"])
	s.Len(sum.AverageScoreByRole, 2)
}

func (s *LogSuite) TestUnknownRole() {
	s.Require().NoError(s.log.Record(ScoreRecorded, FitScore{Score: 42}))
	s.Require().NoError(s.log.Record(ScoreRecorded, FitScore{Role: "   ", Score: 58}))

	sum := s.log.Summarize()
	s.Equal(50.0, sum.AverageScoreByRole[UnknownRole])

	raw, err := os.ReadFile(s.log.Path())
	s.Require().NoError(err)
	var doc map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(raw, &doc))
	s.JSONEq(`[{"role": "", "score": 42}, {"role": "", "score": 58}]`, string(doc["fit_scores"]))
}

func (s *LogSuite) TestTopPolicyQuestions() {
	s.Run("orders by frequency", func() {
		for _, q := range []string{"A", "B", "A", "C", "A", "B"} {
			s.Require().NoError(s.log.RecordQuestion(q))
		}
		s.Equal(RankedQuestions{
			{Question: "A", Count: 3},
			{Question: "B", Count: 2},
			{Question: "C", Count: 1},
		}, s.log.Summarize().TopPolicyQuestions)
	})
}

func (s *LogSuite) TestTopPolicyQuestionsTies() {
	for _, q := range []string{"F", "E", "D", "C", "B", "A", "A", "F"} {
		s.Require().NoError(s.log.RecordQuestion(q))
	}
	s.Equal(RankedQuestions{
		{Question: "F", Count: 2},
		{Question: "A", Count: 2},
		{Question: "E", Count: 1},
		{Question: "D", Count: 1},
		{Question: "C", Count: 1},
	}, s.log.Summarize().TopPolicyQuestions)
}

func (s *LogSuite) TestDocumentsGenerated() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.log.RecordDocumentGenerated())
	}
	s.Equal(3, s.log.Summarize().TotalDocumentsGenerated)
}

func (s *LogSuite) TestCorruptFile() {
	s.Run("record discards corrupt state", func() {
		s.Require().NoError(s.log.RecordScore("Engineer", 90))
		s.Require().NoError(os.WriteFile(s.log.Path(), []byte(`{"fit_scores": [{"role": "Eng`), 0o644))

		s.Require().NoError(s.log.RecordQuestion("How many vacation days?"))

		sum := s.log.Summarize()
		s.Equal(0, sum.TotalScreenings)
		s.Equal(RankedQuestions{{Question: "How many vacation days?", Count: 1}}, sum.TopPolicyQuestions)
	})

	s.Run("summarize serves the zero summary", func() {
		s.Require().NoError(os.WriteFile(s.log.Path(), []byte("not json"), 0o644))
		s.Equal(emptySummary(), s.log.Summarize())
	})

	s.Run("entry without a score is corrupt", func() {
		s.Require().NoError(os.WriteFile(s.log.Path(),
			[]byte(`{"fit_scores": [{"role": "Engineer"}], "jds_generated": 2, "policy_questions": []}`), 0o644))
		s.Equal(emptySummary(), s.log.Summarize())
	})

	s.Run("out of range score is corrupt", func() {
		s.Require().NoError(os.WriteFile(s.log.Path(),
			[]byte(`{"fit_scores": [{"role": "Engineer", "score": 250}], "jds_generated": 0, "policy_questions": []}`), 0o644))
		s.Equal(emptySummary(), s.log.Summarize())
	})
}

func (s *LogSuite) TestValidation() {
	cases := []struct {
		name    string
		kind    EventKind
		payload any
	}{
		{"score above range", ScoreRecorded, FitScore{Role: "Engineer", Score: 101}},
		{"negative score", ScoreRecorded, FitScore{Role: "Engineer", Score: -1}},
		{"score payload missing", ScoreRecorded, nil},
		{"nil score pointer", ScoreRecorded, (*FitScore)(nil)},
		{"score payload wrong type", ScoreRecorded, map[string]any{"role": "Engineer"}},
		{"question not a string", QuestionAsked, 12},
		{"blank question", QuestionAsked, "  "},
		{"unknown kind", EventKind("interview_scheduled"), nil},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			err := s.log.Record(tc.kind, tc.payload)
			s.Require().Error(err)
			s.ErrorIs(err, ErrInvalidEvent)
		})
	}

	_, err := os.Stat(s.log.Path())
	s.True(errors.Is(err, os.ErrNotExist), "rejected events must not touch the file")
}

func (s *LogSuite) TestPointerPayload() {
	s.Require().NoError(s.log.Record(ScoreRecorded, &FitScore{Role: "Analyst", Score: 64}))
	s.Equal(64.0, s.log.Summarize().AverageScoreByRole["Analyst"])
}

func (s *LogSuite) TestWriteFailure() {
	blocker := filepath.Join(s.dir, "not-a-dir")
	s.Require().NoError(os.WriteFile(blocker, []byte("x"), 0o644))
	log := NewLog(filepath.Join(blocker, "analytics_data.json"), nil)

	err := log.RecordDocumentGenerated()
	s.Require().Error(err)
	s.NotErrorIs(err, ErrInvalidEvent)
}

func (s *LogSuite) TestDocumentLayout() {
	s.Require().NoError(s.log.RecordScore("Engineer", 80))
	s.Require().NoError(s.log.RecordDocumentGenerated())
	s.Require().NoError(s.log.RecordQuestion("Is there a dress code?"))

	raw, err := os.ReadFile(s.log.Path())
	s.Require().NoError(err)

	var doc map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(raw, &doc))
	s.Len(doc, 3)
	s.JSONEq(`[{"role": "Engineer", "score": 80}]`, string(doc["fit_scores"]))
	s.JSONEq(`1`, string(doc["jds_generated"]))
	s.JSONEq(`["Is there a dress code?"]`, string(doc["policy_questions"]))

	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	s.Len(entries, 1, "temp files must not be left behind")
}

func (s *LogSuite) TestConcurrentRecords() {
	const n = 64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			s.NoError(s.log.RecordScore("Engineer", i%101))
		}(i)
	}

	// readers run alongside the writers
	var rg sync.WaitGroup
	rg.Add(4)
	for i := 0; i < 4; i++ {
		go func() {
			defer rg.Done()
			s.log.Summarize()
		}()
	}

	wg.Wait()
	rg.Wait()
	s.Equal(n, s.log.Summarize().TotalScreenings)
}
