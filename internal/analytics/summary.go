package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// topQuestionLimit caps how many policy questions a Summary ranks.
const topQuestionLimit = 5

type Summary struct {
	TotalScreenings         int                `json:"total_screenings"`
	TotalDocumentsGenerated int                `json:"total_jds_generated"`
	AverageFitScore         float64            `json:"avg_fit_score"`
	AverageScoreByRole      map[string]float64 `json:"avg_score_by_role"`
	TopPolicyQuestions      RankedQuestions    `json:"common_policy_questions"`
}

type QuestionCount struct {
	Question string
	Count    int
}

// RankedQuestions is ordered by descending count. It encodes as a JSON object
// mapping question to count whose key order is the ranking order.
type RankedQuestions []QuestionCount

func (rq RankedQuestions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, qc := range rq {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(qc.Question)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", qc.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func emptySummary() Summary {
	return Summary{
		AverageScoreByRole: map[string]float64{},
		TopPolicyQuestions: RankedQuestions{},
	}
}

func summarize(doc document) Summary {
	s := emptySummary()
	s.TotalScreenings = len(doc.FitScores)
	s.TotalDocumentsGenerated = doc.JDsGenerated

	if s.TotalScreenings > 0 {
		type roleTotal struct {
			sum   int
			count int
		}
		var sum int
		byRole := make(map[string]*roleTotal)
		for _, fs := range doc.FitScores {
			sum += fs.Score
			role := fs.Role
			if role == "" {
				role = UnknownRole
			}
			rt, ok := byRole[role]
			if !ok {
				rt = &roleTotal{}
				byRole[role] = rt
			}
			rt.sum += fs.Score
			rt.count++
		}
		s.AverageFitScore = roundTo2(float64(sum) / float64(s.TotalScreenings))
		for role, rt := range byRole {
			s.AverageScoreByRole[role] = float64(rt.sum) / float64(rt.count)
		}
	}

	s.TopPolicyQuestions = rankQuestions(doc.PolicyQuestions, topQuestionLimit)
	return s
}

// rankQuestions counts distinct questions and returns the n most frequent.
// Equal counts keep the order in which each question first appeared.
func rankQuestions(questions []string, n int) RankedQuestions {
	index := make(map[string]int)
	ranked := RankedQuestions{}
	for _, q := range questions {
		if i, ok := index[q]; ok {
			ranked[i].Count++
			continue
		}
		index[q] = len(ranked)
		ranked = append(ranked, QuestionCount{Question: q, Count: 1})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
