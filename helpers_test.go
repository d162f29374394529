package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJson(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding space", "  \n```json\n{}\n```  ", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJson(tt.in))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	got, err := ExtractJSONObject("Here you go:\n```json\n{\"a\": {\"b\": 1}}\n```\nThanks!")
	require.NoError(t, err)
	assert.Equal(t, `{"a": {"b": 1}}`, got)

	got, err = ExtractJSONObject(`Sure! {"x": 1} and more text`)
	require.NoError(t, err)
	assert.Equal(t, `{"x": 1}`, got)

	_, err = ExtractJSONObject("I could not parse the resume.")
	assert.ErrorIs(t, err, errNoJSON)

	_, err = ExtractJSONObject("} backwards {")
	assert.ErrorIs(t, err, errNoJSON)
}

func TestFitScoreUnmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    FitScore
		wantErr bool
	}{
		{`85`, 85, false},
		{`84.6`, 85, false},
		{`"72"`, 72, false},
		{`"72%"`, 72, false},
		{`"90/100"`, 90, false},
		{`"high"`, 0, true},
		{`250`, 0, true},
		{`-1`, 0, true},
		{`1e300`, 0, true},
		{`"1e30"`, 0, true},
		{`"NaN"`, 0, true},
		{`"Inf"`, 0, true},
		{`"100.4"`, 100, false},
		{`true`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got FitScore
			err := json.Unmarshal([]byte(tt.in), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseScreening(t *testing.T) {
	reply := "```json\n" + `{
  "fit_analysis": {"fit_score": "78", "summary": "Solid", "matching_skills": ["Go"], "missing_skills": ["K8s"]},
  "ats_parsing": {"work_experience": [{"job_title": " Backend Engineer ", "company": "Acme"}], "skills": ["Go"]}
}` + "\n```"

	result, err := parseScreening(reply)
	require.NoError(t, err)
	require.NotNil(t, result.FitAnalysis.FitScore)
	assert.Equal(t, FitScore(78), *result.FitAnalysis.FitScore)
	assert.Equal(t, "Backend Engineer", result.Role())
	assert.Equal(t, []string{"K8s"}, result.FitAnalysis.MissingSkills)

	t.Run("no work experience", func(t *testing.T) {
		result, err := parseScreening(`{"fit_analysis": {"fit_score": 50}}`)
		require.NoError(t, err)
		assert.Equal(t, "", result.Role())
	})

	t.Run("invalid score", func(t *testing.T) {
		for _, score := range []string{`"NaN"`, `1e300`, `250`} {
			_, err := parseScreening(`{"fit_analysis": {"fit_score": ` + score + `}}`)
			assert.Error(t, err, score)
		}
	})

	t.Run("missing score", func(t *testing.T) {
		result, err := parseScreening(`{"fit_analysis": {"summary": "n/a"}}`)
		require.NoError(t, err)
		assert.Nil(t, result.FitAnalysis.FitScore)
	})
}

func TestOfferDetailsMissingFields(t *testing.T) {
	salary := 85000.0
	full := OfferDetails{
		CandidateName:  "Ada",
		JobTitle:       "Engineer",
		StartDate:      "2025-02-01",
		Salary:         &salary,
		ManagerName:    "Grace",
		ExpirationDate: "2025-01-15",
	}
	assert.Empty(t, full.missingFields())

	partial := full
	partial.Salary = nil
	partial.ManagerName = "  "
	assert.Equal(t, []string{"salary", "manager_name"}, partial.missingFields())
}

func TestFormatSalary(t *testing.T) {
	assert.Equal(t, "85,000", formatSalary(85000))
	assert.Equal(t, "1,250,000", formatSalary(1250000))
	assert.Equal(t, "950", formatSalary(950))
	assert.Equal(t, "85,000.50", formatSalary(85000.5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "éé", truncate("ééé", 2))
}
