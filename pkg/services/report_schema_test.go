package services

import (
	"encoding/json"
	"errors"
	"testing"

	"biosecure-api/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	genai "google.golang.org/genai"
)

func TestReportResponseSchemaShape(t *testing.T) {
	s := ReportResponseSchema()

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.ElementsMatch(t,
		[]string{"summary", "healthStatus", "overallScore", "alerts", "recommendations", "dataInsights"},
		s.Required)
	assert.Equal(t, []string{"Excellent", "Good", "Fair", "Critical"}, s.Properties["healthStatus"].Enum)
	assert.Equal(t, genai.TypeInteger, s.Properties["overallScore"].Type)
	require.NotNil(t, s.Properties["overallScore"].Maximum)
	assert.Equal(t, 100.0, *s.Properties["overallScore"].Maximum)

	insight := s.Properties["dataInsights"].Items
	require.NotNil(t, insight)
	assert.ElementsMatch(t, []string{"category", "observation", "riskLevel"}, insight.Required)
	assert.Equal(t, []string{"Low", "Medium", "High"}, insight.Properties["riskLevel"].Enum)
}

func decodeGeneric(t *testing.T, text string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(text), &v))
	return v
}

func TestValidateShape(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "valid",
			body: `{"summary":"s","healthStatus":"Good","overallScore":80,"alerts":[],"recommendations":["r"],
				"dataInsights":[{"category":"c","observation":"o","riskLevel":"Low"}]}`,
		},
		{
			name:    "missing alerts",
			body:    `{"summary":"s","healthStatus":"Good","overallScore":80,"recommendations":[],"dataInsights":[]}`,
			wantErr: "alerts: missing required field",
		},
		{
			name:    "null recommendations",
			body:    `{"summary":"s","healthStatus":"Good","overallScore":80,"alerts":[],"recommendations":null,"dataInsights":[]}`,
			wantErr: "recommendations: expected array, got null",
		},
		{
			name:    "string score",
			body:    `{"summary":"s","healthStatus":"Good","overallScore":"80","alerts":[],"recommendations":[],"dataInsights":[]}`,
			wantErr: "overallScore: expected integer, got string",
		},
		{
			name:    "fractional score",
			body:    `{"summary":"s","healthStatus":"Good","overallScore":80.5,"alerts":[],"recommendations":[],"dataInsights":[]}`,
			wantErr: "overallScore: expected integer, got non-integer number",
		},
		{
			name:    "score wider than int32",
			body:    `{"summary":"s","healthStatus":"Good","overallScore":1e19,"alerts":[],"recommendations":[],"dataInsights":[]}`,
			wantErr: "overallScore: integer 1e+19 out of range",
		},
		{
			name:    "large negative score",
			body:    `{"summary":"s","healthStatus":"Good","overallScore":-3000000000,"alerts":[],"recommendations":[],"dataInsights":[]}`,
			wantErr: "overallScore: integer -3e+09 out of range",
		},
		{
			name: "insight without risk level",
			body: `{"summary":"s","healthStatus":"Good","overallScore":80,"alerts":[],"recommendations":[],
				"dataInsights":[{"category":"c","observation":"o"}]}`,
			wantErr: "dataInsights[0].riskLevel: missing required field",
		},
		{
			name:    "array at top level",
			body:    `[]`,
			wantErr: "response: expected object, got array",
		},
		{
			name:    "numeric alert",
			body:    `{"summary":"s","healthStatus":"Good","overallScore":80,"alerts":[1],"recommendations":[],"dataInsights":[]}`,
			wantErr: "alerts[0]: expected string, got number",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateShape(ReportResponseSchema(), decodeGeneric(t, tc.body), "")
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.wantErr, err.Error())
		})
	}
}

func TestValidateShapeAcceptsUnlistedEnumValues(t *testing.T) {
	body := `{"summary":"s","healthStatus":"Unknown","overallScore":180,"alerts":[],"recommendations":[],
		"dataInsights":[{"category":"c","observation":"o","riskLevel":"Severe"}]}`
	assert.NoError(t, validateShape(ReportResponseSchema(), decodeGeneric(t, body), ""))
}

func TestCheckReportInvariants(t *testing.T) {
	valid := func() *models.AIReport {
		return &models.AIReport{
			HealthStatus: models.HealthFair,
			OverallScore: 55,
			DataInsights: []models.RiskInsight{{Category: "Population", RiskLevel: models.RiskHigh}},
		}
	}

	assert.NoError(t, checkReportInvariants(valid()))

	testCases := []struct {
		name   string
		mutate func(r *models.AIReport)
		field  string
	}{
		{"score above range", func(r *models.AIReport) { r.OverallScore = 101 }, "overallScore"},
		{"score below range", func(r *models.AIReport) { r.OverallScore = -1 }, "overallScore"},
		{"unlisted status", func(r *models.AIReport) { r.HealthStatus = "Unknown" }, "healthStatus"},
		{"unlisted risk", func(r *models.AIReport) { r.DataInsights[0].RiskLevel = "low" }, "dataInsights[0].riskLevel"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := valid()
			tc.mutate(r)
			err := checkReportInvariants(r)

			var violation *SchemaViolationError
			require.True(t, errors.As(err, &violation))
			assert.Equal(t, tc.field, violation.Field)
		})
	}
}

func TestCheckReportInvariantsBoundaries(t *testing.T) {
	for _, score := range []int{0, 100} {
		r := &models.AIReport{HealthStatus: models.HealthCritical, OverallScore: score}
		assert.NoError(t, checkReportInvariants(r), "score %d", score)
	}
}
