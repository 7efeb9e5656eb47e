package services

import (
	"strings"
	"testing"
	"time"

	"biosecure-api/pkg/models"

	"github.com/stretchr/testify/assert"
)

var auditDay = time.Date(2024, time.July, 1, 9, 30, 0, 0, time.UTC)

func scenarioSnapshot() models.LivestockSnapshot {
	return models.LivestockSnapshot{
		Pigs: models.AnimalGroup{Count: 450},
		Hens: models.AnimalGroup{Count: 1200, LastVaccination: "2023-01-01", HealthNote: "lethargy observed"},
	}
}

func TestBuildAuditPromptIsDeterministic(t *testing.T) {
	snap := scenarioSnapshot()
	assert.Equal(t, BuildAuditPrompt(snap, auditDay), BuildAuditPrompt(snap, auditDay))
}

func TestBuildAuditPromptScenario(t *testing.T) {
	prompt := BuildAuditPrompt(scenarioSnapshot(), auditDay)

	for _, want := range []string{"450", "1200", "2023-01-01", "lethargy observed", "Today is 7/1/2024."} {
		assert.Contains(t, prompt, want)
	}
	assert.Contains(t, prompt, "PIG DATA: Count: 450, Last Vax: None, Notes: None")
	assert.Equal(t, 2, strings.Count(prompt, "None"))
}

func TestBuildAuditPromptRendersNonePerGroup(t *testing.T) {
	testCases := []struct {
		name     string
		snapshot models.LivestockSnapshot
		pigLine  string
		henLine  string
	}{
		{
			name: "hens missing vaccination only",
			snapshot: models.LivestockSnapshot{
				Pigs: models.AnimalGroup{Count: 10, LastVaccination: "2024-05-01", HealthNote: "fine"},
				Hens: models.AnimalGroup{Count: 20, HealthNote: "coughing"},
			},
			pigLine: "PIG DATA: Count: 10, Last Vax: 2024-05-01, Notes: fine",
			henLine: "HEN DATA: Count: 20, Last Vax: None, Notes: coughing",
		},
		{
			name: "pigs missing note only",
			snapshot: models.LivestockSnapshot{
				Pigs: models.AnimalGroup{Count: 0, LastVaccination: "2024-01-15"},
				Hens: models.AnimalGroup{Count: 5, LastVaccination: "2024-02-01", HealthNote: "ok"},
			},
			pigLine: "PIG DATA: Count: 0, Last Vax: 2024-01-15, Notes: None",
			henLine: "HEN DATA: Count: 5, Last Vax: 2024-02-01, Notes: ok",
		},
		{
			name: "everything missing",
			snapshot: models.LivestockSnapshot{
				Pigs: models.AnimalGroup{Count: -3},
				Hens: models.AnimalGroup{Count: 7, LastVaccination: "  "},
			},
			pigLine: "PIG DATA: Count: -3, Last Vax: None, Notes: None",
			henLine: "HEN DATA: Count: 7, Last Vax: None, Notes: None",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			prompt := BuildAuditPrompt(tc.snapshot, auditDay)
			assert.Contains(t, prompt, tc.pigLine)
			assert.Contains(t, prompt, tc.henLine)
		})
	}
}

func TestBuildAuditPromptIncludesInstructions(t *testing.T) {
	prompt := BuildAuditPrompt(scenarioSnapshot(), auditDay)

	assert.Contains(t, prompt, "If older than 6 months, flag it.")
	assert.Contains(t, prompt, "Evaluate the health notes for disease red flags.")
	assert.Contains(t, prompt, "Assess density risks based on the animal counts.")
}

func TestBuildAuditPromptDependsOnDate(t *testing.T) {
	snap := scenarioSnapshot()
	assert.NotEqual(t, BuildAuditPrompt(snap, auditDay), BuildAuditPrompt(snap, auditDay.AddDate(0, 0, 1)))
}

func TestBuildAdvisoryPromptAddsNoFarmContext(t *testing.T) {
	q := "How often should footbaths be refreshed?"
	prompt := BuildAdvisoryPrompt(q)

	assert.Equal(t, q, prompt)
	assert.NotContains(t, prompt, "PIG DATA")
}
