package models

import "time"

// AnimalGroup is the per-species part of a LivestockSnapshot.
type AnimalGroup struct {
	Count           int    `json:"count"`
	LastVaccination string `json:"lastVaccination"` // ISO date, empty when unknown
	HealthNote      string `json:"healthNote"`
}

// LivestockSnapshot is the farm data submitted for one audit.
type LivestockSnapshot struct {
	Pigs AnimalGroup `json:"pigs"`
	Hens AnimalGroup `json:"hens"`
}

// ChatRole identifies the author of a ChatMessage.
type ChatRole string

const (
	RoleUser    ChatRole = "user"
	RoleAdvisor ChatRole = "advisor"
)

// Valid reports whether r is a known chat role.
func (r ChatRole) Valid() bool {
	return r == RoleUser || r == RoleAdvisor
}

// ChatMessage is one entry of a conversation transcript.
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// HealthStatus is the overall farm rating of an AIReport.
type HealthStatus string

const (
	HealthExcellent HealthStatus = "Excellent"
	HealthGood      HealthStatus = "Good"
	HealthFair      HealthStatus = "Fair"
	HealthCritical  HealthStatus = "Critical"
)

// HealthStatuses lists the documented HealthStatus values in rating order.
var HealthStatuses = []HealthStatus{HealthExcellent, HealthGood, HealthFair, HealthCritical}

// Valid reports whether s is one of HealthStatuses.
func (s HealthStatus) Valid() bool {
	for _, v := range HealthStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// RiskLevel grades a single RiskInsight.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RiskLevels lists the documented RiskLevel values.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

// Valid reports whether l is one of RiskLevels.
func (l RiskLevel) Valid() bool {
	for _, v := range RiskLevels {
		if l == v {
			return true
		}
	}
	return false
}

// Score bounds of AIReport.OverallScore.
const (
	MinOverallScore = 0
	MaxOverallScore = 100
)

// RiskInsight is a categorized finding tied to the submitted numbers.
type RiskInsight struct {
	Category    string    `json:"category"`
	Observation string    `json:"observation"`
	RiskLevel   RiskLevel `json:"riskLevel"`
}

// AIReport is the structured result of one audit request.
type AIReport struct {
	Summary         string        `json:"summary"`
	HealthStatus    HealthStatus  `json:"healthStatus"`
	OverallScore    int           `json:"overallScore"`
	Alerts          []string      `json:"alerts"`
	Recommendations []string      `json:"recommendations"`
	DataInsights    []RiskInsight `json:"dataInsights"`
}

// ReportEnvelope wraps a generated report with the data needed to retrieve and export it later.
type ReportEnvelope struct {
	ID          string            `json:"id"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Snapshot    LivestockSnapshot `json:"snapshot"`
	Report      AIReport          `json:"report"`
}

// AskRequest is the body of POST /api/v1/ai/ask.
type AskRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id,omitempty"`
}

// AskResponse is returned by POST /api/v1/ai/ask.
type AskResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
	Model     string `json:"model"`
}
