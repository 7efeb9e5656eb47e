package models

// GuidelineCategory groups guidelines by species.
type GuidelineCategory string

const (
	CategoryPig     GuidelineCategory = "Pig"
	CategoryPoultry GuidelineCategory = "Poultry"
	CategoryGeneral GuidelineCategory = "General"
)

// Guideline is a single biosecurity best practice.
type Guideline struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Category GuidelineCategory `json:"category"`
	Content  string            `json:"content"`
	Icon     string            `json:"icon"`
}

// ChecklistItem is a daily biosecurity task.
type ChecklistItem struct {
	ID        string `json:"id"`
	Category  string `json:"category"` // Entry, Sanitation, Vaccination or Monitoring
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

// ChecklistProgress summarizes how much of the daily checklist is done.
type ChecklistProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}
