package services

import (
	"errors"
	"math"
	"strings"
	"sync"

	"biosecure-api/pkg/models"
)

// ErrChecklistItemNotFound はチェックリストに存在しないIDが指定された場合に返されます。
var ErrChecklistItemNotFound = errors.New("checklist item not found")

// GuidelineService はガイドライン一覧と日次チェックリストを提供します。
// ガイドラインは固定、チェックリストの完了状態はプロセス内で共有されます。
type GuidelineService struct {
	guidelines []models.Guideline

	mu        sync.RWMutex
	checklist []models.ChecklistItem
}

// NewGuidelineService は組み込みのカタログでGuidelineServiceを生成します。
func NewGuidelineService() *GuidelineService {
	return &GuidelineService{
		guidelines: []models.Guideline{
			{
				ID:       "1",
				Title:    "Entrance Protocols",
				Category: models.CategoryGeneral,
				Content:  "Ensure all visitors sign the logbook and use designated footbaths before entering any production area.",
				Icon:     "🚪",
			},
			{
				ID:       "2",
				Title:    "Swine Fever Prevention",
				Category: models.CategoryPig,
				Content:  `Implement strict "All-in/All-out" protocols and regularly disinfect farrowing pens with approved agents.`,
				Icon:     "🐖",
			},
			{
				ID:       "3",
				Title:    "Avian Flu Awareness",
				Category: models.CategoryPoultry,
				Content:  "Maintain netting to prevent contact with wild birds and monitor water sources for contamination.",
				Icon:     "🐔",
			},
			{
				ID:       "4",
				Title:    "Waste Management",
				Category: models.CategoryGeneral,
				Content:  "Dispose of carcasses promptly and ensure manure is composted at temperatures that kill pathogens.",
				Icon:     "♻️",
			},
		},
		checklist: []models.ChecklistItem{
			{ID: "c1", Category: "Entry", Task: "Visitor logbook signed and verified", Completed: false},
			{ID: "c2", Category: "Sanitation", Task: "Footbaths refreshed with active disinfectant", Completed: true},
			{ID: "c3", Category: "Monitoring", Task: "Morning temperature checks completed", Completed: true},
			{ID: "c4", Category: "Vaccination", Task: "Review upcoming scheduled vaccinations", Completed: false},
			{ID: "c5", Category: "Sanitation", Task: "Loading bay pressure washed", Completed: false},
		},
	}
}

// Search はタイトルまたは本文にqueryを含み（大文字小文字は区別しない）、カテゴリが一致するガイドラインを返します。
// categoryが空または"All"の場合はすべてのカテゴリが対象です。
func (s *GuidelineService) Search(query, category string) []models.Guideline {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Guideline, 0, len(s.guidelines))
	for _, g := range s.guidelines {
		matchesSearch := strings.Contains(strings.ToLower(g.Title), q) ||
			strings.Contains(strings.ToLower(g.Content), q)
		matchesTab := category == "" || strings.EqualFold(category, "All") ||
			strings.EqualFold(category, string(g.Category))
		if matchesSearch && matchesTab {
			out = append(out, g)
		}
	}
	return out
}

// Checklist はチェックリストの現在の状態をコピーして返します。
func (s *GuidelineService) Checklist() []models.ChecklistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ChecklistItem, len(s.checklist))
	copy(out, s.checklist)
	return out
}

// ToggleChecklistItem は指定したタスクの完了状態を反転し、更新後の項目を返します。
func (s *GuidelineService) ToggleChecklistItem(id string) (models.ChecklistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.checklist {
		if s.checklist[i].ID == id {
			s.checklist[i].Completed = !s.checklist[i].Completed
			return s.checklist[i], nil
		}
	}
	return models.ChecklistItem{}, ErrChecklistItemNotFound
}

// ChecklistProgress は本日の進捗（完了数と四捨五入したパーセント）を返します。
func (s *GuidelineService) ChecklistProgress() models.ChecklistProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return checklistProgress(s.checklist)
}

func checklistProgress(items []models.ChecklistItem) models.ChecklistProgress {
	p := models.ChecklistProgress{Total: len(items)}
	for _, item := range items {
		if item.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	}
	return p
}
