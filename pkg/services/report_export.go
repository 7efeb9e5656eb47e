package services

import (
	"fmt"
	"time"

	"biosecure-api/pkg/models"

	"github.com/xuri/excelize/v2"
)

// エクスポートするワークブックのシート名。
const (
	SheetSummary         = "Summary"
	SheetAlerts          = "Alerts"
	SheetRecommendations = "Recommendations"
	SheetInsights        = "Insights"
)

// ExportReportXLSX はレポートをExcelワークブックに変換します。返されたファイルは呼び出し側でCloseしてください。
func ExportReportXLSX(env models.ReportEnvelope) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	r := env.Report
	summary := [][]interface{}{
		{"Report ID", env.ID},
		{"Generated At", env.GeneratedAt.UTC().Format(time.RFC3339)},
		{"Health Status", string(r.HealthStatus)},
		{"Overall Score", r.OverallScore},
		{"Summary", r.Summary},
		{},
		{"Group", "Count", "Last Vaccination", "Health Note"},
		{"Pigs", env.Snapshot.Pigs.Count, orNone(env.Snapshot.Pigs.LastVaccination), orNone(env.Snapshot.Pigs.HealthNote)},
		{"Hens", env.Snapshot.Hens.Count, orNone(env.Snapshot.Hens.LastVaccination), orNone(env.Snapshot.Hens.HealthNote)},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		f.Close()
		return nil, err
	}

	alerts := [][]interface{}{{"#", "Alert"}}
	for i, a := range r.Alerts {
		alerts = append(alerts, []interface{}{i + 1, a})
	}
	recs := [][]interface{}{{"#", "Recommendation"}}
	for i, rec := range r.Recommendations {
		recs = append(recs, []interface{}{i + 1, rec})
	}
	insights := [][]interface{}{{"Category", "Observation", "Risk Level"}}
	for _, in := range r.DataInsights {
		insights = append(insights, []interface{}{in.Category, in.Observation, string(in.RiskLevel)})
	}

	for _, sheet := range []struct {
		name string
		rows [][]interface{}
	}{
		{SheetAlerts, alerts},
		{SheetRecommendations, recs},
		{SheetInsights, insights},
	} {
		if _, err := f.NewSheet(sheet.name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
		}
		if err := writeRows(f, sheet.name, sheet.rows); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

// ReportFileName はダウンロード時のファイル名を返します。
func ReportFileName(env models.ReportEnvelope) string {
	return fmt.Sprintf("biosecurity-report-%s.xlsx", env.GeneratedAt.UTC().Format("20060102-150405"))
}
