package services

import (
	"fmt"
	"strings"
	"time"

	"biosecure-api/pkg/models"
)

// auditDateLayout はダッシュボードと同じ日付表記（en-US, M/D/YYYY）です。
const auditDateLayout = "1/2/2006"

// BuildAdvisoryPrompt はチャット用のプロンプトを構築します。農場データは付加せず、検証も行いません。
// 呼び出し側でトリム済みの空でない質問を渡してください。
func BuildAdvisoryPrompt(question string) string {
	return question
}

// BuildAuditPrompt はtoday時点のsnapshotに対する監査指示を構築します。
// 出力は引数のみで決まります。
func BuildAuditPrompt(snapshot models.LivestockSnapshot, today time.Time) string {
	var sb strings.Builder

	sb.WriteString("Act as a senior veterinary biosecurity auditor. Analyze this farm data:\n")
	writeGroupLine(&sb, "PIG DATA", snapshot.Pigs)
	writeGroupLine(&sb, "HEN DATA", snapshot.Hens)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Today is %s.\n", today.Format(auditDateLayout)))
	sb.WriteString("Compare the vaccination dates to today. If older than 6 months, flag it.\n")
	sb.WriteString("Evaluate the health notes for disease red flags.\n")
	sb.WriteString("Assess density risks based on the animal counts.")

	return sb.String()
}

func writeGroupLine(sb *strings.Builder, label string, g models.AnimalGroup) {
	sb.WriteString(fmt.Sprintf("%s: Count: %d, Last Vax: %s, Notes: %s\n",
		label, g.Count, orNone(g.LastVaccination), orNone(g.HealthNote)))
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}
