package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"biosecure-api/pkg/gemini"
	"biosecure-api/pkg/models"
)

// アドバイザーの固定応答。
const (
	AdvisorFallbackReply = "An error occurred while contacting the AI advisor."
	AdvisorEmptyReply    = "I'm sorry, I couldn't process that request."
)

// ChatTemperature はチャットリクエストのサンプリング温度です。
const ChatTemperature float32 = 0.7

// TextGenerator はモデルへ1回の生成リクエストを送信します。*gemini.Clientが実装します。
type TextGenerator interface {
	Generate(ctx context.Context, req gemini.GenerateRequest) (string, error)
}

// AdvisorService は生成AIモデルとの唯一の窓口です。
// 呼び出しごとの状態は持たず、並行利用できます。
type AdvisorService struct {
	generator         TextGenerator
	systemInstruction string
	strict            bool
	now               func() time.Time
}

// NewAdvisorService は新しいAdvisorServiceを生成します。
// systemInstructionはチャットで使用し、strictがtrueの場合はレポートの列挙値とスコア範囲を検証します。
func NewAdvisorService(generator TextGenerator, systemInstruction string, strict bool) *AdvisorService {
	return &AdvisorService{
		generator:         generator,
		systemInstruction: systemInstruction,
		strict:            strict,
		now:               time.Now,
	}
}

// AskExpert は質問に対するアドバイザーの回答を返します。
// エラーは返さず、失敗時はログに記録してAdvisorFallbackReplyを返します。
func (s *AdvisorService) AskExpert(ctx context.Context, question string) string {
	temperature := ChatTemperature
	reply, err := s.generator.Generate(ctx, gemini.GenerateRequest{
		Prompt:            BuildAdvisoryPrompt(question),
		SystemInstruction: s.systemInstruction,
		Temperature:       &temperature,
	})
	if err != nil {
		log.Printf("Gemini API error: %v", err)
		return AdvisorFallbackReply
	}
	if strings.TrimSpace(reply) == "" {
		return AdvisorEmptyReply
	}
	return reply
}

// GenerateReport はsnapshotの構造化された監査レポートをモデルに生成させます。
// 失敗時は*ReportGenerationError、strictモードでは*SchemaViolationErrorを返します。
func (s *AdvisorService) GenerateReport(ctx context.Context, snapshot models.LivestockSnapshot) (*models.AIReport, error) {
	prompt := BuildAuditPrompt(snapshot, s.now())

	text, err := s.generator.Generate(ctx, gemini.GenerateRequest{
		Prompt:           prompt,
		ResponseMIMEType: "application/json",
		ResponseSchema:   ReportResponseSchema(),
	})
	if err != nil {
		log.Printf("Gemini report error: %v", err)
		return nil, &ReportGenerationError{Stage: StageRequest, Err: err}
	}

	report, err := decodeReport(text)
	if err != nil {
		log.Printf("Gemini report decode error: %v", err)
		return nil, &ReportGenerationError{Stage: StageDecode, Err: err}
	}

	if s.strict {
		if err := checkReportInvariants(report); err != nil {
			log.Printf("Gemini report rejected: %v", err)
			return nil, err
		}
	}
	return report, nil
}

// reportPayload は85.0のような整数値も受け付けるため、スコアをfloatでデコードします。
type reportPayload struct {
	Summary         string               `json:"summary"`
	HealthStatus    models.HealthStatus  `json:"healthStatus"`
	OverallScore    float64              `json:"overallScore"`
	Alerts          []string             `json:"alerts"`
	Recommendations []string             `json:"recommendations"`
	DataInsights    []models.RiskInsight `json:"dataInsights"`
}

func decodeReport(text string) (*models.AIReport, error) {
	raw := []byte(strings.TrimSpace(text))
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty response from model")
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	if err := validateShape(ReportResponseSchema(), generic, ""); err != nil {
		return nil, fmt.Errorf("response does not match report schema: %w", err)
	}

	var payload reportPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}

	return &models.AIReport{
		Summary:         payload.Summary,
		HealthStatus:    payload.HealthStatus,
		OverallScore:    int(payload.OverallScore),
		Alerts:          payload.Alerts,
		Recommendations: payload.Recommendations,
		DataInsights:    payload.DataInsights,
	}, nil
}
