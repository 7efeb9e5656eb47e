package services

import "fmt"

// レポート生成が失敗した段階。
const (
	StageRequest = "request"
	StageDecode  = "decode"
)

// ReportGenerationError はモデルに到達できない場合、または応答がレポート形式のJSONでない場合に返されます。
// 呼び出し側は再試行を促してください。
type ReportGenerationError struct {
	Stage string
	Err   error
}

func (e *ReportGenerationError) Error() string {
	return fmt.Sprintf("report generation failed (%s): %v", e.Stage, e.Err)
}

func (e *ReportGenerationError) Unwrap() error { return e.Err }

// SchemaViolationError はstrictモードで、構造は正しいが列挙外の値や範囲外のスコアを含む場合に返されます。
type SchemaViolationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("report field %s=%q %s", e.Field, e.Value, e.Reason)
}
