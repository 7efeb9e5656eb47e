package services

import (
	"fmt"
	"math"
	"sort"

	"biosecure-api/pkg/models"

	genai "google.golang.org/genai"
)

// ReportResponseSchema はレポートとして返すべきJSONオブジェクトのスキーマです。
// モデルへのレスポンススキーマとして送信し、デコード後はvalidateShapeでの検証にも使います。
func ReportResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {Type: genai.TypeString},
			"healthStatus": {
				Type:        genai.TypeString,
				Format:      "enum",
				Enum:        enumValues(models.HealthStatuses),
				Description: "One of: Excellent, Good, Fair, Critical",
			},
			"overallScore": {
				Type:        genai.TypeInteger,
				Minimum:     genai.Ptr[float64](models.MinOverallScore),
				Maximum:     genai.Ptr[float64](models.MaxOverallScore),
				Description: "0 to 100",
			},
			"alerts": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"recommendations": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"dataInsights": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"category": {
							Type:        genai.TypeString,
							Description: "e.g., Vaccination, Population, Observation",
						},
						"observation": {
							Type:        genai.TypeString,
							Description: "Data-specific finding referring to user numbers",
						},
						"riskLevel": {
							Type:        genai.TypeString,
							Format:      "enum",
							Enum:        enumValues(models.RiskLevels),
							Description: "Low, Medium, or High",
						},
					},
					Required:         []string{"category", "observation", "riskLevel"},
					PropertyOrdering: []string{"category", "observation", "riskLevel"},
				},
			},
		},
		Required: []string{"summary", "healthStatus", "alerts", "recommendations", "overallScore", "dataInsights"},
		PropertyOrdering: []string{
			"summary", "healthStatus", "overallScore", "alerts", "recommendations", "dataInsights",
		},
	}
}

func enumValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// validateShape はencoding/jsonでデコードした値をsに照らして検証します。
// 対象は必須フィールドとJSONの型のみで、列挙値とスコア範囲はcheckReportInvariantsが扱います。
func validateShape(s *genai.Schema, v any, path string) error {
	if s == nil {
		return nil
	}
	switch s.Type {
	case genai.TypeObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected object, got %s", displayPath(path), jsonKind(v))
		}
		for _, name := range s.Required {
			if _, ok := obj[name]; !ok {
				return fmt.Errorf("%s: missing required field", joinPath(path, name))
			}
		}
		names := make([]string, 0, len(s.Properties))
		for name := range s.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			val, ok := obj[name]
			if !ok {
				continue
			}
			if err := validateShape(s.Properties[name], val, joinPath(path, name)); err != nil {
				return err
			}
		}
	case genai.TypeArray:
		arr, ok := v.([]any)
		if !ok {
			return fmt.Errorf("%s: expected array, got %s", displayPath(path), jsonKind(v))
		}
		for i, item := range arr {
			if err := validateShape(s.Items, item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case genai.TypeString:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%s: expected string, got %s", displayPath(path), jsonKind(v))
		}
	case genai.TypeNumber:
		if _, ok := v.(float64); !ok {
			return fmt.Errorf("%s: expected number, got %s", displayPath(path), jsonKind(v))
		}
	case genai.TypeInteger:
		f, ok := v.(float64)
		if !ok || f != math.Trunc(f) {
			return fmt.Errorf("%s: expected integer, got %s", displayPath(path), jsonKind(v))
		}
		// これより大きい値はintへの変換で桁あふれする
		if math.Abs(f) > math.MaxInt32 {
			return fmt.Errorf("%s: integer %g out of range", displayPath(path), f)
		}
	case genai.TypeBoolean:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("%s: expected boolean, got %s", displayPath(path), jsonKind(v))
		}
	}
	return nil
}

// checkReportInvariants は列挙値とスコア範囲を検証します。
func checkReportInvariants(r *models.AIReport) error {
	if r.OverallScore < models.MinOverallScore || r.OverallScore > models.MaxOverallScore {
		return &SchemaViolationError{
			Field:  "overallScore",
			Value:  fmt.Sprintf("%d", r.OverallScore),
			Reason: fmt.Sprintf("must be between %d and %d", models.MinOverallScore, models.MaxOverallScore),
		}
	}
	if !r.HealthStatus.Valid() {
		return &SchemaViolationError{
			Field:  "healthStatus",
			Value:  string(r.HealthStatus),
			Reason: "must be one of Excellent, Good, Fair, Critical",
		}
	}
	for i, insight := range r.DataInsights {
		if !insight.RiskLevel.Valid() {
			return &SchemaViolationError{
				Field:  fmt.Sprintf("dataInsights[%d].riskLevel", i),
				Value:  string(insight.RiskLevel),
				Reason: "must be one of Low, Medium, High",
			}
		}
	}
	return nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func displayPath(path string) string {
	if path == "" {
		return "response"
	}
	return path
}

func jsonKind(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		if x != math.Trunc(x) {
			return "non-integer number"
		}
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
