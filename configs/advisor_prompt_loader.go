package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// AdvisorPromptConfig はadvisor_prompt.yamlの構造を定義（チャットのシステム指示に使うペルソナ）
type AdvisorPromptConfig struct {
	Advisor struct {
		Role     string `yaml:"role"`
		Audience string `yaml:"audience"`
		Version  string `yaml:"version"`
	} `yaml:"advisor"`

	Guidelines []string `yaml:"guidelines"`

	Tone struct {
		Style  string `yaml:"style"`
		Format string `yaml:"format"`
	} `yaml:"tone"`

	Constraints []string `yaml:"constraints"`
}

// DefaultAdvisorPrompt はYAMLファイルがない場合に使う組み込みのペルソナ
func DefaultAdvisorPrompt() *AdvisorPromptConfig {
	cfg := &AdvisorPromptConfig{}
	cfg.Advisor.Role = "an expert biosecurity consultant"
	cfg.Advisor.Audience = "pig and poultry farms"
	cfg.Guidelines = []string{"Provide practical, scientifically accurate, and easy-to-implement advice."}
	cfg.Tone.Style = "Keep your answers concise and professional."
	cfg.Tone.Format = "Use bullet points for lists."
	return cfg
}

var (
	advisorPromptMu     sync.Mutex
	cachedAdvisorPrompt = map[string]*AdvisorPromptConfig{}
)

// LoadAdvisorPrompt はYAMLファイルからペルソナ設定を読み込む
func LoadAdvisorPrompt(path string) (*AdvisorPromptConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read advisor prompt file: %w", err)
	}

	var cfg AdvisorPromptConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse advisor prompt YAML: %w", err)
	}
	if strings.TrimSpace(cfg.Advisor.Role) == "" {
		return nil, fmt.Errorf("advisor prompt %s: advisor.role is required", path)
	}
	return &cfg, nil
}

// AdvisorPrompt はpathのペルソナを返す。ファイルがない、または不正な場合はDefaultAdvisorPromptを使う。
// 結果はパスごとにプロセス内でキャッシュされる。
func AdvisorPrompt(path string) *AdvisorPromptConfig {
	advisorPromptMu.Lock()
	defer advisorPromptMu.Unlock()

	if cfg, ok := cachedAdvisorPrompt[path]; ok {
		return cfg
	}
	cfg, err := LoadAdvisorPrompt(path)
	if err != nil {
		cfg = DefaultAdvisorPrompt()
	}
	cachedAdvisorPrompt[path] = cfg
	return cfg
}

// BuildSystemInstruction は設定からシステム指示を構築
func (c *AdvisorPromptConfig) BuildSystemInstruction() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are %s", c.Advisor.Role))
	if c.Advisor.Audience != "" {
		sb.WriteString(fmt.Sprintf(" for %s", c.Advisor.Audience))
	}
	sb.WriteString(".\n")

	for _, g := range c.Guidelines {
		sb.WriteString(g)
		sb.WriteString("\n")
	}
	if c.Tone.Style != "" {
		sb.WriteString(c.Tone.Style)
		sb.WriteString("\n")
	}
	if c.Tone.Format != "" {
		sb.WriteString(c.Tone.Format)
		sb.WriteString("\n")
	}
	for _, constraint := range c.Constraints {
		sb.WriteString(fmt.Sprintf("- %s\n", constraint))
	}

	return strings.TrimRight(sb.String(), "\n")
}
