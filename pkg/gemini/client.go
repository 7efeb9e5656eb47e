package gemini

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	genai "google.golang.org/genai"
)

// ErrMissingAPIKey はAPIキーが設定されていない場合にGenerateが返すエラーです。
var ErrMissingAPIKey = errors.New("gemini: API key is not set")

// GenerateRequest は1回の生成リクエストです。
type GenerateRequest struct {
	Prompt            string
	SystemInstruction string
	Temperature       *float32
	// 出力形式の指定（例: "application/json"）
	ResponseMIMEType string
	ResponseSchema   *genai.Schema
}

// Client は公式genaiクライアントの薄いラッパーです。
// 内部クライアントは初回利用時に生成され、以降は共有されます。
type Client struct {
	apiKey string
	model  string

	once    sync.Once
	cli     *genai.Client
	initErr error
}

// NewClient は新しいClientを作成します。ここでは通信もAPIキーの検証も行いません。
func NewClient(apiKey, model string) *Client {
	return &Client{apiKey: apiKey, model: model}
}

// Model はリクエスト先のモデルIDを返します。
func (c *Client) Model() string { return c.model }

func (c *Client) handle(ctx context.Context) (*genai.Client, error) {
	c.once.Do(func() {
		if c.apiKey == "" {
			c.initErr = ErrMissingAPIKey
			return
		}
		c.cli, c.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if c.initErr == nil {
			log.Printf("Gemini client initialized (model: %s)", c.model)
		}
	})
	return c.cli, c.initErr
}

// Generate はreqを送信し、最初の候補のテキストを返します。
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	cli, err := c.handle(ctx)
	if err != nil {
		return "", fmt.Errorf("gemini client unavailable: %w", err)
	}

	log.Printf("Gemini request (%s): %d bytes", c.model, len(req.Prompt))
	resp, err := cli.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), buildConfig(req))
	if err != nil {
		return "", fmt.Errorf("gemini GenerateContent failed: %w", err)
	}
	return resp.Text(), nil
}

func buildConfig(req GenerateRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:      req.Temperature,
		ResponseMIMEType: req.ResponseMIMEType,
		ResponseSchema:   req.ResponseSchema,
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	return cfg
}
