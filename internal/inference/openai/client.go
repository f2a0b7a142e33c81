package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/designemotion/transcript/internal/config"
)

const maxTranscriptTokens = 1000

// Client talks to an OpenAI compatible chat completion endpoint. OpenRouter
// is reached through the same client with its own base URL.
type Client struct {
	httpClient       *resty.Client
	name             string
	model            string
	prompts          config.PromptsConfig
	maxRetryAttempts uint
}

func NewClient(name string, provider config.ProviderConfig, model config.ModelConfig, retryAttempts uint, timeout time.Duration) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(provider.BaseURL, "/"))
	client.SetHeader("Authorization", "Bearer "+provider.APIKey)
	client.SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{
		httpClient:       client,
		name:             name,
		model:            model.Model,
		prompts:          model.Prompts,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// Name returns the configured model name, e.g. "gpt41-or".
func (client *Client) Name() string {
	return client.name
}

type ChatCompletionRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

// Message content is either a string or a list of ContentPart.
type Message struct {
	Role    Role `json:"role"`
	Content any  `json:"content"`
}

type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

var errEmptyImage = errors.New("image is empty")

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") || strings.Contains(errStr, "connection reset") {
		return true
	}
	if strings.Contains(errStr, "response error 5") {
		return true
	}
	if strings.Contains(errStr, "response error 429") {
		return true
	}
	return false
}

// Transcribe implements the inference.Transcriber interface
func (client *Client) Transcribe(ctx context.Context, image []byte, language string) (string, error) {
	if len(image) == 0 {
		return "", errEmptyImage
	}
	prompt := fillPrompt(client.prompts.Transcript, "", language)
	return client.complete(ctx, ChatCompletionRequest{
		Model: client.model,
		Messages: []Message{
			{Role: RoleSystem, Content: prompt},
			{Role: RoleUser, Content: []ContentPart{
				{Type: "image_url", ImageURL: &ImageURL{URL: dataURL(image)}},
			}},
		},
		MaxTokens: maxTranscriptTokens,
	})
}

// Translate implements the inference.Translator interface
func (client *Client) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	prompt := fillPrompt(client.prompts.Translate, sourceLanguage, targetLanguage)
	return client.complete(ctx, ChatCompletionRequest{
		Model: client.model,
		Messages: []Message{
			{Role: RoleSystem, Content: prompt},
			{Role: RoleUser, Content: text},
		},
	})
}

func (client *Client) complete(ctx context.Context, body ChatCompletionRequest) (string, error) {
	var result string
	if err := retry.Do(
		func() error {
			content, err := client.chatCompletion(ctx, body)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = content
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return "", err
	}
	return result, nil
}

func (client *Client) chatCompletion(ctx context.Context, requestBody ChatCompletionRequest) (string, error) {
	start := time.Now()
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := strings.TrimSpace(responseBody.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("chat completion",
		"model", client.name,
		"elapsed", time.Since(start),
		"prompt_tokens", responseBody.Usage.PromptTokens,
		"completion_tokens", responseBody.Usage.CompletionTokens,
	)
	return content, nil
}

func fillPrompt(template, sourceLanguage, targetLanguage string) string {
	return strings.NewReplacer(
		"{source_lang}", sourceLanguage,
		"{target_lang}", targetLanguage,
	).Replace(template)
}

// dataURL embeds image in a data URL. Unknown content is sent as PNG, the
// format clients capture pages in.
func dataURL(image []byte) string {
	mime := http.DetectContentType(image)
	if !strings.HasPrefix(mime, "image/") {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(image)
}
