package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	DefaultEndpoint  = "https://api.anthropic.com/v1/messages"
	DefaultModel     = "claude-sonnet-4-20250514"
	APIVersion       = "2023-06-01"
	DefaultTimeout   = 30 * time.Second
	defaultMaxTokens = 4096
	maxAttempts      = 2 // 1x percobaan + 1x retry
	retryBackoff     = 500 * time.Millisecond
)

var (
	ErrEmptyContent  = errors.New("no content in model response")
	ErrInvalidSchema = errors.New("model response does not match classification schema")
)

// field wajib di balasan model
var requiredFields = []struct {
	path string
	kind gjson.Type
}{
	{"personalityType", gjson.String},
	{"dominantElement", gjson.String},
	{"summary", gjson.String},
	{"elementScores", gjson.JSON},
	{"strengths", gjson.JSON},
	{"careerRecommendations", gjson.JSON},
}

type Client struct {
	apiKey     string
	model      string
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(apiKey, model, endpoint string, timeout time.Duration) *Client {
	if model == "" {
		model = DefaultModel
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		endpoint:   endpoint,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Classify tidak pernah panic / mengembalikan error langsung; kegagalan dibawa di Outcome.
func (c *Client) Classify(ctx context.Context, t Transcript) Outcome {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		cls, err := c.classifyOnce(ctx, t)
		if err == nil {
			cls.Source = SourceAI
			return Succeeded(cls)
		}
		lastErr = err
		log.Printf("[WARN] 🤖 klasifikasi model gagal (percobaan %d/%d): %v", attempt, maxAttempts, err)

		if ctx.Err() != nil || attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return Failed(errors.Wrap(ctx.Err(), "classification cancelled"))
		case <-time.After(retryBackoff):
		}
	}
	return Failed(lastErr)
}

func (c *Client) classifyOnce(ctx context.Context, t Transcript) (cls Classification, err error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var text string
	text, err = c.sendRequest(callCtx, buildUserPrompt(t))
	if err != nil {
		err = errors.Wrap(err, "classification request failed")
		return cls, err
	}

	cleaned := stripMarkdownCodeFences(text)
	if err = validateSchema(cleaned); err != nil {
		return cls, err
	}

	if err = json.Unmarshal([]byte(cleaned), &cls); err != nil {
		err = errors.Wrapf(err, "failed to parse classification: %s", text)
		return cls, err
	}
	return cls, nil
}

func validateSchema(text string) error {
	if !gjson.Valid(text) {
		return errors.Wrap(ErrInvalidSchema, "reply is not valid JSON")
	}
	root := gjson.Parse(text)
	if !root.IsObject() {
		return errors.Wrap(ErrInvalidSchema, "reply is not a JSON object")
	}
	for _, f := range requiredFields {
		v := root.Get(f.path)
		if !v.Exists() || v.Type != f.kind {
			return errors.Wrapf(ErrInvalidSchema, "field %q missing or wrong type", f.path)
		}
	}
	if !root.Get("elementScores").IsObject() {
		return errors.Wrap(ErrInvalidSchema, "elementScores must be an object")
	}
	if !root.Get("strengths").IsArray() || !root.Get("careerRecommendations").IsArray() {
		return errors.Wrap(ErrInvalidSchema, "strengths/careerRecommendations must be arrays")
	}
	return nil
}

func (c *Client) sendRequest(ctx context.Context, prompt string) (responseText string, err error) {
	req := messagesRequest{
		Model:     c.model,
		MaxTokens: defaultMaxTokens,
		System:    systemPrompt,
		Messages:  []message{{Role: "user", Content: prompt}},
	}

	var body []byte
	body, err = json.Marshal(req)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return responseText, err
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return responseText, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", APIVersion)

	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return responseText, err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return responseText, err
	}

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
		return responseText, err
	}

	var mr messagesResponse
	if err = json.Unmarshal(respBody, &mr); err != nil {
		err = errors.Wrapf(err, "failed to parse model response: %s", string(respBody))
		return responseText, err
	}
	if len(mr.Content) == 0 {
		err = ErrEmptyContent
		return responseText, err
	}

	responseText = mr.Content[0].Text
	return responseText, nil
}

// stripMarkdownCodeFences membuang ```json ... ``` atau ``` ... ``` di sekitar balasan.
func stripMarkdownCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.TrimPrefix(cleaned, "```")
	if nl := strings.IndexByte(cleaned, '\n'); nl >= 0 {
		// buang penanda bahasa (json, JSON, ...)
		if lang := strings.TrimSpace(cleaned[:nl]); !strings.ContainsAny(lang, "{[") {
			cleaned = cleaned[nl+1:]
		}
	}
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
