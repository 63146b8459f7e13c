package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/safetrack/safetrack-api/internal/application/ports"
)

// Compile-time check that AnthropicService implements DocumentParser.
var _ ports.DocumentParser = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	anthropicSystemPrompt = `You are a data-entry assistant that extracts purchase-order information from raw document text.
Return ONLY a valid JSON object (no markdown, no code fences) with this exact structure:
{
  "supplier": "<supplier or manufacturer name>",
  "order_number": "<purchase order number, empty string if absent>",
  "items": [
    {
      "sku": "<product SKU or code>",
      "description": "<item description>",
      "quantity": <integer>,
      "unit_cost": <decimal number>
    }
  ],
  "confidence_score": <decimal between 0.0 and 1.0>
}

Rules:
- Only include items that clearly appear in the document; never invent lines.
- quantity must be a non-negative integer; unit_cost a non-negative number.
- confidence_score: 0.9-1.0 = high certainty, 0.7-0.89 = probable, <0.7 = estimated.
- Output nothing outside the JSON object.`
)

// AnthropicService implements DocumentParser against the Anthropic Messages
// REST API. Plain net/http, no SDK.
type AnthropicService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewAnthropicService builds the adapter. With an empty apiKey calls return
// a descriptive error instead of panicking.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			// Network timeout; callers add their own context deadline on top.
			Timeout: 25 * time.Second,
		},
	}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type parsedOrderPayload struct {
	Supplier    string `json:"supplier"`
	OrderNumber string `json:"order_number"`
	Items       []struct {
		SKU         string  `json:"sku"`
		Description string  `json:"description"`
		Quantity    int64   `json:"quantity"`
		UnitCost    float64 `json:"unit_cost"`
	} `json:"items"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// jsonBlockRe captures the first JSON object in free text, from the first
// '{' to the last '}'.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ParsePurchaseOrder sends the document text to the model and returns the
// extracted purchase-order draft.
func (s *AnthropicService) ParsePurchaseOrder(ctx context.Context, text string) (*ports.ParsedOrder, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: ANTHROPIC_API_KEY not configured")
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 2048,
		System:    anthropicSystemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: text},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: build HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout or cancellation: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: HTTP call failed: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("AI: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return nil, fmt.Errorf("AI: decode Anthropic response: %w", err)
	}
	if len(anthResp.Content) == 0 {
		return nil, fmt.Errorf("AI: model returned empty response")
	}

	rawText := anthResp.Content[0].Text

	// The model may wrap the JSON in prose or markdown fences.
	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no JSON object found in model response: %s", rawText)
	}

	var parsed parsedOrderPayload
	if err := json.Unmarshal([]byte(cleanJSON), &parsed); err != nil {
		return nil, fmt.Errorf("AI: parse extracted JSON: %w (extracted: %s)", err, cleanJSON)
	}

	confidence := parsed.ConfidenceScore
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	out := &ports.ParsedOrder{
		Supplier:    parsed.Supplier,
		OrderNumber: parsed.OrderNumber,
		Confidence:  confidence,
	}
	for _, item := range parsed.Items {
		if item.Quantity < 0 {
			continue
		}
		out.Items = append(out.Items, ports.ParsedOrderItem{
			SKU:         item.SKU,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitCost:    decimal.NewFromFloat(item.UnitCost),
		})
	}
	return out, nil
}

// extractJSON pulls the first well-formed JSON object out of free text.
// Two steps: strip markdown code fences, then regex for the first {...}.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if close := strings.LastIndex(after, "```"); close != -1 {
			after = after[:close]
		}
		text = strings.TrimSpace(after)
	}

	if strings.HasPrefix(text, "{") {
		return text
	}

	match := jsonBlockRe.FindString(text)
	return strings.TrimSpace(match)
}
