package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// DefaultGeminiURL is the generateContent endpoint used when GEMINI_API_URL
// is not set.
const DefaultGeminiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash-latest:generateContent"

// rewriteInstructions prime the model to emit keyword-style prompts ending in
// the LoRA trigger phrase. The trailing "T shirt design, TShirtDesignAF" is
// load-bearing: the image model was fine-tuned on it.
const rewriteInstructions = "Always generate prompts for T-shirt designs in keyword format only. " +
	"Convert any descriptive input into short, atomic keywords — never full sentences. " +
	"Do not remove or simplify details; every visual element in the description must be preserved as keywords. " +
	"The structure must always end with: 'T shirt design, TShirtDesignAF'. " +
	"If applicable, also include shapes (like circular, square, etc.) as keywords. " +
	"For example: If the natural description is 'A magical floating island with a huge tree at its center. " +
	"Glowing lanterns dangle from its branches, and soft clouds surround the island as tiny birds fly nearby. " +
	"The dreamy and surreal design fits perfectly within a circular T-shirt layout,' " +
	"then the rewritten prompt should be: " +
	"'magical floating island, huge tree center, glowing lanterns, soft clouds, tiny birds flying, dreamy, surreal, circular layout, T shirt design, TShirtDesignAF'."

// Rewriter converts free-text design descriptions into keyword prompts via
// the Gemini generateContent API.
type Rewriter struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

func NewRewriter(apiKey, apiURL string) *Rewriter {
	if apiURL == "" {
		apiURL = DefaultGeminiURL
	}
	return &Rewriter{
		apiKey: apiKey,
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Rewrite sends one generateContent request and returns the rewritten prompt.
// If the response envelope cannot be read, the original prompt is returned
// with a nil error: callers proceed with the raw text and generation still
// happens. Transport and HTTP-status failures are real errors.
func (rw *Rewriter) Rewrite(ctx context.Context, prompt string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{
				Text: fmt.Sprintf("%s\nUser prompt: %s", rewriteInstructions, prompt),
			}},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding rewrite request: %w", err)
	}

	fullURL := fmt.Sprintf("%s?key=%s", rw.apiURL, url.QueryEscape(rw.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating rewrite request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := rw.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("rewrite request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("rewrite API returned HTTP %d", resp.StatusCode)
	}

	var envelope geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		log.Println("Rewrite response unreadable, keeping original prompt:", err)
		return prompt, nil
	}

	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		log.Println("Rewrite response empty, keeping original prompt")
		return prompt, nil
	}

	return envelope.Candidates[0].Content.Parts[0].Text, nil
}
