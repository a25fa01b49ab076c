package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DefaultSDBaseURL points at the A1111 container from docker-compose.
const DefaultSDBaseURL = "http://a1111:7860"

// Generator drives the A1111 txt2img endpoint and lands the decoded image in
// a process-local temp directory.
type Generator struct {
	baseURL    string
	tempDir    string
	params     SamplingParams
	httpClient *http.Client
}

// NewGenerator creates the temp directory if needed. The long client timeout
// is deliberate: CPU inference on the other side can take minutes.
func NewGenerator(baseURL, tempDir string, params SamplingParams) (*Generator, error) {
	if baseURL == "" {
		baseURL = DefaultSDBaseURL
	}
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating temp dir %s: %w", tempDir, err)
	}
	return &Generator{
		baseURL: baseURL,
		tempDir: tempDir,
		params:  params,
		httpClient: &http.Client{
			Timeout: 12 * time.Minute,
		},
	}, nil
}

type txt2imgRequest struct {
	Prompt      string  `json:"prompt"`
	Steps       int     `json:"steps"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	CFGScale    float64 `json:"cfg_scale"`
	SamplerName string  `json:"sampler_name"`
}

type txt2imgResponse struct {
	Images []string `json:"images"`
}

// Generate runs one txt2img call and returns the path of the saved PNG.
// Decode and write failures are hard errors; no file path is returned unless
// the bytes are fully on disk.
func (g *Generator) Generate(ctx context.Context, prompt, sampler string) (string, error) {
	log.Println("Prompt passed to model:", prompt)
	log.Println("Using sampler:", sampler)

	payload := txt2imgRequest{
		Prompt:      prompt,
		Steps:       g.params.Steps,
		Width:       g.params.Width,
		Height:      g.params.Height,
		CFGScale:    g.params.CFGScale,
		SamplerName: sampler,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding txt2img request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/sdapi/v1/txt2img", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating txt2img request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("txt2img request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("txt2img API returned HTTP %d", resp.StatusCode)
	}

	var envelope txt2imgResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("decoding txt2img response: %w", err)
	}
	if len(envelope.Images) == 0 {
		return "", fmt.Errorf("txt2img response contained no images")
	}

	imgBytes, err := base64.StdEncoding.DecodeString(envelope.Images[0])
	if err != nil {
		return "", fmt.Errorf("decoding image from response: %w", err)
	}

	// 128-bit random filename; collisions are not a practical concern.
	fileName := fmt.Sprintf("%x.png", uuid.New())
	filePath := filepath.Join(g.tempDir, fileName)
	if err := os.WriteFile(filePath, imgBytes, 0o644); err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}

	log.Println("Image saved at:", filePath)
	return filePath, nil
}
