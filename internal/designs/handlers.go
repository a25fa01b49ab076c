package designs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/TeeCanvas/TC-Backend/internal/utils"
)

const (
	// loraTag must trail every generated prompt; it is the trigger for the
	// T-shirt LoRA the checkpoint was tuned with.
	loraTag = "<lora:TShirtDesignRedmond1-5V:0.8>"

	// noDesignSentinel in a side's prompt means that side gets the blank
	// placeholder instead of a generated image.
	noDesignSentinel = "None"

	defaultSampler = "Euler a"
)

type Rewriter interface {
	Rewrite(ctx context.Context, prompt string) (string, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt, sampler string) (string, error)
}

type Scorer interface {
	Score(imagePath, prompt string) (float64, error)
}

type Uploader interface {
	Upload(ctx context.Context, filePath string) (string, error)
}

// Handler composes the external services behind the /generate-design flow.
// All collaborators are injected so tests can run without the network.
type Handler struct {
	Rewriter  Rewriter
	Generator Generator
	Scorer    Scorer
	Uploader  Uploader
	Store     Store

	// BlankURL is the placeholder substituted for skipped sides.
	BlankURL string
}

type designRequest struct {
	PromptTypeFront string `json:"prompt_type_front"` // 'template', 'modified_template', 'written_prompt'
	PromptFront     string `json:"prompt_front"`
	PromptTypeBack  string `json:"prompt_type_back"`
	PromptBack      string `json:"prompt_back"`
	Color           string `json:"color"`
}

type designResponse struct {
	FrontDesignURL string   `json:"front_design_url"`
	BackDesignURL  string   `json:"back_design_url"`
	Color          string   `json:"color"`
	FrontClipScore *float64 `json:"front_clip_score"`
	BackClipScore  *float64 `json:"back_clip_score"`
}

// slot tracks one side (front or back) through a single request. It lives on
// the handler's stack, never in package state, so concurrent requests can't
// see each other's flags.
type slot struct {
	finalPrompt string
	url         string
	score       *float64
}

// GenerateDesignHandler resolves both sides sequentially, persists the pair,
// and replies with the URLs and similarity scores. Any failure along the way
// collapses to one 500 carrying the underlying message; nothing is persisted
// unless both sides resolved.
func (h *Handler) GenerateDesignHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing user ID in context", http.StatusUnauthorized)
		return
	}

	var req designRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	front, err := h.resolveSlot(r.Context(), req.PromptTypeFront, req.PromptFront)
	if err != nil {
		log.Println("Front slot failed:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	back, err := h.resolveSlot(r.Context(), req.PromptTypeBack, req.PromptBack)
	if err != nil {
		log.Println("Back slot failed:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := h.Store.CreateDesign(userID, front.url, back.url, req.Color); err != nil {
		log.Println("Saving design failed:", err)
		http.Error(w, "Failed to save design: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(designResponse{
		FrontDesignURL: front.url,
		BackDesignURL:  back.url,
		Color:          req.Color,
		FrontClipScore: front.score,
		BackClipScore:  back.score,
	})
}

// resolveSlot runs one side through the pipeline: classify, finalize the
// prompt, generate, score, upload. A sentinel prompt short-circuits to the
// blank placeholder with no score and no upstream calls.
func (h *Handler) resolveSlot(ctx context.Context, promptType, prompt string) (slot, error) {
	if prompt == noDesignSentinel {
		return slot{url: h.BlankURL}, nil
	}

	final := prompt
	if promptType != "template" && promptType != "modified_template" {
		rewritten, err := h.Rewriter.Rewrite(ctx, prompt)
		if err != nil {
			return slot{}, fmt.Errorf("rewriting prompt: %w", err)
		}
		final = rewritten
	}
	final += " " + loraTag

	path, err := h.Generator.Generate(ctx, final, defaultSampler)
	if err != nil {
		return slot{}, fmt.Errorf("generating image: %w", err)
	}

	score, err := h.Scorer.Score(path, final)
	if err != nil {
		return slot{}, fmt.Errorf("scoring image: %w", err)
	}

	url, err := h.Uploader.Upload(ctx, path)
	if err != nil {
		return slot{}, fmt.Errorf("uploading image: %w", err)
	}

	return slot{finalPrompt: final, url: url, score: &score}, nil
}

// ListDesignsHandler returns the caller's designs, newest first.
func (h *Handler) ListDesignsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing user ID in context", http.StatusUnauthorized)
		return
	}

	list, err := h.Store.ListDesignsByUser(userID)
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
