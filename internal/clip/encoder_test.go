package clip

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG saves a 32x32 solid-color PNG and returns its path.
func writeTestPNG(t *testing.T, c color.RGBA) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return path
}

func TestScore_WithinRange(t *testing.T) {
	enc := NewEncoder()
	path := writeTestPNG(t, color.RGBA{R: 200, G: 50, B: 50, A: 255})

	score, err := enc.Score(path, "red circle, bold, T shirt design, TShirtDesignAF")
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if score < -1.0 || score > 1.0 {
		t.Errorf("score %f outside [-1, 1]", score)
	}
}

func TestScore_Deterministic(t *testing.T) {
	enc := NewEncoder()
	path := writeTestPNG(t, color.RGBA{R: 10, G: 120, B: 220, A: 255})
	prompt := "blue waves, minimalist"

	first, err := enc.Score(path, prompt)
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	second, err := enc.Score(path, prompt)
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if first != second {
		t.Errorf("scores differ across identical calls: %f vs %f", first, second)
	}
}

func TestScore_MissingImage(t *testing.T) {
	enc := NewEncoder()
	if _, err := enc.Score(filepath.Join(t.TempDir(), "nope.png"), "anything"); err == nil {
		t.Fatal("expected error for missing image, got nil")
	}
}

func TestScore_EmptyPromptIsZero(t *testing.T) {
	enc := NewEncoder()
	path := writeTestPNG(t, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	score, err := enc.Score(path, "")
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if score != 0 {
		t.Errorf("expected 0 for empty prompt, got %f", score)
	}
}

func TestEncodeText_UnitNormAfterNormalize(t *testing.T) {
	enc := NewEncoder()

	vec := enc.EncodeText("magical floating island, glowing lanterns, circular layout")
	normalize(vec)

	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("expected unit norm, got squared norm %f", sum)
	}
}

func TestEncodeImage_DimensionStable(t *testing.T) {
	enc := NewEncoder()
	path := writeTestPNG(t, color.RGBA{R: 5, G: 5, B: 5, A: 255})

	vec, err := enc.EncodeImage(path)
	if err != nil {
		t.Fatalf("EncodeImage error: %v", err)
	}
	if len(vec) != embeddingDim {
		t.Errorf("expected dimension %d, got %d", embeddingDim, len(vec))
	}
	if len(enc.EncodeText("a b c")) != embeddingDim {
		t.Errorf("text and image embeddings must share a dimension")
	}
}
