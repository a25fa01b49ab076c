// Package clip scores how well a generated image matches its prompt. Both
// inputs are encoded into one embedding space, L2-normalized, and compared
// by dot product, so scores land in [-1, 1] and are comparable across calls.
//
// The encoder is a deterministic local stand-in for a learned image/text
// model: image vectors come from a downsampled color grid, text vectors from
// hashed token counts projected into the same dimensionality. It is built
// once at startup and is safe for concurrent use (pure inference, no per-call
// state).
package clip

import (
	"fmt"
	"hash/fnv"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"
)

const (
	gridSize = 8
	// Four channels per cell: R, G, B, luminance.
	embeddingDim = gridSize * gridSize * 4
)

type Encoder struct {
	dim int
}

func NewEncoder() *Encoder {
	return &Encoder{dim: embeddingDim}
}

// Score returns the cosine similarity between the image at path and the
// prompt text.
func (e *Encoder) Score(imagePath, prompt string) (float64, error) {
	imgVec, err := e.EncodeImage(imagePath)
	if err != nil {
		return 0, err
	}
	textVec := e.EncodeText(prompt)

	normalize(imgVec)
	normalize(textVec)

	var dot float64
	for i := range imgVec {
		dot += imgVec[i] * textVec[i]
	}
	return dot, nil
}

// EncodeImage downsamples the image to a fixed grid and emits per-cell color
// and luminance features.
func (e *Encoder) EncodeImage(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	grid := image.NewRGBA(image.Rect(0, 0, gridSize, gridSize))
	xdraw.ApproxBiLinear.Scale(grid, grid.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	vec := make([]float64, e.dim)
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			r, g, b, _ := grid.At(x, y).RGBA()
			rf := float64(r) / 0xffff
			gf := float64(g) / 0xffff
			bf := float64(b) / 0xffff
			base := (y*gridSize + x) * 4
			vec[base] = rf
			vec[base+1] = gf
			vec[base+2] = bf
			vec[base+3] = 0.299*rf + 0.587*gf + 0.114*bf
		}
	}
	return vec, nil
}

// EncodeText hashes lowercase tokens into the embedding dimensions with a
// sign bit, so distinct vocabularies spread across the space instead of
// piling into one bucket.
func (e *Encoder) EncodeText(text string) []float64 {
	vec := make([]float64, e.dim)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ",.:;!?()<>")
		if token == "" {
			continue
		}
		h := fnv.New64a()
		h.Write([]byte(token))
		sum := h.Sum64()
		idx := int(sum % uint64(e.dim))
		sign := 1.0
		if (sum>>63)&1 == 1 {
			sign = -1.0
		}
		vec[idx] += sign
	}
	return vec
}

// normalize scales v to unit length in place; a zero vector stays zero.
func normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}
