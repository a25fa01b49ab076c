package genai

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// SamplingParams are the fixed txt2img sampling parameters. Defaults match
// the checkpoint the LoRA was trained against; generation.yaml can override
// them per deployment without a rebuild.
type SamplingParams struct {
	Steps    int     `yaml:"steps"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	CFGScale float64 `yaml:"cfg_scale"`
}

func DefaultSamplingParams() SamplingParams {
	return SamplingParams{
		Steps:    20,
		Width:    512,
		Height:   512,
		CFGScale: 9,
	}
}

// LoadSamplingParams reads overrides from the given YAML file. A missing
// file is not an error: the defaults apply. Values left at zero in the file
// keep their defaults.
func LoadSamplingParams(path string) (SamplingParams, error) {
	params := DefaultSamplingParams()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return params, nil
	}
	if err != nil {
		return params, fmt.Errorf("reading %s: %w", path, err)
	}

	var overrides SamplingParams
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return params, fmt.Errorf("parsing %s: %w", path, err)
	}

	if overrides.Steps > 0 {
		params.Steps = overrides.Steps
	}
	if overrides.Width > 0 {
		params.Width = overrides.Width
	}
	if overrides.Height > 0 {
		params.Height = overrides.Height
	}
	if overrides.CFGScale > 0 {
		params.CFGScale = overrides.CFGScale
	}

	return params, nil
}
