package model

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// OneHotEncoder is the JSON export of a single-feature categorical encoder
type OneHotEncoder struct {
	Feature    string   `json:"feature"`
	Categories []string `json:"categories"`
}

// NewOneHotEncoder validates the encoder definition
func NewOneHotEncoder(feature string, categories []string) (*OneHotEncoder, error) {
	if feature == "" {
		return nil, fmt.Errorf("encoder: feature name is required")
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("encoder: no categories")
	}
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if c == "" {
			return nil, fmt.Errorf("encoder: empty category")
		}
		if seen[c] {
			return nil, fmt.Errorf("encoder: duplicate category %q", c)
		}
		seen[c] = true
	}

	return &OneHotEncoder{
		Feature:    feature,
		Categories: append([]string(nil), categories...),
	}, nil
}

// LoadOneHotEncoder reads an encoder artifact from disk
func LoadOneHotEncoder(path string) (*OneHotEncoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("encoder: failed to read artifact: %w", err)
	}

	var enc OneHotEncoder
	if err := json.Unmarshal(data, &enc); err != nil {
		return nil, fmt.Errorf("encoder: failed to decode artifact %s: %w", path, err)
	}

	return NewOneHotEncoder(enc.Feature, enc.Categories)
}

// FeatureNames returns "<feature>_<category>" for every category, in order
func (e *OneHotEncoder) FeatureNames() []string {
	names := make([]string, 0, len(e.Categories))
	for _, c := range e.Categories {
		names = append(names, e.Feature+"_"+c)
	}
	return names
}
