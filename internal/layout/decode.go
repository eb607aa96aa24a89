package layout

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/validation"
)

// DecodeLayoutConfig validates raw against the layout schema and decodes it.
func DecodeLayoutConfig(raw []byte) (document.LayoutConfig, error) {
	var cfg document.LayoutConfig
	if err := validation.ValidateDocument(validation.DocumentLayoutConfig, raw); err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return document.LayoutConfig{}, fmt.Errorf("layout: decode layout config: %w", err)
	}
	return cfg, nil
}

// DecodeProject validates raw against the project schema, decodes it and
// checks the project's structural invariants.
func DecodeProject(raw []byte) (*document.Project, error) {
	if err := validation.ValidateDocument(validation.DocumentProject, raw); err != nil {
		return nil, err
	}
	var project document.Project
	if err := json.Unmarshal(raw, &project); err != nil {
		return nil, fmt.Errorf("layout: decode project: %w", err)
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}
	return &project, nil
}
