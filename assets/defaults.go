package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// DefaultPromptsJSON contains the embedded prompt store, keyed by version.
//
//go:embed defaults/prompts.json
var DefaultPromptsJSON []byte
