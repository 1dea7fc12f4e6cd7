package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default check configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte
