package assets

import (
	_ "embed"
)

// DefaultPipelineYAML contains the embedded default pipeline configuration.
//
//go:embed defaults/pipeline.yaml
var DefaultPipelineYAML []byte

// DefaultAccessYAML contains the embedded default access rules.
//
//go:embed defaults/access.yaml
var DefaultAccessYAML []byte
