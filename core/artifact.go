package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beastmode/notable/schema"
)

// ArtifactFilename derives the timestamp-suffixed filename for an artifact.
// The registry, not this name, decides which model is latest.
func ArtifactFilename(artifact *schema.ModelArtifact) string {
	return fmt.Sprintf("model-%s-%s.json",
		artifact.Algorithm, artifact.Metadata.TrainedAt.Format("20060102-150405"))
}

// SaveArtifact writes the artifact as indented JSON, creating the models
// directory if needed. Artifacts are written once and never rewritten.
func SaveArtifact(dir string, artifact *schema.ModelArtifact) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create models dir: %w", err)
	}
	path := filepath.Join(dir, ArtifactFilename(artifact))
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode model artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write model artifact: %w", err)
	}
	return path, nil
}

// LoadArtifact reads an artifact back for inference. The stored feature
// names are the authoritative schema and must be present.
func LoadArtifact(path string) (*schema.ModelArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	var artifact schema.ModelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}
	if len(artifact.FeatureNames) == 0 {
		return nil, fmt.Errorf("model artifact %s has no feature schema", path)
	}
	return &artifact, nil
}
