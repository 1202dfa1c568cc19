package world

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func mustYAML(t *testing.T, v any) []byte {
	t.Helper()
	data, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	return data
}
