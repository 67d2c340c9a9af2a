package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(t *testing.T, cfg *ConfigData) []string {
	t.Helper()

	var result []string
	for _, analyzer := range analyzers(cfg) {
		result = append(result, analyzer.Name)
	}

	return result
}

func TestAnalyzersFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), Config)
	require.NoError(t, os.WriteFile(path, []byte(`{"Staticcheck": ["SA1000", "SA4006"]}`), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	got := names(t, cfg)
	assert.Contains(t, got, "noglobalstore")
	assert.Contains(t, got, "nilerr")
	assert.Contains(t, got, "SA1000")
	assert.Contains(t, got, "SA4006")
	assert.NotContains(t, got, "SA5000")
}

func TestAnalyzersWithoutConfig(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), Config))
	require.NoError(t, err)
	assert.Nil(t, cfg)

	saCount := 0
	for _, name := range names(t, cfg) {
		if strings.HasPrefix(name, "SA") {
			saCount++
		}
	}
	assert.Greater(t, saCount, 10)
}

func TestBrokenConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), Config)
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))

	_, err := loadConfig(path)
	assert.Error(t, err)
}
