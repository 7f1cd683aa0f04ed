package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsZeroConfig(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoad_ReadsFields(t *testing.T) {
	dir := t.TempDir()
	content := `templates_dir: ./templates
output_format: json
output_dir: ./out
quality_threshold: 90
workers: 4
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "./templates", cfg.TemplatesDir)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "./out", cfg.OutputDir)
	assert.Equal(t, 90.0, cfg.Threshold)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("workers: [not an int"), 0o600))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), FileName)
}

func TestWrite_RoundTrip(t *testing.T) {
	in := &Config{TemplatesDir: "tpl", OutputFormat: "csv", Threshold: 85, Workers: 2}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, in))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), buf.Bytes(), 0o600))
	out, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "zero config ok", cfg: Config{}},
		{name: "known format ok", cfg: Config{OutputFormat: "console", Threshold: 95}},
		{name: "unknown format", cfg: Config{OutputFormat: "xlsx"}, wantErr: "output_format"},
		{name: "threshold too high", cfg: Config{Threshold: 101}, wantErr: "quality_threshold"},
		{name: "threshold negative", cfg: Config{Threshold: -1}, wantErr: "quality_threshold"},
		{name: "negative workers", cfg: Config{Workers: -2}, wantErr: "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	err := Validate(&Config{OutputFormat: "nope", Threshold: 200, Workers: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output_format")
	assert.Contains(t, err.Error(), "quality_threshold")
	assert.Contains(t, err.Error(), "workers")
}

func TestMerge(t *testing.T) {
	primary := &Config{OutputFormat: "json", Workers: 8}
	fallback := &Config{TemplatesDir: "tpl", OutputFormat: "console", Threshold: 90, Workers: 2}

	merged := Merge(primary, fallback)
	assert.Equal(t, "tpl", merged.TemplatesDir)
	assert.Equal(t, "json", merged.OutputFormat)
	assert.Equal(t, 90.0, merged.Threshold)
	assert.Equal(t, 8, merged.Workers)

	// Inputs are untouched.
	assert.Equal(t, &Config{OutputFormat: "json", Workers: 8}, primary)
}
