package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sonjit/internal/pdollar"
)

func writeINI(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Chosung.PointThreshold)
	assert.Equal(t, 0.80, cfg.Chosung.ScoreThreshold)
	assert.Equal(t, 4, cfg.Chosung.TopK)
	assert.Equal(t, 4, cfg.Jungsung.PointThreshold)
	assert.Equal(t, 0.04, cfg.Jungsung.OriginY)
	assert.Equal(t, 4096, cfg.Text.MaxBytes)
}

func TestLoadDirectoryIsError(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestLoadOverrides(t *testing.T) {
	path := writeINI(t, `
[classifier]
resolution = 48
scale = axis

[chosung]
point_threshold = 10
score_threshold = 0.5
top_k = 2
flip_y = true
templates = /srv/templates

[jungsung]
origin_x = 0.08

[complete]
dictionary = words.tsv
limit = 3

[layout]
custom = keys.yaml

[log]
level = debug
format = json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, pdollar.Options{Resolution: 48, Scale: pdollar.ScaleAxis}, cfg.ClassifierOptions())

	cho := cfg.ChosungOptions()
	assert.Equal(t, 10, cho.PointThreshold)
	assert.Equal(t, 0.5, cho.ScoreThreshold)
	assert.Equal(t, 2, cho.TopK)
	assert.True(t, cho.FlipY)
	assert.Equal(t, "/srv/templates", cfg.Chosung.Templates)

	jung := cfg.JungsungOptions()
	assert.Equal(t, 0.08, jung.Origin.X)
	assert.Equal(t, 0.04, jung.Origin.Z)
	assert.Equal(t, 4, jung.PointThreshold)

	assert.Equal(t, "words.tsv", cfg.Complete.Dictionary)
	assert.Equal(t, 3, cfg.Complete.Limit)
	assert.Equal(t, "dubeolsik", cfg.Layout.Name)
	assert.Equal(t, "keys.yaml", cfg.Layout.Custom)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"scale":      "[classifier]\nscale = wobbly\n",
		"resolution": "[classifier]\nresolution = 1\n",
		"top_k":      "[chosung]\ntop_k = 0\n",
		"origin":     "[jungsung]\norigin_y = -1\n",
	}
	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeINI(t, contents))
			assert.Error(t, err)
		})
	}
}

func TestResolveReadsWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("[text]\nmax_bytes = 12\n"), 0o600))
	chdir(t, dir)

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Text.MaxBytes)
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
