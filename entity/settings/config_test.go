package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/AnkushinDaniil/multiplane/entity/mapping"
	"github.com/AnkushinDaniil/multiplane/entity/variant"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()
	path := writeSettings(t, `
iterations: 40
nx: 1
ny: 1
photons:
  - [10, 1000]
psf_size: 20
pupil_fn:
  - [1.3, 2, 2]
mapping_variant: x-flip
`)

	s, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 40, s.Iterations())
	assert.Equal(t, 1, s.NX())
	assert.Equal(t, 1, s.NY())
	assert.Equal(t, []PhotonRange{{Min: 10, Max: 1000}}, s.Photons())
	assert.Equal(t, 20, s.PSFSize())
	assert.Equal(t, [][3]float64{{1.3, 2, 2}}, s.PupilFn())
	assert.Equal(t, variant.XFlip, s.Variant())
	assert.False(t, s.Custom())

	// Untouched fields keep their defaults.
	assert.Equal(t, 300, s.XSize())
	assert.Equal(t, []float64{-0.25, 0.25}, s.ZPlanes())
}

func TestLoadFromFileCustomMappings(t *testing.T) {
	t.Parallel()
	path := writeSettings(t, `
mappings:
  0_1_x: [1.0, 1.0, 0.0]
  0_1_y: [-1.0, 0.0, 1.0]
  1_0_x: [-1.0, 1.0, 0.0]
  1_0_y: [1.0, 0.0, 1.0]
`)

	s, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, s.Custom())
	assert.Equal(t, 4, s.Mappings().Len())

	c, err := s.MappingByName("0_1_y")
	require.NoError(t, err)
	assert.Equal(t, mapping.Coefficients{-1, 0, 1}, c)

	_, err = s.MappingByName("0_0_x")
	assert.ErrorIs(t, err, mapping.ErrKeyNotFound)
}

func TestLoadFromFileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "iterations: [1, 2\n"},
		{"wrong type", "iterations: many\n"},
		{"unknown variant", "mapping_variant: y-flip\n"},
		{"short pupil fn", "pupil_fn:\n  - [1.3, 2]\n"},
		{"bad mapping key", "mappings:\n  a_b_x: [0, 1, 0]\n"},
		{"missing reverse mapping", "mappings:\n  0_1_x: [0, 1, 0]\n  0_1_y: [0, 0, 1]\n"},
		{"invalid value", "n_frames: 0\n"},
		{"nan pixel size", "pixel_size: .nan\n"},
		{"nan tolerance", "tolerance: .nan\n"},
		{"nan psf z step", "psf_z_step: .nan\n"},
		{"non-canonical mapping key", "mappings:\n  00_1_x: [2, 1, 0]\n"},
		{"colliding mapping keys", "mappings:\n  0_1_x: [2, 1, 0]\n  00_1_x: [9, 1, 0]\n  0_1_y: [5, 0, 1]\n  1_0_x: [-2, 1, 0]\n  1_0_y: [-5, 0, 1]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFromFile(writeSettings(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Run("no file, no env", func(t *testing.T) {
		t.Setenv(VariantEnv, "")
		s, err := LoadConfig("")
		require.NoError(t, err)
		if diff := cmp.Diff(Load().File(), s.File()); diff != "" {
			t.Errorf("LoadConfig(\"\") mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv(VariantEnv, "x-flip")
		path := writeSettings(t, "mapping_variant: small-offset\nn_frames: 3\n")

		s, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, variant.XFlip, s.Variant())
		assert.Equal(t, 3, s.NFrames())
	})

	t.Run("bad env", func(t *testing.T) {
		t.Setenv(VariantEnv, "nope")
		_, err := LoadConfig("")
		assert.Error(t, err)
	})
}

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()
	s, err := LoadVariant(variant.XFlip)
	require.NoError(t, err)

	data, err := yaml.Marshal(s.File())
	require.NoError(t, err)

	reloaded, err := LoadFromFile(writeSettings(t, string(data)))
	require.NoError(t, err)
	assert.False(t, reloaded.Custom())
	if diff := cmp.Diff(s.File(), reloaded.File()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
