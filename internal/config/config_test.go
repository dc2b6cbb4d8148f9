package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samcharles93/voxel/pkg/nrrd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
custom_fields:
  affine: double matrix
  labels2: string list
index_order: C
allow_duplicate_fields: true
compression_level: 4
encoding: bz2
log_level: debug
log_format: json
server_address: 127.0.0.1:9000
volumes_dir: /data/volumes
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "C", cfg.IndexOrder)
	require.NotNil(t, cfg.AllowDuplicateFields)
	assert.True(t, *cfg.AllowDuplicateFields)
	require.NotNil(t, cfg.CompressionLevel)
	assert.Equal(t, 4, *cfg.CompressionLevel)
	assert.Equal(t, "bz2", cfg.Encoding)
	assert.Equal(t, "127.0.0.1:9000", cfg.ServerAddress)
	assert.Equal(t, "/data/volumes", cfg.VolumesDir)
	assert.Equal(t, []string{"affine", "labels2"}, cfg.CustomFieldNames())

	fields, err := cfg.FieldMap()
	require.NoError(t, err)
	assert.Equal(t, nrrd.FieldMap{"affine": nrrd.KindOptionalDoubleMatrix, "labels2": nrrd.KindStringList}, fields)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 4)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"bad yaml":     "index_order: [",
		"bad kind":     "custom_fields:\n  x: quaternion\n",
		"bad order":    "index_order: Z\n",
		"bad encoding": "encoding: zstd\n",
		"bad level":    "compression_level: 12\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestOptionsApplyToCodec(t *testing.T) {
	t.Parallel()

	cfg := Config{CustomFields: map[string]string{"origin2": "int vector"}}
	opts, err := cfg.Options()
	require.NoError(t, err)

	text := "NRRD0005\ntype: uint8\norigin2:=(1,2,3)\n\n"
	h, _, err := nrrd.ReadHeaderFile(writeConfig(t, text), opts...)
	require.NoError(t, err)
	v, ok := h.Ints("origin2")
	require.True(t, ok)
	assert.Equal(t, []int64{1, 2, 3}, v)
}

func TestPathEnvOverride(t *testing.T) {
	t.Setenv(EnvPath, "/tmp/custom-voxel.yaml")
	assert.Equal(t, "/tmp/custom-voxel.yaml", Path())
}

func TestPathDefault(t *testing.T) {
	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "voxel", "config.yaml"), Path())
}
