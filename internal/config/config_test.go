package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glspv/glapi"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, VariantGood, cfg.Variant)
	assert.Equal(t, "main_ok", cfg.Entry)
	assert.Equal(t, DriverGL, cfg.Driver)
	assert.False(t, cfg.Strict)

	stage, err := cfg.ShaderStage()
	require.NoError(t, err)
	assert.Equal(t, glapi.StageFragment, stage)

	path, err := cfg.BinaryPath()
	require.NoError(t, err)
	assert.Equal(t, "good.spv", path)
}

func TestBinaryPath(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{"Good", Config{Variant: VariantGood, Dir: "shaders"}, filepath.Join("shaders", "good.spv"), false},
		{"Bad", Config{Variant: VariantBad, Dir: "shaders"}, filepath.Join("shaders", "bad.spv"), false},
		{"ExplicitWins", Config{Binary: "/tmp/x.spv", Variant: VariantBad, Dir: "shaders"}, "/tmp/x.spv", false},
		{"UnknownVariant", Config{Variant: "ugly", Dir: "."}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.BinaryPath()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()

	err := cfg.ApplyEnv(env(map[string]string{
		"GLSPV_VARIANT":              "BAD",
		"GLSPV_DIR":                  "/srv/spv",
		"GLSPV_ENTRY":                "frag_main",
		"GLSPV_DRIVER":               "soft",
		"GLSPV_STRICT":               "true",
		"GLSPV_HIDDEN":               "1",
		"GLSPV_WIDTH":                "320",
		"GLSPV_MAX_UNIFORM_BINDINGS": "8192",
		"GLSPV_CHECK_STATUS":         "",
		"UNRELATED":                  "x",
	}))

	require.NoError(t, err)
	assert.Equal(t, VariantBad, cfg.Variant)
	assert.Equal(t, "/srv/spv", cfg.Dir)
	assert.Equal(t, "frag_main", cfg.Entry)
	assert.Equal(t, DriverSoft, cfg.Driver)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Window.Hidden)
	assert.Equal(t, 320, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, uint32(8192), cfg.Limits.MaxUniformBufferBindings)
	assert.False(t, cfg.CheckStatus)

	path, err := cfg.BinaryPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/spv", "bad.spv"), path)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	cfg := Default()

	err := cfg.ApplyEnv(env(map[string]string{
		"GLSPV_STRICT":               "perhaps",
		"GLSPV_WIDTH":                "wide",
		"GLSPV_MAX_STORAGE_BINDINGS": "-1",
	}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GLSPV_STRICT")
	assert.Contains(t, err.Error(), "GLSPV_WIDTH")
	assert.Contains(t, err.Error(), "GLSPV_MAX_STORAGE_BINDINGS")
	assert.False(t, cfg.Strict)
	assert.Equal(t, 800, cfg.Window.Width)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"EmptyEntry", func(c *Config) { c.Entry = "" }, "entry point"},
		{"UnknownStage", func(c *Config) { c.Stage = "mesh" }, "unknown shader stage"},
		{"UnknownDriver", func(c *Config) { c.Driver = "vulkan" }, "unknown driver"},
		{"UnknownVariant", func(c *Config) { c.Variant = "ugly" }, "unknown variant"},
		{"OldGL", func(c *Config) { c.Window.MinorVersion = 3 }, "need 4.6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_SoftIgnoresWindow(t *testing.T) {
	cfg := Default()
	cfg.Driver = DriverSoft
	cfg.Window.Width = 0

	assert.NoError(t, cfg.Validate())
}
