// Package config holds the run configuration of the harness.
//
// Values are layered: Default, then GLSPV_* environment variables
// (ApplyEnv), then command-line flags set by cmd/glspv.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/glspv/glapi"
	"github.com/gogpu/glspv/glapi/softgl"
	"github.com/gogpu/glspv/internal/fixture"
)

// Variant names one of the two candidate binaries.
type Variant string

const (
	VariantGood Variant = "good"
	VariantBad  Variant = "bad"
)

// File returns the candidate file name for v.
func (v Variant) File() (string, error) {
	switch v {
	case VariantGood:
		return fixture.GoodFile, nil
	case VariantBad:
		return fixture.BadFile, nil
	}
	return "", fmt.Errorf("unknown variant %q (want good or bad)", string(v))
}

// Driver selects the glapi.Context implementation.
type Driver string

const (
	// DriverGL opens a GLFW window with a real OpenGL 4.6 context.
	DriverGL Driver = "gl"
	// DriverSoft uses the headless software context.
	DriverSoft Driver = "soft"
)

// Config is everything a run needs.
type Config struct {
	// Binary is an explicit module path. When empty the path is Variant's
	// candidate file inside Dir.
	Binary  string
	Variant Variant
	Dir     string

	Entry  string
	Stage  string
	Driver Driver

	CheckStatus bool
	Strict      bool
	Verbose     bool
	NoColor     bool

	Window glapi.WindowConfig
	Limits softgl.Limits
}

// Default returns the configuration of a plain run: the good candidate in
// the working directory, entry point main_ok, fragment stage, real GL.
func Default() Config {
	return Config{
		Variant: VariantGood,
		Dir:     ".",
		Entry:   fixture.EntryPoint,
		Stage:   glapi.StageFragment.String(),
		Driver:  DriverGL,
		Window:  glapi.DefaultWindowConfig(),
		Limits:  softgl.DefaultLimits(),
	}
}

// EnvPrefix starts every environment variable ApplyEnv reads.
const EnvPrefix = "GLSPV_"

// ApplyEnv overrides fields from environment variables found through
// lookup, normally os.LookupEnv. Unparseable values are reported together.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
			return
		}
		*dst = b
	}
	integer := func(key string, dst *int) {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
			return
		}
		*dst = n
	}
	limit := func(key string, dst *uint32) {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			return
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
			return
		}
		*dst = uint32(n)
	}

	str("BINARY", &c.Binary)
	var variant, driver string
	str("VARIANT", &variant)
	if variant != "" {
		c.Variant = Variant(strings.ToLower(variant))
	}
	str("DIR", &c.Dir)
	str("ENTRY", &c.Entry)
	str("STAGE", &c.Stage)
	str("DRIVER", &driver)
	if driver != "" {
		c.Driver = Driver(strings.ToLower(driver))
	}
	boolean("CHECK_STATUS", &c.CheckStatus)
	boolean("STRICT", &c.Strict)
	boolean("VERBOSE", &c.Verbose)
	boolean("NO_COLOR", &c.NoColor)

	integer("WIDTH", &c.Window.Width)
	integer("HEIGHT", &c.Window.Height)
	str("TITLE", &c.Window.Title)
	integer("SAMPLES", &c.Window.Samples)
	integer("STENCIL_BITS", &c.Window.StencilBits)
	integer("GL_MAJOR", &c.Window.MajorVersion)
	integer("GL_MINOR", &c.Window.MinorVersion)
	boolean("DECORATED", &c.Window.Decorated)
	boolean("HIDDEN", &c.Window.Hidden)

	limit("MAX_UNIFORM_BINDINGS", &c.Limits.MaxUniformBufferBindings)
	limit("MAX_STORAGE_BINDINGS", &c.Limits.MaxShaderStorageBufferBindings)
	limit("MAX_TEXTURE_UNITS", &c.Limits.MaxCombinedTextureImageUnits)

	return errors.Join(errs...)
}

// BinaryPath returns the module to load: Binary when set, otherwise the
// Variant candidate inside Dir.
func (c Config) BinaryPath() (string, error) {
	if c.Binary != "" {
		return c.Binary, nil
	}
	name, err := c.Variant.File()
	if err != nil {
		return "", err
	}
	return filepath.Join(c.Dir, name), nil
}

// ShaderStage parses Stage.
func (c Config) ShaderStage() (glapi.Stage, error) {
	return glapi.ParseStage(c.Stage)
}

// Validate checks the configuration before any resource is acquired.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.BinaryPath(); err != nil {
		errs = append(errs, err)
	}
	if c.Entry == "" {
		errs = append(errs, errors.New("entry point name is empty"))
	}
	if _, err := c.ShaderStage(); err != nil {
		errs = append(errs, err)
	}
	switch c.Driver {
	case DriverGL:
		if err := c.Window.Validate(); err != nil {
			errs = append(errs, err)
		}
	case DriverSoft:
	default:
		errs = append(errs, fmt.Errorf("unknown driver %q (want gl or soft)", string(c.Driver)))
	}
	return errors.Join(errs...)
}
