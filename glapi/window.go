package glapi

import (
	"errors"
	"fmt"
)

// WindowConfig holds the window and framebuffer hints.
type WindowConfig struct {
	Width, Height int
	Title         string

	// MajorVersion and MinorVersion select the context version. SPIR-V
	// ingestion needs 4.6.
	MajorVersion, MinorVersion int

	Samples     int
	StencilBits int
	Decorated   bool
	Hidden      bool
}

// DefaultWindowConfig returns an 800x800 decorated window with a 4.6 core
// context, an 8-bit stencil buffer and 4x multisampling.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:        800,
		Height:       800,
		Title:        "Circle does Shadertoy",
		MajorVersion: 4,
		MinorVersion: 6,
		Samples:      4,
		StencilBits:  8,
		Decorated:    true,
	}
}

// Validate reports hints GLFW would reject or that cannot load SPIR-V.
func (c WindowConfig) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.MajorVersion < 4 || (c.MajorVersion == 4 && c.MinorVersion < 6) {
		errs = append(errs, fmt.Errorf("OpenGL %d.%d cannot load SPIR-V, need 4.6", c.MajorVersion, c.MinorVersion))
	}
	if c.Samples < 0 || c.StencilBits < 0 {
		errs = append(errs, errors.New("samples and stencil bits must not be negative"))
	}
	return errors.Join(errs...)
}
