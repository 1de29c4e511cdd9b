//go:build nogl

package main

import (
	"errors"

	"github.com/gogpu/glspv/glapi"
)

func openGL(glapi.WindowConfig) (glapi.Context, func(), error) {
	return nil, noopCleanup, errors.New("built with the nogl tag: use --driver soft")
}
