//go:build !nogl

package main

import (
	"github.com/gogpu/glspv/glapi"
	"github.com/gogpu/glspv/glapi/glfwgl"
)

func openGL(cfg glapi.WindowConfig) (glapi.Context, func(), error) {
	ctx, err := glfwgl.Open(cfg)
	if err != nil {
		return nil, noopCleanup, err
	}
	return ctx, ctx.Close, nil
}
