// Command glspv loads a precompiled SPIR-V shader, specializes its entry
// point on an OpenGL 4.6 context and prints every driver diagnostic.
//
// Usage:
//
//	glspv run [flags]
//	glspv inspect <file.spv>
//	glspv fixtures [--dir d]
//	glspv version
//
// Examples:
//
//	glspv fixtures --dir shaders            # Write good.spv and bad.spv
//	glspv run --dir shaders --variant bad   # Specialize bad.spv on a real context
//	glspv run --driver soft --strict        # Headless check, exit 2 on errors
//	glspv inspect shaders/bad.spv           # Show entry points and bindings
package main

import (
	"errors"
	"io"
	"os"
	"runtime"

	"github.com/gogpu/glspv/internal/console"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv))
}

// exitError carries a non-zero exit status that is not a failure to report.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "exit status" }

func execute(args []string, stdout, stderr io.Writer, lookupEnv func(string) (string, bool)) int {
	root := newRootCommand(stdout, stderr, lookupEnv)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	console.New(stdout, stderr, false, false).Errorf("%v", err)
	return 1
}
