package glfwgl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoolHint(t *testing.T) {
	assert.Equal(t, 1, boolHint(true))
	assert.Equal(t, 0, boolHint(false))
}
