package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	v := false
	p := Ptr(v)
	assert.False(t, *p)

	*p = true
	assert.False(t, v, "Ptr must copy its argument")
}
