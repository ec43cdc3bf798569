package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommaList(t *testing.T) {
	t.Parallel()

	assert.Empty(t, parseCommaList(""))
	assert.Equal(t, []string{"a/b"}, parseCommaList("a/b"))
	assert.Equal(t, []string{"a/b", "c/d=e@f.g"}, parseCommaList(" a/b , c/d=e@f.g ,"))
}
