package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBox(t *testing.T) {
	box := renderBox("strhash", "strhash version dev\nsnapshot format 1.0.0")

	assert.Contains(t, box, "strhash")
	assert.Contains(t, box, "strhash version dev")
	assert.Contains(t, box, "snapshot format 1.0.0")
	assert.Contains(t, box, "╭")
	assert.Contains(t, box, "╯")
}
