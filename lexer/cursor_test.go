package lexer

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_AdvanceTracksPosition(t *testing.T) {
	c := NewCursor("ab\nc")

	assert.Equal(t, 1, c.Line())
	assert.Equal(t, 1, c.Column())
	assert.Equal(t, rune(0), c.Previous())

	assert.Equal(t, 'a', c.Advance())
	assert.Equal(t, 'b', c.Advance())
	assert.Equal(t, 3, c.Column())

	assert.Equal(t, '\n', c.Advance())
	assert.Equal(t, 2, c.Line())
	assert.Equal(t, 1, c.Column())

	assert.Equal(t, 'c', c.Advance())
	assert.Equal(t, 'c', c.Previous())
	assert.True(t, c.AtEnd())
	assert.Equal(t, 2, c.Column())
}

func TestCursor_AdvancePastEndPanics(t *testing.T) {
	c := NewCursor("x")
	c.Advance()
	require.True(t, c.AtEnd())
	assert.Panics(t, func() { c.Advance() })
}

func TestCursor_Peek(t *testing.T) {
	c := NewCursor("xyz")

	assert.Equal(t, 'x', c.Peek(0))
	assert.Equal(t, 'z', c.Peek(2))
	assert.Equal(t, rune(0), c.Peek(3))
	assert.Equal(t, rune(0), c.Peek(-1))
	assert.Equal(t, 1, c.Column(), "peeking consumes nothing")
}

func TestCursor_Match(t *testing.T) {
	c := NewCursor("1a")

	assert.False(t, c.Match(unicode.IsLetter))
	assert.True(t, c.Match(unicode.IsDigit))
	assert.False(t, c.MatchRune('b'))
	assert.True(t, c.MatchRune('a'))
	assert.False(t, c.MatchRune('a'), "nothing left to match")
	assert.True(t, c.AtEnd())
}

func TestCursor_Runes(t *testing.T) {
	c := NewCursor("é→")

	assert.Equal(t, 'é', c.Advance())
	assert.Equal(t, 2, c.Column(), "columns count characters, not bytes")
	assert.Equal(t, '→', c.Advance())
	assert.True(t, c.AtEnd())
}
