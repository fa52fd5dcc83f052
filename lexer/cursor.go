package lexer

// Cursor is a positioned iterator over source text. It knows nothing about
// tokens; it only hands out characters and tracks the 1-based line and column
// of the next one.
type Cursor struct {
	src    []rune
	index  int
	line   int
	column int
}

// NewCursor returns a cursor positioned at the first character of src.
func NewCursor(src string) *Cursor {
	return &Cursor{src: []rune(src), line: 1, column: 1}
}

// Line is the line of the next character to be consumed.
func (c *Cursor) Line() int { return c.line }

// Column is the column of the next character to be consumed.
func (c *Cursor) Column() int { return c.column }

// AtEnd reports whether every character has been consumed.
func (c *Cursor) AtEnd() bool { return c.index >= len(c.src) }

// Advance consumes and returns the next character.
// Callers must check AtEnd first; advancing past the end panics.
func (c *Cursor) Advance() rune {
	if c.AtEnd() {
		panic("lexer: advance past the end of the source")
	}
	r := c.src[c.index]
	c.index++
	c.step(r)
	return r
}

// Match consumes the next character only if it satisfies pred.
func (c *Cursor) Match(pred func(rune) bool) bool {
	if c.AtEnd() || !pred(c.src[c.index]) {
		return false
	}
	c.Advance()
	return true
}

// MatchRune consumes the next character only if it equals want.
func (c *Cursor) MatchRune(want rune) bool {
	return c.Match(func(r rune) bool { return r == want })
}

// Peek returns the character offset positions ahead of the next one without
// consuming anything. Past the end it returns 0.
func (c *Cursor) Peek(offset int) rune {
	i := c.index + offset
	if i < 0 || i >= len(c.src) {
		return 0
	}
	return c.src[i]
}

// Previous returns the last consumed character, or 0 before the first Advance.
func (c *Cursor) Previous() rune {
	if c.index == 0 {
		return 0
	}
	return c.src[c.index-1]
}

func (c *Cursor) step(r rune) {
	if isNewline(r) {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
}
