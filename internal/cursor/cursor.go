// Package cursor provides a scan position over the runes of a regex pattern.
//
// A Cursor never fails: reads past either end of the text yield None and
// false, and callers must check before using the rune.
package cursor

// None is returned by Current and Peek when the position is out of range.
const None rune = -1

// Cursor is a stateful read position over pattern text.
// Invariant: 0 <= pos <= len(text).
type Cursor struct {
	text []rune
	pos  int
}

// New creates a cursor positioned at the start of s.
func New(s string) *Cursor {
	return &Cursor{text: []rune(s)}
}

// Current returns the rune under the cursor.
func (c *Cursor) Current() (rune, bool) {
	return c.Peek(0)
}

// Is reports whether the current rune is r.
func (c *Cursor) Is(r rune) bool {
	cur, ok := c.Current()
	return ok && cur == r
}

// Peek returns the rune off positions ahead of the cursor without consuming it.
func (c *Cursor) Peek(off int) (rune, bool) {
	i := c.pos + off
	if i < 0 || i >= len(c.text) {
		return None, false
	}
	return c.text[i], true
}

// PeekIs reports whether the rune off positions ahead is r.
func (c *Cursor) PeekIs(off int, r rune) bool {
	p, ok := c.Peek(off)
	return ok && p == r
}

// Next consumes one rune and returns it, or None at the end of text.
func (c *Cursor) Next() rune {
	r, _ := c.Current()
	c.Advance(1)
	return r
}

// Advance moves the cursor n runes forward, clamped to the end of text.
func (c *Cursor) Advance(n int) {
	c.pos += n
	if c.pos > len(c.text) {
		c.pos = len(c.text)
	}
}

// Seek moves the cursor to an absolute position, clamped to the text.
func (c *Cursor) Seek(pos int) {
	switch {
	case pos < 0:
		c.pos = 0
	case pos > len(c.text):
		c.pos = len(c.text)
	default:
		c.pos = pos
	}
}

// More reports whether any runes remain.
func (c *Cursor) More() bool {
	return c.pos < len(c.text)
}

// MoreInGroup reports whether runes remain before the next alternation or
// group delimiter at the current level.
func (c *Cursor) MoreInGroup() bool {
	r, ok := c.Current()
	return ok && r != '|' && r != ')'
}

// Pos returns the current position in runes.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the length of the text in runes.
func (c *Cursor) Len() int {
	return len(c.text)
}

// Remaining returns the unconsumed suffix of the text.
func (c *Cursor) Remaining() string {
	return string(c.text[c.pos:])
}

// Slice returns the text between two rune positions.
func (c *Cursor) Slice(from, to int) string {
	return string(c.text[from:to])
}

// Text returns the whole pattern text.
func (c *Cursor) Text() string {
	return string(c.text)
}
