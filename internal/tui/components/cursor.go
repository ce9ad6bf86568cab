package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// cursor tracks a selection and scroll window over a list of n rows
type cursor struct {
	pos    int
	offset int
	height int
}

func (c *cursor) clamp(n int) {
	if c.pos >= n {
		c.pos = n - 1
	}
	if c.pos < 0 {
		c.pos = 0
	}
	if c.height < 1 {
		c.height = 1
	}
	if c.pos < c.offset {
		c.offset = c.pos
	}
	if c.pos >= c.offset+c.height {
		c.offset = c.pos - c.height + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

func (c *cursor) reset() {
	c.pos = 0
	c.offset = 0
}

// handleKey moves the cursor for list navigation keys and reports whether
// the key was consumed
func (c *cursor) handleKey(msg tea.KeyMsg, keys ListKeyMap, n int) bool {
	switch {
	case key.Matches(msg, keys.Up):
		c.pos--
	case key.Matches(msg, keys.Down):
		c.pos++
	case key.Matches(msg, keys.Home):
		c.pos = 0
	case key.Matches(msg, keys.End):
		c.pos = n - 1
	default:
		return false
	}
	c.clamp(n)
	return true
}

// window returns the visible [start, end) range
func (c cursor) window(n int) (int, int) {
	end := c.offset + c.height
	if end > n {
		end = n
	}
	return c.offset, end
}
