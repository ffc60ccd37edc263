package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"ferric/internal/source"
)

// Cursor is a byte position inside one file.
type Cursor struct {
	File *source.File
	Off  uint32
}

// NewCursor creates a cursor at the start of the file.
func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("file content length overflow: %w", err))
	}
	return Cursor{File: f}
}

func (c *Cursor) limit() uint32 {
	return uint32(len(c.File.Content)) // #nosec G115 -- checked in NewCursor
}

// EOF reports whether the cursor ran past the content.
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit()
}

// Peek reads the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// PeekAt reads the byte n positions ahead, or 0 past EOF.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.limit() {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Bump advances one byte.
func (c *Cursor) Bump() {
	if !c.EOF() {
		c.Off++
	}
}

// Slice returns the content between two offsets.
func (c *Cursor) Slice(start, end uint32) string {
	return string(c.File.Content[start:end])
}
