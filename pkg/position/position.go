// Package position maps byte offsets in source text to editor-facing
// line and column places.
package position

import "fmt"

// Place is a zero-based line and character pair.
type Place struct {
	Line      int
	Character int
}

// Range spans from Start to End.
type Range struct {
	Start Place
	End   Place
}

// RawPosition represents a position in the source text
type RawPosition struct {
	// Offset is the byte offset in the source text
	Offset int
	// Text is the actual text at this position
	Text string
}

func New(text string, offset int) RawPosition {
	return RawPosition{Text: text, Offset: offset}
}

// Length returns the length of the text at this position
func (me RawPosition) Length() int {
	return len(me.Text)
}

// GetEndPosition returns the zero-length position just past the text.
func (me RawPosition) GetEndPosition() RawPosition {
	return RawPosition{Offset: me.Offset + me.Length()}
}

// HasRangeOverlapWith reports whether the byte spans of the two
// positions overlap. A zero-length position overlaps when it falls
// inside the other span, boundaries included.
func (me RawPosition) HasRangeOverlapWith(other RawPosition) bool {
	otherStart := other.Offset
	otherEnd := otherStart + other.Length()

	start := me.Offset
	end := start + me.Length()

	if me.Length() == 0 {
		return start >= otherStart && start <= otherEnd
	}
	if other.Length() == 0 {
		return otherStart >= start && otherStart <= end
	}

	return otherStart < end && otherEnd > start
}

// GetLineAndColumn calculates the line and column number for this
// position in src. Returns zero-based line and column numbers.
func (me RawPosition) GetLineAndColumn(src string) (line, col int) {
	if me.Offset == 0 {
		return 0, 0
	}

	// Count newlines up to the offset to get the line number.
	line = 0
	lastNewline := -1
	for i := 0; i < me.Offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			lastNewline = i
		}
	}

	// Column is just the distance from the last newline.
	col = me.Offset - lastNewline - 1

	return line, col
}

// GetRange calculates the zero-based line/column range covering the
// position's text.
func (me RawPosition) GetRange(src string) Range {
	startLine, startCol := me.GetLineAndColumn(src)
	endLine, endCol := me.GetEndPosition().GetLineAndColumn(src)
	return Range{
		Start: Place{Line: startLine, Character: startCol},
		End:   Place{Line: endLine, Character: endCol},
	}
}

func (me RawPosition) String() string {
	return fmt.Sprintf("%s@%d", me.Text, me.Offset)
}
