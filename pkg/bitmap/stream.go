package bitmap

import (
	"weatherpaper/pkg/tricolor"
)

// Assignment maps the two bit values of a packed bitmap to inks: 1 is
// paper, 0 is ink.
type Assignment struct {
	Ink   tricolor.Color
	Paper tricolor.Color
}

// Swap returns the assignment with ink and paper exchanged.
func (a Assignment) Swap() Assignment {
	return Assignment{Ink: a.Paper, Paper: a.Ink}
}

// BlackOnWhite is the assignment icons are drawn with.
var BlackOnWhite = Assignment{Ink: tricolor.Black, Paper: tricolor.White}

// Stream decodes a Packed bitmap pixel by pixel. It is single use: once Next
// reports false the stream stays exhausted.
type Stream struct {
	src    *Packed
	colors Assignment
	index  int
	offset uint
}

func NewStream(p *Packed, a Assignment) *Stream {
	return &Stream{src: p, colors: a}
}

// Next returns the next pixel in row-major order.
func (s *Stream) Next() (tricolor.Color, bool) {
	if s.offset == 8 {
		s.offset = 0
		s.index++
	}
	if s.index >= len(s.src.data) {
		return 0, false
	}

	bit := (s.src.data[s.index] >> (7 - s.offset)) & 1
	s.offset++

	if bit == 1 {
		return s.colors.Paper, true
	}
	return s.colors.Ink, true
}

func (s *Stream) Width() int {
	return s.src.Width()
}

func (s *Stream) Height() int {
	return s.src.Height()
}

// Collect drains s.
func Collect(s *Stream) []tricolor.Color {
	out := make([]tricolor.Color, 0, s.src.Len())
	for c, ok := s.Next(); ok; c, ok = s.Next() {
		out = append(out, c)
	}
	return out
}
