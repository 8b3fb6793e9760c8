package card

import (
	"regexp"
	"strings"
)

// RawCard is one contiguous labeled segment of the input: the line
// bearing the label and every following line up to the next label.
type RawCard struct {
	Label string
	Level int
	Lines []string

	// Start and Stop are the half-open line offsets of the card within
	// the original input, kept for diagnostics.
	Start int
	Stop  int
}

// Stream is the ordered pending-card queue produced by Segment. Cards
// are consumed front-to-back, each at most once.
type Stream struct {
	cards []RawCard
}

// Len returns the number of pending cards.
func (s *Stream) Len() int { return len(s.cards) }

// Peek returns the next pending card without consuming it.
func (s *Stream) Peek() (RawCard, bool) {
	if len(s.cards) == 0 {
		return RawCard{}, false
	}
	return s.cards[0], true
}

// Pop removes and returns the next pending card.
func (s *Stream) Pop() (RawCard, bool) {
	if len(s.cards) == 0 {
		return RawCard{}, false
	}
	rc := s.cards[0]
	s.cards = s.cards[1:]
	return rc, true
}

// labelPattern matches a card label at the leading column: the single
// top-level " 0v " marker, or a one-or-two-digit level plus the "d"
// suffix, blank padded to four columns (" 1d ", "10d ").
var labelPattern = regexp.MustCompile(`^ 0v |^[ 1-9][0-9]d `)

// Segment scans input lines for card labels and cuts the stream into
// raw cards in file order. It does not interpret card content.
//
// Lines must already be split on file line boundaries with terminators
// removed. A zero-line input fails with ErrEmptyInput; a line wider
// than limit fails with ErrLineTooWide (limit <= 0 selects
// DefaultLineWidth).
func Segment(lines []string, limit int) (*Stream, error) {
	if limit <= 0 {
		limit = DefaultLineWidth
	}
	if len(lines) == 0 {
		return nil, cardErr("", "", -1, ErrEmptyInput, "")
	}
	for i, ln := range lines {
		if len(ln) > limit {
			return nil, cardErr("", "", i, ErrLineTooWide, "%d columns exceeds limit %d", len(ln), limit)
		}
	}

	type match struct {
		label string
		line  int
	}
	var matches []match
	for i, ln := range lines {
		if m := labelPattern.FindString(ln); m != "" {
			matches = append(matches, match{label: strings.TrimSpace(m), line: i})
		}
	}

	stream := &Stream{cards: make([]RawCard, 0, len(matches))}
	for i, m := range matches {
		stop := len(lines)
		if i+1 < len(matches) {
			stop = matches[i+1].line
		}
		stream.cards = append(stream.cards, RawCard{
			Label: m.label,
			Level: labelLevel(m.label),
			Lines: lines[m.line:stop],
			Start: m.line,
			Stop:  stop,
		})
	}
	return stream, nil
}

// labelLevel returns the structural depth implied by the label's
// leading digits ("0v" → 0, "5d" → 5, "10d" → 10).
func labelLevel(label string) int {
	n := 0
	for i := 0; i < len(label) && label[i] >= '0' && label[i] <= '9'; i++ {
		n = n*10 + int(label[i]-'0')
	}
	return n
}
