// Package slideshow is the indexed image carousel opened from a signpost.
package slideshow

import "github.com/milk9111/trainride/signpost"

// MaxIndicators is how many slide indicator dots are shown for one range.
const MaxIndicators = 10

// Session is the slideshow's UI state. The slide last viewed for each
// signpost is kept across open and close for the lifetime of the session.
type Session struct {
	open       bool
	rng        signpost.SlideRange
	current    int
	lastViewed map[int]int
}

func NewSession() *Session {
	return &Session{lastViewed: make(map[int]int)}
}

// Open shows the range, resuming at the slide last viewed for its signpost.
func (s *Session) Open(r signpost.SlideRange) {
	s.open = true
	s.rng = r
	s.current = r.Start
	if last, ok := s.lastViewed[r.ID]; ok && r.Contains(last) {
		s.current = last
	}
	s.remember()
}

func (s *Session) Close() {
	s.open = false
}

func (s *Session) IsOpen() bool {
	return s.open
}

func (s *Session) Range() signpost.SlideRange {
	return s.rng
}

func (s *Session) SignpostID() int {
	return s.rng.ID
}

func (s *Session) Current() int {
	return s.current
}

// Position returns the 1-based index of the current slide within its range
// and the range length.
func (s *Session) Position() (index, total int) {
	return s.current - s.rng.Start + 1, s.rng.Len()
}

// Next moves forward, wrapping from the last slide to the first.
func (s *Session) Next() bool {
	if !s.open {
		return false
	}
	if s.current >= s.rng.End {
		s.current = s.rng.Start
	} else {
		s.current++
	}
	s.remember()
	return true
}

// Prev moves back, wrapping from the first slide to the last.
func (s *Session) Prev() bool {
	if !s.open {
		return false
	}
	if s.current <= s.rng.Start {
		s.current = s.rng.End
	} else {
		s.current--
	}
	s.remember()
	return true
}

// GoTo jumps to a slide number. Targets outside the range are ignored.
func (s *Session) GoTo(slide int) bool {
	if !s.open || !s.rng.Contains(slide) {
		return false
	}
	s.current = slide
	s.remember()
	return true
}

// Digit jumps to the n-th slide of the range, 1-based.
func (s *Session) Digit(n int) bool {
	return s.GoTo(s.rng.Start + n - 1)
}

// Click navigates from a click on the slide image: the left half goes back,
// the right half goes forward.
func (s *Session) Click(x, width float64) bool {
	if x < width/2 {
		return s.Prev()
	}
	return s.Next()
}

// Indicators returns the slide numbers that get an indicator dot and how
// many more slides the range holds beyond them.
func (s *Session) Indicators() (slides []int, more int) {
	total := s.rng.Len()
	n := min(total, MaxIndicators)
	for i := 0; i < n; i++ {
		slides = append(slides, s.rng.Start+i)
	}
	return slides, total - n
}

func (s *Session) remember() {
	if s.lastViewed == nil {
		s.lastViewed = make(map[int]int)
	}
	s.lastViewed[s.rng.ID] = s.current
}
