package signpost

import (
	"fmt"
	"log"
	"sort"
)

// TotalSlides is the number of slide images shipped with the scene.
const TotalSlides = 36

// SlideRange is the inclusive span of slides a signpost opens.
type SlideRange struct {
	ID    int    `yaml:"id"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
	Title string `yaml:"title"`
}

func (r SlideRange) Len() int {
	return r.End - r.Start + 1
}

func (r SlideRange) Contains(slide int) bool {
	return slide >= r.Start && slide <= r.End
}

// DisplayTitle falls back to a generic label for untitled ranges.
func (r SlideRange) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return fmt.Sprintf("Bulletin Board %d", r.ID)
}

// Table maps signpost ids to slide ranges.
type Table []SlideRange

// DefaultTable is the built-in slide mapping.
var DefaultTable = Table{
	{ID: 0, Start: 1, End: 5, Title: "Introduction"},
	{ID: 1, Start: 6, End: 11, Title: "Interwar/mobilizing militarism in the region"},
	{ID: 2, Start: 12, End: 13, Title: "Constructing Legitimacy"},
	{ID: 3, Start: 14, End: 16, Title: "Pan-Asianism and racial harmony"},
	{ID: 4, Start: 17, End: 20, Title: "Soft power in Occupation"},
	{ID: 5, Start: 21, End: 26, Title: "Visions of Empire"},
	{ID: 6, Start: 27, End: 31, Title: "Resistance"},
	{ID: 7, Start: 32, End: 33, Title: "Reflections"},
	{ID: 8, Start: 34, End: 36, Title: "Conclusions"},
}

// Lookup returns the slide range for a signpost id.
func (t Table) Lookup(id int) (SlideRange, bool) {
	for _, r := range t {
		if r.ID == id {
			return r, true
		}
	}
	return SlideRange{}, false
}

// Validate reports whether the ranges are disjoint and cover slides 1..total
// exactly once. Problems are logged, never returned.
func (t Table) Validate(total int) bool {
	owner := make(map[int]int, total)
	ok := true
	for _, r := range t {
		if r.Start > r.End {
			log.Printf("signpost: range for signpost %d is empty (%d-%d)", r.ID, r.Start, r.End)
			ok = false
			continue
		}
		for s := r.Start; s <= r.End; s++ {
			if prev, dup := owner[s]; dup {
				log.Printf("signpost: slide %d is used by signposts %d and %d", s, prev, r.ID)
				ok = false
				continue
			}
			owner[s] = r.ID
		}
	}
	for s := 1; s <= total; s++ {
		if _, used := owner[s]; !used {
			log.Printf("signpost: slide %d is not assigned to any signpost", s)
			ok = false
		}
	}
	var stray []int
	for s := range owner {
		if s < 1 || s > total {
			stray = append(stray, s)
		}
	}
	if len(stray) > 0 {
		sort.Ints(stray)
		log.Printf("signpost: slides %v are outside 1-%d", stray, total)
		ok = false
	}
	return ok
}
