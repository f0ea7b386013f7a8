package course

import (
	"regexp"
	"sort"
	"strconv"
)

// Lesson titles encode their position as session/class numbers
// (e.g. "Sesión 2, Clase 3"). The stored order field proved unreliable, so
// the numbers parsed from the title are the single source of truth for
// "what comes next"; the stored order is only a fallback for titles that
// carry no numbers at all.

var titleNumRegex = regexp.MustCompile(`\d+`)

// TitleNumbers is a lesson's position as parsed from its title.
type TitleNumbers struct {
	Session int
	Class   int
}

// ParseTitleNumbers extracts the session and class-within-session numbers
// from a lesson title. A title with a single number is treated as session
// only. ok is false when the title contains no numbers.
func ParseTitleNumbers(title string) (nums TitleNumbers, ok bool) {
	matches := titleNumRegex.FindAllString(title, 2)
	if len(matches) == 0 {
		return TitleNumbers{}, false
	}

	session, err := strconv.Atoi(matches[0])
	if err != nil {
		return TitleNumbers{}, false // number too large to matter
	}
	nums.Session = session

	if len(matches) > 1 {
		if class, err := strconv.Atoi(matches[1]); err == nil {
			nums.Class = class
		}
	}
	return nums, true
}

// SortLessons returns the canonical ordering of a course's lessons:
// parsed (session, class) ascending, then lessons with un-parseable titles
// ordered by their stored order, with IDs breaking all ties. The input
// slice is not modified and the result does not depend on the input order.
func SortLessons(lessons []Lesson) []Lesson {
	sorted := make([]Lesson, len(lessons))
	copy(sorted, lessons)

	sort.Slice(sorted, func(i, j int) bool {
		li, lj := sorted[i], sorted[j]
		ni, oki := ParseTitleNumbers(li.Title)
		nj, okj := ParseTitleNumbers(lj.Title)

		switch {
		case oki && okj:
			if ni.Session != nj.Session {
				return ni.Session < nj.Session
			}
			if ni.Class != nj.Class {
				return ni.Class < nj.Class
			}
		case oki != okj:
			return oki // numbered lessons sort before un-numbered ones
		default:
			if li.Order != lj.Order {
				return li.Order < lj.Order
			}
		}
		return li.ID < lj.ID
	})
	return sorted
}

// NextLesson returns the lesson following lessonID in the canonical order,
// or false when lessonID is the last lesson (or not part of the set).
func NextLesson(ordered []Lesson, lessonID int) (Lesson, bool) {
	for i, lsn := range ordered {
		if lsn.ID == lessonID {
			if i+1 < len(ordered) {
				return ordered[i+1], true
			}
			return Lesson{}, false
		}
	}
	return Lesson{}, false
}
