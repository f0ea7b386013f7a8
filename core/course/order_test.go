package course

import (
	"math/rand"
	"testing"
)

func TestParseTitleNumbers(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		want   TitleNumbers
		wantOk bool
	}{
		{name: "session and class", title: "Sesión 2, Clase 3", want: TitleNumbers{Session: 2, Class: 3}, wantOk: true},
		{name: "no accents", title: "Sesion 10 Clase 1", want: TitleNumbers{Session: 10, Class: 1}, wantOk: true},
		{name: "numbers glued to words", title: "Sesión2-Clase12: Repaso", want: TitleNumbers{Session: 2, Class: 12}, wantOk: true},
		{name: "single number", title: "Clase 7", want: TitleNumbers{Session: 7}, wantOk: true},
		{name: "extra numbers ignored", title: "Sesión 1 Clase 2 (parte 3)", want: TitleNumbers{Session: 1, Class: 2}, wantOk: true},
		{name: "no numbers", title: "Introducción", wantOk: false},
		{name: "empty title", title: "", wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTitleNumbers(tt.title)
			if ok != tt.wantOk {
				t.Fatalf("ParseTitleNumbers() ok = %v, want %v", ok, tt.wantOk)
			}
			if got != tt.want {
				t.Errorf("ParseTitleNumbers() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSortLessons(t *testing.T) {
	tests := []struct {
		name    string
		lessons []Lesson
		wantIDs []int
	}{
		{
			name: "session then class",
			lessons: []Lesson{
				{ID: 3, Title: "Sesión 2, Clase 1"},
				{ID: 1, Title: "Sesión 1 Clase 1"},
				{ID: 2, Title: "Sesión 1 Clase 2"},
			},
			wantIDs: []int{1, 2, 3},
		},
		{
			name: "title numbers beat stored order",
			lessons: []Lesson{
				{ID: 1, Order: 5, Title: "Sesión 3 Clase 1"},
				{ID: 2, Order: 1, Title: "Sesión 1 Clase 1"},
			},
			wantIDs: []int{2, 1},
		},
		{
			name: "un-numbered titles last, by stored order then id",
			lessons: []Lesson{
				{ID: 5, Order: 2, Title: "Cierre"},
				{ID: 4, Order: 2, Title: "Bienvenida"},
				{ID: 3, Order: 1, Title: "Introducción"},
				{ID: 1, Title: "Sesión 9 Clase 9"},
			},
			wantIDs: []int{1, 3, 4, 5},
		},
		{
			name: "identical numbers tie-broken by id",
			lessons: []Lesson{
				{ID: 8, Title: "Sesión 1 Clase 1 (bis)"},
				{ID: 2, Title: "Sesión 1, Clase 1"},
			},
			wantIDs: []int{2, 8},
		},
		{
			name:    "empty set",
			lessons: nil,
			wantIDs: []int{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortLessons(tt.lessons)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("SortLessons() len = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("SortLessons()[%d].ID = %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}

// The canonical order must not depend on the order lessons come out of the DB.
func TestSortLessonsDeterministic(t *testing.T) {
	lessons := []Lesson{
		{ID: 1, Title: "Sesión 1 Clase 1"},
		{ID: 2, Title: "Sesión 1 Clase 2"},
		{ID: 3, Title: "Sesión 2 Clase 1"},
		{ID: 4, Title: "Sesión 2 Clase 2"},
		{ID: 5, Order: 1, Title: "Material adicional"},
		{ID: 6, Order: 2, Title: "Despedida"},
	}
	want := SortLessons(lessons)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]Lesson, len(lessons))
		copy(shuffled, lessons)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := SortLessons(shuffled)
		for j := range want {
			if got[j].ID != want[j].ID {
				t.Fatalf("run %d: SortLessons()[%d].ID = %d, want %d", i, j, got[j].ID, want[j].ID)
			}
		}
	}
}

func TestNextLesson(t *testing.T) {
	ordered := SortLessons([]Lesson{
		{ID: 1, Title: "Sesión 1 Clase 1"},
		{ID: 2, Title: "Sesión 1 Clase 2"},
		{ID: 3, Title: "Sesión 2 Clase 1"},
	})

	tests := []struct {
		name     string
		lessonID int
		wantID   int
		wantOk   bool
	}{
		{name: "first lesson", lessonID: 1, wantID: 2, wantOk: true},
		{name: "middle lesson", lessonID: 2, wantID: 3, wantOk: true},
		{name: "last lesson", lessonID: 3, wantOk: false},
		{name: "unknown lesson", lessonID: 99, wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextLesson(ordered, tt.lessonID)
			if ok != tt.wantOk {
				t.Fatalf("NextLesson() ok = %v, want %v", ok, tt.wantOk)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("NextLesson().ID = %d, want %d", got.ID, tt.wantID)
			}
		})
	}
}
