package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/aulavivo/backend/core/progress"
)

func Test_courseAPI_retrieve(t *testing.T) {
	crs, _, _ := seedCourse(t, "Canto moderno", []string{"Sesión 1, Clase 1"}, "")

	tests := []httpTest{
		{
			name:     "not found",
			path:     "/v1/courses/12345",
			wantCode: http.StatusNotFound,
			wantData: marshalObj(t, httpErr{Error: "course not found"}),
		},
		{
			name:     "bad id",
			path:     "/v1/courses/lol",
			wantCode: http.StatusNotFound,
			wantData: marshalObj(t, httpErr{Error: "not found"}),
		},
		{
			name:     "ok",
			path:     fmt.Sprintf("/v1/courses/%d", crs.ID),
			wantCode: http.StatusOK,
			wantData: marshalObj(t, crs),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_courseAPI_enroll(t *testing.T) {
	crs, lessons, _ := seedCourse(t, "Batería", []string{"Sesión 1, Clase 1", "Sesión 1, Clase 2"}, "")
	userID := 100

	tests := []httpTest{
		{
			name:     "missing userId",
			path:     fmt.Sprintf("/v1/courses/%d/enroll", crs.ID),
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"userId": "this field is required"}),
		},
		{
			name:     "unknown course",
			path:     "/v1/courses/12345/enroll",
			body:     marshalObj(t, map[string]int{"userId": userID}),
			wantCode: http.StatusNotFound,
			wantData: marshalObj(t, httpErr{Error: "course not found"}),
		},
		{
			name:     "ok",
			path:     fmt.Sprintf("/v1/courses/%d/enroll", crs.ID),
			body:     marshalObj(t, map[string]int{"userId": userID}),
			wantCode: http.StatusCreated,
		},
		{
			name:     "re-enroll is harmless",
			path:     fmt.Sprintf("/v1/courses/%d/enroll", crs.ID),
			body:     marshalObj(t, map[string]int{"userId": userID}),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}

			checkCode(t, tt.wantCode, rec)
			var view progress.CourseProgressView
			decodeBody(t, rec, &view)
			if view.UserID != userID {
				t.Errorf("view.UserID = %d, want %d", view.UserID, userID)
			}
			if len(view.Lessons) != len(lessons) {
				t.Fatalf("len(view.Lessons) = %d, want %d", len(view.Lessons), len(lessons))
			}
			if view.Lessons[0].Record.Locked {
				t.Error("first lesson should start unlocked")
			}
			if !view.Lessons[1].Record.Locked {
				t.Error("second lesson should start locked")
			}
		})
	}
}

func Test_courseAPI_lessons(t *testing.T) {
	crs, _, _ := seedCourse(t, "Violín", []string{"Sesión 2, Clase 1", "Sesión 1, Clase 1"}, "")
	userID := 101

	t.Run("bad userId", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, fmt.Sprintf("/v1/courses/%d/lessons?userId=lol", crs.ID))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "invalid userId"}),
		}, rec)
	})

	t.Run("canonical order", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, fmt.Sprintf("/v1/courses/%d/lessons?userId=%d", crs.ID, userID))
		app.ServeHTTP(rec, req)
		checkCode(t, http.StatusOK, rec)

		var view progress.CourseProgressView
		decodeBody(t, rec, &view)
		if view.Lessons[0].Lesson.Title != "Sesión 1, Clase 1" {
			t.Errorf("first lesson = %q, want %q", view.Lessons[0].Lesson.Title, "Sesión 1, Clase 1")
		}
		if view.Lessons[0].Record.Locked {
			t.Error("canonical first lesson renders unlocked")
		}
		if !view.Lessons[1].Record.Locked {
			t.Error("canonical second lesson renders locked")
		}
	})
}
