package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kokatesrushti/Testbook/internal/catalog"
)

// Handlers only — routes remain in main.go

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func catalogError(w http.ResponseWriter, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	http.Error(w, "db error", http.StatusInternalServerError)
}

func ListExamCategoriesHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs, err := store.GetExamCategories(r.Context())
		if err != nil {
			catalogError(w, err)
			return
		}
		writeJSON(w, cs)
	}
}

func GetExamCategoryHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := store.GetExamCategory(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			catalogError(w, err)
			return
		}
		writeJSON(w, c)
	}
}

func GetExamCategoryBySlugHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := store.GetExamCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			catalogError(w, err)
			return
		}
		writeJSON(w, c)
	}
}

func ListCoursesHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs, err := store.GetCourses(r.Context())
		if err != nil {
			catalogError(w, err)
			return
		}
		writeJSON(w, cs)
	}
}

func GetCourseHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := store.GetCourse(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			catalogError(w, err)
			return
		}
		writeJSON(w, c)
	}
}

func ListCoursesByCategoryHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs, err := store.GetCoursesByCategory(r.Context(), chi.URLParam(r, "categoryID"))
		if err != nil {
			catalogError(w, err)
			return
		}
		writeJSON(w, cs)
	}
}

func ListTestSeriesHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts, err := store.GetTestSeries(r.Context())
		if err != nil {
			catalogError(w, err)
			return
		}
		writeJSON(w, ts)
	}
}

func ListTestSeriesByCategoryHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts, err := store.GetTestSeriesByCategory(r.Context(), chi.URLParam(r, "categoryID"))
		if err != nil {
			catalogError(w, err)
			return
		}
		writeJSON(w, ts)
	}
}

func ListMockTestsHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts, err := store.GetMockTests(r.Context())
		if err != nil {
			catalogError(w, err)
			return
		}
		writeJSON(w, ts)
	}
}

func GetMockTestHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := store.GetMockTest(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			catalogError(w, err)
			return
		}
		writeJSON(w, t)
	}
}

func ListMockTestsBySeriesHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts, err := store.GetMockTestsBySeries(r.Context(), chi.URLParam(r, "seriesID"))
		if err != nil {
			catalogError(w, err)
			return
		}
		writeJSON(w, ts)
	}
}

func ListStudyMaterialsHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ms, err := store.GetStudyMaterials(r.Context())
		if err != nil {
			catalogError(w, err)
			return
		}
		writeJSON(w, ms)
	}
}

func ListStudyMaterialsByCategoryHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ms, err := store.GetStudyMaterialsByCategory(r.Context(), chi.URLParam(r, "categoryID"))
		if err != nil {
			catalogError(w, err)
			return
		}
		writeJSON(w, ms)
	}
}
