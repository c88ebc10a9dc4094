package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kokatesrushti/Testbook/internal/auth"
	"github.com/Kokatesrushti/Testbook/internal/catalog"
	"github.com/Kokatesrushti/Testbook/internal/exam"
)

// publicQuestion is the student-safe wire shape: no correct option, no
// explanation, no marking values.
type publicQuestion struct {
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
}

// GET /api/questions/{testID} — ordered question set with answer keys and
// marking values withheld.
func GetQuestionsHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := store.GetQuestions(r.Context(), chi.URLParam(r, "testID"))
		if err != nil {
			catalogError(w, err)
			return
		}
		out := make([]publicQuestion, len(qs))
		for i, q := range qs {
			out[i] = publicQuestion{QuestionText: q.Text, Options: q.Options}
		}
		writeJSON(w, out)
	}
}

// POST /api/submit-test/{testID}  { "answers": (number|null)[] }
func SubmitTestHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var req struct {
			Answers exam.AnswerVector `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		res, err := svc.Submit(r.Context(), id.UserID, chi.URLParam(r, "testID"), req.Answers)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			http.Error(w, "mock test not found", http.StatusNotFound)
			return
		case errors.Is(err, exam.ErrAnswerCountMismatch):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case err != nil:
			http.Error(w, "submit failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, res)
	}
}
