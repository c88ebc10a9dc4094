package http

import (
	"encoding/json"
	"net/http"

	"github.com/Kokatesrushti/Testbook/internal/auth"
	"github.com/Kokatesrushti/Testbook/internal/progress"
)

// GET /api/user-progress — all progress records for the caller.
func ListUserProgressHandler(store progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		rs, err := store.ListByUser(r.Context(), id.UserID)
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, rs)
	}
}

// POST /api/user-progress — generic upsert used by the course dashboard. The
// user id always comes from the verified identity, never the body.
func UpsertUserProgressHandler(store progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var in progress.UpsertInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if in.ItemID == "" || (in.ItemType != progress.ItemTypeCourse && in.ItemType != progress.ItemTypeTest) {
			http.Error(w, "itemId and itemType (course|test) required", http.StatusBadRequest)
			return
		}
		if in.Progress < 0 || in.Progress > 100 {
			http.Error(w, "progress must be in [0,100]", http.StatusBadRequest)
			return
		}
		in.UserID = id.UserID

		rec, err := store.Upsert(r.Context(), in)
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, rec)
	}
}
