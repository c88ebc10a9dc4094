package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// POST /api/register  { "username", "email", "password", "name" }
func RegisterHandler(db *sql.DB, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Name     string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)
		if len(req.Username) < 3 || !strings.Contains(req.Email, "@") || len(req.Password) < 6 {
			http.Error(w, "invalid registration data", http.StatusBadRequest)
			return
		}

		var exists int
		if err := db.QueryRowContext(r.Context(),
			`SELECT 1 FROM users WHERE username=$1`, req.Username).Scan(&exists); err == nil {
			http.Error(w, "username already exists", http.StatusBadRequest)
			return
		} else if !errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		if err := db.QueryRowContext(r.Context(),
			`SELECT 1 FROM users WHERE email=$1`, req.Email).Scan(&exists); err == nil {
			http.Error(w, "email already exists", http.StatusBadRequest)
			return
		} else if !errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			http.Error(w, "hash error", http.StatusInternalServerError)
			return
		}
		id := uuid.NewString()
		if _, err := db.ExecContext(r.Context(),
			`INSERT INTO users (id,username,email,password_hash,name,role) VALUES ($1,$2,$3,$4,$5,'user')`,
			id, req.Username, req.Email, hash, req.Name); err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}

		tok, err := svc.IssueJWT(id, "user")
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user":         userResponse{ID: id, Username: req.Username, Email: req.Email, Name: req.Name, Role: "user"},
			"access_token": tok,
		})
	}
}

// POST /api/login  { "username", "password" }
func LoginHandler(db *sql.DB, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		var u userResponse
		var hash string
		err := db.QueryRowContext(r.Context(),
			`SELECT id,username,email,password_hash,name,role FROM users WHERE username=$1`, req.Username).
			Scan(&u.ID, &u.Username, &u.Email, &hash, &u.Name, &u.Role)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && !CheckPassword(hash, req.Password)) {
			http.Error(w, "invalid username or password", http.StatusUnauthorized)
			return
		}
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}

		tok, err := svc.IssueJWT(u.ID, u.Role)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"user": u, "access_token": tok})
	}
}

// GET /api/user — the authenticated caller, password hash excluded.
func CurrentUserHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var u userResponse
		err := db.QueryRowContext(r.Context(),
			`SELECT id,username,email,name,role FROM users WHERE id=$1`, id.UserID).
			Scan(&u.ID, &u.Username, &u.Email, &u.Name, &u.Role)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(u)
	}
}
