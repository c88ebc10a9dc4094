package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	api "github.com/Kokatesrushti/Testbook/internal/api/http"
	"github.com/Kokatesrushti/Testbook/internal/auth"
	"github.com/Kokatesrushti/Testbook/internal/catalog"
	"github.com/Kokatesrushti/Testbook/internal/db"
	"github.com/Kokatesrushti/Testbook/internal/exam"
	"github.com/Kokatesrushti/Testbook/internal/progress"
	"github.com/Kokatesrushti/Testbook/internal/rbac"
)

type testEnv struct {
	router   *chi.Mux
	token    string
	progress *progress.SQLStore
}

func newTestEnv(t *testing.T, name string) testEnv {
	t.Helper()
	ctx := context.Background()

	dbh, err := db.Open(ctx, db.DriverSQLite, "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })

	if _, err := dbh.Exec(
		`INSERT INTO users (id,username,email,password_hash,name,role) VALUES ('u1','asha','asha@example.com','x','Asha','user')`); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	store := catalog.NewSQLStore(dbh)
	if err := store.PutExamCategory(ctx, catalog.ExamCategory{ID: "c1", Name: "Banking", Slug: "banking", Icon: "bank", Description: "d"}); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	if err := store.PutTestSeries(ctx, catalog.TestSeries{ID: "s1", CategoryID: "c1", Title: "Series", Description: "d", Thumbnail: "t"}); err != nil {
		t.Fatalf("seed series: %v", err)
	}
	if err := store.PutMockTest(ctx, catalog.MockTest{ID: "t1", SeriesID: "s1", Title: "Mock 1", Description: "d",
		DurationMin: 30, TotalQuestions: 3, MaxMarks: 6, PassingPercentage: 50, Difficulty: "Easy"}); err != nil {
		t.Fatalf("seed mock test: %v", err)
	}
	questions := []catalog.Question{
		{ID: "q0", TestID: "t1", Position: 0, Text: "q0", Options: []string{"a", "b"}, Correct: 1, Marks: 2, NegativeMarks: 0.5},
		{ID: "q1", TestID: "t1", Position: 1, Text: "q1", Options: []string{"a", "b"}, Correct: 1, Marks: 2, NegativeMarks: 0.5},
		{ID: "q2", TestID: "t1", Position: 2, Text: "q2", Options: []string{"a", "b", "c"}, Correct: 2, Marks: 2, NegativeMarks: 0.5},
	}
	for _, q := range questions {
		if err := store.PutQuestion(ctx, q); err != nil {
			t.Fatalf("seed question %s: %v", q.ID, err)
		}
	}

	progressStore := progress.NewSQLStore(dbh)
	svc := exam.NewService(store, progressStore)
	authSvc := auth.NewService("test-secret", time.Hour)

	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(authSvc))
		pr.With(rbac.Require("questions:read")).
			Get("/api/questions/{testID}", api.GetQuestionsHandler(store))
		pr.With(rbac.Require("test:submit")).
			Post("/api/submit-test/{testID}", api.SubmitTestHandler(svc))
		pr.With(rbac.Require("progress:read")).
			Get("/api/user-progress", api.ListUserProgressHandler(progressStore))
	})

	tok, err := authSvc.IssueJWT("u1", "user")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return testEnv{router: r, token: tok, progress: progressStore}
}

func (e testEnv) do(t *testing.T, method, path string, body []byte, withAuth bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if withAuth {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestGetQuestionsStripsAnswers(t *testing.T) {
	env := newTestEnv(t, "api_questions")

	rec := env.do(t, http.MethodGet, "/api/questions/t1", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body)
	}
	var out []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("questions = %d, want 3", len(out))
	}
	for i, q := range out {
		for _, hidden := range []string{"correctOption", "marks", "negativeMarks", "explanation"} {
			if _, ok := q[hidden]; ok {
				t.Errorf("question %d leaks %q", i, hidden)
			}
		}
	}
}

func TestGetQuestionsRequiresAuth(t *testing.T) {
	env := newTestEnv(t, "api_questions_auth")
	if rec := env.do(t, http.MethodGet, "/api/questions/t1", nil, false); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestSubmitTestGradesAndUpserts(t *testing.T) {
	env := newTestEnv(t, "api_submit")
	body := []byte(`{"answers":[1,0,null]}`)

	rec := env.do(t, http.MethodPost, "/api/submit-test/t1", body, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body)
	}
	var res exam.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Score != 1.5 || res.TotalMarks != 6 || res.Percentage != 25 {
		t.Fatalf("result = %+v, want 1.5/6/25", res)
	}
	if len(res.CorrectAnswers) != 3 || res.CorrectAnswers[2] != 2 {
		t.Fatalf("correctAnswers = %v", res.CorrectAnswers)
	}

	// Resubmitting overwrites the single progress record.
	rec = env.do(t, http.MethodPost, "/api/submit-test/t1", []byte(`{"answers":[1,1,2]}`), true)
	if rec.Code != http.StatusOK {
		t.Fatalf("resubmit status = %d (%s)", rec.Code, rec.Body)
	}

	recs, err := env.progress.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list progress: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("progress records = %d, want 1", len(recs))
	}
	if recs[0].Score == nil || *recs[0].Score != 100 {
		t.Errorf("score = %v, want 100 from the resubmit", recs[0].Score)
	}
}

func TestSubmitTestRejectsBadInput(t *testing.T) {
	env := newTestEnv(t, "api_submit_bad")

	if rec := env.do(t, http.MethodPost, "/api/submit-test/t1", []byte(`{"answers":[1]}`), true); rec.Code != http.StatusBadRequest {
		t.Errorf("length mismatch: status = %d, want 400", rec.Code)
	}
	if rec := env.do(t, http.MethodPost, "/api/submit-test/missing", []byte(`{"answers":[]}`), true); rec.Code != http.StatusNotFound {
		t.Errorf("unknown test: status = %d, want 404", rec.Code)
	}
	if rec := env.do(t, http.MethodPost, "/api/submit-test/t1", []byte(`{"answers":[1,0,null]}`), false); rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated: status = %d, want 401", rec.Code)
	}

	// No progress should exist after only rejected submissions.
	recs, err := env.progress.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list progress: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("progress records = %d, want 0", len(recs))
	}
}
