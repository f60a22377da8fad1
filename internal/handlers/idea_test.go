package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"idea-portal/internal/metrics"
	"idea-portal/internal/models"
	"idea-portal/internal/repository"
	"idea-portal/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const employeesJSON = `[
  {"id": "e1", "name": "Ada Lovelace", "profileImage": "https://img.example.com/ada.png"},
  {"id": "e2", "name": "Alan Turing", "profileImage": "https://img.example.com/alan.png"}
]`

// recordingNotifier hands published messages to the test.
type recordingNotifier struct {
	messages chan string
}

func (n *recordingNotifier) Publish(ctx context.Context, message string) error {
	n.messages <- message
	return nil
}

type testServer struct {
	router   http.Handler
	fs       afero.Fs
	store    *storage.FileStore
	metrics  *metrics.Metrics
	notifier *recordingNotifier
}

func newTestServer(t *testing.T, seed []models.Idea) *testServer {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data/employees.json", []byte(employeesJSON), 0o644))

	store := storage.NewFileStore(fs, "data/ideas.json")
	if seed != nil {
		require.NoError(t, store.Save(context.Background(), seed))
	}

	logger := zap.NewNop()
	employeeRepo := repository.NewEmployeeRepo(storage.NewEmployeeFile(fs, "data/employees.json", logger))
	ideaRepo := repository.NewIdeaRepo(store, employeeRepo)
	m := metrics.New()
	notifier := &recordingNotifier{messages: make(chan string, 10)}

	r := chi.NewRouter()
	r.Route("/ideas", NewIdeaHandler(ideaRepo, notifier, m, logger).Routes)
	r.Get("/employees", NewEmployeeHandler(employeeRepo, logger).ListEmployees)

	return &testServer{router: r, fs: fs, store: store, metrics: m, notifier: notifier}
}

func (s *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func seedIdeas() []models.Idea {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Idea{
		{ID: "a", Summary: "Dark mode", Description: "Theme toggle", EmployeeID: "e1", Priority: models.PriorityLow, Upvotes: 5, CreatedAt: created},
		{ID: "b", Summary: "CSV export", Description: "Download reports", EmployeeID: "e2", Priority: models.PriorityMedium, Upvotes: 5, CreatedAt: created},
		{ID: "c", Summary: "SSO", Description: "Single sign-on via dark magic", EmployeeID: "e1", Priority: models.PriorityHigh, Upvotes: 10, CreatedAt: created},
	}
}

func TestListIdeas(t *testing.T) {
	srv := newTestServer(t, seedIdeas())

	rec := srv.do(http.MethodGet, "/ideas", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	page := decode[models.PaginatedIdeas](t, rec)
	assert.Equal(t, []string{"c", "a", "b"}, []string{page.Ideas[0].ID, page.Ideas[1].ID, page.Ideas[2].ID})
	assert.Equal(t, 3, page.TotalIdeas)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
}

func TestListIdeas_PaginationAndSearch(t *testing.T) {
	srv := newTestServer(t, seedIdeas())

	rec := srv.do(http.MethodGet, "/ideas?page=2&limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[models.PaginatedIdeas](t, rec)
	require.Len(t, page.Ideas, 1)
	assert.Equal(t, "a", page.Ideas[0].ID)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)

	rec = srv.do(http.MethodGet, "/ideas?search=DARK", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode[models.PaginatedIdeas](t, rec)
	assert.Equal(t, 2, page.TotalIdeas)
	assert.Equal(t, "c", page.Ideas[0].ID)
	assert.Equal(t, "a", page.Ideas[1].ID)
}

func TestListIdeas_EmptyCollectionShape(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(http.MethodGet, "/ideas", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ideas":[],"totalIdeas":0,"totalPages":0,"currentPage":1}`, rec.Body.String())
}

func TestListIdeas_InvalidParams(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, target := range []string{
		"/ideas?page=0",
		"/ideas?page=-2",
		"/ideas?page=abc",
		"/ideas?limit=0",
		"/ideas?limit=101",
	} {
		rec := srv.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, decode[map[string]string](t, rec), "error")
	}
}

func TestListIdeas_HugePageIsEmpty(t *testing.T) {
	srv := newTestServer(t, seedIdeas())

	for _, target := range []string{
		"/ideas?page=9223372036854775807",
		"/ideas?page=9223372036854775807&limit=100",
		"/ideas?page=4&limit=1",
	} {
		rec := srv.do(http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, rec.Code, target)

		page := decode[models.PaginatedIdeas](t, rec)
		assert.NotNil(t, page.Ideas, target)
		assert.Empty(t, page.Ideas, target)
		assert.Equal(t, 3, page.TotalIdeas, target)
	}
}

func TestListIdeas_StorageFailure(t *testing.T) {
	srv := newTestServer(t, nil)
	require.NoError(t, afero.WriteFile(srv.fs, "data/ideas.json", []byte("{broken"), 0o644))

	rec := srv.do(http.MethodGet, "/ideas", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]string{"error": "failed to fetch ideas"}, decode[map[string]string](t, rec))
}

func TestCreateIdea(t *testing.T) {
	srv := newTestServer(t, seedIdeas())

	rec := srv.do(http.MethodPost, "/ideas", `{"summary":"Webhooks","description":"Push events to URLs","employeeId":"e2"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	idea := decode[models.Idea](t, rec)
	assert.NotEmpty(t, idea.ID)
	assert.Equal(t, "Webhooks", idea.Summary)
	assert.Equal(t, "Alan Turing", idea.EmployeeName)
	assert.Equal(t, "https://img.example.com/alan.png", idea.EmployeeImage)
	assert.Equal(t, models.PriorityLow, idea.Priority)
	assert.Zero(t, idea.Upvotes)
	assert.Zero(t, idea.Downvotes)
	assert.False(t, idea.CreatedAt.IsZero())

	stored, err := srv.store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 4)
	assert.Equal(t, idea.ID, stored[0].ID)

	select {
	case msg := <-srv.notifier.messages:
		assert.Contains(t, msg, "Webhooks")
		assert.Contains(t, msg, "Alan Turing")
	case <-time.After(time.Second):
		t.Fatal("new idea was not announced")
	}
	assert.Equal(t, float64(1), testutil.ToFloat64(srv.metrics.IdeasCreated))
}

func TestCreateIdea_WithPriority(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(http.MethodPost, "/ideas", `{"summary":"s","description":"d","employeeId":"e1","priority":"High"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, models.PriorityHigh, decode[models.Idea](t, rec).Priority)
}

func TestCreateIdea_ValidationErrors(t *testing.T) {
	srv := newTestServer(t, nil)

	cases := map[string]struct {
		body    string
		message string
	}{
		"malformed body":      {`{"summary":`, "invalid request body"},
		"missing summary":     {`{"description":"d","employeeId":"e1"}`, "summary is required"},
		"missing description": {`{"summary":"s","employeeId":"e1"}`, "description is required"},
		"missing employee":    {`{"summary":"s","description":"d"}`, "employeeId is required"},
		"bad priority":        {`{"summary":"s","description":"d","employeeId":"e1","priority":"Urgent"}`, "priority must be one of: High Medium Low"},
		"miscased key":        {`{"summary":"s","description":"d","EmployeeId":"e1"}`, "employeeId is required"},
		"array body":          {`[]`, "invalid request body"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := srv.do(http.MethodPost, "/ideas", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[map[string]string](t, rec)["error"], tc.message)
		})
	}

	exists, err := afero.Exists(srv.fs, "data/ideas.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateIdea_UnknownEmployee(t *testing.T) {
	srv := newTestServer(t, seedIdeas())

	rec := srv.do(http.MethodPost, "/ideas", `{"summary":"s","description":"d","employeeId":"e404"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "failed to create idea", decode[map[string]string](t, rec)["error"])

	stored, err := srv.store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestGetIdea(t *testing.T) {
	srv := newTestServer(t, seedIdeas())

	rec := srv.do(http.MethodGet, "/ideas/b", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CSV export", decode[models.Idea](t, rec).Summary)

	rec = srv.do(http.MethodGet, "/ideas/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "idea not found", decode[map[string]string](t, rec)["error"])
}

func TestDeleteIdea(t *testing.T) {
	srv := newTestServer(t, seedIdeas())

	rec := srv.do(http.MethodDelete, "/ideas/a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	stored, err := srv.store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	rec = srv.do(http.MethodDelete, "/ideas/a", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(srv.metrics.IdeasDeleted))
}

func TestVoteIdea(t *testing.T) {
	srv := newTestServer(t, seedIdeas())

	rec := srv.do(http.MethodPatch, "/ideas/b/vote", `{"voteType":"upvote"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	idea := decode[models.Idea](t, rec)
	assert.Equal(t, 6, idea.Upvotes)
	assert.Equal(t, 0, idea.Downvotes)

	rec = srv.do(http.MethodPatch, "/ideas/b/vote", `{"voteType":"downvote"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	idea = decode[models.Idea](t, rec)
	assert.Equal(t, 6, idea.Upvotes)
	assert.Equal(t, 1, idea.Downvotes)

	assert.Equal(t, float64(1), testutil.ToFloat64(srv.metrics.Votes.WithLabelValues("upvote")))
	assert.Equal(t, float64(1), testutil.ToFloat64(srv.metrics.Votes.WithLabelValues("downvote")))
}

func TestVoteIdea_Errors(t *testing.T) {
	srv := newTestServer(t, seedIdeas())
	before, err := afero.ReadFile(srv.fs, "data/ideas.json")
	require.NoError(t, err)

	rec := srv.do(http.MethodPatch, "/ideas/a/vote", `{"voteType":"Upvote"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPatch, "/ideas/a/vote", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPatch, "/ideas/a/vote", `{"VOTETYPE":"upvote"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPatch, "/ideas/a/vote", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPatch, "/ideas/zzz/vote", `{"voteType":"upvote"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	after, err := afero.ReadFile(srv.fs, "data/ideas.json")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestListEmployees(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(http.MethodGet, "/employees", "")
	require.Equal(t, http.StatusOK, rec.Code)

	employees := decode[[]models.Employee](t, rec)
	require.Len(t, employees, 2)
	assert.Equal(t, "Ada Lovelace", employees[0].Name)
}

func TestFormatIdeaMessage(t *testing.T) {
	msg := formatIdeaMessage(&models.Idea{
		Summary:      "Dark mode",
		Description:  "Theme toggle",
		EmployeeName: "Ada Lovelace",
		Priority:     models.PriorityHigh,
	})
	assert.Equal(t, "New idea from Ada Lovelace [High]\nDark mode\n\nTheme toggle", msg)
}
