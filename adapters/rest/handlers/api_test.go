package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taskflow-service/adapters/auth"
	"taskflow-service/adapters/memstore"
	"taskflow-service/adapters/rest/handlers"
	"taskflow-service/core"
)

// testAPI runs the full router over the in-memory store, with real JWT and
// bcrypt primitives.
type testAPI struct {
	store  *memstore.Store
	tokens *auth.TokenManager
	mux    *http.ServeMux
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memstore.New()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	deps := handlers.Deps{
		Users:      core.NewUserService(log, store, hasher, tokens),
		Priorities: core.NewPriorityService(log, store),
		Tags:       core.NewTagService(log, store),
		Tasks:      core.NewTaskService(log, store),
		History:    core.NewHistoryService(log, store),
		Pinger:     store,
	}

	mux := http.NewServeMux()
	handlers.Register(mux, log, deps, tokens, time.Second)

	return &testAPI{store: store, tokens: tokens, mux: mux}
}

func (a *testAPI) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

// signup creates a user through the API and returns it with a valid token.
func (a *testAPI) signup(t *testing.T, name, email string) (core.User, string) {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/users", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup failed with %d: %s", rec.Code, rec.Body.String())
	}
	u := decodeBody[core.User](t, rec)

	token, err := a.tokens.Issue(u.ID, u.Email)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return u, token
}

func (a *testAPI) seedPriority(t *testing.T, level string, isDefault bool) core.Priority {
	t.Helper()

	p, err := a.store.CreatePriority(context.Background(), level, isDefault)
	if err != nil {
		t.Fatalf("failed to seed priority: %v", err)
	}
	return p
}

func TestPing(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/ping", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCreateUser(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/users", "", map[string]string{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "secret123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	body := rec.Body.String()
	if strings.Contains(body, "password") || strings.Contains(body, "secret123") {
		t.Fatalf("response must not expose passwords: %s", body)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.signup(t, "Ana", "ana@example.com")

	rec := api.do(t, http.MethodPost, "/users", "", map[string]string{
		"name":     "Other Ana",
		"email":    "ana@example.com",
		"password": "secret123",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateUser_InvalidJSON(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	api.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	u, _ := api.signup(t, "Ana", "ana@example.com")

	rec := api.do(t, http.MethodPost, "/users/login", "", map[string]string{
		"email":    "ana@example.com",
		"password": "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	out := decodeBody[struct {
		User  core.User `json:"user"`
		Token string    `json:"token"`
	}](t, rec)
	if out.Token == "" {
		t.Fatalf("expected a token")
	}
	if out.User.ID != u.ID {
		t.Fatalf("expected user id %d, got %d", u.ID, out.User.ID)
	}

	// the issued token must be accepted by protected routes
	authed := api.do(t, http.MethodGet, "/priorities", out.Token, nil)
	if authed.Code != http.StatusOK {
		t.Fatalf("expected 200 with fresh token, got %d", authed.Code)
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.signup(t, "Ana", "ana@example.com")

	unknown := api.do(t, http.MethodPost, "/users/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	wrongPw := api.do(t, http.MethodPost, "/users/login", "", map[string]string{
		"email":    "ana@example.com",
		"password": "wrong-password",
	})

	if unknown.Code != http.StatusUnauthorized || wrongPw.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", unknown.Code, wrongPw.Code)
	}
	if unknown.Body.String() != wrongPw.Body.String() {
		t.Fatalf("login failures must be indistinguishable: %q vs %q",
			unknown.Body.String(), wrongPw.Body.String())
	}
}

func TestUpdateUser_SelfOnly(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	ana, anaToken := api.signup(t, "Ana", "ana@example.com")
	_, brunoToken := api.signup(t, "Bruno", "bruno@example.com")

	target := "/users/" + itoa(ana.ID)
	patch := map[string]string{"name": "Ana Clara"}

	noToken := api.do(t, http.MethodPut, target, "", patch)
	if noToken.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", noToken.Code)
	}

	otherUser := api.do(t, http.MethodPut, target, brunoToken, patch)
	if otherUser.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another user, got %d", otherUser.Code)
	}

	self := api.do(t, http.MethodPut, target, anaToken, patch)
	if self.Code != http.StatusOK {
		t.Fatalf("expected 200 for self, got %d: %s", self.Code, self.Body.String())
	}
	updated := decodeBody[core.User](t, self)
	if updated.Name != "Ana Clara" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}
}

func TestGetUser_NotFoundAndInvalidID(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	if rec := api.do(t, http.MethodGet, "/users/999", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := api.do(t, http.MethodGet, "/users/abc", "", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListUsers_NeverLeaksPasswordHashes(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	ana, _ := api.signup(t, "Ana", "ana@example.com")

	list := api.do(t, http.MethodGet, "/users", "", nil)
	if list.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", list.Code)
	}
	if body := list.Body.String(); strings.Contains(body, "password") {
		t.Fatalf("user list must not expose passwords: %s", body)
	}

	profile := api.do(t, http.MethodGet, "/users/"+itoa(ana.ID), "", nil)
	if profile.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", profile.Code)
	}
	if body := profile.Body.String(); strings.Contains(body, "password") {
		t.Fatalf("user profile must not expose passwords: %s", body)
	}
}

func TestPriorities_RequireAuth(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	if rec := api.do(t, http.MethodGet, "/priorities", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec := api.do(t, http.MethodPost, "/priorities", "", map[string]any{"level": "alta"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPriorities_DefaultIsProtected(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	_, token := api.signup(t, "Ana", "ana@example.com")
	p := api.seedPriority(t, "alta", true)

	target := "/priorities/" + itoa(p.ID)

	update := api.do(t, http.MethodPut, target, token, map[string]any{"level": "renamed"})
	if update.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on update, got %d: %s", update.Code, update.Body.String())
	}

	del := api.do(t, http.MethodDelete, target, token, nil)
	if del.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on delete, got %d: %s", del.Code, del.Body.String())
	}
}

func TestTags_DuplicateNameConflict(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	_, token := api.signup(t, "Ana", "ana@example.com")

	first := api.do(t, http.MethodPost, "/tags", token, map[string]any{"name": "bug", "color": "#FF0000"})
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", first.Code, first.Body.String())
	}

	second := api.do(t, http.MethodPost, "/tags", token, map[string]any{"name": "bug"})
	if second.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate, got %d: %s", second.Code, second.Body.String())
	}
}

func TestTaskLifecycle(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	ana, token := api.signup(t, "Ana", "ana@example.com")
	bruno, _ := api.signup(t, "Bruno", "bruno@example.com")
	p := api.seedPriority(t, "alta", true)

	created := api.do(t, http.MethodPost, "/tasks", token, map[string]any{
		"title":      "write report",
		"priorityId": p.ID,
		"creatorId":  ana.ID,
	})
	if created.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", created.Code, created.Body.String())
	}
	task := decodeBody[core.Task](t, created)
	if task.Status != core.StatusPendente {
		t.Fatalf("expected status %s, got %s", core.StatusPendente, task.Status)
	}

	// task reads are public
	list := api.do(t, http.MethodGet, "/tasks", "", nil)
	if list.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", list.Code)
	}
	tasks := decodeBody[[]core.Task](t, list)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}

	assigned := api.do(t, http.MethodPost, "/tasks/"+itoa(task.ID)+"/assign", token, map[string]any{
		"responsibleId": bruno.ID,
	})
	if assigned.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", assigned.Code, assigned.Body.String())
	}
	assignedTask := decodeBody[core.Task](t, assigned)
	if assignedTask.Status != core.StatusEmProgresso {
		t.Fatalf("expected status %s after assignment, got %s", core.StatusEmProgresso, assignedTask.Status)
	}
	if assignedTask.Responsible == nil || assignedTask.Responsible.ID != bruno.ID {
		t.Fatalf("expected responsible %d, got %v", bruno.ID, assignedTask.Responsible)
	}

	history := api.do(t, http.MethodGet, "/history/"+itoa(task.ID), token, nil)
	if history.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", history.Code, history.Body.String())
	}
	entries := decodeBody[[]core.History](t, history)
	if len(entries) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(entries))
	}
	if entries[0].Action != "Responsible assigned" {
		t.Fatalf("expected newest entry first, got %q", entries[0].Action)
	}

	deleted := api.do(t, http.MethodDelete, "/tasks/"+itoa(task.ID), token, nil)
	if deleted.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", deleted.Code)
	}

	gone := api.do(t, http.MethodGet, "/tasks/"+itoa(task.ID), "", nil)
	if gone.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", gone.Code)
	}
}

func TestTaskQueriesByRelation(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	ana, token := api.signup(t, "Ana", "ana@example.com")
	p := api.seedPriority(t, "alta", true)

	tagRec := api.do(t, http.MethodPost, "/tags", token, map[string]any{"name": "bug"})
	if tagRec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", tagRec.Code)
	}
	tag := decodeBody[core.Tag](t, tagRec)

	created := api.do(t, http.MethodPost, "/tasks", token, map[string]any{
		"title":      "fix crash",
		"priorityId": p.ID,
		"creatorId":  ana.ID,
		"tagIds":     []int64{tag.ID},
	})
	if created.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", created.Code, created.Body.String())
	}
	task := decodeBody[core.Task](t, created)

	for _, target := range []string{
		"/tasks/priority/" + itoa(p.ID),
		"/tasks/creator/" + itoa(ana.ID),
		"/tasks/tag/" + itoa(tag.ID),
	} {
		rec := api.do(t, http.MethodGet, target, token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", target, rec.Code)
		}
		tasks := decodeBody[[]core.Task](t, rec)
		if len(tasks) != 1 || tasks[0].ID != task.ID {
			t.Fatalf("%s: expected task %d, got %v", target, task.ID, tasks)
		}
	}

	// relation queries require auth
	rec := api.do(t, http.MethodGet, "/tasks/creator/"+itoa(ana.ID), "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestUpdateTask_UnknownPriority(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	ana, token := api.signup(t, "Ana", "ana@example.com")
	p := api.seedPriority(t, "alta", true)

	created := api.do(t, http.MethodPost, "/tasks", token, map[string]any{
		"title":      "write report",
		"priorityId": p.ID,
		"creatorId":  ana.ID,
	})
	if created.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", created.Code)
	}
	task := decodeBody[core.Task](t, created)

	rec := api.do(t, http.MethodPut, "/tasks/"+itoa(task.ID), token, map[string]any{
		"priorityId": 999,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
