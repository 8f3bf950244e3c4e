package webui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"flashcards/internal/pack"
)

// testClient keeps the session cookie across requests so each client
// acts as one browser session.
type testClient struct {
	t      *testing.T
	app    *fiber.App
	cookie string
}

func newTestApp(t *testing.T, uploads *pack.SQLiteStorage) *fiber.App {
	t.Helper()

	packsDir, err := pack.NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir failed: %v", err)
	}
	return NewApp(NewAPI(packsDir, uploads))
}

func (c *testClient) do(method, path, body string) *http.Response {
	c.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.app.Test(req, -1)
	if err != nil {
		c.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	if setCookie := resp.Header.Get("Set-Cookie"); setCookie != "" && c.cookie == "" {
		c.cookie = strings.Split(setCookie, ";")[0]
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var payload T
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	_ = resp.Body.Close()
	return payload
}

func TestCategoriesListsStarterPack(t *testing.T) {
	client := &testClient{t: t, app: newTestApp(t, nil)}

	resp := client.do(http.MethodGet, "/api/categories", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	payload := decodeBody[categoriesResponse](t, resp)
	counts := make(map[string]int)
	for _, item := range payload.Categories {
		counts[item.Name] = item.QuestionCount
	}
	if counts["math"] != 4 || counts["capitals"] != 4 || counts["science"] != 3 {
		t.Fatalf("unexpected starter catalog: %+v", payload.Categories)
	}
}

func TestQuizFlowThroughImportedPack(t *testing.T) {
	client := &testClient{t: t, app: newTestApp(t, nil)}

	resp := client.do(http.MethodPost, "/api/packs/import", `{"mini": {"color?": "Blue"}}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("import status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	imported := decodeBody[importResponse](t, resp)
	if imported.CategoriesMerged != 1 {
		t.Fatalf("categories_merged = %d, want 1", imported.CategoriesMerged)
	}

	resp = client.do(http.MethodPost, "/api/quiz/start", `{"category": "mini"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("start status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	state := decodeBody[quizStateResponse](t, resp)
	if state.Question != "color?" || state.TotalCount != 1 || state.Status != "none" {
		t.Fatalf("unexpected start state: %+v", state)
	}

	resp = client.do(http.MethodPost, "/api/quiz/answer", `{"answer": "wrong"}`)
	state = decodeBody[quizStateResponse](t, resp)
	if state.Status != "incorrect" || state.AnsweredCount != 0 {
		t.Fatalf("unexpected state after wrong answer: %+v", state)
	}

	resp = client.do(http.MethodPost, "/api/quiz/answer", `{"answer": " blue "}`)
	state = decodeBody[quizStateResponse](t, resp)
	if state.Status != "completed" || state.AnsweredCount != 1 || state.TotalCount != 1 {
		t.Fatalf("unexpected state after correct answer: %+v", state)
	}

	// Completed sessions stop serving questions.
	resp = client.do(http.MethodGet, "/api/quiz/question", "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("question after completion = %d, want %d", resp.StatusCode, http.StatusConflict)
	}
}

func TestImportRejectsMalformedPack(t *testing.T) {
	client := &testClient{t: t, app: newTestApp(t, nil)}

	resp := client.do(http.MethodPost, "/api/packs/import", `["not", "a", "pack"]`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	payload := decodeBody[errorResponse](t, resp)
	if !strings.Contains(payload.Error, "top level must be a JSON object") {
		t.Fatalf("unexpected error payload: %q", payload.Error)
	}
}

func TestStartUnknownCategoryReturnsNotFound(t *testing.T) {
	client := &testClient{t: t, app: newTestApp(t, nil)}

	resp := client.do(http.MethodPost, "/api/quiz/start", `{"category": "missing"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestQuestionWithoutActiveQuizConflicts(t *testing.T) {
	client := &testClient{t: t, app: newTestApp(t, nil)}

	resp := client.do(http.MethodGet, "/api/quiz/question", "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}
}

func TestStartEmptyCategoryCompletesImmediately(t *testing.T) {
	client := &testClient{t: t, app: newTestApp(t, nil)}

	client.do(http.MethodPost, "/api/packs/import", `{"empty": {}}`)

	resp := client.do(http.MethodPost, "/api/quiz/start", `{"category": "empty"}`)
	state := decodeBody[quizStateResponse](t, resp)
	if state.Status != "completed" || state.TotalCount != 0 || state.Question != "" {
		t.Fatalf("unexpected empty-category state: %+v", state)
	}
}

func TestResetAbandonsQuiz(t *testing.T) {
	client := &testClient{t: t, app: newTestApp(t, nil)}

	client.do(http.MethodPost, "/api/quiz/start", `{"category": "math"}`)
	client.do(http.MethodPost, "/api/quiz/reset", "")

	resp := client.do(http.MethodGet, "/api/quiz/question", "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("question after reset = %d, want %d", resp.StatusCode, http.StatusConflict)
	}
}

func TestUploadsAreIsolatedPerSession(t *testing.T) {
	app := newTestApp(t, nil)
	alice := &testClient{t: t, app: app}
	bob := &testClient{t: t, app: app}

	alice.do(http.MethodPost, "/api/packs/import", `{"private": {"q?": "a"}}`)

	resp := bob.do(http.MethodGet, "/api/categories", "")
	payload := decodeBody[categoriesResponse](t, resp)
	for _, item := range payload.Categories {
		if item.Name == "private" {
			t.Fatalf("upload leaked across sessions: %+v", payload.Categories)
		}
	}

	resp = bob.do(http.MethodPost, "/api/quiz/start", `{"category": "private"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("bob started alice's category: %d", resp.StatusCode)
	}
}

func TestUploadsRestoredFromSessionStorage(t *testing.T) {
	storage, err := pack.NewSQLiteStorage(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStorage failed: %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })

	packsDir, err := pack.NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir failed: %v", err)
	}

	client := &testClient{t: t, app: NewApp(NewAPI(packsDir, storage))}
	client.do(http.MethodPost, "/api/packs/import", `{"saved": {"q?": "a"}}`)

	// Same cookie against a rebuilt server: the session scope replays
	// its stored uploads over the fresh catalog.
	restarted := &testClient{t: t, app: NewApp(NewAPI(packsDir, storage)), cookie: client.cookie}
	resp := restarted.do(http.MethodGet, "/api/categories", "")
	payload := decodeBody[categoriesResponse](t, resp)

	found := false
	for _, item := range payload.Categories {
		if item.Name == "saved" {
			found = true
		}
	}
	if !found {
		t.Fatalf("stored upload not restored: %+v", payload.Categories)
	}
}
