package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gazette-dev/gazette/internal/api"
	"github.com/gazette-dev/gazette/internal/api/middleware"
	"github.com/gazette-dev/gazette/internal/core/domain"
	"github.com/gazette-dev/gazette/internal/core/ports"
	"github.com/gazette-dev/gazette/internal/core/service"
	"github.com/gazette-dev/gazette/internal/infrastructure/http/handlers"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAuth struct {
	loginErr    error
	registerErr error
	confirmErr  error
	principal   domain.Principal
	codec       ports.SessionCodec
}

func (s *stubAuth) Login(_ context.Context, req domain.LoginRequest) (*ports.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	p := domain.NewPrincipal(req.Username, s.principal.Roles)
	return &ports.LoginResult{Principal: p, Token: s.codec.Encode(p), Message: "Welcome back"}, nil
}

func (s *stubAuth) Register(context.Context, domain.RegisterRequest) (string, error) {
	if s.registerErr != nil {
		return "", s.registerErr
	}
	return "Registration successful", nil
}

func (s *stubAuth) Confirm(context.Context, string) (string, error) {
	if s.confirmErr != nil {
		return "", s.confirmErr
	}
	return "Account confirmed", nil
}

type stubArticles struct {
	article *domain.Article
	drafts  []domain.InProgressArticleSummary
}

func (s *stubArticles) ListArticles(context.Context) []domain.ArticleSummary {
	if s.article == nil {
		return []domain.ArticleSummary{}
	}
	return []domain.ArticleSummary{s.article.ToSummary()}
}

func (s *stubArticles) GetArticle(_ context.Context, id int64) (*domain.Article, bool) {
	if s.article == nil || s.article.ID != id {
		return nil, false
	}
	return s.article, true
}

func (s *stubArticles) ListInProgress(_ context.Context, id domain.Identity) ([]domain.InProgressArticleSummary, error) {
	if !domain.CanAuthor(id) {
		return nil, domain.ErrForbidden
	}
	return s.drafts, nil
}

type schemaStub struct{ ready bool }

func (s schemaStub) Ready() bool { return s.ready }
func (s schemaStub) Err() error  { return nil }

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type fixture struct {
	t        *testing.T
	handler  http.Handler
	auth     *stubAuth
	articles *stubArticles
	codec    *service.SessionCodec
}

func newFixture(t *testing.T, ready bool) *fixture {
	t.Helper()
	codec, err := service.NewSessionCodec(bytes.Repeat([]byte("s"), service.MinSecretLength), time.Hour, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSessionCodec: %v", err)
	}
	f := &fixture{
		t:        t,
		auth:     &stubAuth{codec: codec, principal: domain.NewPrincipal("", []domain.RoleID{domain.RoleAuthor})},
		articles: &stubArticles{},
		codec:    codec,
	}

	reg := prometheus.NewRegistry()
	f.handler = api.NewRouter(api.Dependencies{
		Auth:          f.auth,
		Articles:      f.articles,
		Codec:         codec,
		Schema:        schemaStub{ready: ready},
		Checks:        map[string]handlers.Check{},
		SessionMaxAge: time.Hour,
		Logger:        zerolog.Nop(),
		Registerer:    reg,
		Gatherer:      reg,
	})
	return f
}

func (f *fixture) do(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	f.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) cookieFor(username string, roles ...domain.RoleID) *http.Cookie {
	return &http.Cookie{Name: middleware.CookieName, Value: f.codec.Encode(domain.NewPrincipal(username, roles))}
}

func msgOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body.Msg
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName {
			return ck
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func TestLogin_SetsSessionCookie(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(http.MethodPost, "/api/login", `{"username":"alice","password":"pw"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if msg := msgOf(t, rec); msg != "Welcome back" {
		t.Fatalf("unexpected msg: %q", msg)
	}

	ck := sessionCookie(rec)
	if ck == nil || !ck.HttpOnly {
		t.Fatalf("expected HttpOnly session cookie, got %+v", ck)
	}
	if p, ok := f.codec.Decode(ck.Value).Principal(); !ok || p.Username != "alice" {
		t.Fatalf("cookie does not carry alice")
	}
}

func TestLogin_Validation(t *testing.T) {
	f := newFixture(t, true)

	for _, body := range []string{`{"username":"alice"}`, `{"password":"pw"}`, `not json`} {
		rec := f.do(http.MethodPost, "/api/login", body, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rec.Code)
		}
		if msgOf(t, rec) == "" {
			t.Fatalf("%s: expected a message", body)
		}
	}
}

func TestLogin_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"rejected", &domain.AuthenticationError{Message: "Invalid username or password"}, http.StatusUnauthorized, "Invalid username or password"},
		{"pool", &domain.PoolError{Err: errors.New("timeout")}, http.StatusServiceUnavailable, "service temporarily unavailable, please retry"},
		{"query", &domain.QueryError{Op: "authenticate", Err: errors.New(`function authenticate does not exist`)}, http.StatusInternalServerError, "internal server error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		f := newFixture(t, true)
		f.auth.loginErr = tc.err

		rec := f.do(http.MethodPost, "/api/login", `{"username":"alice","password":"pw"}`, nil)
		if rec.Code != tc.code {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.code, rec.Code)
		}
		if msg := msgOf(t, rec); msg != tc.msg {
			t.Fatalf("%s: unexpected msg %q", tc.name, msg)
		}
		if sessionCookie(rec) != nil {
			t.Fatalf("%s: no cookie expected on failure", tc.name)
		}
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(http.MethodPost, "/api/register", `{"username":"alice","password":"pw","confirm":"pw"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = f.do(http.MethodPost, "/api/register", `{"username":"alice","password":"pw"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing confirm: expected 400, got %d", rec.Code)
	}
}

func TestRegister_DispatchFailure(t *testing.T) {
	f := newFixture(t, true)
	f.auth.registerErr = &domain.DispatchError{StatusCode: 401, Err: errors.New("forbidden")}

	rec := f.do(http.MethodPost, "/api/register", `{"username":"alice","password":"pw","confirm":"pw"}`, nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if msg := msgOf(t, rec); !strings.Contains(msg, "account created") {
		t.Fatalf("unexpected msg: %q", msg)
	}
}

func TestConfirm(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(http.MethodGet, "/api/confirm/abc123", "", nil)
	if rec.Code != http.StatusOK || msgOf(t, rec) != "Account confirmed" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}

	f.auth.confirmErr = &domain.AuthenticationError{Message: "Invalid or expired confirmation link"}
	rec = f.do(http.MethodGet, "/api/confirm/abc123", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("spent token: expected 401, got %d", rec.Code)
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(http.MethodPost, "/api/logout", "", f.cookieFor("alice", domain.RoleAuthor))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	ck := sessionCookie(rec)
	if ck == nil || ck.MaxAge >= 0 || ck.Value != "" {
		t.Fatalf("expected cleared cookie, got %+v", ck)
	}
}

func TestWhoami(t *testing.T) {
	f := newFixture(t, true)

	type whoami struct {
		Authenticated bool            `json:"authenticated"`
		Username      string          `json:"username"`
		Roles         []domain.RoleID `json:"roles"`
		CanWrite      bool            `json:"can_write"`
	}

	var anon whoami
	rec := f.do(http.MethodGet, "/api/whoami", "", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &anon); err != nil || anon.Authenticated {
		t.Fatalf("expected anonymous whoami, got %s", rec.Body.String())
	}

	var author whoami
	rec = f.do(http.MethodGet, "/api/whoami", "", f.cookieFor("alice", domain.RoleAuthor))
	if err := json.Unmarshal(rec.Body.Bytes(), &author); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !author.Authenticated || author.Username != "alice" || !author.CanWrite {
		t.Fatalf("unexpected whoami: %+v", author)
	}
}

func TestWhoami_NoRolesIsEmptyArray(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(http.MethodGet, "/api/whoami", "", f.cookieFor("eve"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"roles":[]`) || strings.Contains(body, `"roles":null`) {
		t.Fatalf("expected an empty roles array, got %s", body)
	}

	rec = f.do(http.MethodGet, "/", "", f.cookieFor("eve"))
	if body := rec.Body.String(); !strings.Contains(body, `"roles":[]`) || strings.Contains(body, `"roles":null`) {
		t.Fatalf("expected page flags with an empty roles array, got %s", body)
	}
}

// ---------------------------------------------------------------------------
// Articles
// ---------------------------------------------------------------------------

func TestArticles(t *testing.T) {
	f := newFixture(t, true)
	f.articles.article = &domain.Article{ID: 5, Headline: "Budget passes", Body: "Full text", Author: "alice"}

	rec := f.do(http.MethodGet, "/api/articles", "", nil)
	var list []domain.ArticleSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("unexpected listing: %d %s", rec.Code, rec.Body.String())
	}

	rec = f.do(http.MethodGet, "/api/article/5", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Full text") {
		t.Fatalf("unexpected article: %d %s", rec.Code, rec.Body.String())
	}

	for _, path := range []string{"/api/article/6", "/api/article/abc"} {
		if rec := f.do(http.MethodGet, path, "", nil); rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rec.Code)
		}
	}
}

func TestArticles_EmptyListIsArray(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(http.MethodGet, "/api/articles", "", nil)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty JSON array, got %s", rec.Body.String())
	}
}

func TestInProgress_Access(t *testing.T) {
	f := newFixture(t, true)
	f.articles.drafts = []domain.InProgressArticleSummary{}

	if rec := f.do(http.MethodGet, "/api/articles/in-progress", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", rec.Code)
	}
	if rec := f.do(http.MethodGet, "/api/articles/in-progress", "", f.cookieFor("rita", domain.RoleReviewer)); rec.Code != http.StatusForbidden {
		t.Fatalf("reviewer: expected 403, got %d", rec.Code)
	}
	if rec := f.do(http.MethodGet, "/api/articles/in-progress", "", f.cookieFor("alice", domain.RoleAuthor)); rec.Code != http.StatusOK {
		t.Fatalf("author: expected 200, got %d", rec.Code)
	}
	if rec := f.do(http.MethodGet, "/api/articles/in-progress", "", &http.Cookie{Name: middleware.CookieName, Value: "alice"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bare username cookie: expected 401, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// Page, readiness and operations
// ---------------------------------------------------------------------------

func TestIndexPage_Flags(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(http.MethodGet, "/", "", f.cookieFor("alice", domain.RoleAuthor))
	body := rec.Body.String()
	if rec.Code != http.StatusOK || !strings.Contains(body, "Elm.Main.init") {
		t.Fatalf("unexpected page: %d %s", rec.Code, body)
	}
	if !strings.Contains(body, `"username":"alice"`) || !strings.Contains(body, `"canWrite":true`) {
		t.Fatalf("page flags missing identity: %s", body)
	}

	rec = f.do(http.MethodGet, "/", "", nil)
	if !strings.Contains(rec.Body.String(), `"username":null`) {
		t.Fatalf("anonymous page should carry null username: %s", rec.Body.String())
	}
}

func TestNotReady_GatesAPI(t *testing.T) {
	f := newFixture(t, false)

	rec := f.do(http.MethodGet, "/api/articles", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before schema bootstrap, got %d", rec.Code)
	}
	if rec := f.do(http.MethodGet, "/health", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("liveness must not be gated, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, true)
	_ = f.do(http.MethodGet, "/api/articles", "", nil)

	rec := f.do(http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "gazette_requests_total") {
		t.Fatalf("expected request metrics in output")
	}
}
