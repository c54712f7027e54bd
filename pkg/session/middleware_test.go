package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type mockResolver struct {
	started    int
	live       map[string]bool
	failErr    error
	resolveErr error
}

func (m *mockResolver) Start(context.Context) (string, error) {
	if m.failErr != nil {
		return "", m.failErr
	}
	m.started++
	id := "new-session"
	if m.live == nil {
		m.live = map[string]bool{}
	}
	m.live[id] = true
	return id, nil
}

func (m *mockResolver) Resolve(_ context.Context, id string) error {
	if m.resolveErr != nil {
		return m.resolveErr
	}
	if m.live[id] {
		return nil
	}
	return fmt.Errorf("lookup %s: %w", id, ErrGone)
}

var testCfg = Config{Secret: SecretBytes("test-secret"), TTL: time.Hour}

func serve(t *testing.T, res *mockResolver, cookie *http.Cookie) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = IDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	Middleware(res, testCfg)(next).ServeHTTP(rec, req)
	return rec, gotID
}

func TestMiddleware_NoCookie_StartsSession(t *testing.T) {
	res := &mockResolver{}
	rec, id := serve(t, res, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if res.started != 1 || id != "new-session" {
		t.Errorf("expected new session in context, got started=%d id=%q", res.started, id)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}
	if sid, err := VerifyToken(cookies[0].Value, testCfg.Secret); err != nil || sid != "new-session" {
		t.Errorf("cookie does not carry session id: %q %v", sid, err)
	}
	if !cookies[0].HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
}

func TestMiddleware_ValidCookie_ReusesSession(t *testing.T) {
	res := &mockResolver{live: map[string]bool{"existing": true}}
	cookie := &http.Cookie{Name: CookieName, Value: CreateToken("existing", testCfg.Secret)}
	rec, id := serve(t, res, cookie)

	if id != "existing" {
		t.Errorf("expected existing session, got %q", id)
	}
	if res.started != 0 {
		t.Error("should not start a new session")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("cookie should not be rewritten")
	}
}

func TestMiddleware_ForgedCookie_StartsSession(t *testing.T) {
	res := &mockResolver{live: map[string]bool{"victim": true}}
	cookie := &http.Cookie{Name: CookieName, Value: CreateToken("victim", SecretBytes("other-secret"))}
	_, id := serve(t, res, cookie)

	if id != "new-session" {
		t.Errorf("forged cookie must not be accepted, got %q", id)
	}
}

func TestMiddleware_EndedSession_StartsSession(t *testing.T) {
	res := &mockResolver{}
	cookie := &http.Cookie{Name: CookieName, Value: CreateToken("ended", testCfg.Secret)}
	_, id := serve(t, res, cookie)

	if id != "new-session" || res.started != 1 {
		t.Errorf("expected replacement session, got %q", id)
	}
}

func TestMiddleware_StartError_Returns500(t *testing.T) {
	res := &mockResolver{failErr: errors.New("db down")}
	rec, id := serve(t, res, nil)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if id != "" {
		t.Error("next handler should not be called")
	}
}

func TestMiddleware_StoreError_KeepsSession(t *testing.T) {
	res := &mockResolver{
		live:       map[string]bool{"old": true},
		resolveErr: errors.New("db: connection reset"),
	}
	cookie := &http.Cookie{Name: CookieName, Value: CreateToken("old", testCfg.Secret)}
	rec, id := serve(t, res, cookie)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if res.started != 0 {
		t.Errorf("store error must not start a session, started=%d", res.started)
	}
	if id != "" {
		t.Errorf("next handler should not be called, got %q", id)
	}
	if got := rec.Header().Get("Set-Cookie"); got != "" {
		t.Errorf("cookie must be left alone, got %q", got)
	}
}

func TestVerifyToken_RejectsMalformed(t *testing.T) {
	for _, tok := range []string{"", "nodot", "!!!.abc"} {
		if _, err := VerifyToken(tok, testCfg.Secret); err == nil {
			t.Errorf("expected error for %q", tok)
		}
	}
}

func TestSecretBytes_PadsShortSecret(t *testing.T) {
	if got := len(SecretBytes("short")); got != 32 {
		t.Errorf("expected 32 bytes, got %d", got)
	}
	long := "0123456789abcdef0123456789abcdef-extra"
	if got := string(SecretBytes(long)); got != long {
		t.Errorf("long secret should be kept, got %q", got)
	}
}
