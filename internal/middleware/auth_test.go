package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AnjaliPai16/Welly-sub000/internal/session"
)

func newGate(t *testing.T) (*AuthMiddleware, *session.Tokens) {
	t.Helper()
	tokens, err := session.New([]byte("0123456789abcdef0123456789abcdef"), "welly", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return NewAuthMiddleware(tokens), tokens
}

func TestRequireAuthRejectsBeforeHandler(t *testing.T) {
	gate, _ := newGate(t)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bare token", "not-a-bearer-header-token"},
		{"garbage token", "Bearer garbage"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reached := false
			handler := gate.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("want 401, got %d", rec.Code)
			}
			if reached {
				t.Fatal("downstream handler must not run on gate failure")
			}
		})
	}
}

func TestRequireAuthRejectsTamperedToken(t *testing.T) {
	gate, tokens := newGate(t)

	raw, err := tokens.Issue("user-7")
	if err != nil {
		t.Fatal(err)
	}
	tampered := raw[:len(raw)-2] + "xx"

	handler := gate.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("downstream handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tampered)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}

func TestRequireAuthAttachesUserID(t *testing.T) {
	gate, tokens := newGate(t)

	raw, err := tokens.Issue("user-7")
	if err != nil {
		t.Fatal(err)
	}

	var gotID string
	handler := gate.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Fatal("user id missing from context")
		}
		gotID = id
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if gotID != "user-7" {
		t.Fatalf("want user-7 in context, got %q", gotID)
	}
}
