package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pyrolysis_sim/internal/service"
)

func TestOperatorAuth(t *testing.T) {
	cases := []struct {
		name     string
		path     string
		body     string
		auth     mockAuth
		wantCode int
		wantKey  string
		wantVal  any
	}{
		{
			name:     "sign_up_returns_operator_id",
			path:     "/auth/sign-up",
			body:     `{"username":"shift-a","password":"kiln"}`,
			auth:     mockAuth{signUpID: 42},
			wantCode: http.StatusOK,
			wantKey:  "id",
			wantVal:  float64(42),
		},
		{
			name:     "sign_up_duplicate_operator",
			path:     "/auth/sign-up",
			body:     `{"username":"shift-a","password":"kiln"}`,
			auth:     mockAuth{signUpErr: fmt.Errorf("create operator: %w", errors.New("UNIQUE constraint failed: operators.username"))},
			wantCode: http.StatusBadRequest,
			wantKey:  "error",
			wantVal:  "create operator: UNIQUE constraint failed: operators.username",
		},
		{
			name:     "sign_up_missing_password",
			path:     "/auth/sign-up",
			body:     `{"username":"shift-a"}`,
			wantCode: http.StatusBadRequest,
			wantKey:  "error",
		},
		{
			name:     "sign_in_returns_token",
			path:     "/auth/sign-in",
			body:     `{"username":"shift-a","password":"kiln"}`,
			auth:     mockAuth{genTokenToken: "tok123"},
			wantCode: http.StatusOK,
			wantKey:  "token",
			wantVal:  "tok123",
		},
		{
			name:     "sign_in_wrong_password",
			path:     "/auth/sign-in",
			body:     `{"username":"shift-a","password":"oven"}`,
			auth:     mockAuth{genTokenErr: service.ErrInvalidPassword},
			wantCode: http.StatusUnauthorized,
			wantKey:  "error",
			wantVal:  "invalid credentials",
		},
		{
			name:     "sign_in_unknown_operator",
			path:     "/auth/sign-in",
			body:     `{"username":"nobody","password":"kiln"}`,
			auth:     mockAuth{genTokenErr: service.ErrUserNotFound},
			wantCode: http.StatusUnauthorized,
			wantKey:  "error",
			wantVal:  "invalid credentials",
		},
		{
			name:     "sign_in_malformed_body",
			path:     "/auth/sign-in",
			body:     `{"username":1}`,
			wantCode: http.StatusBadRequest,
			wantKey:  "error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := tc.auth
			r := newTestRouter(&service.Service{Authorization: &auth})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			var m map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			got, ok := m[tc.wantKey]
			if !ok {
				t.Fatalf("missing %q in %v", tc.wantKey, m)
			}
			if tc.wantVal != nil && got != tc.wantVal {
				t.Fatalf("%s=%v, want %v", tc.wantKey, got, tc.wantVal)
			}
		})
	}
}

func TestOperatorAuth_ForwardsCredentials(t *testing.T) {
	auth := &mockAuth{genTokenToken: "tok"}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in",
		strings.NewReader(`{"username":"shift-b","password":"retort"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if auth.lastGenUsername != "shift-b" || auth.lastGenPassword != "retort" {
		t.Fatalf("credentials not forwarded: %q/%q", auth.lastGenUsername, auth.lastGenPassword)
	}
}
