// Copyright (c) 2026 PalText. All rights reserved.

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paltextai/backend/internal/platform/ctxutil"
	"github.com/paltextai/backend/internal/platform/middleware"
	"github.com/paltextai/backend/internal/platform/sec"
)

// fakeVerifier is a scriptable [middleware.TokenVerifier].
type fakeVerifier struct {
	claims *sec.AdminClaims
	err    error
}

func (verifier *fakeVerifier) VerifyToken(_ string) (*sec.AdminClaims, error) {
	return verifier.claims, verifier.err
}

// okHandler records whether the chain reached it and what claims it saw.
type okHandler struct {
	reached bool
	claims  *sec.AdminClaims
}

func (handler *okHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	handler.reached = true
	handler.claims = ctxutil.GetAdmin(request.Context())
	writer.WriteHeader(http.StatusOK)
}

/*
TestAuthenticate covers anonymous pass-through, header format errors, and
claim injection.
*/
func TestAuthenticate(t *testing.T) {
	adminClaims := &sec.AdminClaims{IsAdmin: true}

	tests := []struct {
		name       string
		authHeader string
		verifier   *fakeVerifier
		status     int
		reached    bool
		hasClaims  bool
	}{
		{"anonymous_passes_through", "", &fakeVerifier{}, http.StatusOK, true, false},
		{"valid_bearer_token", "Bearer good-token", &fakeVerifier{claims: adminClaims}, http.StatusOK, true, true},
		{"malformed_header", "NotBearer", &fakeVerifier{}, http.StatusUnauthorized, false, false},
		{"wrong_scheme", "Basic dXNlcjpwYXNz", &fakeVerifier{}, http.StatusUnauthorized, false, false},
		{"rejected_token", "Bearer bad-token", &fakeVerifier{err: errors.New("expired")}, http.StatusUnauthorized, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &okHandler{}
			chain := middleware.Authenticate(tt.verifier)(handler)

			request := httptest.NewRequest("GET", "/api/blog/posts", nil)
			if tt.authHeader != "" {
				request.Header.Set("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			chain.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.reached, handler.reached)
			if tt.hasClaims {
				assert.NotNil(t, handler.claims)
			} else {
				assert.Nil(t, handler.claims)
			}
		})
	}
}

/*
TestRequireAdmin covers the 401 / 403 / pass-through decision.
*/
func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name    string
		claims  *sec.AdminClaims
		status  int
		reached bool
	}{
		{"no_claims", nil, http.StatusUnauthorized, false},
		{"non_admin_claims", &sec.AdminClaims{IsAdmin: false}, http.StatusForbidden, false},
		{"admin_claims", &sec.AdminClaims{IsAdmin: true}, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &okHandler{}
			chain := middleware.RequireAdmin(handler)

			request := httptest.NewRequest("GET", "/api/blog/admin/posts", nil)
			if tt.claims != nil {
				request = request.WithContext(ctxutil.WithAdmin(request.Context(), tt.claims))
			}
			recorder := httptest.NewRecorder()

			chain.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.reached, handler.reached)
		})
	}
}

/*
TestRequireAuth checks that any verified principal passes.
*/
func TestRequireAuth(t *testing.T) {
	handler := &okHandler{}
	chain := middleware.RequireAuth(handler)

	t.Run("blocks_anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		chain.ServeHTTP(recorder, httptest.NewRequest("POST", "/api/auth/logout", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("passes_authenticated", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/api/auth/logout", nil)
		request = request.WithContext(ctxutil.WithAdmin(request.Context(), &sec.AdminClaims{IsAdmin: true}))
		recorder := httptest.NewRecorder()

		chain.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
