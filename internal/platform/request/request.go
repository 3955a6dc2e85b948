// Copyright (c) 2026 PalText. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paltextai/backend/internal/platform/apperr"
	"github.com/paltextai/backend/internal/platform/ctxutil"
	"github.com/paltextai/backend/internal/platform/sec"
	"github.com/paltextai/backend/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
// Returns [validate.ErrInvalidJSON] if decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims extracts the authenticated admin claims from the request context.
// Returns nil if the request is anonymous.
func Claims(request *http.Request) *sec.AdminClaims {
	return ctxutil.GetAdmin(request.Context())
}

// RequiredClaims ensures the request is authenticated and returns the claims.
// Returns [apperr.Unauthorized] for anonymous requests.
func RequiredClaims(request *http.Request) (*sec.AdminClaims, error) {
	claims := ctxutil.GetAdmin(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}
