// Copyright (c) 2026 PalText. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paltextai/backend/internal/platform/ctxutil"
	"github.com/paltextai/backend/internal/platform/middleware"
	requestutil "github.com/paltextai/backend/internal/platform/request"
	"github.com/paltextai/backend/internal/platform/respond"
)

// Handler exposes the authentication endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the auth router, mounted at /api/auth.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", h.login)
	router.Get("/verify", h.verify)

	router.Group(func(authenticated chi.Router) {
		authenticated.Use(middleware.RequireAuth)
		authenticated.Post("/logout", h.logout)
	})

	return router
}

type loginRequest struct {
	Password string `json:"password"`
}

// login handles POST /login.
func (h *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var body loginRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := h.service.Login(body.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"message": "Login successful",
		"token":   session.Token,
		"user":    session.User,
	})
}

// verify handles GET /verify. It reports whether the presented token is
// still valid and echoes its claims.
func (h *Handler) verify(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"valid": true,
		"user": SessionUser{
			IsAdmin:   claims.IsAdmin,
			LoginTime: claims.LoginTime,
		},
	})
}

// logout handles POST /logout. Tokens are stateless so there is nothing to
// revoke server side; the endpoint exists so the client has a place to land
// and the event gets logged.
func (h *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	ctxutil.GetLogger(request.Context()).Info("admin_logout")

	respond.OK(writer, map[string]any{
		"message": "Logout successful",
	})
}
