// Package authapi exposes registration and login endpoints.
package authapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roamly/roamly/internal/http/respond"
	"github.com/roamly/roamly/internal/middleware"
	"github.com/roamly/roamly/internal/service"
)

type Handler struct {
	svc *service.AuthService
}

func NewHandler(svc *service.AuthService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

// AuthedRoutes are the account routes behind the auth middleware.
func (h *Handler) AuthedRoutes(r chi.Router) {
	r.Get("/me", h.me)
	r.Patch("/me", h.updateMe)
}

type credentialsRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	user, token, err := h.svc.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, authResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Name: user.DisplayName, Email: user.Email},
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, authResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Name: user.DisplayName, Email: user.Email},
	})
}

type profileRequest struct {
	Name string `json:"name"`
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Profile(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, userResponse{ID: user.ID, Name: user.DisplayName, Email: user.Email})
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), middleware.GetUserID(r.Context()), req.Name)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, userResponse{ID: user.ID, Name: user.DisplayName, Email: user.Email})
}
