// Package choice exposes group poll endpoints.
package choice

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roamly/roamly/internal/http/respond"
	"github.com/roamly/roamly/internal/middleware"
	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/service"
)

type Handler struct {
	svc *service.ChoiceService
}

func NewHandler(svc *service.ChoiceService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/trips/{tripID}/choices", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Post("/{choiceID}/votes", h.castVote)
		r.Delete("/{choiceID}", h.delete)
	})
}

type choiceRequest struct {
	Title   string   `json:"title"`
	Options []string `json:"options"`
}

type voteRequest struct {
	MemberID string `json:"member_id"`
	OptionID string `json:"option_id"`
}

type optionResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Votes int    `json:"votes"`
}

type choiceResponse struct {
	ID        string           `json:"id"`
	TripID    string           `json:"trip_id"`
	Title     string           `json:"title"`
	Options   []optionResponse `json:"options"`
	CreatedAt int64            `json:"created_at"`
}

func toChoiceResponse(c *models.Choice) choiceResponse {
	resp := choiceResponse{
		ID:        c.ID,
		TripID:    c.TripID,
		Title:     c.Title,
		Options:   make([]optionResponse, 0, len(c.Options)),
		CreatedAt: c.CreatedAt,
	}
	for _, o := range c.Options {
		resp.Options = append(resp.Options, optionResponse{ID: o.ID, Label: o.Label, Votes: o.Votes})
	}
	return resp
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req choiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	params := service.CreateChoiceParams{Title: req.Title, Options: req.Options}
	choice, err := h.svc.CreateChoice(r.Context(), middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tripID"), params)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toChoiceResponse(choice))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	choices, err := h.svc.ListChoices(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		respond.Err(w, err)
		return
	}

	resp := make([]choiceResponse, 0, len(choices))
	for _, c := range choices {
		resp = append(resp, toChoiceResponse(c))
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) castVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	choice, err := h.svc.CastVote(r.Context(), middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "choiceID"), req.MemberID, req.OptionID)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toChoiceResponse(choice))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteChoice(r.Context(), middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "choiceID"))
	if err != nil {
		respond.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
