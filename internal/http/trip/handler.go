// Package trip exposes trip, roster and contact endpoints.
package trip

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
	svc *service.TripService
}

func NewHandler(svc *service.TripService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/trips", h.create)
	r.Get("/trips", h.list)
	r.Route("/trips/{tripID}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Patch("/", h.update)
		r.Delete("/", h.delete)

		r.Post("/members", h.addMember)
		r.Patch("/members/{memberID}", h.updateMember)
		r.Delete("/members/{memberID}", h.removeMember)

		r.Post("/contacts", h.addContact)
		r.Get("/contacts", h.listContacts)
		r.Delete("/contacts/{contactID}", h.deleteContact)
	})
}

type tripRequest struct {
	Name         *string `json:"name"`
	StartDate    *int64  `json:"start_date"`
	EndDate      *int64  `json:"end_date"`
	BaseCurrency *string `json:"base_currency"`
}

type tripResponse struct {
	ID           string `json:"id"`
	OwnerID      string `json:"owner_id"`
	Name         string `json:"name"`
	StartDate    int64  `json:"start_date,omitempty"`
	EndDate      int64  `json:"end_date,omitempty"`
	BaseCurrency string `json:"base_currency"`
	CreatedAt    int64  `json:"created_at"`

	Members []memberResponse `json:"members,omitempty"`
}

type memberRequest struct {
	Name   *string `json:"name"`
	UserID string  `json:"user_id,omitempty"`
	RSVP   *string `json:"rsvp"`
}

type memberResponse struct {
	ID        string `json:"id"`
	TripID    string `json:"trip_id"`
	UserID    string `json:"user_id,omitempty"`
	Name      string `json:"name"`
	RSVP      string `json:"rsvp,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

type contactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Note  string `json:"note,omitempty"`
}

type contactResponse struct {
	ID        string `json:"id"`
	TripID    string `json:"trip_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Note      string `json:"note,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

func toTripResponse(t *models.Trip, members []*models.Member) tripResponse {
	resp := tripResponse{
		ID:           t.ID,
		OwnerID:      t.OwnerID,
		Name:         t.Name,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		BaseCurrency: t.BaseCurrency,
		CreatedAt:    t.CreatedAt,
	}
	for _, m := range members {
		resp.Members = append(resp.Members, toMemberResponse(m))
	}
	return resp
}

func toMemberResponse(m *models.Member) memberResponse {
	return memberResponse{
		ID:        m.ID,
		TripID:    m.TripID,
		UserID:    m.UserID,
		Name:      m.Name,
		RSVP:      string(m.RSVP),
		CreatedAt: m.CreatedAt,
	}
}

func toContactResponse(c *models.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID,
		TripID:    c.TripID,
		Name:      c.Name,
		Phone:     c.Phone,
		Note:      c.Note,
		CreatedAt: c.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	params := service.CreateTripParams{}
	if req.Name != nil {
		params.Name = *req.Name
	}
	if req.StartDate != nil {
		params.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		params.EndDate = *req.EndDate
	}
	if req.BaseCurrency != nil {
		params.BaseCurrency = *req.BaseCurrency
	}

	trip, err := h.svc.CreateTrip(r.Context(), middleware.GetUserID(r.Context()), params)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toTripResponse(trip, nil))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	trips, err := h.svc.ListTrips(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respond.Err(w, err)
		return
	}

	resp := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		resp = append(resp, toTripResponse(t, nil))
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	trip, members, err := h.svc.GetTrip(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toTripResponse(trip, members))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	params := service.UpdateTripParams{
		Name:         req.Name,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		BaseCurrency: req.BaseCurrency,
	}
	trip, err := h.svc.UpdateTrip(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "tripID"), params)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toTripResponse(trip, nil))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTrip(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "tripID")); err != nil {
		respond.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	params := service.AddMemberParams{UserID: req.UserID}
	if req.Name != nil {
		params.Name = *req.Name
	}
	if req.RSVP != nil {
		params.RSVP = models.RSVPStatus(*req.RSVP)
	}

	member, err := h.svc.AddMember(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "tripID"), params)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toMemberResponse(member))
}

func (h *Handler) updateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	params := service.UpdateMemberParams{Name: req.Name}
	if req.RSVP != nil {
		rsvp := models.RSVPStatus(*req.RSVP)
		params.RSVP = &rsvp
	}

	member, err := h.svc.UpdateMember(r.Context(), middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "memberID"), params)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toMemberResponse(member))
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request) {
	err := h.svc.RemoveMember(r.Context(), middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "memberID"))
	if err != nil {
		respond.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	contact := &models.Contact{Name: req.Name, Phone: req.Phone, Note: req.Note}
	contact, err := h.svc.AddContact(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "tripID"), contact)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toContactResponse(contact))
}

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.svc.ListContacts(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		respond.Err(w, err)
		return
	}

	resp := make([]contactResponse, 0, len(contacts))
	for _, c := range contacts {
		resp = append(resp, toContactResponse(c))
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) deleteContact(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteContact(r.Context(), middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "contactID"))
	if err != nil {
		respond.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
