package applications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption-api/internal/domain/addresses"
	"pet-adoption-api/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Full static paths, registered flat: the static "applications" segment
	// takes precedence over the {shelterID} wildcard in the shared trie.
	r.Post("/shelters/applications", submitHandler(svc))
	r.Get("/shelters/applications", listHandler(svc))
	r.Get("/shelters/applications/{requestID}", getHandler(svc))
	r.Put("/shelters/applications/{requestID}/status", decideHandler(svc))
	r.Post("/shelters/applications/{requestID}/withdraw", withdrawHandler(svc))
}

type addressPayload struct {
	Street     *string `json:"street"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
}

func (p *addressPayload) toPatch() addresses.Patch {
	if p == nil {
		return addresses.Patch{}
	}
	return addresses.Patch{
		Street:     p.Street,
		City:       p.City,
		State:      p.State,
		PostalCode: p.PostalCode,
		Country:    p.Country,
	}
}

type submitRequest struct {
	ShelterName string          `json:"shelter_name"`
	Remarks     string          `json:"remarks"`
	Address     *addressPayload `json:"address"`
}

type decideRequest struct {
	Approve bool `json:"approve"`
}

type applicationResponse struct {
	ID              string    `json:"id"`
	ApplicantUserID string    `json:"applicant_user_id"`
	ShelterName     string    `json:"shelter_name"`
	Remarks         string    `json:"remarks,omitempty"`
	Status          Status    `json:"status"`
	IsApproved      bool      `json:"is_approved"`
	ShelterID       string    `json:"shelter_id,omitempty"`
	Street          string    `json:"street,omitempty"`
	City            string    `json:"city,omitempty"`
	State           string    `json:"state,omitempty"`
	PostalCode      string    `json:"postal_code,omitempty"`
	Country         string    `json:"country,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Submit(r.Context(), claims.UserID, SubmitInput{
			ShelterName: req.ShelterName,
			Address:     req.Address.toPatch(),
			Remarks:     req.Remarks,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toApplicationResponse(a))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || !claims.IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		f, err := filterFromQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]applicationResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toApplicationResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	// Admins see everything, applicants only their own.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "requestID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !claims.IsAdmin() && a.ApplicantUserID != claims.UserID {
			http.Error(w, "application not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

func decideHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || !claims.IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req decideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Decide(r.Context(), chi.URLParam(r, "requestID"), req.Approve)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

func withdrawHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.Withdraw(r.Context(), chi.URLParam(r, "requestID"), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

func filterFromQuery(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	var f Filter

	if v := strings.TrimSpace(q.Get("isApproved")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Filter{}, errors.New("isApproved must be a boolean")
		}
		f.IsApproved = &b
	}

	var err error
	if f.CreatedAfter, err = dateParam(q.Get("createdAfter")); err != nil {
		return Filter{}, errors.New("createdAfter must be YYYY-MM-DD or RFC3339")
	}
	if f.CreatedBefore, err = dateParam(q.Get("createdBefore")); err != nil {
		return Filter{}, errors.New("createdBefore must be YYYY-MM-DD or RFC3339")
	}
	return f, nil
}

func dateParam(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toApplicationResponse(a Application) applicationResponse {
	return applicationResponse{
		ID:              a.ID,
		ApplicantUserID: a.ApplicantUserID,
		ShelterName:     a.ShelterName,
		Remarks:         a.Remarks,
		Status:          a.Status,
		IsApproved:      a.IsApproved,
		ShelterID:       a.ShelterID,
		Street:          a.Address.Street,
		City:            a.Address.City,
		State:           a.Address.State,
		PostalCode:      a.Address.PostalCode,
		Country:         a.Address.Country,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "application not found", http.StatusNotFound)
	case errors.Is(err, ErrBadState), errors.Is(err, ErrConflict):
		http.Error(w, "conflict", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON mirrors the other handler packages.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
