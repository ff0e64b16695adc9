package shelters

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

// RegisterRoutes registers flat on the parent mux: the /shelters prefix is
// shared with the applications and pets modules, so nothing may mount a
// subrouter that owns the whole subtree.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/shelters", createShelterHandler(svc))
	r.Get("/shelters", listSheltersHandler(svc))

	// Static segment, takes precedence over {shelterID}.
	r.Get("/shelters/metrics/{shelterID}", shelterMetricsHandler(svc))

	r.Get("/shelters/{shelterID}", getShelterHandler(svc))
	r.Patch("/shelters/{shelterID}", updateShelterHandler(svc))
	r.Delete("/shelters/{shelterID}", deleteShelterHandler(svc))

	r.Get("/shelters/{shelterID}/managers", listManagersHandler(svc))
	r.Post("/shelters/{shelterID}/managers", assignManagerHandler(svc))
	r.Delete("/shelters/{shelterID}/managers/{userID}", revokeManagerHandler(svc))
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

type createShelterRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	PhoneNumber string          `json:"phone_number"`
	Email       string          `json:"email"`
	Website     string          `json:"website"`
	DonationURL string          `json:"donation_url"`
	Address     *addressPayload `json:"address"`
}

type updateShelterRequest struct {
	// Pointers for real PATCH semantics: nil = leave untouched.
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	PhoneNumber *string         `json:"phone_number"`
	Email       *string         `json:"email"`
	Website     *string         `json:"website"`
	DonationURL *string         `json:"donation_url"`
	Address     *addressPayload `json:"address"`
}

type addressResponse struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

type shelterResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	PhoneNumber string          `json:"phone_number,omitempty"`
	Email       string          `json:"email,omitempty"`
	Website     string          `json:"website,omitempty"`
	DonationURL string          `json:"donation_url,omitempty"`
	Address     addressResponse `json:"address"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type managerResponse struct {
	ShelterID string    `json:"shelter_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type metricsResponse struct {
	ShelterID     string  `json:"shelter_id"`
	TotalPets     int     `json:"total_pets"`
	AvailablePets int     `json:"available_pets"`
	AdoptedPets   int     `json:"adopted_pets"`
	FollowerCount int     `json:"follower_count"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

func createShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !claims.IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req createShelterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sh, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			Description: req.Description,
			PhoneNumber: req.PhoneNumber,
			Email:       req.Email,
			Website:     req.Website,
			DonationURL: req.DonationURL,
			Address:     req.Address.toPatch(),
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toShelterResponse(sh))
	}
}

func listSheltersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		out := make([]shelterResponse, 0, len(items))
		for _, sh := range items {
			out = append(out, toShelterResponse(sh))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sh, err := svc.GetByID(r.Context(), chi.URLParam(r, "shelterID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toShelterResponse(sh))
	}
}

func updateShelterHandler(svc *Service) http.HandlerFunc {
	// Admin bypass, otherwise the caller must manage this shelter.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		shelterID := chi.URLParam(r, "shelterID")
		if !claims.IsAdmin() {
			manages, err := svc.IsManager(r.Context(), shelterID, claims.UserID)
			if err != nil || !manages {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		var req updateShelterRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sh, err := svc.Update(r.Context(), shelterID, UpdateInput{
			Name:        req.Name,
			Description: req.Description,
			PhoneNumber: req.PhoneNumber,
			Email:       req.Email,
			Website:     req.Website,
			DonationURL: req.DonationURL,
			Address:     req.Address.toPatch(),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toShelterResponse(sh))
	}
}

func deleteShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || !claims.IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "shelterID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func shelterMetricsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.Metrics(r.Context(), chi.URLParam(r, "shelterID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, metricsResponse{
			ShelterID:     m.ShelterID,
			TotalPets:     m.TotalPets,
			AvailablePets: m.AvailablePets,
			AdoptedPets:   m.AdoptedPets,
			FollowerCount: m.FollowerCount,
			AverageRating: m.AverageRating,
			ReviewCount:   m.ReviewCount,
		})
	}
}

type assignManagerRequest struct {
	UserID string `json:"user_id"`
}

func assignManagerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || !claims.IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req assignManagerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		link, err := svc.AssignManager(r.Context(), chi.URLParam(r, "shelterID"), req.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toManagerResponse(link))
	}
}

func revokeManagerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || !claims.IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		err := svc.RevokeManager(r.Context(), chi.URLParam(r, "shelterID"), chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listManagersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		links, err := svc.ListManagers(r.Context(), chi.URLParam(r, "shelterID"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]managerResponse, 0, len(links))
		for _, link := range links {
			out = append(out, toManagerResponse(link))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// filterFromQuery maps the query string onto a Filter. Unknown sort fields
// fall back to name inside BuildQuery; bad numbers are a 400 here.
func filterFromQuery(r *http.Request) (Filter, error) {
	q := r.URL.Query()

	f := Filter{
		Name:   q.Get("name"),
		City:   q.Get("city"),
		State:  q.Get("state"),
		Email:  q.Get("email"),
		SortBy: q.Get("sortBy"),
	}

	var err error
	if f.PageNumber, err = intParam(q.Get("pageNumber")); err != nil {
		return Filter{}, errors.New("pageNumber must be an integer")
	}
	if f.PageSize, err = intParam(q.Get("pageSize")); err != nil {
		return Filter{}, errors.New("pageSize must be an integer")
	}
	if v := strings.TrimSpace(q.Get("sortDescending")); v != "" {
		f.SortDescending, err = strconv.ParseBool(v)
		if err != nil {
			return Filter{}, errors.New("sortDescending must be a boolean")
		}
	}
	return f, nil
}

func intParam(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func toShelterResponse(sh Shelter) shelterResponse {
	return shelterResponse{
		ID:          sh.ID,
		Name:        sh.Name,
		Description: sh.Description,
		PhoneNumber: sh.PhoneNumber,
		Email:       sh.Email,
		Website:     sh.Website,
		DonationURL: sh.DonationURL,
		Address: addressResponse{
			Street:     sh.Address.Street,
			City:       sh.Address.City,
			State:      sh.Address.State,
			PostalCode: sh.Address.PostalCode,
			Country:    sh.Address.Country,
		},
		CreatedAt: sh.CreatedAt,
		UpdatedAt: sh.UpdatedAt,
	}
}

func toManagerResponse(link ManagerLink) managerResponse {
	return managerResponse{
		ShelterID: link.ShelterID,
		UserID:    link.UserID,
		CreatedAt: link.CreatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "shelter not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, "conflict", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON is duplicated per handler package on purpose; extracting a shared
// helper is not worth the coupling yet.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
