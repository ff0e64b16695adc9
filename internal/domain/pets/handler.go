package pets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption-api/internal/middleware"
)

// ManagerCheck answers "does this user manage this shelter". Satisfied by the
// shelters service.
type ManagerCheck interface {
	IsManager(ctx context.Context, shelterID, userID string) (bool, error)
}

func RegisterRoutes(r chi.Router, svc *Service, managers ManagerCheck) {
	r.Post("/shelters/{shelterID}/pets", registerPetHandler(svc, managers))
	r.Get("/shelters/{shelterID}/pets", listPetsHandler(svc))

	r.Get("/pets/{petID}", getPetHandler(svc))
	r.Patch("/pets/{petID}/status", setStatusHandler(svc, managers))
}

type registerPetRequest struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	Sex       string `json:"sex"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD, optional
	Notes     string `json:"notes"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type petResponse struct {
	ID        string     `json:"id"`
	ShelterID string     `json:"shelter_id"`
	Name      string     `json:"name"`
	Species   Species    `json:"species"`
	Breed     string     `json:"breed,omitempty"`
	Sex       Sex        `json:"sex"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func registerPetHandler(svc *Service, managers ManagerCheck) http.HandlerFunc {
	// Admin bypass, otherwise shelter managers only.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		shelterID := chi.URLParam(r, "shelterID")
		if !claims.IsAdmin() {
			manages, err := managers.IsManager(r.Context(), shelterID, claims.UserID)
			if err != nil || !manages {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		var req registerPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		p, err := svc.Register(r.Context(), shelterID, RegisterInput{
			Name:      req.Name,
			Species:   Species(strings.TrimSpace(req.Species)),
			Breed:     req.Breed,
			Sex:       Sex(strings.TrimSpace(req.Sex)),
			BirthDate: bd,
			Notes:     req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByShelter(r.Context(), chi.URLParam(r, "shelterID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func setStatusHandler(svc *Service, managers ManagerCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}

		if !claims.IsAdmin() {
			manages, err := managers.IsManager(r.Context(), p.ShelterID, claims.UserID)
			if err != nil || !manages {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		var req setStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.SetStatus(r.Context(), p.ID, Status(strings.TrimSpace(req.Status)))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		ShelterID: p.ShelterID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		Sex:       p.Sex,
		BirthDate: p.BirthDate,
		Notes:     p.Notes,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrBadState):
		http.Error(w, "pet already adopted", http.StatusConflict)
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
