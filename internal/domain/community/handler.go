package community

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption-api/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Put("/shelters/{shelterID}/follow", followHandler(svc))
	r.Delete("/shelters/{shelterID}/follow", unfollowHandler(svc))
	r.Get("/shelters/{shelterID}/followers", listFollowersHandler(svc))

	r.Post("/shelters/{shelterID}/reviews", addReviewHandler(svc))
	r.Get("/shelters/{shelterID}/reviews", listReviewsHandler(svc))
}

type followResponse struct {
	ShelterID string `json:"shelter_id"`
	UserID    string `json:"user_id"`
}

type addReviewRequest struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

type reviewResponse struct {
	ID        string    `json:"id"`
	ShelterID string    `json:"shelter_id"`
	UserID    string    `json:"user_id"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func followHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		f, err := svc.Follow(r.Context(), chi.URLParam(r, "shelterID"), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, followResponse{ShelterID: f.ShelterID, UserID: f.UserID})
	}
}

func unfollowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Unfollow(r.Context(), chi.URLParam(r, "shelterID"), claims.UserID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listFollowersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Followers(r.Context(), chi.URLParam(r, "shelterID"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]followResponse, 0, len(items))
		for _, f := range items {
			out = append(out, followResponse{ShelterID: f.ShelterID, UserID: f.UserID})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func addReviewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req addReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rv, err := svc.AddReview(r.Context(), chi.URLParam(r, "shelterID"), claims.UserID, ReviewInput{
			Rating:  req.Rating,
			Comment: req.Comment,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toReviewResponse(rv))
	}
}

func listReviewsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Reviews(r.Context(), chi.URLParam(r, "shelterID"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]reviewResponse, 0, len(items))
		for _, rv := range items {
			out = append(out, toReviewResponse(rv))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toReviewResponse(rv Review) reviewResponse {
	return reviewResponse{
		ID:        rv.ID,
		ShelterID: rv.ShelterID,
		UserID:    rv.UserID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
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
