package adoptions

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-adoption-api/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Alta de solicitud, scoped por mascota
	r.Route("/pets/{petID}/adoptions", func(ar chi.Router) {
		ar.Post("/", submitHandler(svc))
	})

	// Ciclo de vida de una solicitud
	r.Route("/adoptions/{requestID}", func(ar chi.Router) {
		ar.Get("/", loadRequestHandler(svc))
		ar.Post("/respond", respondHandler(svc))
		ar.Post("/complete", completeHandler(svc))
		ar.Post("/cancel", cancelHandler(svc))
	})

	// Vistas del usuario autenticado
	r.Route("/me/adoptions", func(mr chi.Router) {
		mr.Get("/", listSentHandler(svc))
		mr.Get("/received", listReceivedHandler(svc))
		mr.Get("/history", historyHandler(svc))
	})
}

type submitRequest struct {
	Message string `json:"message"`
}

type requestResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	OwnerID     string    `json:"owner_id"`
	RequesterID string    `json:"requester_id"`
	Message     string    `json:"message,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type stepResultResponse struct {
	Step  string `json:"step"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type outcomeResponse struct {
	Status      Status               `json:"status"`
	SideEffects []stepResultResponse `json:"side_effects"`
}

type requestDetailResponse struct {
	Request   requestResponse `json:"request"`
	Pet       petResponse     `json:"pet"`
	Requester profileResponse `json:"requester"`
}

type petResponse struct {
	ID        string  `json:"id"`
	OwnerID   string  `json:"owner_id"`
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	Breed     string  `json:"breed,omitempty"`
	Status    string  `json:"status"`
	AdoptedBy *string `json:"adopted_by,omitempty"`
}

type profileResponse struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	City     string `json:"city,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

type recordResponse struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	PetID     string    `json:"pet_id"`
	OwnerID   string    `json:"owner_id"`
	AdopterID string    `json:"adopter_id"`
	AdoptedAt time.Time `json:"adopted_at"`
}

func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")

		var req submitRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		created, err := svc.Submit(r.Context(), claims.UserID, SubmitInput{
			PetID:   petID,
			Message: req.Message,
		})
		if err != nil {
			writeActionError(w, err, Outcome{})
			return
		}

		writeJSON(w, http.StatusCreated, toRequestResponse(created))
	}
}

func loadRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		requestID := chi.URLParam(r, "requestID")
		detail, err := svc.LoadRequest(r.Context(), requestID, claims.UserID)
		if err != nil {
			writeActionError(w, err, Outcome{})
			return
		}

		adoptedBy := detail.Pet.AdoptedBy
		writeJSON(w, http.StatusOK, requestDetailResponse{
			Request: toRequestResponse(detail.Request),
			Pet: petResponse{
				ID:        detail.Pet.ID,
				OwnerID:   detail.Pet.OwnerID,
				Name:      detail.Pet.Name,
				Species:   string(detail.Pet.Species),
				Breed:     detail.Pet.Breed,
				Status:    string(detail.Pet.Status),
				AdoptedBy: adoptedBy,
			},
			Requester: profileResponse{
				UserID:   detail.Requester.UserID,
				Name:     detail.Requester.Name,
				City:     detail.Requester.City,
				PhotoURL: detail.Requester.PhotoURL,
			},
		})
	}
}

type respondRequest struct {
	Accept bool `json:"accept"`
}

func respondHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req respondRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		requestID := chi.URLParam(r, "requestID")
		out, err := svc.Respond(r.Context(), requestID, claims.UserID, req.Accept)
		if err != nil {
			writeActionError(w, err, out)
			return
		}

		writeJSON(w, http.StatusOK, toOutcomeResponse(out))
	}
}

func completeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		requestID := chi.URLParam(r, "requestID")
		out, err := svc.Complete(r.Context(), requestID, claims.UserID)
		if err != nil {
			writeActionError(w, err, out)
			return
		}

		writeJSON(w, http.StatusOK, toOutcomeResponse(out))
	}
}

func cancelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		requestID := chi.URLParam(r, "requestID")
		out, err := svc.Cancel(r.Context(), requestID, claims.UserID)
		if err != nil {
			writeActionError(w, err, out)
			return
		}

		writeJSON(w, http.StatusOK, toOutcomeResponse(out))
	}
}

func listSentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListSent(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponses(filterByStatus(items, r.URL.Query().Get("status"))))
	}
}

func listReceivedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListReceived(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponses(filterByStatus(items, r.URL.Query().Get("status"))))
	}
}

func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.History(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, recordResponse{
				ID:        rec.ID,
				RequestID: rec.RequestID,
				PetID:     rec.PetID,
				OwnerID:   rec.OwnerID,
				AdopterID: rec.AdopterID,
				AdoptedAt: rec.AdoptedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// writeActionError mapea la taxonomía de errores del módulo a HTTP.
// ErrInvalidTransition incluye el status vigente en el mensaje para que la
// UI pueda decir "ya fue aceptada/rechazada".
func writeActionError(w http.ResponseWriter, err error, out Outcome) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, fmt.Sprintf("invalid transition: request is %s", out.Status), http.StatusConflict)
	case errors.Is(err, ErrConcurrentModification):
		http.Error(w, "request changed concurrently, reload and retry", http.StatusConflict)
	case errors.Is(err, ErrPetUnavailable):
		http.Error(w, "pet unavailable", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// filterByStatus aplica el filtro opcional ?status= de los listados.
// Un valor vacío devuelve todo; un valor desconocido no matchea nada.
func filterByStatus(items []Request, status string) []Request {
	status = strings.TrimSpace(status)
	if status == "" {
		return items
	}

	out := make([]Request, 0, len(items))
	for _, r := range items {
		if r.Status == Status(status) {
			out = append(out, r)
		}
	}
	return out
}

func toRequestResponse(r Request) requestResponse {
	return requestResponse{
		ID:          r.ID,
		PetID:       r.PetID,
		OwnerID:     r.OwnerID,
		RequesterID: r.RequesterID,
		Message:     r.Message,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toRequestResponses(items []Request) []requestResponse {
	out := make([]requestResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toRequestResponse(r))
	}
	return out
}

func toOutcomeResponse(o Outcome) outcomeResponse {
	steps := make([]stepResultResponse, 0, len(o.SideEffects))
	for _, s := range o.SideEffects {
		steps = append(steps, stepResultResponse{Step: s.Step, OK: s.OK, Error: s.Error})
	}
	return outcomeResponse{Status: o.Status, SideEffects: steps}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (mismo criterio que en el resto del proyecto: sin helpers compartidos
// hasta que haga falta de verdad).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
