package adoptions

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-adoption-api/internal/domain/notifications"
	"pet-adoption-api/internal/domain/pets"
	"pet-adoption-api/internal/domain/profiles"
	"pet-adoption-api/internal/platform/logger"
)

// Service es el punto de entrada único del ciclo de adopción: compone
// guard → transición → fan-out y expone una llamada por acción de usuario.
type Service struct {
	requests Repository
	ledger   LedgerRepository

	pets     PetCatalog
	chats    ChatProvider
	notifier Notifier
	profiles ProfileDirectory

	log   logger.Logger
	now   func() time.Time
	newID func() string
}

type Deps struct {
	Requests Repository
	Ledger   LedgerRepository

	Pets     PetCatalog
	Chats    ChatProvider
	Notifier Notifier
	Profiles ProfileDirectory

	Log logger.Logger
}

func NewService(d Deps) *Service {
	log := d.Log
	if log == nil {
		log = logger.New(logger.Options{})
	}
	return &Service{
		requests: d.Requests,
		ledger:   d.Ledger,
		pets:     d.Pets,
		chats:    d.Chats,
		notifier: d.Notifier,
		profiles: d.Profiles,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// -------------------------
// Alta de solicitudes (flujo previo al ciclo de estados)
// -------------------------

type SubmitInput struct {
	PetID   string
	Message string
}

// Submit crea la solicitud en pending. Si ya existe una pending del mismo
// requester para la misma mascota, devuelve esa (no duplica).
func (s *Service) Submit(ctx context.Context, requesterID string, in SubmitInput) (Request, error) {
	requesterID = strings.TrimSpace(requesterID)
	petID := strings.TrimSpace(in.PetID)
	if requesterID == "" || petID == "" {
		return Request{}, ErrInvalidInput
	}

	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return Request{}, ErrNotFound
	}
	if pet.OwnerID == requesterID {
		return Request{}, ErrInvalidInput
	}
	if pet.Status != pets.StatusAvailable {
		return Request{}, ErrPetUnavailable
	}

	if existing, err := s.requests.FindPending(ctx, petID, requesterID); err == nil {
		return existing, nil
	}

	now := s.now()
	req := Request{
		ID:          s.newID(),
		PetID:       petID,
		OwnerID:     pet.OwnerID,
		RequesterID: requesterID,
		Message:     strings.TrimSpace(in.Message),
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return Request{}, err
	}

	_ = s.runStep(req, StepNotify, func() error {
		_, err := s.notifier.Push(ctx, notifications.PushInput{
			UserID:    req.OwnerID,
			Type:      notifications.TypeAdoptionRequested,
			Title:     "Nueva solicitud de adopción",
			Message:   "Tienes una nueva solicitud de adopción para " + pet.Name + ".",
			Payload:   requestPayload(req),
			ActionRef: "/adoptions/" + req.ID,
		})
		return err
	})

	return req, nil
}

// -------------------------
// Lectura
// -------------------------

// RequestDetail es el agregado que consume la UI al abrir una solicitud.
type RequestDetail struct {
	Request   Request
	Pet       pets.Pet
	Requester profiles.Profile
}

func (s *Service) LoadRequest(ctx context.Context, requestID, actorID string) (RequestDetail, error) {
	requestID = strings.TrimSpace(requestID)
	actorID = strings.TrimSpace(actorID)
	if requestID == "" || actorID == "" {
		return RequestDetail{}, ErrInvalidInput
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return RequestDetail{}, ErrNotFound
	}
	if err := canView(req, actorID); err != nil {
		return RequestDetail{}, err
	}

	pet, err := s.pets.GetByID(ctx, req.PetID)
	if err != nil {
		return RequestDetail{}, ErrNotFound
	}
	prof, err := s.profiles.GetByID(ctx, req.RequesterID)
	if err != nil {
		return RequestDetail{}, ErrNotFound
	}

	return RequestDetail{Request: req, Pet: pet, Requester: prof}, nil
}

func (s *Service) ListSent(ctx context.Context, requesterID string) ([]Request, error) {
	requesterID = strings.TrimSpace(requesterID)
	if requesterID == "" {
		return nil, ErrInvalidInput
	}
	return s.requests.ListByRequester(ctx, requesterID)
}

func (s *Service) ListReceived(ctx context.Context, ownerID string) ([]Request, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrInvalidInput
	}
	return s.requests.ListByOwner(ctx, ownerID)
}

func (s *Service) History(ctx context.Context, userID string) ([]AdoptionRecord, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.ledger.ListByUser(ctx, userID)
}

// -------------------------
// Acciones (una llamada por acción de la UI)
// -------------------------

// Respond: el owner acepta o rechaza una solicitud pending.
// Nota sobre reintentos: si la transición ya commiteó en una llamada
// anterior (p.ej. respuesta perdida), el guard de status devuelve
// ErrInvalidTransition y los efectos secundarios NO se vuelven a correr.
func (s *Service) Respond(ctx context.Context, requestID, actorID string, accept bool) (Outcome, error) {
	action := ActionReject
	if accept {
		action = ActionAccept
	}
	return s.execute(ctx, requestID, actorID, action)
}

// Complete: el owner confirma la entrega y la adopción queda registrada.
func (s *Service) Complete(ctx context.Context, requestID, actorID string) (Outcome, error) {
	return s.execute(ctx, requestID, actorID, ActionComplete)
}

// Cancel: el owner cancela una adopción aceptada (vuelve a rejected).
func (s *Service) Cancel(ctx context.Context, requestID, actorID string) (Outcome, error) {
	return s.execute(ctx, requestID, actorID, ActionCancel)
}

func (s *Service) execute(ctx context.Context, requestID, actorID string, action Action) (Outcome, error) {
	req, err := s.transition(ctx, requestID, actorID, action)
	if err != nil {
		// Con ErrInvalidTransition req trae el status vigente; en el resto
		// de los casos req puede venir vacío.
		return Outcome{Status: req.Status}, err
	}

	steps := s.dispatch(ctx, req, action)
	return Outcome{Status: req.Status, SideEffects: steps}, nil
}
