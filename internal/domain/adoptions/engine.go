package adoptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type transitionKey struct {
	from   Status
	action Action
}

// Transiciones legales. Todo par (from, action) fuera de esta tabla
// falla con ErrInvalidTransition.
var transitions = map[transitionKey]Status{
	{StatusPending, ActionAccept}:    StatusAccepted,
	{StatusPending, ActionReject}:    StatusRejected,
	{StatusAccepted, ActionComplete}: StatusAdopted,
	{StatusAccepted, ActionCancel}:   StatusRejected,
}

func nextStatus(from Status, action Action) (Status, bool) {
	to, ok := transitions[transitionKey{from: from, action: action}]
	return to, ok
}

// transition es la única escritura principal por llamada: relee el status
// justo antes de escribir y commitea con UpdateStatus condicional. Si la
// transición no es legal, devuelve la solicitud actual junto con
// ErrInvalidTransition para que el caller reporte el status vigente.
func (s *Service) transition(ctx context.Context, requestID, actorID string, action Action) (Request, error) {
	requestID = strings.TrimSpace(requestID)
	actorID = strings.TrimSpace(actorID)
	if requestID == "" || actorID == "" {
		return Request{}, ErrInvalidInput
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return Request{}, ErrNotFound
	}

	if err := canMutate(req, actorID); err != nil {
		return Request{}, err
	}

	to, ok := nextStatus(req.Status, action)
	if !ok {
		return req, ErrInvalidTransition
	}

	now := s.now()
	if err := s.requests.UpdateStatus(ctx, req.ID, req.Status, to, now); err != nil {
		if errors.Is(err, ErrConcurrentModification) {
			return req, ErrConcurrentModification
		}
		return req, fmt.Errorf("update status: %w", err)
	}

	req.Status = to
	req.UpdatedAt = now
	return req, nil
}
