package adoptions

import (
	"context"
	"fmt"
	"time"

	"pet-adoption-api/internal/domain/chats"
	"pet-adoption-api/internal/domain/notifications"
	"pet-adoption-api/internal/domain/pets"
	"pet-adoption-api/internal/domain/profiles"
)

// Nombres de paso tal como se reportan en Outcome.SideEffects.
const (
	StepNotify        = "notify"
	StepCreateChat    = "createChat"
	StepSystemMessage = "systemMessage"
	StepPetStatus     = "petStatus"
	StepLedger        = "ledger"
)

// Interfaces locales sobre los services de otros módulos.
// Se declaran aquí (y no se importan los services concretos) para que los
// tests puedan sustituirlas y para mantener el acople en un solo lugar.

type PetCatalog interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	MarkAdopted(ctx context.Context, petID, adopterID string, at time.Time) error
}

type ChatProvider interface {
	FindByRequest(ctx context.Context, requestID string) (chats.Thread, error)
	OpenForRequest(ctx context.Context, requestID, ownerID, requesterID string) (chats.Thread, error)
	PostSystem(ctx context.Context, chatID, authorID, text string) (chats.Message, error)
}

type Notifier interface {
	Push(ctx context.Context, in notifications.PushInput) (notifications.Notification, error)
}

type ProfileDirectory interface {
	GetByID(ctx context.Context, userID string) (profiles.Profile, error)
}

// dispatch corre el fan-out de efectos secundarios DESPUÉS de que la
// transición principal commiteó. Cada paso se intenta de forma
// independiente; un fallo se registra en el resultado (y en el log) pero
// no corta los pasos siguientes ni revierte la transición.
func (s *Service) dispatch(ctx context.Context, req Request, action Action) []StepResult {
	switch action {
	case ActionAccept:
		return s.onAccepted(ctx, req)
	case ActionReject, ActionCancel:
		return s.onRejected(ctx, req, action)
	case ActionComplete:
		return s.onAdopted(ctx, req)
	default:
		return nil
	}
}

// accept → notificar al requester; crear el chat (como mucho uno por
// solicitud); si hay chat, dejar el mensaje de sistema inicial.
func (s *Service) onAccepted(ctx context.Context, req Request) []StepResult {
	out := make([]StepResult, 0, 3)

	out = append(out, s.runStep(req, StepNotify, func() error {
		_, err := s.notifier.Push(ctx, notifications.PushInput{
			UserID:    req.RequesterID,
			Type:      notifications.TypeAdoptionAccepted,
			Title:     "Solicitud aceptada",
			Message:   "El dueño aceptó tu solicitud de adopción. Ya pueden coordinar por chat.",
			Payload:   requestPayload(req),
			ActionRef: "/adoptions/" + req.ID,
		})
		return err
	}))

	var thread chats.Thread
	createChat := s.runStep(req, StepCreateChat, func() error {
		t, err := s.chats.OpenForRequest(ctx, req.ID, req.OwnerID, req.RequesterID)
		if err != nil {
			return err
		}
		thread = t
		return nil
	})
	out = append(out, createChat)

	out = append(out, s.runStep(req, StepSystemMessage, func() error {
		if !createChat.OK {
			return fmt.Errorf("chat thread unavailable")
		}
		_, err := s.chats.PostSystem(ctx, thread.ID, req.OwnerID,
			"Solicitud de adopción aceptada. Coordinen aquí la entrega.")
		return err
	}))

	return out
}

// reject/cancel → notificar al requester; si YA existe un chat para la
// solicitud, anunciar la cancelación ahí. Nunca se crea un chat nuevo.
func (s *Service) onRejected(ctx context.Context, req Request, action Action) []StepResult {
	out := make([]StepResult, 0, 2)

	title := "Solicitud rechazada"
	message := "El dueño rechazó tu solicitud de adopción."
	systemText := "La solicitud de adopción fue rechazada."
	if action == ActionCancel {
		title = "Adopción cancelada"
		message = "El dueño canceló la adopción en curso."
		systemText = "La adopción en curso fue cancelada por el dueño."
	}

	out = append(out, s.runStep(req, StepNotify, func() error {
		_, err := s.notifier.Push(ctx, notifications.PushInput{
			UserID:    req.RequesterID,
			Type:      notifications.TypeAdoptionRejected,
			Title:     title,
			Message:   message,
			Payload:   requestPayload(req),
			ActionRef: "/adoptions/" + req.ID,
		})
		return err
	}))

	thread, err := s.chats.FindByRequest(ctx, req.ID)
	if err != nil {
		// Sin chat previo no hay mensaje de sistema que dejar.
		return out
	}

	out = append(out, s.runStep(req, StepSystemMessage, func() error {
		_, err := s.chats.PostSystem(ctx, thread.ID, req.OwnerID, systemText)
		return err
	}))

	return out
}

// complete → marcar la mascota como adoptada, asentar el registro en el
// libro de adopciones, notificar al requester y anunciar en el chat si existe.
func (s *Service) onAdopted(ctx context.Context, req Request) []StepResult {
	out := make([]StepResult, 0, 4)
	now := s.now()

	out = append(out, s.runStep(req, StepPetStatus, func() error {
		return s.pets.MarkAdopted(ctx, req.PetID, req.RequesterID, now)
	}))

	out = append(out, s.runStep(req, StepLedger, func() error {
		return s.ledger.Create(ctx, AdoptionRecord{
			ID:        s.newID(),
			RequestID: req.ID,
			PetID:     req.PetID,
			OwnerID:   req.OwnerID,
			AdopterID: req.RequesterID,
			AdoptedAt: now,
		})
	}))

	out = append(out, s.runStep(req, StepNotify, func() error {
		_, err := s.notifier.Push(ctx, notifications.PushInput{
			UserID:    req.RequesterID,
			Type:      notifications.TypeAdoptionCompleted,
			Title:     "¡Adopción completada!",
			Message:   "La adopción quedó registrada. ¡Gracias por adoptar!",
			Payload:   requestPayload(req),
			ActionRef: "/adoptions/" + req.ID,
		})
		return err
	}))

	thread, err := s.chats.FindByRequest(ctx, req.ID)
	if err != nil {
		return out
	}

	out = append(out, s.runStep(req, StepSystemMessage, func() error {
		_, err := s.chats.PostSystem(ctx, thread.ID, req.OwnerID,
			"La adopción fue completada y registrada.")
		return err
	}))

	return out
}

// runStep ejecuta un paso y captura su error: los fallos de efectos
// secundarios se loguean y se reportan en el Outcome, nunca se propagan
// como error de la llamada (la transición principal ya es la verdad).
func (s *Service) runStep(req Request, name string, fn func() error) StepResult {
	if err := fn(); err != nil {
		s.log.Warn("side effect failed", map[string]any{
			"step":       name,
			"request_id": req.ID,
			"status":     string(req.Status),
			"error":      err.Error(),
		})
		return StepResult{Step: name, OK: false, Error: err.Error()}
	}
	return StepResult{Step: name, OK: true}
}

func requestPayload(req Request) map[string]string {
	return map[string]string{
		"request_id": req.ID,
		"pet_id":     req.PetID,
	}
}
