package handlers

import (
	"context"
	"log"

	"github.com/events-app/events-api/internal/models"
	"github.com/events-app/events-api/internal/notifier"
	"github.com/events-app/events-api/internal/service"
)

type RegistrationHandler struct {
	svc      service.EventService
	notifier notifier.Notifier
}

func NewRegistrationHandler(svc service.EventService, notifier notifier.Notifier) *RegistrationHandler {
	return &RegistrationHandler{svc: svc, notifier: notifier}
}

type RegistrationRequest struct {
	EventID uint `path:"id"`
	Body    struct {
		Name                  string `json:"name,omitempty" doc:"Full name of the attendee"`
		Email                 string `json:"email,omitempty" doc:"Contact email, one registration per email per event"`
		Pronouns              string `json:"pronouns,omitempty" doc:"Preferred pronouns"`
		OptInForCommunication bool   `json:"optInForCommunication,omitempty" doc:"Whether the attendee agrees to be contacted"`
	}
}

type RegistrationResponse struct {
	Body models.EventRegistration
}

func (h *RegistrationHandler) HandleRegister(ctx context.Context, input *RegistrationRequest) (*RegistrationResponse, error) {
	registration, err := h.svc.RegisterForEvent(ctx, input.EventID, service.RegisterRequest{
		Name:                  input.Body.Name,
		Email:                 input.Body.Email,
		Pronouns:              input.Body.Pronouns,
		OptInForCommunication: input.Body.OptInForCommunication,
	})
	if err != nil {
		return nil, mapServiceError(err, "registering for the event")
	}

	if h.notifier != nil {
		event, err := h.svc.GetEvent(ctx, input.EventID)
		if err == nil {
			if err := h.notifier.NotifyRegistration(*event, *registration); err != nil {
				log.Printf("Failed to notify registration: %v", err)
			}
		}
	}

	return &RegistrationResponse{Body: *registration}, nil
}
