package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/events-app/events-api/internal/models"
	"github.com/events-app/events-api/internal/service"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

type CreateEventRequest struct {
	Body struct {
		Name      string    `json:"name,omitempty" doc:"Name of the event"`
		Location  string    `json:"location,omitempty" doc:"Where the event takes place"`
		Date      time.Time `json:"date,omitempty" doc:"Calendar date of the event"`
		StartTime string    `json:"startTime,omitempty" doc:"Start time of day in HH:MM format"`
	}
}

type UpdateEventRequest struct {
	ID   uint `path:"id"`
	Body struct {
		Name      string    `json:"name,omitempty" doc:"New name, unchanged when empty"`
		Location  string    `json:"location,omitempty" doc:"New location, unchanged when empty"`
		Date      time.Time `json:"date,omitempty" doc:"New date, unchanged when omitted"`
		StartTime string    `json:"startTime,omitempty" doc:"New start time, unchanged when empty"`
	}
}

type EventByIDRequest struct {
	ID uint `path:"id"`
}

type ListEventsRequest struct {
	Date     string `query:"date" doc:"Keep only events on this calendar date"`
	Location string `query:"location" doc:"Keep only events whose location contains this substring"`
}

type EventResponse struct {
	Body models.Event
}

type EventListResponse struct {
	Body []models.Event
}

func (h *EventHandler) HandleCreateEvent(ctx context.Context, input *CreateEventRequest) (*EventResponse, error) {
	event, err := h.svc.CreateEvent(ctx, service.CreateEventRequest{
		Name:      input.Body.Name,
		Location:  input.Body.Location,
		Date:      input.Body.Date,
		StartTime: input.Body.StartTime,
	})
	if err != nil {
		return nil, mapServiceError(err, "creating the event")
	}

	return &EventResponse{Body: *event}, nil
}

func (h *EventHandler) HandleGetEvent(ctx context.Context, input *EventByIDRequest) (*EventResponse, error) {
	event, err := h.svc.GetEvent(ctx, input.ID)
	if err != nil {
		return nil, mapServiceError(err, "retrieving the event")
	}

	return &EventResponse{Body: *event}, nil
}

func (h *EventHandler) HandleListEvents(ctx context.Context, input *ListEventsRequest) (*EventListResponse, error) {
	// An unparseable date filter is ignored rather than rejected.
	var date *time.Time
	if parsed, ok := parseDateFilter(input.Date); ok {
		date = &parsed
	}

	events, err := h.svc.ListEvents(ctx, date, input.Location)
	if err != nil {
		return nil, mapServiceError(err, "retrieving events")
	}

	return &EventListResponse{Body: events}, nil
}

func (h *EventHandler) HandleUpdateEvent(ctx context.Context, input *UpdateEventRequest) (*EventResponse, error) {
	event, err := h.svc.UpdateEvent(ctx, input.ID, service.UpdateEventRequest{
		Name:      input.Body.Name,
		Location:  input.Body.Location,
		Date:      input.Body.Date,
		StartTime: input.Body.StartTime,
	})
	if err != nil {
		return nil, mapServiceError(err, "updating the event")
	}

	return &EventResponse{Body: *event}, nil
}

func (h *EventHandler) HandleDeleteEvent(ctx context.Context, input *EventByIDRequest) (*struct{}, error) {
	deleted, err := h.svc.DeleteEvent(ctx, input.ID)
	if err != nil {
		return nil, mapServiceError(err, "deleting the event")
	}
	if !deleted {
		return nil, huma.Error404NotFound("Event not found")
	}

	return &struct{}{}, nil
}

func parseDateFilter(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// mapServiceError translates service errors into HTTP responses. Anything
// unclassified is logged and reported as a generic 500.
func mapServiceError(err error, action string) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return huma.Error400BadRequest(verr.Error())
	case errors.Is(err, service.ErrEventNotFound):
		return huma.Error404NotFound("Event not found")
	case errors.Is(err, service.ErrDuplicateRegistration):
		return huma.Error409Conflict(err.Error())
	default:
		log.Printf("Error %s: %v", action, err)
		return huma.Error500InternalServerError("An error occurred while " + action)
	}
}
