package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/events-app/events-api/internal/models"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type CreateEventRequest struct {
	Name      string    `validate:"required,max=200"`
	Location  string    `validate:"required,max=500"`
	Date      time.Time `validate:"required"`
	StartTime string    `validate:"required"`
}

// UpdateEventRequest is a merge-patch: zero-valued fields are treated as
// "not provided" and leave the stored value unchanged. An empty string can
// therefore never be set through an update.
type UpdateEventRequest struct {
	Name      string    `validate:"omitempty,max=200"`
	Location  string    `validate:"omitempty,max=500"`
	Date      time.Time `validate:"-"`
	StartTime string    `validate:"-"`
}

type RegisterRequest struct {
	Name                  string `validate:"required,max=100"`
	Email                 string `validate:"required,email,max=200"`
	Pronouns              string `validate:"omitempty,max=50"`
	OptInForCommunication bool
}

// EventService owns all business rules for events and registrations.
// Everything else in the repository is translation around it.
type EventService interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*models.Event, error)
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context, date *time.Time, location string) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id uint, req UpdateEventRequest) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uint) (bool, error)
	RegisterForEvent(ctx context.Context, eventID uint, req RegisterRequest) (*models.EventRegistration, error)
}

type eventService struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewEventService(db *gorm.DB) EventService {
	return &eventService{db: db, validate: validator.New()}
}

func (s *eventService) CreateEvent(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	if err := s.checkStruct(req); err != nil {
		return nil, err
	}
	startTime, err := normalizeStartTime(req.StartTime)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event := models.Event{
		Name:          req.Name,
		Location:      req.Location,
		Date:          truncateToDate(req.Date),
		StartTime:     startTime,
		CreatedAt:     now,
		UpdatedAt:     now,
		Registrations: []models.EventRegistration{},
	}

	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, err
	}

	return &event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).Preload("Registrations").First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if event.Registrations == nil {
		event.Registrations = []models.EventRegistration{}
	}
	return &event, nil
}

func (s *eventService) ListEvents(ctx context.Context, date *time.Time, location string) ([]models.Event, error) {
	query := s.db.WithContext(ctx).Model(&models.Event{}).Preload("Registrations")

	if date != nil {
		query = query.Where("date = ?", truncateToDate(*date))
	}
	if location != "" {
		query = query.Where("location LIKE ?", "%"+location+"%")
	}

	var events []models.Event
	if err := query.Order("date ASC, start_time ASC").Find(&events).Error; err != nil {
		return nil, err
	}

	for i := range events {
		if events[i].Registrations == nil {
			events[i].Registrations = []models.EventRegistration{}
		}
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id uint, req UpdateEventRequest) (*models.Event, error) {
	if err := s.checkStruct(req); err != nil {
		return nil, err
	}
	startTime := ""
	if req.StartTime != "" {
		normalized, err := normalizeStartTime(req.StartTime)
		if err != nil {
			return nil, err
		}
		startTime = normalized
	}

	var event models.Event
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&event, id).Error; err != nil {
			return err
		}

		if req.Name != "" {
			event.Name = req.Name
		}
		if req.Location != "" {
			event.Location = req.Location
		}
		if !req.Date.IsZero() {
			event.Date = truncateToDate(req.Date)
		}
		if startTime != "" {
			event.StartTime = startTime
		}
		event.UpdatedAt = time.Now().UTC()

		return tx.Save(&event).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	event.Registrations = []models.EventRegistration{}
	return &event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		// Cascade to registrations inside the same transaction.
		if err := tx.Where("event_id = ?", id).Delete(&models.EventRegistration{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&event).Error; err != nil {
			return err
		}

		deleted = true
		return nil
	})
	return deleted, err
}

func (s *eventService) RegisterForEvent(ctx context.Context, eventID uint, req RegisterRequest) (*models.EventRegistration, error) {
	if err := s.checkStruct(req); err != nil {
		return nil, err
	}

	var registration models.EventRegistration
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, eventID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.EventRegistration{}).
			Where("event_id = ? AND email = ?", eventID, req.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateRegistration
		}

		registration = models.EventRegistration{
			EventID:               eventID,
			Name:                  req.Name,
			Email:                 req.Email,
			Pronouns:              req.Pronouns,
			OptInForCommunication: req.OptInForCommunication,
			RegisteredAt:          time.Now().UTC(),
		}
		return tx.Create(&registration).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrEventNotFound
		case errors.Is(err, ErrDuplicateRegistration):
			return nil, err
		case isUniqueConstraintViolation(err):
			// The unique index on (event_id, email) is the authoritative
			// guard when two registrations race past the count check.
			return nil, ErrDuplicateRegistration
		default:
			return nil, err
		}
	}

	return &registration, nil
}

// checkStruct runs the validator tags and converts the first failure into
// a ValidationError naming the offending field.
func (s *eventService) checkStruct(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	reason := "is invalid"
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "max":
		reason = "must be at most " + fe.Param() + " characters"
	case "email":
		reason = "must be a valid email address"
	}
	return &ValidationError{Field: fieldName(fe.StructField()), Reason: reason}
}

func normalizeStartTime(value string) (string, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return "", &ValidationError{Field: "startTime", Reason: "must be a time of day in HH:MM format"}
	}
	return t.Format("15:04"), nil
}

// truncateToDate keeps the calendar-date component only, fixed at midnight
// UTC, so stored dates and date filters compare by equality.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func fieldName(structField string) string {
	if structField == "" {
		return structField
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}

func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
