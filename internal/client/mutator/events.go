package mutator

import (
	"context"

	"github.com/dmitrijs2005/eventflow/internal/client/formdata"
	"github.com/dmitrijs2005/eventflow/internal/client/models"
)

const (
	ConfirmDeleteEvent = "Are you sure you want to delete this event?"

	msgEventCreated = "Event created successfully!"
	msgEventUpdated = "Event updated successfully!"
	msgEventDeleted = "Event deleted successfully!"
	msgSaveFailed   = "Failed to save event."
	msgDeleteFailed = "Failed to delete event."

	// ImageField is the multipart name of the event image.
	ImageField = "image"
)

// EventsAPI is the part of the API client the events collection calls.
type EventsAPI interface {
	ListEvents(ctx context.Context, credential string) ([]models.EventRecord, error)
	CreateEvent(ctx context.Context, credential string, payload *formdata.Payload) error
	UpdateEvent(ctx context.Context, credential string, id models.ID, payload *formdata.Payload) error
	DeleteEvent(ctx context.Context, credential string, id models.ID) error
}

type Events struct {
	*Collection[models.EventRecord]
	api EventsAPI
}

func NewEvents(api EventsAPI, deps Deps) *Events {
	return &Events{
		Collection: NewCollection[models.EventRecord]("events", api.ListEvents, deps),
		api:        api,
	}
}

// Create posts a new event. attachment may be nil.
func (e *Events) Create(ctx context.Context, fields models.EventFields, attachment *formdata.Attachment) error {
	payload, err := eventPayload(fields, attachment)
	if err != nil {
		return err
	}
	return e.Mutate(ctx, Op{
		Name:    "create event",
		Success: msgEventCreated,
		Failure: msgSaveFailed,
		Call: func(ctx context.Context, credential string) error {
			return e.api.CreateEvent(ctx, credential, payload)
		},
	})
}

// Update replaces the scalar fields of event id. A nil attachment sends no
// image part, so the server keeps the current image.
func (e *Events) Update(ctx context.Context, id models.ID, fields models.EventFields, attachment *formdata.Attachment) error {
	payload, err := eventPayload(fields, attachment)
	if err != nil {
		return err
	}
	return e.Mutate(ctx, Op{
		Name:    "update event",
		Success: msgEventUpdated,
		Failure: msgSaveFailed,
		Call: func(ctx context.Context, credential string) error {
			return e.api.UpdateEvent(ctx, credential, id, payload)
		},
	})
}

// Delete removes event id after the user confirms.
func (e *Events) Delete(ctx context.Context, id models.ID) error {
	return e.Mutate(ctx, Op{
		Name:    "delete event",
		Confirm: ConfirmDeleteEvent,
		Success: msgEventDeleted,
		Failure: msgDeleteFailed,
		Call: func(ctx context.Context, credential string) error {
			return e.api.DeleteEvent(ctx, credential, id)
		},
	})
}

func eventPayload(f models.EventFields, attachment *formdata.Attachment) (*formdata.Payload, error) {
	if attachment != nil && attachment.FieldName == "" {
		a := *attachment
		a.FieldName = ImageField
		attachment = &a
	}
	return formdata.Build([]formdata.Field{
		{Name: "title", Value: f.Title},
		{Name: "description", Value: f.Description},
		{Name: "date", Value: f.Date},
		{Name: "time", Value: f.Time},
	}, attachment)
}
