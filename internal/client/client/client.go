package client

import (
	"context"

	"github.com/dmitrijs2005/eventflow/internal/client/formdata"
	"github.com/dmitrijs2005/eventflow/internal/client/models"
)

// Client is the EventFlow API surface the client core consumes. Every call
// that needs authentication takes the credential explicitly; an empty
// credential sends no Authorization header.
type Client interface {
	Close() error
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, name, email, password string) error

	ListEvents(ctx context.Context, credential string) ([]models.EventRecord, error)
	CreateEvent(ctx context.Context, credential string, payload *formdata.Payload) error
	UpdateEvent(ctx context.Context, credential string, id models.ID, payload *formdata.Payload) error
	DeleteEvent(ctx context.Context, credential string, id models.ID) error

	ListUsers(ctx context.Context, credential string) ([]models.UserRecord, error)
	UpdateRole(ctx context.Context, credential string, id models.ID, role models.Role) error
}
