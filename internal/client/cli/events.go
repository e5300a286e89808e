package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/eventflow/internal/client/formdata"
	"github.com/dmitrijs2005/eventflow/internal/client/models"
)

// AddEvent prompts for a new event and creates it.
func (a *App) AddEvent(ctx context.Context) error {
	viewCtx, ok := a.enterView(ctx, AdminPath, adminOnly)
	if !ok {
		return nil
	}

	fields, err := a.readEventFields(models.EventFields{})
	if err != nil {
		return err
	}
	att, closer, err := a.readAttachment(viewCtx, "Image path or s3://bucket/key (empty for none)")
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := a.events.Create(viewCtx, fields, att); err != nil {
		return err
	}
	a.printEvents()
	return nil
}

// EditEvent prompts for new values of event id, prefilled with the current
// ones. Leaving the image empty keeps the current image.
func (a *App) EditEvent(ctx context.Context, id string) error {
	viewCtx, ok := a.enterView(ctx, AdminPath, adminOnly)
	if !ok {
		return nil
	}

	current, err := a.findEvent(viewCtx, models.ID(id))
	if err != nil {
		return err
	}

	fields, err := a.readEventFields(current.Fields())
	if err != nil {
		return err
	}
	att, closer, err := a.readAttachment(viewCtx, "New image path or s3://bucket/key (empty to keep current)")
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := a.events.Update(viewCtx, current.ID, fields, att); err != nil {
		return err
	}
	a.printEvents()
	return nil
}

// DeleteEvent removes event id after confirmation.
func (a *App) DeleteEvent(ctx context.Context, id string) error {
	viewCtx, ok := a.enterView(ctx, AdminPath, adminOnly)
	if !ok {
		return nil
	}
	if err := a.events.Delete(viewCtx, models.ID(id)); err != nil {
		return err
	}
	a.printEvents()
	return nil
}

func (a *App) findEvent(ctx context.Context, id models.ID) (models.EventRecord, error) {
	if !a.events.State().Loaded {
		if err := a.events.Refetch(ctx); err != nil {
			return models.EventRecord{}, err
		}
	}
	for _, e := range a.events.State().Items {
		if e.ID == id {
			return e, nil
		}
	}
	return models.EventRecord{}, fmt.Errorf("event %s not found", id)
}

// readEventFields prompts for each field, keeping current values on empty
// input. A new description may span several lines.
func (a *App) readEventFields(current models.EventFields) (models.EventFields, error) {
	var f models.EventFields
	var err error
	w := a.console.out

	if f.Title, err = GetTextWithDefault(a.reader, "Title", current.Title, w); err != nil {
		return f, err
	}
	if current.Description == "" {
		f.Description, err = GetMultiline(a.reader, "Description", w)
	} else {
		f.Description, err = GetTextWithDefault(a.reader, "Description", current.Description, w)
	}
	if err != nil {
		return f, err
	}
	if f.Date, err = GetTextWithDefault(a.reader, "Date (YYYY-MM-DD)", current.Date, w); err != nil {
		return f, err
	}
	if f.Time, err = GetTextWithDefault(a.reader, "Time (HH:MM)", current.Time, w); err != nil {
		return f, err
	}
	return f, nil
}

func (a *App) readAttachment(ctx context.Context, prompt string) (*formdata.Attachment, io.Closer, error) {
	ref, err := getSimpleText(a.reader, prompt, a.console.out)
	if err != nil {
		return nil, nil, err
	}
	if ref == "" {
		return nil, io.NopCloser(nil), nil
	}
	if a.opener == nil {
		return nil, nil, fmt.Errorf("attachments are not configured")
	}
	return a.opener.Open(ctx, ref)
}
