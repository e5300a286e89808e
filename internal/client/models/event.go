package models

import "strings"

// PlaceholderImageURL is shown for events stored without an image.
const PlaceholderImageURL = "https://via.placeholder.com/400x200.png?text=Event+Image"

// EventRecord is a server-owned event as returned by GET /events/.
type EventRecord struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	ImageURL    string `json:"image_url,omitempty"`
}

// DisplayImageURL returns the event image or the placeholder when absent.
func (e EventRecord) DisplayImageURL() string {
	if e.ImageURL == "" {
		return PlaceholderImageURL
	}
	return e.ImageURL
}

// DisplayDate trims a server timestamp ("2025-01-01T00:00:00") to its date part.
func (e EventRecord) DisplayDate() string {
	d, _, _ := strings.Cut(e.Date, "T")
	return d
}

// Fields extracts the editable scalar fields, used to prefill edit forms.
func (e EventRecord) Fields() EventFields {
	return EventFields{
		Title:       e.Title,
		Description: e.Description,
		Date:        e.DisplayDate(),
		Time:        e.Time,
	}
}

// EventFields are the scalar fields of an event create/update.
type EventFields struct {
	Title       string
	Description string
	Date        string
	Time        string
}
