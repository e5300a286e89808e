// Package formdata assembles multipart/form-data payloads for write calls.
package formdata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
)

var ErrMissingField = errors.New("missing form field")

// Field is one required scalar part.
type Field struct {
	Name  string
	Value string
}

// Attachment is the optional binary part.
type Attachment struct {
	FieldName   string
	FileName    string
	ContentType string
	Content     io.Reader
}

// Payload is an encoded body ready to send.
type Payload struct {
	Body        []byte
	ContentType string
}

// Reader returns a fresh reader over the body.
func (p *Payload) Reader() io.Reader {
	return bytes.NewReader(p.Body)
}

// Build encodes fields in order, followed by the attachment when it is not
// nil. A nil attachment produces no file part at all, which the server reads
// as "keep the existing one".
func Build(fields []Field, attachment *Attachment) (*Payload, error) {
	for _, f := range fields {
		if f.Name == "" || f.Value == "" {
			return nil, fmt.Errorf("%w: %q", ErrMissingField, f.Name)
		}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}

	if attachment != nil {
		if err := writeAttachment(w, attachment); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	return &Payload{Body: buf.Bytes(), ContentType: w.FormDataContentType()}, nil
}

func writeAttachment(w *multipart.Writer, a *Attachment) error {
	if a.FieldName == "" || a.Content == nil {
		return fmt.Errorf("%w: attachment", ErrMissingField)
	}

	fileName := a.FileName
	if fileName == "" {
		fileName = a.FieldName
	}
	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	disposition := mime.FormatMediaType("form-data", map[string]string{
		"name":     a.FieldName,
		"filename": fileName,
	})
	if disposition == "" {
		return fmt.Errorf("attachment %q: cannot encode content disposition", a.FieldName)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", disposition)
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part %s: %w", a.FieldName, err)
	}
	if _, err := io.Copy(part, a.Content); err != nil {
		return fmt.Errorf("copy attachment: %w", err)
	}
	return nil
}
