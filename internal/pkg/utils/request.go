package utils

import (
	"carepulse-service/internal/pkg/constvars"
	"carepulse-service/internal/pkg/dto/requests"
	"carepulse-service/internal/pkg/exceptions"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// WantsHTML reports whether the client asked for a rendered page rather
// than the JSON form descriptor.
func WantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get(constvars.HeaderAccept), constvars.MIMETextHTML)
}

func DecodeJSONBody(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}

// BuildDocumentPayload reads the optional file posted under field. It returns
// nil without error when no file was attached.
func BuildDocumentPayload(r *http.Request, field string, maxSizeInMB int) (*requests.DocumentPayload, error) {
	file, fileHeader, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrCannotReadUploadedFile(err)
	}
	defer file.Close()

	maxBytes := int64(maxSizeInMB) << 20
	if fileHeader.Size > maxBytes {
		return nil, exceptions.ErrDocumentTooLarge(nil, maxSizeInMB)
	}

	content, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, exceptions.ErrCannotReadUploadedFile(err)
	}
	if int64(len(content)) > maxBytes {
		return nil, exceptions.ErrDocumentTooLarge(nil, maxSizeInMB)
	}
	if len(content) == 0 {
		return nil, nil
	}

	contentType := fileHeader.Header.Get(constvars.HeaderContentType)
	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}

	return &requests.DocumentPayload{
		Content:     content,
		ContentType: contentType,
		FileName:    fileHeader.Filename,
		Size:        int64(len(content)),
	}, nil
}
