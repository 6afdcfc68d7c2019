package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"resumescore/internal/errors"
	"resumescore/internal/observability"
)

// multipartMemory is how much of a multipart body is held in memory before
// parts spill to temporary files
const multipartMemory = 8 << 20

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// parseMultipart parses the form once, mapping an oversize body to a 413
func parseMultipart(r *http.Request) error {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			return bodyReadError(err)
		}
		return errors.NewInvalidInputError(errors.ErrCodeInvalidRequest, "Invalid multipart form", err)
	}
	return nil
}

// uploadedText extracts the text of the file in form field. found is false
// when the field carries no file.
func (s *Server) uploadedText(ctx context.Context, om *observability.ObservabilityManager, r *http.Request, field, label string) (text, filename string, found bool, err error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if stderrors.Is(err, http.ErrMissingFile) {
			return "", "", false, nil
		}
		return "", "", false, errors.NewInvalidInputError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("Invalid %s upload", label), err)
	}
	defer file.Close()

	filename = filepath.Base(header.Filename)
	ext := strings.ToLower(filepath.Ext(filename))

	data, err := io.ReadAll(io.LimitReader(file, s.MaxFileSize+1))
	if err != nil {
		return "", filename, true, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to read %s upload", label), err)
	}

	text, err = s.deps.Extractor.Extract(ctx, filename, data)
	om.GetMetrics().RecordExtraction(ctx, ext, err)
	if err != nil {
		return "", filename, true, err
	}
	return text, filename, true, nil
}

// requiredUpload is uploadedText for a field that must be present
func (s *Server) requiredUpload(ctx context.Context, om *observability.ObservabilityManager, r *http.Request, field, label string) (string, error) {
	text, _, found, err := s.uploadedText(ctx, om, r, field, label)
	if err != nil {
		return "", err
	}
	if !found {
		return "", errors.NewInvalidInputError(errors.ErrCodeMissingField,
			fmt.Sprintf("No %s file provided", label), nil)
	}
	return text, nil
}

// jobDescriptionFromForm takes the job_description file when present,
// else the job_description_text field
func (s *Server) jobDescriptionFromForm(ctx context.Context, om *observability.ObservabilityManager, r *http.Request) (string, error) {
	text, _, found, err := s.uploadedText(ctx, om, r, "job_description", "job description")
	if err != nil {
		return "", err
	}
	if found {
		return text, nil
	}
	return r.FormValue("job_description_text"), nil
}
