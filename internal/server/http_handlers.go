package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"resumescore/internal/errors"
	"resumescore/internal/types"
)

// SuccessResponse is the envelope of every successful JSON response
type SuccessResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the envelope of every error response
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
	Timestamp string `json:"timestamp"`
}

// breakerState is implemented by stores guarded by a circuit breaker
type breakerState interface {
	State() string
	Stats() map[string]any
}

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	if s.AppConfig != nil && s.AppConfig.Observability.HealthCheck.Timeout > 0 {
		return s.AppConfig.Observability.HealthCheck.Timeout
	}
	return 5 * time.Second
}

// healthHandler reports whether every component the API depends on is usable
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.getHealthCheckTimeout())
	defer cancel()

	services := map[string]bool{
		"resume_analyzer": s.deps.Scorer != nil,
		"job_matcher":     s.deps.Matcher != nil,
		"file_processor":  s.deps.Extractor != nil,
		"session_store":   s.checkStoreHealth(ctx),
	}

	response := types.HealthOutput{
		Status:    "healthy",
		Timestamp: s.timestamp(),
		Version:   s.Version,
		Services:  services,
	}

	status := http.StatusOK
	for _, ok := range services {
		if !ok {
			response.Status = "degraded"
			status = http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, status, response)
}

// checkStoreHealth treats an open circuit breaker as an unhealthy store
func (s *Server) checkStoreHealth(ctx context.Context) bool {
	if s.deps.Store == nil {
		return false
	}
	if ctx.Err() != nil {
		return false
	}
	if b, ok := s.deps.Store.(breakerState); ok {
		return b.State() != "open"
	}
	return true
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"service": "resumescore",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
			"max_file_size_bytes":    s.MaxFileSize,
		},
		"authentication": map[string]any{
			"enabled":    s.APIKeys.Len() > 0,
			"keys_count": s.APIKeys.Len(),
		},
	}

	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	if b, ok := s.deps.Store.(breakerState); ok {
		response["session_store"] = b.Stats()
	}

	if s.KeyWatcher != nil {
		response["api_key_refresh"] = s.KeyWatcher.Status()
	}

	writeJSON(w, http.StatusOK, s.success("Server statistics", response))
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errors.NewInvalidInputError(errors.ErrCodeInvalidRequest,
			"Content-Type must be application/json", nil)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return bodyReadError(err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if len(strings.TrimSpace(string(body))) == 0 {
		return errors.NewInvalidInputError(errors.ErrCodeInvalidRequest, "No data provided", nil)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errors.NewInvalidInputError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("Failed to parse JSON: %v", err), err)
	}

	return nil
}

// bodyReadError maps http.MaxBytesReader failures to a 413
func bodyReadError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if stderrors.As(err, &maxBytesErr) {
		return errors.NewInvalidInputError(errors.ErrCodeFileTooLarge,
			fmt.Sprintf("Request body too large (limit is %d bytes)", maxBytesErr.Limit), err)
	}
	return errors.NewInvalidInputError(errors.ErrCodeInvalidRequest, "Failed to read request body", err)
}

// decodeRequest parses and validates a JSON request DTO
func (s *Server) decodeRequest(r *http.Request, v any) error {
	if err := parseJSONRequest(r, v); err != nil {
		return err
	}
	if err := s.validate.Struct(v); err != nil {
		return errors.NewInvalidInputError(errors.ErrCodeMissingField, validationMessage(err), err)
	}
	return nil
}

// validationMessage describes the first failed field
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "Invalid request"
	}
	fe := validationErrors[0]
	switch fe.Tag() {
	case "required", "min":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte", "lte":
		return fmt.Sprintf("%s is out of range", fe.Field())
	default:
		return fmt.Sprintf("%s failed the '%s' check", fe.Field(), fe.Tag())
	}
}

// statusFor maps an error to its HTTP status
func statusFor(err error) int {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		return http.StatusInternalServerError
	}

	switch appErr.Code {
	case errors.ErrCodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeStorageOpen:
		return http.StatusServiceUnavailable
	}

	switch appErr.Type {
	case errors.ErrorTypeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeAppError writes err as an error envelope. Client errors carry their
// own message; server errors are prefixed with failure, which names the
// operation.
func (s *Server) writeAppError(w http.ResponseWriter, err error, failure string) {
	status := statusFor(err)

	code := errors.ErrCodeInternal
	message := failure
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		code = appErr.Code
		if status < http.StatusInternalServerError {
			message = appErr.Message
		} else {
			message = fmt.Sprintf("%s: %s", failure, appErr.Message)
		}
	}

	if status >= http.StatusInternalServerError {
		s.Logger.LogError(err, failure, "status", status)
	} else {
		s.Logger.Debug("Request rejected", "status", status, "error_code", code, "message", message)
	}

	s.writeError(w, status, code, message)
}

// writeError writes a standardized error response
func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: code,
		Timestamp: s.timestamp(),
	})
}

func (s *Server) success(message string, data any) SuccessResponse {
	return SuccessResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: s.timestamp(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
