package response

import (
	"encoding/json"
	"net/http"

	"gitlab.com/codearena.net/internal/global/logger"
	"gitlab.com/codearena.net/internal/static/errs"
)

// Envelope wraps every API response body.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

func write(w http.ResponseWriter, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.StatusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to write response", "error", err)
	}
}

func WriteSuccess(w http.ResponseWriter, data interface{}, message string) {
	WriteStatus(w, http.StatusOK, data, message)
}

func WriteStatus(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	if data == nil {
		data = struct{}{}
	}
	write(w, Envelope{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < http.StatusBadRequest,
	})
}

// WriteError maps err to its status code. Unknown and persistence failures
// are logged and reported with a generic message.
func WriteError(w http.ResponseWriter, err error) {
	status := errs.HTTPStatus(err)
	message := errs.Message(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		if kind := errs.KindOf(err); kind == errs.KindUnknown {
			message = "Internal server error"
		}
	}
	write(w, Envelope{
		StatusCode: status,
		Data:       nil,
		Message:    message,
		Success:    false,
	})
}
