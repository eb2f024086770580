package response

import (
	"encoding/json"
	"net/http"

	"github.com/wb-go/wbf/zlog"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, logger *zlog.Zerolog, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Int("status", status).Msg("Failed to encode response")
	}
}

// Error writes the standard error envelope. err, when given, ends up in
// Details.
func Error(w http.ResponseWriter, logger *zlog.Zerolog, status int, message string, err error) {
	resp := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}

	if err != nil {
		resp.Details = err.Error()
	}

	JSON(w, logger, status, resp)
}
