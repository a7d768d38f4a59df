package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Response is the envelope every endpoint responds with. Data is set if and
// only if Success is true; Error is set otherwise.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeData(w http.ResponseWriter, data interface{}) {
	writeResponse(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err *Error) {
	writeResponse(w, err.Status(), Response{
		Success: false,
		Error:   err.Message,
	})
}

func writeResponse(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.StandardLogger().WithField("type", "gateway/response").WithError(err).Warn("failed to write response")
	}
}
