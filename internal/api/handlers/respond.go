package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/itemboard/itemboard-be/internal/apperrors"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError renders an application error. Field-tagged failures become
// structured responses; infrastructure faults are logged and reduced to a
// generic server message, never echoed.
func writeError(w http.ResponseWriter, err error, serverMessage string) {
	appErr := apperrors.As(err)
	if appErr != nil && appErr.ClientSafe() {
		body := map[string]interface{}{"success": false}
		if len(appErr.FieldErrors) > 0 {
			body["errors"] = appErr.FieldErrors
		} else {
			body["message"] = appErr.Message
		}
		writeJSON(w, appErr.HTTPStatus(), body)
		return
	}

	log.Error().Err(err).Msg(serverMessage)
	writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"success": false,
		"message": serverMessage,
		"errors":  []apperrors.FieldError{{Field: "server", Message: "Internal server error"}},
	})
}
