package handlers

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeStoreError reports an unexpected store failure. The underlying message
// goes to the caller verbatim.
func writeStoreError(w http.ResponseWriter, op string, err error) {
	log.WithError(err).WithField("op", op).Error("store operation failed")
	writeError(w, http.StatusInternalServerError, err.Error())
}
