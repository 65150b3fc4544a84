// internal/server/handlers/respond.go

package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"dicilo/internal/adapter/storage"
)

// respondWithJSON writes a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError writes a JSON error response. Missing-schema errors are
// surfaced verbatim so an admin can act on them; everything else gets the
// generic message.
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	response := map[string]string{"error": message}

	if err != nil {
		if schemaMsg, ok := storage.MissingSchemaMessage(err); ok {
			response["error"] = schemaMsg
		}
		if code >= 500 {
			log.Printf("HTTP %d: %s: %v", code, message, err)
		}
	}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}
