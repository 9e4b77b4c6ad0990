package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON writes data as the JSON body of a statusCode response. Bodies
// may carry session state, so they are marked uncacheable. When data does
// not marshal the client gets a plain 500 instead.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, fmt.Errorf("encoding response body: %w", err)
	}

	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)

	return w.Write(body)
}
