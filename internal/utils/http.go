package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// HTTPClient is the outbound HTTP client used by the terminal client's server
// adapter. It embeds *resty.Client, so all resty configuration and request
// builder methods are available directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient constructs an HTTPClient with resty defaults. The caller is
// expected to configure the base URL and request timeout before use.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{resty.New()}
}
