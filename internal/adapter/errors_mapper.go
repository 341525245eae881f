package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/ebolotov/itemvault/models"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := errorMessageFromBody(resp.Body())
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}

// errorMessageFromBody extracts the human-readable message from the server's
// JSON error body. A policy failure carries a list of violations; those are
// joined into one line. Non-JSON bodies are returned trimmed as-is.
func errorMessageFromBody(body []byte) string {
	var errorResponse models.ErrorResponse
	if err := json.Unmarshal(body, &errorResponse); err != nil {
		return strings.TrimSpace(string(body))
	}

	if len(errorResponse.Errors) > 0 {
		return strings.Join(errorResponse.Errors, "; ")
	}

	return errorResponse.Error
}
