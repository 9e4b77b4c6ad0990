package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MKhiriev/kiosk-gate/models"
	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusLocked:              ErrLocked,
	http.StatusUnprocessableEntity: ErrWeakPIN,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
}

func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	var result models.OperationResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		result = models.OperationResult{Error: strings.TrimSpace(string(resp.Body()))}
	}

	return NewRequestError(status, result)
}

// NewRequestError classifies a failed response by its status code.
func NewRequestError(status int, result models.OperationResult) *RequestError {
	kind, ok := statusErrors[status]
	if !ok {
		kind = ErrUnexpectedStatus
	}
	return &RequestError{StatusCode: status, Result: result, kind: kind}
}
