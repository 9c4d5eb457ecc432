package px6

import (
	"encoding/json"
	"math"
	"net/http"
)

// ParseResponse classifies a completed exchange and, on success, decodes
// body into out. The checks run in this order:
//
//  1. HTTP 429 yields *TooManyRequestsError.
//  2. A body with a known numeric error_id yields *DocumentedError,
//     whatever the status code. The API returns errors with status 200.
//  3. A non-2xx status yields *UnknownError.
//  4. A body that does not decode into out yields *DecodeError.
func ParseResponse(statusCode int, body []byte, out any) error {
	if statusCode == http.StatusTooManyRequests {
		return &TooManyRequestsError{Body: string(body)}
	}

	if documented := documentedError(body); documented != nil {
		return documented
	}

	if statusCode < 200 || statusCode > 299 {
		return &UnknownError{StatusCode: statusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Err: err, Body: string(body)}
	}

	return nil
}

// documentedError returns nil unless body is a JSON object whose error_id
// is a number matching a documented code, as in
// {"status":"no","error_id":100,"error":"Error key"}.
func documentedError(body []byte) *DocumentedError {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil
	}

	raw, ok := fields["error_id"]
	if !ok || jsonKind(raw) != "number" {
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return nil
	}

	id, err := number.Float64()
	if err != nil || id != math.Trunc(id) || id > math.MaxInt32 || id < math.MinInt32 {
		return nil
	}

	code, ok := LookupErrorCode(int(id))
	if !ok {
		return nil
	}

	var message string
	if raw, ok := fields["error"]; ok {
		_ = json.Unmarshal(raw, &message)
	}

	return &DocumentedError{
		Code:    code,
		Message: message,
		Body:    string(body),
	}
}
