package px6

import (
	"errors"
	"fmt"
)

// Build errors returned by the value object constructors.
var (
	// ErrProxyPeriodTooLow indicates a proxy period below one day
	ErrProxyPeriodTooLow = errors.New("proxy period must be greater than zero")
	// ErrCountryMustBeISO2 indicates a country code that is not two characters long
	ErrCountryMustBeISO2 = errors.New("country must be ISO2 format")
	// ErrPageLimitTooLow indicates a page limit below one
	ErrPageLimitTooLow = errors.New("page limit must be greater than zero")
	// ErrPageLimitTooHigh indicates a page limit above 1000
	ErrPageLimitTooHigh = errors.New("page limit must be less than or equal to 1000")
	// ErrProxyDescriptionTooLong indicates a description longer than 50 characters
	ErrProxyDescriptionTooLong = errors.New("proxy description must be less than or equal to 50 symbols")
	// ErrProxyStringIncorrectFormat indicates a malformed ip:port:user:pass string
	ErrProxyStringIncorrectFormat = errors.New("proxy string format must be `ip:port:user:pass`, user and password must be non-empty")
)

// ErrAPIKeyRequired is returned by NewClient when no API key is given.
var ErrAPIKeyRequired = errors.New("px6 API key is required")

// BuildError is returned when a value object cannot be constructed.
type BuildError struct {
	Type  string
	Value string
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Type, e.Value, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func buildError(typ, value string, err error) *BuildError {
	return &BuildError{Type: typ, Value: value, Err: err}
}

// APIError is implemented by every error a Client call can return.
type APIError interface {
	error
	apiError()
}

// TransportError indicates the request failed before a response was obtained.
type TransportError struct {
	Method Method
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("px6 %s: request failed: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// TooManyRequestsError is returned for HTTP 429 responses.
type TooManyRequestsError struct {
	Body string
}

func (e *TooManyRequestsError) Error() string {
	return "px6: too many requests"
}

// DocumentedError is an API failure carrying one of the documented error codes.
type DocumentedError struct {
	Code    ErrorCode
	Message string
	Body    string
}

func (e *DocumentedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("px6 error %d (%s): %s: %s", int(e.Code), e.Code.String(), e.Code.Description(), e.Message)
	}
	return fmt.Sprintf("px6 error %d (%s): %s", int(e.Code), e.Code.String(), e.Code.Description())
}

// Is reports whether target is the same documented error code,
// so errors.Is(err, ErrCodeNoMoney) works.
func (e *DocumentedError) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == e.Code
}

// UnknownError is a failing HTTP status whose body is not a documented error.
type UnknownError struct {
	StatusCode int
	Body       string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("px6: unknown API error: status %d: %s", e.StatusCode, e.Body)
}

// DecodeError is a successful response whose body does not fit the expected shape.
type DecodeError struct {
	Err  error
	Body string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("px6: success but cannot parse response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (*TransportError) apiError()       {}
func (*TooManyRequestsError) apiError() {}
func (*DocumentedError) apiError()      {}
func (*UnknownError) apiError()         {}
func (*DecodeError) apiError()          {}

// IsRateLimited checks if the error is an API throttling signal
func IsRateLimited(err error) bool {
	var tooMany *TooManyRequestsError
	return errors.As(err, &tooMany)
}

// IsDocumented checks if the error is a documented API error with the given code
func IsDocumented(err error, code ErrorCode) bool {
	var documented *DocumentedError
	return errors.As(err, &documented) && documented.Code == code
}

// ErrorCode is a documented numeric API error identifier.
type ErrorCode int

// Documented error codes
const (
	ErrCodeUnknown          ErrorCode = 30
	ErrCodeKey              ErrorCode = 100
	ErrCodeIP               ErrorCode = 105
	ErrCodeMethod           ErrorCode = 110
	ErrCodeCount            ErrorCode = 200
	ErrCodePeriod           ErrorCode = 210
	ErrCodeCountry          ErrorCode = 220
	ErrCodeIDs              ErrorCode = 230
	ErrCodeVersion          ErrorCode = 240
	ErrCodeDescription      ErrorCode = 250
	ErrCodeType             ErrorCode = 260
	ErrCodePort             ErrorCode = 270
	ErrCodeProxyString      ErrorCode = 280
	ErrCodeActiveProxyAllow ErrorCode = 300
	ErrCodeNoMoney          ErrorCode = 400
	ErrCodeNotFound         ErrorCode = 404
	ErrCodePrice            ErrorCode = 410
)

var errorCodes = map[ErrorCode]struct {
	label       string
	description string
}{
	ErrCodeUnknown:          {"Unknown", "unknown error"},
	ErrCodeKey:              {"Key", "authorization error, wrong key"},
	ErrCodeIP:               {"Ip", "the API was accessed from an incorrect IP (if the restriction is enabled), or an incorrect IP address format"},
	ErrCodeMethod:           {"Method", "wrong method"},
	ErrCodeCount:            {"Count", "wrong proxies quantity, wrong amount or no quantity input"},
	ErrCodePeriod:           {"Period", "period error, wrong period input (days) or no input"},
	ErrCodeCountry:          {"Country", "country error, wrong country input (iso2 for country input) or no input"},
	ErrCodeIDs:              {"Ids", "error of the list of the proxy numbers, proxy numbers have to be divided with commas"},
	ErrCodeVersion:          {"Version", "the proxy version is specified incorrectly"},
	ErrCodeDescription:      {"Description", "technical description error"},
	ErrCodeType:             {"Type", "proxy type (protocol) error, incorrect or missing"},
	ErrCodePort:             {"Port", "proxy port error, incorrectly specified or missing"},
	ErrCodeProxyString:      {"ProxyString", "proxy string error for the check method, incorrectly specified"},
	ErrCodeActiveProxyAllow: {"ActiveProxyAllow", "proxy amount error, attempted to purchase more proxies than available on the service"},
	ErrCodeNoMoney:          {"NoMoney", "balance error, zero or low balance on your account"},
	ErrCodeNotFound:         {"NotFound", "element error, the requested item was not found"},
	ErrCodePrice:            {"Price", "error calculating the cost, the total cost is less than or equal to zero"},
}

// LookupErrorCode returns the documented code for a numeric identifier
func LookupErrorCode(id int) (ErrorCode, bool) {
	code := ErrorCode(id)
	_, ok := errorCodes[code]
	return code, ok
}

// String returns the short label of the error code
func (c ErrorCode) String() string {
	if info, ok := errorCodes[c]; ok {
		return info.label
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Description returns the human-readable meaning of the error code
func (c ErrorCode) Description() string {
	if info, ok := errorCodes[c]; ok {
		return info.description
	}
	return "undocumented error"
}

// Error lets an ErrorCode be used as an errors.Is target.
func (c ErrorCode) Error() string {
	return fmt.Sprintf("px6 error %d: %s", int(c), c.Description())
}
