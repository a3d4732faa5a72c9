// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package message

// HTTP status codes as registered with IANA.
const (
	StatusContinue           uint16 = 100 // RFC 9110, 15.2.1
	StatusSwitchingProtocols uint16 = 101 // RFC 9110, 15.2.2
	StatusProcessing         uint16 = 102 // RFC 2518, 10.1
	StatusEarlyHints         uint16 = 103 // RFC 8297

	StatusOK                   uint16 = 200 // RFC 9110, 15.3.1
	StatusCreated              uint16 = 201 // RFC 9110, 15.3.2
	StatusAccepted             uint16 = 202 // RFC 9110, 15.3.3
	StatusNonAuthoritativeInfo uint16 = 203 // RFC 9110, 15.3.4
	StatusNoContent            uint16 = 204 // RFC 9110, 15.3.5
	StatusResetContent         uint16 = 205 // RFC 9110, 15.3.6
	StatusPartialContent       uint16 = 206 // RFC 9110, 15.3.7
	StatusMultiStatus          uint16 = 207 // RFC 4918, 11.1
	StatusAlreadyReported      uint16 = 208 // RFC 5842, 7.1
	StatusIMUsed               uint16 = 226 // RFC 3229, 10.4.1

	StatusMultipleChoices   uint16 = 300 // RFC 9110, 15.4.1
	StatusMovedPermanently  uint16 = 301 // RFC 9110, 15.4.2
	StatusFound             uint16 = 302 // RFC 9110, 15.4.3
	StatusSeeOther          uint16 = 303 // RFC 9110, 15.4.4
	StatusNotModified       uint16 = 304 // RFC 9110, 15.4.5
	StatusUseProxy          uint16 = 305 // RFC 9110, 15.4.6
	StatusTemporaryRedirect uint16 = 307 // RFC 9110, 15.4.8
	StatusPermanentRedirect uint16 = 308 // RFC 9110, 15.4.9

	StatusBadRequest                   uint16 = 400 // RFC 9110, 15.5.1
	StatusUnauthorized                 uint16 = 401 // RFC 9110, 15.5.2
	StatusPaymentRequired              uint16 = 402 // RFC 9110, 15.5.3
	StatusForbidden                    uint16 = 403 // RFC 9110, 15.5.4
	StatusNotFound                     uint16 = 404 // RFC 9110, 15.5.5
	StatusMethodNotAllowed             uint16 = 405 // RFC 9110, 15.5.6
	StatusNotAcceptable                uint16 = 406 // RFC 9110, 15.5.7
	StatusProxyAuthRequired            uint16 = 407 // RFC 9110, 15.5.8
	StatusRequestTimeout               uint16 = 408 // RFC 9110, 15.5.9
	StatusConflict                     uint16 = 409 // RFC 9110, 15.5.10
	StatusGone                         uint16 = 410 // RFC 9110, 15.5.11
	StatusLengthRequired               uint16 = 411 // RFC 9110, 15.5.12
	StatusPreconditionFailed           uint16 = 412 // RFC 9110, 15.5.13
	StatusRequestEntityTooLarge        uint16 = 413 // RFC 9110, 15.5.14
	StatusRequestURITooLong            uint16 = 414 // RFC 9110, 15.5.15
	StatusUnsupportedMediaType         uint16 = 415 // RFC 9110, 15.5.16
	StatusRequestedRangeNotSatisfiable uint16 = 416 // RFC 9110, 15.5.17
	StatusExpectationFailed            uint16 = 417 // RFC 9110, 15.5.18
	StatusTeapot                       uint16 = 418 // RFC 9110, 15.5.19
	StatusMisdirectedRequest           uint16 = 421 // RFC 9110, 15.5.20
	StatusUnprocessableEntity          uint16 = 422 // RFC 9110, 15.5.21
	StatusLocked                       uint16 = 423 // RFC 4918, 11.3
	StatusFailedDependency             uint16 = 424 // RFC 4918, 11.4
	StatusUpgradeRequired              uint16 = 426 // RFC 9110, 15.5.22
	StatusPreconditionRequired         uint16 = 428 // RFC 6585, 3
	StatusTooManyRequests              uint16 = 429 // RFC 6585, 4
	StatusRequestHeaderFieldsTooLarge  uint16 = 431 // RFC 6585, 5
	StatusUnavailableForLegalReasons   uint16 = 451 // RFC 7725, 3

	StatusInternalServerError     uint16 = 500 // RFC 9110, 15.6.1
	StatusNotImplemented          uint16 = 501 // RFC 9110, 15.6.2
	StatusBadGateway              uint16 = 502 // RFC 9110, 15.6.3
	StatusServiceUnavailable      uint16 = 503 // RFC 9110, 15.6.4
	StatusGatewayTimeout          uint16 = 504 // RFC 9110, 15.6.5
	StatusHTTPVersionNotSupported uint16 = 505 // RFC 9110, 15.6.6
)

const unknownStatusReason = "Unknown Status Code"

var statusReasons = map[uint16]string{
	StatusContinue:           "Continue",
	StatusSwitchingProtocols: "Switching Protocols",
	StatusProcessing:         "Processing",
	StatusEarlyHints:         "Early Hints",

	StatusOK:                   "OK",
	StatusCreated:              "Created",
	StatusAccepted:             "Accepted",
	StatusNonAuthoritativeInfo: "Non-Authoritative Information",
	StatusNoContent:            "No Content",
	StatusResetContent:         "Reset Content",
	StatusPartialContent:       "Partial Content",
	StatusMultiStatus:          "Multi-Status",
	StatusAlreadyReported:      "Already Reported",
	StatusIMUsed:               "IM Used",

	StatusMultipleChoices:   "Multiple Choices",
	StatusMovedPermanently:  "Moved Permanently",
	StatusFound:             "Found",
	StatusSeeOther:          "See Other",
	StatusNotModified:       "Not Modified",
	StatusUseProxy:          "Use Proxy",
	StatusTemporaryRedirect: "Temporary Redirect",
	StatusPermanentRedirect: "Permanent Redirect",

	StatusBadRequest:                   "Bad Request",
	StatusUnauthorized:                 "Unauthorized",
	StatusPaymentRequired:              "Payment Required",
	StatusForbidden:                    "Forbidden",
	StatusNotFound:                     "Not Found",
	StatusMethodNotAllowed:             "Method Not Allowed",
	StatusNotAcceptable:                "Not Acceptable",
	StatusProxyAuthRequired:            "Proxy Authentication Required",
	StatusRequestTimeout:               "Request Timeout",
	StatusConflict:                     "Conflict",
	StatusGone:                         "Gone",
	StatusLengthRequired:               "Length Required",
	StatusPreconditionFailed:           "Precondition Failed",
	StatusRequestEntityTooLarge:        "Request Entity Too Large",
	StatusRequestURITooLong:            "Request-URI Too Long",
	StatusUnsupportedMediaType:         "Unsupported Media Type",
	StatusRequestedRangeNotSatisfiable: "Requested Range Not Satisfiable",
	StatusExpectationFailed:            "Expectation Failed",
	StatusTeapot:                       "I'm a teapot",
	StatusMisdirectedRequest:           "Misdirected Request",
	StatusUnprocessableEntity:          "Unprocessable Entity",
	StatusLocked:                       "Locked",
	StatusFailedDependency:             "Failed Dependency",
	StatusUpgradeRequired:              "Upgrade Required",
	StatusPreconditionRequired:         "Precondition Required",
	StatusTooManyRequests:              "Too Many Requests",
	StatusRequestHeaderFieldsTooLarge:  "Request Header Fields Too Large",
	StatusUnavailableForLegalReasons:   "Unavailable For Legal Reasons",

	StatusInternalServerError:     "Internal Server Error",
	StatusNotImplemented:          "Not Implemented",
	StatusBadGateway:              "Bad Gateway",
	StatusServiceUnavailable:      "Service Unavailable",
	StatusGatewayTimeout:          "Gateway Timeout",
	StatusHTTPVersionNotSupported: "HTTP Version Not Supported",
}

// Status is an HTTP status code with its reason phrase.
// Two statuses are considered equal when their codes match,
// regardless of the reason text.
type Status struct {
	Code   uint16
	Reason string
}

// StatusOf returns the canonical status for the given code.
// Unknown codes yield a synthetic status with a placeholder reason,
// never an error.
func StatusOf(code uint16) Status {
	reason, ok := statusReasons[code]
	if !ok {
		reason = unknownStatusReason
	}
	return Status{Code: code, Reason: reason}
}

// Equal reports whether both statuses carry the same code.
func (s Status) Equal(other Status) bool {
	return s.Code == other.Code
}

// IsSet reports whether the status has been assigned.
func (s Status) IsSet() bool {
	return s.Code != 0
}
