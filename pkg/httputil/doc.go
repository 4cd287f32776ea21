// Package httputil provides the JSON plumbing shared by the HTTP API.
//
// # Requests
//
// [DecodeJSON] reads a size-limited JSON body into a value that already
// carries defaults, so omitted fields keep them. Unknown fields are
// rejected with an INVALID_INPUT error.
//
// # Responses
//
// [WriteJSON] writes a value with a status code. [WriteError] maps a
// structured error from pkg/errors to its HTTP status and writes the body
//
//	{"error": {"code": "INVALID_GRID", "message": "decode grid: ..."}}
//
// Errors without a code are reported as INTERNAL_ERROR with a generic
// message; their text is never sent to clients.
package httputil
