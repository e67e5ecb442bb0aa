// Package api sends one authorized request to a Google REST endpoint and
// classifies the response.
//
// A successful response becomes a Response whose Payload is the decoded
// JSON body, {"status": "deleted"} for 204 No Content, or {"text": raw}
// for anything that is not JSON. A status of 400 or above becomes an
// *APIError, and a request that never produced a status becomes a
// *TransportError. Requests are sent exactly once.
package api
