// Package runner executes typed commands against the Google APIs.
//
// A Runner owns no state between calls. Each Run builds the request from
// the command, loads the credential through a google.TokenProvider,
// dispatches once and returns the classified payload. Every run produces
// a command span, a command metric and, for mutating commands, an audit
// record.
package runner
