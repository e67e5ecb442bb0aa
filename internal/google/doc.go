// Package google loads and refreshes the OAuth credential used to call the
// Google Calendar and Tasks APIs.
//
// The credential file is the authorized-user JSON document written by the
// external consent flow. Store.Load reads it once per invocation; when the
// access token is expired and a refresh token is present it performs one
// refresh exchange through golang.org/x/oauth2 and overwrites the same file
// with the refreshed form. Expired credentials without a refresh token fail
// with a CredentialError before any API call is attempted.
//
// The package also holds the service identifiers, base URLs and default
// scopes shared by the rest of the module.
package google
