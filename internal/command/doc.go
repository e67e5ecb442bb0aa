// Package command defines the typed commands of calendarctl and
// translates each into a single API request.
//
// Every command is a struct embedding Auth. Build validates the command's
// inputs and returns a Plan without touching the network or the
// credential, so usage errors surface before any token is loaded.
//
// Identifiers are path-escaped when they are joined into request paths.
package command
