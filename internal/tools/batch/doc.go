// Package batch runs one command per ID and reports partial failures.
//
// Tools that accept several IDs at once parse them with IDs and execute
// them with Run. The resulting Summary is rendered like any other payload.
package batch
