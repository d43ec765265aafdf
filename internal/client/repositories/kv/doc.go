// Package kv stores the client's persisted state as key/value pairs in the
// local SQLite "metadata" table. Values are opaque bytes; callers that keep
// JSON there use GetJSON and SetJSON.
package kv
