// Package client contains the client-side transport and storage bootstrap for
// the inventory CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract for the remote product service (see the
//     Client interface): product CRUD, the paged and filtered listings, and
//     the auth and users endpoints.
//  2. A REST/JSON implementation (see RESTClient) that stamps each request
//     with an X-Request-ID and maps failures to errors callers can match.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens the
//     SQLite state database and applies the embedded goose migrations.
//
// # Error Handling
//
// Connection failures match ErrUnavailable with errors.Is. A non-2xx answer
// is a *RemoteError carrying the status and the payload's "message" field; a
// 404 also matches common.ErrorNotFound. Context cancellation is returned
// unchanged.
//
// See Also
//
//   - Interface:  Client
//   - REST impl:  RESTClient
//   - DB helpers: InitDatabase, RunMigrations
package client
