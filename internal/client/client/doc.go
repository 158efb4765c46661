// Package client contains client-side building blocks for portalctl.
//
// # Overview
//
// The package provides:
//  1. PortalClient, an HTTP/JSON client for the portal API: signup, verify,
//     login, event listing and editing, image upload presigning and health.
//  2. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures are wrapped with ErrUnavailable. Error responses from
// the server are returned as *APIError carrying the HTTP status and the
// error kind ("InvalidOtp", "AccountNotVerified", ...); use IsKind to match.
package client
