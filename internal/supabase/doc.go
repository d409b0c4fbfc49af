// Package supabase provides an HTTP client for a Supabase (PostgREST) table.
//
// # Overview
//
// Client implements catalog.Collection against the REST interface every
// Supabase project exposes under /rest/v1. It is the default backend for
// gamedex and replaces the JavaScript SDK the hosted page used.
//
// # API Endpoints
//
//   - GET /rest/v1/{table}?select=id,name,platform,category,notable_features&order=id.asc
//   - POST /rest/v1/{table} with a one-element JSON array and Prefer: return=minimal
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Send apikey and Authorization: Bearer headers when a key is configured
//   - Carry a fresh X-Request-Id so failures can be matched in the log file
//   - Have a 10-second timeout unless Options.Timeout or Options.HTTPClient say otherwise
//
// # Error Handling
//
// A JSON object body with a non-empty message, error_description, msg or error
// field is a failure whatever the HTTP status, and is returned as *APIError.
// Other statuses of 400 and above become plain errors naming the status.
// Transport and decode failures are wrapped with "execute request" and
// "decode response" so callers can tell them apart in messages.
package supabase
