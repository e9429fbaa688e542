// Package timeouts defines shared timeout constants for the portfolio service.
// Centralizing these values keeps the HTTP server and outbound collaborators
// from drifting apart.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// Collaborator caps a single outbound call to GitHub, Medium, or EmailJS.
const Collaborator = 8 * time.Second

// PageLoad caps the whole page-load fan-out so a slow collaborator cannot
// hold a render open.
const PageLoad = 10 * time.Second
