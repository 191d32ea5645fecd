// Package eventsdk provides a typed Go client for the eventgate HTTP API
// along with the request, response and error types shared between the
// server handlers and SDK consumers.
package eventsdk
