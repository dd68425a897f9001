// Package host is a minimal headless application host for the desktop shell.
//
// It provides the pieces the sidecar supervisor depends on: a resource
// locator, a registry for long-lived state, a one-shot setup hook and window
// events, of which CloseRequested ends the session.
package host
