// Package sidecar supervises the bundled background service of the desktop
// host.
//
// At startup the Supervisor looks for <resources>/sidecar/dist/index.js and,
// when present, launches it with the node runtime from the sidecar directory.
// The resulting handle lives in a State owned by the host until the window
// closes, at which point Shutdown takes the handle and kills the process
// exactly once. A missing artifact or a failed launch leaves the State empty
// and the host keeps running; only an unusable resource root is reported as
// an error.
//
// Shutdown does not wait for the child to exit. A bounded wait could be added
// behind the same API if zombie reaping ever matters.
package sidecar
