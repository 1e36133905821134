// Package server hosts the App over HTTP.
//
// GET / renders a snapshot of the page on the server. GET /live upgrades
// to a WebSocket and mounts a private App whose every render is pushed to
// the client as an HTML frame, so the clock keeps ticking without any
// client-side component code.
package server
