// Package appcomponents contains the clock page: a static Header, a Main
// section holding the live Clock, and a static Footer, composed by App.
//
// The components only describe the tree. Any host that drives a
// runtime.Engine can display them: the WASM entry point renders into the
// browser document and the server streams them to a socket.
package appcomponents
