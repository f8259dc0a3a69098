// Package page wires the behaviour layer to a document on page-ready, in the
// same order a browser page runs it, and tears the pending reveal down when
// the page goes away.
package page
