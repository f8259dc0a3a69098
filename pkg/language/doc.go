// Package language implements the page's language switcher client: it posts
// the language form as an XHR-style request and reloads the page when the
// server confirms the change.
package language
