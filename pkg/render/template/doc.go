// Package template defines the template engine seam page renderers depend
// on, so the embedded pongo2 engine can be swapped for another implementation.
package template
