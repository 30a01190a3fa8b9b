// Package template defines the seam form renderers use to execute their
// control templates. The gotemplate subpackage backs it with pongo2.
package template
