// Package templates renders the HTML pages and fragments of the roster UI.
// The *_templ.go files are generated from the .templ sources.
package templates

//go:generate templ generate
