// Package templates holds the page components. Components live in the
// .templ sources; the *_templ.go files are generated from them.
package templates

//go:generate templ generate
