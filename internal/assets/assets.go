// Package assets serves the stylesheet that hides label spans visually while
// keeping them available to screen readers.
package assets

import (
	"bytes"
	_ "embed"
	"net/http"
)

//go:embed linklabel.css
var stylesheet []byte

const defaultClass = "linklabel-sr-only"

// Stylesheet returns the stylesheet with its selector set to class.
func Stylesheet(class string) []byte {
	if class == "" || class == defaultClass {
		return stylesheet
	}
	return bytes.Replace(stylesheet, []byte("."+defaultClass), []byte("."+class), 1)
}

// Handler serves the stylesheet for class.
func Handler(class string) http.HandlerFunc {
	css := Stylesheet(class)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write(css)
	}
}
