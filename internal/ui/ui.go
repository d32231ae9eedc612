// Package ui serves the single-page form used to drive the relay from a browser.
package ui

import (
	_ "embed"
	"net/http"

	"github.com/NYTimes/gziphandler"
)

//go:embed index.html
var indexHTML []byte

// Handler serves the form, gzip-compressed for clients that accept it.
func Handler() http.Handler {
	return gziphandler.GzipHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(indexHTML)
	}))
}
