package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// paramUint parses a chi URL parameter as an unsigned integer.
// Returns 0 and false when the parameter is missing or not a number.
func paramUint(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// queryInt parses a query-string integer with a fallback.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// pageParams extracts the standard page/limit pair.
func pageParams(r *http.Request) (page, limit int) {
	return queryInt(r, "page", 1), queryInt(r, "limit", 20)
}
