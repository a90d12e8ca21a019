// Package middleware holds the HTTP middleware that chi does not ship.
package middleware

import (
	"net/http"
	"strings"
)

const MethodField = "_method"

// MethodOverride lets HTML forms, which can only POST, reach PUT, PATCH and
// DELETE routes through a hidden _method field. It must run before routing.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch m := strings.ToUpper(r.PostFormValue(MethodField)); m {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}
