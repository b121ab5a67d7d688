// Package jsonstats serves the registry as the plugin stats JSON document.
package jsonstats

import (
	"net/http"

	goStats "github.com/MrEthical07/goStats"
)

// Handler serves GET requests with the nested document, or the flat one
// when the query carries format=flat.
func Handler(reg *goStats.Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		var (
			body []byte
			err  error
		)
		switch r.URL.Query().Get("format") {
		case "", "nested":
			body, err = reg.NestedJSON()
		case "flat":
			body, err = reg.FlatJSON()
		default:
			http.Error(w, "format must be nested or flat", http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write(body)
		}
	})
}
