package middleware

import (
	"encoding/json"
	"net/http"

	goStats "github.com/MrEthical07/goStats"
)

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Instrument counts every request to ep when it arrives and its response
// status when the handler returns. A panicking handler is counted as an
// internal server error before the panic continues.
func Instrument(reg *goStats.Registry, ep goStats.Endpoint) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reg.RecordRequest(ep)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			defer func() {
				if p := recover(); p != nil {
					if p != http.ErrAbortHandler {
						reg.Inc(goStats.MetricExceptionInternalServerError)
					}
					reg.RecordOutcome(ep, http.StatusInternalServerError)
					panic(p)
				}
				reg.RecordOutcome(ep, rec.status)
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

type errorBody struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// WriteError counts err under its exception.* metric and answers with the
// matching status and a JSON body.
func WriteError(w http.ResponseWriter, reg *goStats.Registry, err error) {
	status := reg.RecordError(err)
	msg := http.StatusText(status)
	if status < http.StatusInternalServerError && err != nil {
		msg = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Status: status, Error: msg})
}
