package statefun

import (
	"errors"
	"io"
	"net/http"

	"github.com/statefun-io/statefun-go/internal"
)

const octetStream = "application/octet-stream"

// ServeHTTP implements http.Handler, so a *FunctionRegistry can be handed
// directly to http.ListenAndServe (or httptest.NewServer) as the worker's
// sole endpoint — the coordinator addresses every registered FunctionType
// through this one path (spec §4.8).
func (r *FunctionRegistry) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if req.Header.Get("Content-Type") != octetStream {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		return
	}

	body, err := io.ReadAll(req.Body)
	if err != nil || len(body) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	toFunction, err := internal.UnmarshalToFunction(body)
	if err != nil || toFunction.Invocation == nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	fromFunction, err := r.invoke(toFunction.Invocation)
	if err != nil {
		if errors.Is(err, ErrFunctionNotFound) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", octetStream)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(fromFunction.Marshal())
}
