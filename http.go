package ware

import (
	"net/http"
)

// Exchange is the pipeline value of a chain serving HTTP requests.
type Exchange struct {
	Writer  ResponseWriter
	Request *http.Request
}

// ErrorHandlerFunc responds to a request whose chain ended with an error.
type ErrorHandlerFunc func(w ResponseWriter, r *http.Request, err error)

// Handler returns an http.Handler that runs c for every request. A run that
// ends with an error responds 500 Internal Server Error, unless a response
// has already been written.
func Handler(c *Chain[*Exchange]) http.Handler {
	return HandlerWithError(c, defaultErrorHandler)
}

// HandlerWithError is like [Handler] but calls onError when a run ends with
// an error. onError is called even if the response was already written; it
// can check [ResponseWriter.Written].
func HandlerWithError(c *Chain[*Exchange], onError ErrorHandlerFunc) http.Handler {
	if c == nil {
		panic("ware: nil Chain passed to Handler")
	}
	if onError == nil {
		panic("ware: nil error handler passed to HandlerWithError")
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ex := &Exchange{Writer: wrapResponseWriter(w), Request: r}
		out, err := c.Run(r.Context(), ex)
		if err == nil {
			return
		}
		// A step may have replaced the exchange; answer on the latest one.
		if out == nil {
			out = ex
		}
		onError(out.Writer, out.Request, err)
	})
}

func defaultErrorHandler(w ResponseWriter, r *http.Request, err error) {
	if w.Written() {
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
