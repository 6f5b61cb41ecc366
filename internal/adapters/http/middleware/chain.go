package middleware

import "net/http"

// Chain folds a list of middleware into one. Order reads outside-in: the
// first element sees the request first and the response last, so
//
//	Chain(Recovery, RequestID, Logging)(h)
//
// behaves exactly like Recovery(RequestID(Logging(h))).
func Chain(mws ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		return h
	}
}
