// Package obs carries the request ID through contexts and times the
// operations that reach external systems (the routing API, the leg
// caches) so slow dependencies show up in the request log.
package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey struct{}

// Operations slower than this are flagged in the log line.
const slowThreshold = 2 * time.Second

// WithRequestID stamps the context with the ID assigned by the HTTP
// middleware. Downstream log lines pick it up via RequestID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the request ID from ctx, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Time records the duration of the named operation when the returned
// function runs. Deferred at the top of an operation with a named error
// return, it logs the error alongside the timing:
//
//	defer obs.Time(ctx, "ors.LegOverrides")(&err)
func Time(ctx context.Context, op string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		switch {
		case errp != nil && *errp != nil:
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, op, dur.Milliseconds(), *errp)
		case dur >= slowThreshold:
			log.Printf("req_id=%s op=%s dur=%dms slow=true", reqID, op, dur.Milliseconds())
		default:
			log.Printf("req_id=%s op=%s dur=%dms", reqID, op, dur.Milliseconds())
		}
	}
}
