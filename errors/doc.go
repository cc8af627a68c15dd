// Package errors provides structured error types for the ARToolKit adapter.
//
// Every failure carries a Phase (where in the pipeline it happened) and a
// Kind (what went wrong), so callers can match on category without string
// comparison:
//
//	_, err := loader.AddMarker(ctx, arID, assets.FromURL(u))
//	var fetchErr *errors.Error
//	if stderrors.As(err, &fetchErr) && fetchErr.Kind == errors.KindFetchFailed {
//	    log.Printf("transport failure %d for %s", fetchErr.Status, fetchErr.Path)
//	}
//
// Errors are matchable by phase+kind via errors.Is:
//
//	stderrors.Is(err, &errors.Error{Phase: errors.PhaseFetch, Kind: errors.KindFetchFailed})
//
// The underlying cause, when one exists, is never rewritten; it is reachable
// through Unwrap for inspection with the standard errors package.
package errors
