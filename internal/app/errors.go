package service

import "fmt"

// LookupError reports a curve query for a run/tag pair the store does not
// know. It aborts the whole multi-run query: callers never receive a result
// that silently omits data they asked for.
type LookupError struct {
	Run string
	Tag string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no PR curves could be fetched for run %q and tag %q", e.Run, e.Tag)
}
