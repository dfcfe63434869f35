// Package batch runs background removal over many inputs concurrently.
//
// Each input is processed in its own goroutine, with the number of
// simultaneous removals bounded by errgroup.SetLimit. Inputs share nothing;
// a failing input is recorded in its result and never stops the others.
// Only context cancellation ends a batch early.
package batch
