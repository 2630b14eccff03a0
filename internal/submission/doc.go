// Package submission implements the submission controller: the state behind
// one correction screen.
//
// A Controller owns the input text, the corrected text, a loading flag and
// the status line shown while a request is outstanding. It exposes four
// mutually exclusive states:
//
//	Idle --Begin(non-empty)--> InFlight --success--> Succeeded
//	                           InFlight --failure--> Failed
//	Succeeded|Failed --Begin--> InFlight
//	any --Clear--> Idle
//
// The state is never stored. It is derived from the loading flag and the
// corrected text, so the output is hidden exactly when a request is in
// flight or there is nothing to show.
//
// Submitting is split in two so that a UI can render the in-flight state
// before the network call starts:
//
//	sub, ok := ctrl.Begin(text)  // synchronous: InFlight on return
//	if ok {
//	    go ctrl.Complete(ctx, sub) // one request, never returns an error
//	}
//
// Submit does both for callers that can block.
package submission
