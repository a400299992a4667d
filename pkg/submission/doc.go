// Package submission gates and runs form submissions.
//
// A Controller moves through Idle -> Validating -> Blocked, or
// Idle -> Validating -> Submitting -> Idle. The external Effect is only
// invoked when every field validates, and a second Submit while one is in
// flight is refused with ErrSubmitInFlight rather than queued. An in-flight
// effect is never aborted by the controller.
package submission
