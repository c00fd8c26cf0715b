package handler

import "countrystats/internal/controller"

// outcome is the per-request display. One trigger writes into it and the
// handler turns it into a response.
type outcome struct {
	results *controller.Results
	failure *controller.Failure
}

func (o *outcome) ShowResults(res *controller.Results) { o.results = res }

func (o *outcome) ShowError(f *controller.Failure) { o.failure = f }

// state reports where the trigger ended. Idle means nothing was displayed.
func (o *outcome) state() controller.State {
	switch {
	case o.failure != nil:
		return controller.StateError
	case o.results != nil:
		return controller.StateSuccess
	default:
		return controller.StateIdle
	}
}
