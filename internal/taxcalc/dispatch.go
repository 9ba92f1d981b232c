package taxcalc

import "context"

// Outcome carries a finished estimate back from the dispatcher.
type Outcome struct {
	Result Result
	Err    error
}

// Dispatch runs Estimate on its own goroutine and delivers the outcome over
// the returned channel. The channel is buffered so the worker never blocks
// if the caller stops listening.
func Dispatch(ctx context.Context, in Input) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		if err := ctx.Err(); err != nil {
			out <- Outcome{Err: err}
			return
		}
		res, err := Estimate(in)
		out <- Outcome{Result: res, Err: err}
	}()
	return out
}
