package lookup

import (
	"context"
	"sync"
)

// LookerUpper populates a lookup table from a source of previously written records.
type LookerUpper interface {
	Append(context.Context, *sync.Map, ...AppendLookupFunc) error
}

// NewLookupMap returns a new lookup table populated by each of looker_uppers, running
// concurrently. The first error encountered cancels the remaining looker uppers.
func NewLookupMap(ctx context.Context, looker_uppers []LookerUpper, append_funcs []AppendLookupFunc) (*sync.Map, error) {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lu := new(sync.Map)

	done_ch := make(chan bool)
	err_ch := make(chan error, len(looker_uppers))

	remaining := len(looker_uppers)

	for _, l := range looker_uppers {

		go func(l LookerUpper) {

			defer func() {
				done_ch <- true
			}()

			err := l.Append(ctx, lu, append_funcs...)

			if err != nil {
				err_ch <- err
			}

		}(l)
	}

	var first_err error

	for remaining > 0 {
		select {
		case <-done_ch:
			remaining -= 1
		case err := <-err_ch:

			if first_err == nil {
				first_err = err
				cancel()
			}
		}
	}

	// errors sent just before their done signal may still be buffered
	if first_err == nil && len(err_ch) > 0 {
		first_err = <-err_ch
	}

	if first_err != nil {
		return nil, first_err
	}

	return lu, nil
}
