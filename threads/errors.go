package threads

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// Interrupted means a function returned early because its interrupt channel was closed or its
	// context was canceled.
	Interrupted = errors.New("Interrupted")

	// ErrCombined is the cause of errors built from more than one failure.
	ErrCombined = errors.New("Combined errors")
)

// CombineErrors returns nil when all errors are nil and the error itself when only one is set.
// Interruptions are dropped when any other error is present so the real failure keeps its cause.
// Multiple failures are joined under ErrCombined, or Interrupted when they are all interruptions.
func CombineErrors(errs ...error) error {
	var failures, interrupts []error
	for _, err := range errs {
		if err == nil {
			continue
		}

		if errors.Cause(err) == Interrupted {
			interrupts = append(interrupts, err)
		} else {
			failures = append(failures, err)
		}
	}

	cause := ErrCombined
	list := failures
	if len(list) == 0 {
		cause = Interrupted
		list = interrupts
	}

	switch len(list) {
	case 0:
		return nil
	case 1:
		return list[0]
	}

	messages := make([]string, len(list))
	for i, err := range list {
		messages[i] = err.Error()
	}

	return errors.Wrap(cause, strings.Join(messages, "|"))
}
