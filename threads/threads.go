package threads

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/tokenized/logger"
)

// InterruptFunction should return Interrupted soon after interrupt is closed.
type InterruptFunction func(ctx context.Context, interrupt <-chan interface{}) error

// CompleteFunction receives a thread's result before the thread is marked done.
type CompleteFunction func(ctx context.Context, err error)

// Thread runs a function in a go routine and keeps its result. A thread is started once.
type Thread struct {
	name      string
	function  InterruptFunction
	interrupt chan interface{}
	done      chan struct{}

	onComplete CompleteFunction
	err        error
	stopped    bool

	lock sync.Mutex
}

type Threads []*Thread

// NewThread creates a thread that is stopped by closing its interrupt channel.
func NewThread(name string, function InterruptFunction) *Thread {
	return &Thread{
		name:      name,
		function:  function,
		interrupt: make(chan interface{}),
		done:      make(chan struct{}),
	}
}

func (t *Thread) SetOnComplete(onComplete CompleteFunction) {
	t.lock.Lock()
	t.onComplete = onComplete
	t.lock.Unlock()
}

func (t *Thread) Start(ctx context.Context) {
	t.lock.Lock()
	onComplete := t.onComplete
	t.lock.Unlock()

	go func() {
		fields := []logger.Field{logger.String("thread", t.name)}
		logger.VerboseWithFields(ctx, fields, "Starting thread")

		err := t.function(ctx, t.interrupt)
		switch {
		case err == nil:
			logger.VerboseWithFields(ctx, fields, "Finished thread")
		case errors.Cause(err) == Interrupted:
			logger.VerboseWithFields(ctx, fields, "Interrupted thread : %s", err)
		default:
			logger.ErrorWithFields(ctx, fields, "Thread failed : %s", err)
		}

		t.lock.Lock()
		t.err = err
		t.lock.Unlock()

		if onComplete != nil {
			onComplete(ctx, err)
		}

		close(t.done)
	}()
}

// Stop closes the interrupt channel once.
func (t *Thread) Stop(ctx context.Context) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.stopped {
		return
	}

	close(t.interrupt)
	t.stopped = true
}

// Done returns a channel that is closed when the thread's function has returned.
func (t *Thread) Done() <-chan struct{} {
	return t.done
}

// Error returns the thread's result wrapped with its name. It is nil until the thread completes.
func (t *Thread) Error() error {
	if t == nil {
		return nil
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	return errors.Wrap(t.err, t.name)
}

func (ts Threads) Start(ctx context.Context) {
	for _, t := range ts {
		t.Start(ctx)
	}
}

func (ts Threads) Stop(ctx context.Context) {
	for _, t := range ts {
		t.Stop(ctx)
	}
}

// Errors returns the non-nil results of the threads.
func (ts Threads) Errors() []error {
	var errs []error
	for _, t := range ts {
		if err := t.Error(); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}
