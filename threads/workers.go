package threads

import (
	"context"
	"fmt"

	"github.com/tokenized/logger"
)

// WorkerFunction runs one worker of a group. It should return Interrupted when interrupt is closed
// or ctx is done before its work is finished.
type WorkerFunction func(ctx context.Context, interrupt <-chan interface{}, worker int) error

// RunWorkers starts count threads running function and waits for them all to complete. The first
// failure interrupts the other workers. The result is built with CombineErrors.
func RunWorkers(ctx context.Context, name string, count int,
	function WorkerFunction) error {

	if count < 1 {
		count = 1
	}

	failed := make(chan interface{}, count)

	var threads Threads
	for i := 0; i < count; i++ {
		worker := i
		thread := NewThread(fmt.Sprintf("%s %d", name, worker),
			func(ctx context.Context, interrupt <-chan interface{}) error {
				return function(ctx, interrupt, worker)
			})
		thread.SetOnComplete(func(ctx context.Context, err error) {
			if err != nil {
				failed <- err
			}
		})
		threads = append(threads, thread)
	}

	logger.VerboseWithFields(ctx, []logger.Field{
		logger.String("workers", name),
		logger.Int("count", count),
	}, "Starting workers")

	threads.Start(ctx)

	done := make(chan interface{})
	go func() {
		for _, thread := range threads {
			<-thread.Done()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-failed:
		threads.Stop(ctx)
		<-done
	case <-ctx.Done():
		threads.Stop(ctx)
		<-done
	}

	return CombineErrors(threads.Errors()...)
}
