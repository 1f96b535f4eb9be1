package threads

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/tokenized/logger"
)

func Test_Interrupt(t *testing.T) {
	ctx := logger.ContextWithLogger(context.Background(), true, true, "")

	thread := NewThread("Test Interrupt", func(ctx context.Context,
		interrupt <-chan interface{}) error {
		select {
		case <-interrupt:
			return Interrupted
		case <-time.After(10 * time.Second):
			return errors.New("Not interrupted")
		}
	})
	thread.Start(ctx)
	thread.Stop(ctx)
	thread.Stop(ctx) // second stop does nothing

	select {
	case <-thread.Done():
	case <-time.After(time.Second):
		t.Fatalf("Thread should be complete")
	}

	if errors.Cause(thread.Error()) != Interrupted {
		t.Errorf("Wrong error : got %v, want %v", thread.Error(), Interrupted)
	}
}

func Test_Complete(t *testing.T) {
	ctx := logger.ContextWithLogger(context.Background(), true, true, "")

	thread := NewThread("Test Complete", func(ctx context.Context,
		interrupt <-chan interface{}) error {
		return nil
	})

	var completed int32
	thread.SetOnComplete(func(ctx context.Context, err error) {
		if err == nil {
			atomic.StoreInt32(&completed, 1)
		}
	})

	thread.Start(ctx)
	<-thread.Done()
	thread.Stop(ctx) // stop after completion does nothing

	if atomic.LoadInt32(&completed) != 1 {
		t.Errorf("Complete function not called before done")
	}

	if err := thread.Error(); err != nil {
		t.Errorf("Thread should not have error : %s", err)
	}
}

func Test_CombineErrors(t *testing.T) {
	failure := errors.New("Failure")

	tests := []struct {
		name  string
		errs  []error
		cause error
	}{
		{"none", []error{nil, nil}, nil},
		{"single", []error{nil, failure}, failure},
		{"interrupted", []error{errors.Wrap(Interrupted, "a"), errors.Wrap(Interrupted, "b")},
			Interrupted},
		{"failure with interrupts", []error{errors.Wrap(Interrupted, "a"), failure, Interrupted},
			failure},
		{"multiple", []error{failure, errors.New("Other")}, ErrCombined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CombineErrors(tt.errs...)
			if errors.Cause(err) != tt.cause {
				t.Errorf("Wrong cause : got %v, want %v", err, tt.cause)
			}
		})
	}
}

func Test_RunWorkers(t *testing.T) {
	ctx := logger.ContextWithLogger(context.Background(), true, true, "")

	var count int32
	if err := RunWorkers(ctx, "Test", 4, func(ctx context.Context,
		interrupt <-chan interface{}, worker int) error {
		atomic.AddInt32(&count, int32(worker+1))
		return nil
	}); err != nil {
		t.Fatalf("Failed to run workers : %s", err)
	}

	if count != 10 {
		t.Errorf("Wrong count : got %d, want %d", count, 10)
	}
}

func Test_RunWorkersFailure(t *testing.T) {
	ctx := logger.ContextWithLogger(context.Background(), true, true, "")
	failure := errors.New("Failure")

	err := RunWorkers(ctx, "Test", 3, func(ctx context.Context,
		interrupt <-chan interface{}, worker int) error {
		if worker == 0 {
			return failure
		}

		select {
		case <-interrupt:
			return Interrupted
		case <-time.After(10 * time.Second):
			return nil
		}
	})

	if errors.Cause(err) != failure {
		t.Errorf("Wrong error : got %v, want %v", err, failure)
	}
}
