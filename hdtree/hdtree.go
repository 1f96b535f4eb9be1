package hdtree

import (
	"context"
	"time"

	"github.com/tokenized/hdkeys/bitcoin"
	"github.com/tokenized/hdkeys/threads"

	"github.com/pkg/errors"
	"github.com/tokenized/logger"
)

const (
	SubSystem = "HDTree" // For logger
)

var (
	// ErrIndexRange means a range of child indexes extends past the last index.
	ErrIndexRange = errors.New("Index out of range")

	// ErrNoValidIndex means every index from the starting index to the hardened boundary collided.
	ErrNoValidIndex = errors.New("No valid index")
)

// DeriveRange derives the count children of parent at consecutive indexes beginning with start.
// The indexes are split into one chunk per worker. Results are in index order.
func DeriveRange(ctx context.Context, parent bitcoin.HDPrivateKey, start uint32, count,
	workers int) ([]bitcoin.HDPrivateKey, error) {

	if count < 0 || uint64(start)+uint64(count) > 1<<32 {
		return nil, errors.Wrapf(ErrIndexRange, "start %d count %d", start, count)
	}

	if !parent.IsValid() {
		return nil, errors.Wrap(bitcoin.ErrInvalidScalar, "parent")
	}

	ctx = logger.ContextWithLogSubSystem(ctx, SubSystem)
	begin := time.Now()

	result := make([]bitcoin.HDPrivateKey, count)
	if err := runChunks(ctx, "derive range", count, workers,
		func(i int) error {
			child, err := parent.DerivePrivate(start + uint32(i))
			if err != nil {
				return err
			}

			result[i] = child
			return nil
		}); err != nil {
		return nil, err
	}

	logger.VerboseWithFields(ctx, []logger.Field{
		logger.Uint64("start", uint64(start)),
		logger.Int("count", count),
		logger.MillisecondsFromNano("elapsed_ms", time.Since(begin).Nanoseconds()),
	}, "Derived range")

	return result, nil
}

// DerivePaths derives the descendant of parent at each path. The paths are split into one chunk per
// worker. Results are in the same order as paths.
func DerivePaths(ctx context.Context, parent bitcoin.HDPrivateKey, paths [][]uint32,
	workers int) ([]bitcoin.HDPrivateKey, error) {

	if !parent.IsValid() {
		return nil, errors.Wrap(bitcoin.ErrInvalidScalar, "parent")
	}

	ctx = logger.ContextWithLogSubSystem(ctx, SubSystem)
	begin := time.Now()

	result := make([]bitcoin.HDPrivateKey, len(paths))
	if err := runChunks(ctx, "derive paths", len(paths), workers,
		func(i int) error {
			child, err := parent.DerivePath(paths[i])
			if err != nil {
				return err
			}

			result[i] = child
			return nil
		}); err != nil {
		return nil, err
	}

	logger.VerboseWithFields(ctx, []logger.Field{
		logger.Int("paths", len(paths)),
		logger.MillisecondsFromNano("elapsed_ms", time.Since(begin).Nanoseconds()),
	}, "Derived paths")

	return result, nil
}

// NextChild derives the child at index or, when that index collides, the next index that doesn't.
// The search stays on the same side of the hardened boundary. The index used is the child number
// of the result.
func NextChild(parent bitcoin.HDPrivateKey, index uint32) (bitcoin.HDPrivateKey, error) {
	return nextChild(index, parent.DerivePrivate)
}

func nextChild(index uint32,
	derive func(uint32) (bitcoin.HDPrivateKey, error)) (bitcoin.HDPrivateKey, error) {

	hardened := index >= bitcoin.Hardened
	for {
		child, err := derive(index)
		if err == nil {
			return child, nil
		}

		if errors.Cause(err) != bitcoin.ErrDerivationCollision {
			return bitcoin.HDPrivateKey{}, err
		}

		index++
		if (index >= bitcoin.Hardened) != hardened {
			return bitcoin.HDPrivateKey{}, errors.Wrap(ErrNoValidIndex,
				bitcoin.PathIndexToString(index-1))
		}
	}
}

// runChunks calls function for each item in [0, count) with the items split into contiguous chunks,
// one per worker.
func runChunks(ctx context.Context, name string, count, workers int,
	function func(i int) error) error {

	if count == 0 {
		return nil
	}

	if workers < 1 {
		workers = 1
	}
	if workers > count {
		workers = count
	}
	size := (count + workers - 1) / workers

	return threads.RunWorkers(ctx, name, workers, func(ctx context.Context,
		interrupt <-chan interface{}, worker int) error {

		end := (worker + 1) * size
		if end > count {
			end = count
		}

		for i := worker * size; i < end; i++ {
			select {
			case <-interrupt:
				return threads.Interrupted
			case <-ctx.Done():
				return errors.Wrap(threads.Interrupted, ctx.Err().Error())
			default:
			}

			if err := function(i); err != nil {
				return errors.Wrapf(err, "item %d", i)
			}
		}

		return nil
	})
}
