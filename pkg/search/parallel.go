package search

import (
	"runtime"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// parallelFilter keeps the items accepted by keep, splitting the work in one chunk per CPU.
// The relative order of the kept items is preserved.
func parallelFilter[T any](items []T, keep func(T) bool) []T {
	if len(items) == 0 {
		return nil
	}

	chunkSize := max(1, (len(items)+runtime.NumCPU()-1)/runtime.NumCPU())
	chunks := lo.Chunk(items, chunkSize)
	kept := make([][]T, len(chunks))

	var group errgroup.Group
	for i, chunk := range chunks {
		group.Go(func() error {
			kept[i] = lo.Filter(chunk, func(item T, _ int) bool { return keep(item) })
			return nil
		})
	}
	_ = group.Wait() // Workers never fail

	return lo.Flatten(kept)
}
