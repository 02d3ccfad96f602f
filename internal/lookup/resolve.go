// Package lookup resolves cascading directory lists (universities of a city,
// schools of a university, departments of a school) by calling a server-side
// aggregation first and reading the tables directly when the aggregation is
// not installed.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrLookupFailed = errors.New("lookup failed")

// Unsupported is implemented by errors signalling that the server lacks the
// function or relation a query depends on.
type Unsupported interface {
	Unsupported() bool
}

// IsUnsupported reports whether err carries an Unsupported signal.
func IsUnsupported(err error) bool {
	var u Unsupported
	return errors.As(err, &u) && u.Unsupported()
}

// Func fetches a list of items.
type Func[T any] func(ctx context.Context) ([]T, error)

// Source describes one cascading lookup.
type Source[T any] struct {
	Name     string
	RPC      Func[T]
	Fallback Func[T]
	Key      func(T) string
	Label    func(T) string
}

// Result is a resolved list plus whether the fallback produced it.
type Result[T any] struct {
	Items        []T
	UsedFallback bool
}

// Resolve runs the RPC and returns its rows as-is. When the RPC reports
// Unsupported, the fallback rows are deduplicated by key and sorted by
// label. Every other failure is wrapped in ErrLookupFailed.
func Resolve[T any](ctx context.Context, src Source[T]) (Result[T], error) {
	items, err := src.RPC(ctx)
	if err == nil {
		return Result[T]{Items: items}, nil
	}
	if !IsUnsupported(err) {
		return Result[T]{}, fmt.Errorf("%w: %s: %w", ErrLookupFailed, src.Name, err)
	}

	items, err = src.Fallback(ctx)
	if err != nil {
		return Result[T]{}, fmt.Errorf("%w: %s fallback: %w", ErrLookupFailed, src.Name, err)
	}
	return Result[T]{Items: DedupeSorted(items, src.Key, src.Label), UsedFallback: true}, nil
}

// DedupeSorted keeps the first item per key and orders by label
// (case-insensitive), then key.
func DedupeSorted[T any](items []T, key, label func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := key(it)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		li, lj := strings.ToLower(label(out[i])), strings.ToLower(label(out[j]))
		if li != lj {
			return li < lj
		}
		return key(out[i]) < key(out[j])
	})
	return out
}
