package lookup

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string
	Name string
}

type missingFunction struct{}

func (missingFunction) Error() string     { return "function does not exist" }
func (missingFunction) Unsupported() bool { return true }

func source(rpc, fallback Func[item]) Source[item] {
	return Source[item]{
		Name:     "things",
		RPC:      rpc,
		Fallback: fallback,
		Key:      func(i item) string { return i.ID },
		Label:    func(i item) string { return i.Name },
	}
}

func rows(items ...item) Func[item] {
	return func(context.Context) ([]item, error) { return items, nil }
}

func failing(err error) Func[item] {
	return func(context.Context) ([]item, error) { return nil, err }
}

func TestResolve_RPCResultReturnedAsIs(t *testing.T) {
	fallbackCalled := false
	fallback := func(context.Context) ([]item, error) {
		fallbackCalled = true
		return nil, nil
	}

	res, err := Resolve(context.Background(), source(rows(item{"2", "b"}, item{"1", "a"}), fallback))
	require.NoError(t, err)
	assert.False(t, res.UsedFallback)
	assert.False(t, fallbackCalled)
	assert.Equal(t, []item{{"2", "b"}, {"1", "a"}}, res.Items)
}

func TestResolve_FallsBackOnUnsupported(t *testing.T) {
	rpcErr := fmt.Errorf("query: %w", missingFunction{})
	fallback := rows(
		item{"3", "zeta"},
		item{"1", "Alpha"},
		item{"3", "zeta duplicate"},
		item{"2", "beta"},
	)

	res, err := Resolve(context.Background(), source(failing(rpcErr), fallback))
	require.NoError(t, err)
	assert.True(t, res.UsedFallback)
	assert.Equal(t, []item{{"1", "Alpha"}, {"2", "beta"}, {"3", "zeta"}}, res.Items)
}

func TestResolve_OtherErrorsAreFatal(t *testing.T) {
	boom := errors.New("permission denied for function universities_by_city")

	_, err := Resolve(context.Background(), source(failing(boom), rows(item{"1", "a"})))
	assert.ErrorIs(t, err, ErrLookupFailed)
	assert.ErrorIs(t, err, boom)
}

func TestResolve_FallbackErrorIsFatal(t *testing.T) {
	boom := errors.New("connection reset")

	_, err := Resolve(context.Background(), source(failing(missingFunction{}), failing(boom)))
	assert.ErrorIs(t, err, ErrLookupFailed)
	assert.ErrorIs(t, err, boom)
}

func TestIsUnsupported(t *testing.T) {
	assert.True(t, IsUnsupported(fmt.Errorf("wrapped: %w", missingFunction{})))
	assert.False(t, IsUnsupported(errors.New("function does not exist")))
	assert.False(t, IsUnsupported(nil))
}

func TestDedupeSorted_TiesBrokenByKey(t *testing.T) {
	out := DedupeSorted([]item{{"b", "Same"}, {"a", "same"}},
		func(i item) string { return i.ID },
		func(i item) string { return i.Name })
	assert.Equal(t, []item{{"a", "same"}, {"b", "Same"}}, out)
}
