package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzft/go-collections/primitive"
)

func newTestRecorder(t *testing.T) *TableRecorder {
	t.Helper()
	r, err := NewTableRecorder(prometheus.NewRegistry())
	require.NoError(t, err)
	return r
}

func TestOnRehashReasons(t *testing.T) {
	r := newTestRecorder(t)

	r.OnRehash(16, 32, 9, 0)
	r.OnRehash(16, 16, 1, 7)
	r.OnRehash(32, 32, 2, 5)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.Rehashes.WithLabelValues("grow")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.Rehashes.WithLabelValues("compact")))
	assert.Equal(t, 12.0, testutil.ToFloat64(r.TombstonesDiscarded))
}

func TestRecorderObservesMap(t *testing.T) {
	r := newTestRecorder(t)
	m := primitive.NewLongIntHashMap(primitive.WithObserver(r))
	for k := int64(2); k <= 10; k++ {
		_, _, err := m.Put(k, int32(k))
		require.NoError(t, err)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Rehashes.WithLabelValues("grow")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.TombstonesDiscarded))
}

func TestRegisterTwiceFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewTableRecorder(reg)
	require.NoError(t, err)
	_, err = NewTableRecorder(reg)
	assert.Error(t, err)
}
