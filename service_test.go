package pointstore

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/hupe1980/pointstore/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Metrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	svc := New(WithMetricsCollector(metrics))
	h := &countingHandle{}

	_, err := svc.LookupIDs(context.Background(), LookupRequest{
		CollectionName: "x",
		Values:         []model.PseudoID{model.PseudoUint(1), model.PseudoInt(-1), model.PseudoUint(2)},
	}, h.resolver(), nil, nil)
	require.NoError(t, err)

	_, err = svc.LookupIDs(context.Background(), LookupRequest{CollectionName: "y"},
		func(context.Context, string) (Handle, bool) { return nil, false }, nil, nil)
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.LookupCount)
	assert.Equal(t, int64(1), stats.LookupErrors)
	assert.Equal(t, int64(1), stats.NotFoundErrors)
	assert.Equal(t, int64(3), stats.IDsRequested)
	assert.Equal(t, int64(1), stats.IDsDropped)
	assert.Equal(t, int64(2), stats.RecordsFound)
}

func TestService_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := New(WithLogger(logger))

	_, err := svc.LookupIDs(context.Background(), LookupRequest{CollectionName: "missing"},
		func(context.Context, string) (Handle, bool) { return nil, false }, nil, nil)
	require.Error(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "lookup failed", entry["msg"])
	assert.Equal(t, "missing", entry["collection"])
	assert.Equal(t, "Collection missing not found", entry["error"])
}

func TestService_NilOptionsFallBack(t *testing.T) {
	svc := New(WithLogger(nil), WithMetricsCollector(nil), nil)
	h := &countingHandle{}

	_, err := svc.LookupIDs(context.Background(), LookupRequest{CollectionName: "x"}, h.resolver(), nil, nil)
	require.NoError(t, err)
}

func TestService_MaxConcurrentLookups(t *testing.T) {
	svc := New(WithMaxConcurrentLookups(1))

	entered := make(chan struct{})
	unblock := make(chan struct{})
	blocking := &blockingHandle{entered: entered, unblock: unblock}

	done := make(chan error, 1)
	go func() {
		_, err := svc.LookupIDs(context.Background(), LookupRequest{
			CollectionName: "x",
			Values:         []model.PseudoID{model.PseudoUint(1)},
		}, func(context.Context, string) (Handle, bool) { return blocking, true }, nil, nil)
		done <- err
	}()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	h := &countingHandle{}
	_, err := svc.LookupIDs(ctx, LookupRequest{CollectionName: "x"}, h.resolver(), nil, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(0), h.resolves.Load())

	close(unblock)
	require.NoError(t, <-done)

	_, err = svc.LookupIDs(context.Background(), LookupRequest{CollectionName: "x"}, h.resolver(), nil, nil)
	require.NoError(t, err)
}

func TestService_IDRateLimit(t *testing.T) {
	svc := New(WithIDRateLimit(1, 1))
	h := &countingHandle{}
	req := LookupRequest{
		CollectionName: "x",
		Values:         []model.PseudoID{model.PseudoUint(1), model.PseudoUint(2), model.PseudoUint(3)},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := svc.LookupIDs(ctx, req, h.resolver(), nil, nil)
	require.Error(t, err)
	assert.Equal(t, int32(0), h.resolves.Load(), "throttled before resolving")
}

type blockingHandle struct {
	entered chan struct{}
	unblock chan struct{}
}

func (b *blockingHandle) Retrieve(context.Context, model.PointRequest, *model.ReadConsistency, *model.ShardID) ([]model.Record, error) {
	close(b.entered)
	<-b.unblock
	return nil, nil
}

func (b *blockingHandle) Release() {}
