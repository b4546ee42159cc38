package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcJob struct {
	name string
	fn   func(ctx context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestSchedulerRegister(t *testing.T) {
	s := NewScheduler(bufferLogger(&bytes.Buffer{}))
	job := funcJob{name: "noop", fn: func(context.Context) error { return nil }}

	require.NoError(t, s.Register("@every 1h", job))
	require.NoError(t, s.Register("*/5 * * * *", job))

	err := s.Register("not a schedule", job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "noop")
}

func TestSchedulerRunAll(t *testing.T) {
	var buf bytes.Buffer
	s := NewScheduler(bufferLogger(&buf))

	var runs atomic.Int32
	var sawDeadline atomic.Bool
	require.NoError(t, s.Register("@every 1h", funcJob{name: "count", fn: func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		sawDeadline.Store(ok)
		runs.Add(1)
		return nil
	}}))
	require.NoError(t, s.Register("@every 1h", funcJob{name: "broken", fn: func(context.Context) error {
		return errors.New("sweep failed")
	}}))

	s.RunAll()

	assert.Equal(t, int32(1), runs.Load())
	assert.True(t, sawDeadline.Load())
	assert.Contains(t, buf.String(), `"job":"broken"`)
	assert.Contains(t, buf.String(), "sweep failed")
}

func TestSchedulerRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	s := NewScheduler(bufferLogger(&buf))
	require.NoError(t, s.Register("@every 1h", funcJob{name: "panicky", fn: func(context.Context) error {
		panic("boom")
	}}))

	assert.NotPanics(t, s.RunAll)
	assert.Contains(t, buf.String(), "panic")
}

func TestSchedulerStop(t *testing.T) {
	s := NewScheduler(bufferLogger(&bytes.Buffer{}))
	require.NoError(t, s.Register("@every 1h", funcJob{name: "idle", fn: func(context.Context) error { return nil }}))
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	// Runs after Stop see a cancelled context.
	var cancelled atomic.Bool
	s.run(funcJob{name: "late", fn: func(ctx context.Context) error {
		cancelled.Store(ctx.Err() != nil)
		return nil
	}})
	assert.True(t, cancelled.Load())
}

func TestCronLogger(t *testing.T) {
	var buf bytes.Buffer
	l := cronLogger{logger: bufferLogger(&buf)}

	l.Info("schedule", "entry", 1)
	l.Error(errors.New("bad"), "run failed", "entry", 2)

	out := buf.String()
	assert.Contains(t, out, `"level":"DEBUG"`)
	assert.Contains(t, out, `"msg":"schedule"`)
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error":"bad"`)
	assert.Contains(t, out, `"entry":2`)
}
