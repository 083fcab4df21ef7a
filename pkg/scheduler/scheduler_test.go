package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// yearly 足够远的调度，测试中只通过 RunNow 触发.
const yearly = "0 0 1 1 *"

func newStarted(t *testing.T) *Scheduler {
	t.Helper()

	s, err := NewScheduler()
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Shutdown() })

	return s
}

func TestAddCronAndRunNow(t *testing.T) {
	s := newStarted(t)

	var calls atomic.Int32

	require.NoError(t, s.AddCron("janitor", yearly, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}))

	s.Start()
	require.NoError(t, s.RunNow("janitor"))

	assert.Eventually(t, func() bool {
		info, err := s.GetJobInfoByName("janitor")
		return err == nil && info.Runs == 1 && info.Status == StatusScheduled && !info.LastSuccess.IsZero()
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestJobErrorIsRecorded(t *testing.T) {
	s := newStarted(t)

	require.NoError(t, s.AddCron("broken", yearly, func(context.Context) error {
		return errors.New("disk gone")
	}))

	s.Start()
	require.NoError(t, s.RunNow("broken"))

	assert.Eventually(t, func() bool {
		info, _ := s.GetJobInfoByName("broken")
		return info.Status == StatusError && info.Error == "disk gone"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestJobPanicIsRecorded(t *testing.T) {
	s := newStarted(t)

	require.NoError(t, s.AddCron("panics", yearly, func(context.Context) error {
		panic("boom")
	}))

	s.Start()
	require.NoError(t, s.RunNow("panics"))

	assert.Eventually(t, func() bool {
		info, _ := s.GetJobInfoByName("panics")
		return info.Status == StatusError && info.Error == "panic in job: boom"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAddCronValidation(t *testing.T) {
	s := newStarted(t)
	noop := func(context.Context) error { return nil }

	require.NoError(t, s.AddCron("a", yearly, noop))
	assert.Error(t, s.AddCron("a", yearly, noop))
	assert.Error(t, s.AddCron("b", "not a cron", noop))

	infos := s.GetJobInfos()
	require.Len(t, infos, 1)
	assert.Equal(t, "a", infos[0].Name)
	assert.Equal(t, yearly, infos[0].CronExpr)
	assert.True(t, infos[0].NextRun.IsZero())

	s.Start()

	assert.Eventually(t, func() bool {
		info, _ := s.GetJobInfoByName("a")
		return info.NextRun.After(time.Now())
	}, 2*time.Second, 10*time.Millisecond)
}

func TestUnknownJob(t *testing.T) {
	s := newStarted(t)

	assert.ErrorIs(t, s.RunNow("missing"), ErrJobNotFound)
	assert.ErrorIs(t, s.RemoveJobByName("missing"), ErrJobNotFound)

	_, err := s.GetJobInfoByName("missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestRemoveJobByName(t *testing.T) {
	s := newStarted(t)

	require.NoError(t, s.AddCron("a", yearly, func(context.Context) error { return nil }))
	require.NoError(t, s.RemoveJobByName("a"))
	assert.Empty(t, s.GetJobInfos())
}
