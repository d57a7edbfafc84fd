package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("redis down")

// fakeClock 手动推进的时钟
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(threshold uint32) (*CircuitBreaker, *fakeClock, *[]State) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	var transitions []State
	cb := New("test", Config{
		FailureThreshold: threshold,
		OpenTimeout:      30 * time.Second,
		OnStateChange: func(_ string, _, to State) {
			transitions = append(transitions, to)
		},
	})
	cb.now = clock.now
	return cb, clock, &transitions
}

func fail() error { return errDown }
func ok() error   { return nil }

func TestCircuitBreaker_Closed(t *testing.T) {
	cb, _, _ := newTestBreaker(3)

	for i := 0; i < 10; i++ {
		require.NoError(t, cb.Execute(ok))
	}
	assert.Equal(t, StateClosed, cb.State())
	assert.EqualValues(t, 10, cb.Counts().ConsecutiveSuccesses)

	// 中间有成功，连续失败计数清零
	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	require.NoError(t, cb.Execute(ok))
	_ = cb.Execute(fail)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_Open(t *testing.T) {
	cb, _, transitions := newTestBreaker(3)

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errDown)
	}
	assert.Equal(t, StateOpen, cb.State())
	assert.Equal(t, []State{StateOpen}, *transitions)

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called, "打开时不应访问下游")
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	t.Run("探测成功后关闭", func(t *testing.T) {
		cb, clock, transitions := newTestBreaker(2)
		_ = cb.Execute(fail)
		_ = cb.Execute(fail)

		clock.advance(29 * time.Second)
		assert.Equal(t, StateOpen, cb.State())

		clock.advance(time.Second)
		assert.Equal(t, StateHalfOpen, cb.State())

		require.NoError(t, cb.Execute(ok))
		assert.Equal(t, StateClosed, cb.State())
		assert.Equal(t, []State{StateOpen, StateHalfOpen, StateClosed}, *transitions)
	})

	t.Run("探测失败重新打开", func(t *testing.T) {
		cb, clock, _ := newTestBreaker(2)
		_ = cb.Execute(fail)
		_ = cb.Execute(fail)
		clock.advance(30 * time.Second)

		assert.ErrorIs(t, cb.Execute(fail), errDown)
		assert.Equal(t, StateOpen, cb.State())
		assert.ErrorIs(t, cb.Execute(ok), ErrOpenState)
	})

	t.Run("半开只放行一个探测", func(t *testing.T) {
		cb, clock, _ := newTestBreaker(1)
		_ = cb.Execute(fail)
		clock.advance(30 * time.Second)

		err := cb.Execute(func() error {
			// 探测进行中，第二个请求被拒绝
			assert.ErrorIs(t, cb.Execute(ok), ErrOpenState)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, StateClosed, cb.State())
	})
}

func TestCircuitBreaker_Defaults(t *testing.T) {
	cb := New("defaults", Config{OpenTimeout: time.Minute})
	for i := 0; i < 4; i++ {
		_ = cb.Execute(fail)
	}
	assert.Equal(t, StateClosed, cb.State())
	_ = cb.Execute(fail)
	assert.Equal(t, StateOpen, cb.State())
	assert.Equal(t, "open", cb.State().String())
}

func TestCircuitBreaker_CountsAfterTimeout(t *testing.T) {
	cb, clock, transitions := newTestBreaker(2)
	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	clock.advance(30 * time.Second)

	// 只读统计也要先处理打开超时，返回半开状态下的计数
	assert.Equal(t, Counts{}, cb.Counts())
	assert.Equal(t, []State{StateOpen, StateHalfOpen}, *transitions)

	require.NoError(t, cb.Execute(ok))
	assert.Equal(t, StateClosed, cb.State())
}
