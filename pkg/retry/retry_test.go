package retry

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var errTest = errors.New("test error")

type recordingSleeper struct {
	delays []time.Duration
}

func (r *recordingSleeper) Sleep(d time.Duration) {
	r.delays = append(r.delays, d)
}

func TestRetry_NoStrategies(t *testing.T) {
	calls := 0
	attempts, err := Retry(func() error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, attempts)
	assert.Equal(t, 1, calls)
}

func TestRetry_Limit(t *testing.T) {
	calls := 0
	attempts, err := Retry(func() error {
		calls++
		return errTest
	}, Limit(3))

	assert.Equal(t, errTest, err)
	assert.EqualValues(t, 3, attempts)
	assert.Equal(t, 3, calls)
}

func TestRetry_EventualSuccess(t *testing.T) {
	calls := 0
	attempts, err := Retry(func() error {
		calls++
		if calls < 3 {
			return errTest
		}
		return nil
	}, Limit(5))

	assert.NoError(t, err)
	assert.EqualValues(t, 3, attempts)
}

func TestRetry_RetriableErrors(t *testing.T) {
	other := errors.New("other error")

	calls := 0
	_, err := Retry(func() error {
		calls++
		if calls == 1 {
			return errTest
		}
		return other
	}, Limit(10), RetriableErrors(errTest))

	assert.Equal(t, other, err)
	assert.Equal(t, 2, calls)
}

func TestRetry_NonRetriableErrors(t *testing.T) {
	calls := 0
	_, err := Retry(func() error {
		calls++
		return errTest
	}, Limit(10), NonRetriableErrors(errTest))

	assert.Equal(t, errTest, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_WrappedErrors(t *testing.T) {
	calls := 0
	_, err := Retry(func() error {
		calls++
		return errors.Wrap(errTest, "wrapped")
	}, Limit(3), RetriableErrors(errTest))

	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetrier(t *testing.T) {
	r := NewRetrier(Limit(2))

	calls := 0
	attempts, err := r.Retry(func() error {
		calls++
		return errTest
	})

	assert.Equal(t, errTest, err)
	assert.EqualValues(t, 2, attempts)
	assert.Equal(t, 2, calls)
}

func TestBackoff_Capped(t *testing.T) {
	s := &recordingSleeper{}
	sleeperImpl = s
	defer func() {
		sleeperImpl = &realSleeper{}
	}()

	calls := 0
	_, err := Retry(func() error {
		calls++
		return errTest
	}, Limit(5), Backoff(func(attempts uint) time.Duration {
		return time.Duration(attempts) * time.Second
	}, 2*time.Second))

	assert.Equal(t, errTest, err)
	assert.Equal(t, []time.Duration{
		1 * time.Second,
		2 * time.Second,
		2 * time.Second,
		2 * time.Second,
	}, s.delays)
}

func TestBackoffWithJitter_Window(t *testing.T) {
	s := &recordingSleeper{}
	sleeperImpl = s
	defer func() {
		sleeperImpl = &realSleeper{}
	}()

	_, err := Retry(func() error {
		return errTest
	}, Limit(20), BackoffWithJitter(func(attempts uint) time.Duration {
		return time.Second
	}, time.Second, 0.1))

	assert.Equal(t, errTest, err)
	for _, d := range s.delays {
		assert.True(t, d >= 900*time.Millisecond)
		assert.True(t, d <= 1100*time.Millisecond)
	}
}
