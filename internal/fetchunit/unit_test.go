package fetchunit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// MockObserver is a mock implementation of the Observer interface
type MockObserver struct {
	mock.Mock
}

func (m *MockObserver) UnitSettled(unit string, state State) {
	m.Called(unit, state)
}

func TestUnit_EmptyKeyStaysIdle(t *testing.T) {
	var calls int32
	u := New("search", "Error fetching businesses: ", func(ctx context.Context, key string) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	})

	view := u.Load(context.Background(), "")

	assert.Equal(t, Idle, view.State)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.False(t, view.HasData())
}

func TestUnit_Success(t *testing.T) {
	u := New("score", "Error fetching overall score: ", func(ctx context.Context, key string) (int, error) {
		return 72, nil
	})

	view := u.Load(context.Background(), "biz-1")

	assert.Equal(t, Success, view.State)
	assert.Equal(t, "biz-1", view.Key)
	assert.Equal(t, 72, view.Data)
	assert.Empty(t, view.Err)
	assert.True(t, view.HasData())
}

func TestUnit_ErrorUsesPrefixAndDropsPreviousData(t *testing.T) {
	fail := false
	u := New("summary", "Error fetching AI analysis: ", func(ctx context.Context, key string) (string, error) {
		if fail {
			return "", errors.New("Failed to fetch AI analysis (status 500)")
		}
		return "summary for " + key, nil
	})

	first := u.Load(context.Background(), "a")
	require.Equal(t, Success, first.State)

	fail = true
	view := u.Load(context.Background(), "b")

	assert.Equal(t, Error, view.State)
	assert.Equal(t, "Error fetching AI analysis: Failed to fetch AI analysis (status 500)", view.Err)
	assert.Empty(t, view.Data, "previous success data must not be retained")
}

func TestUnit_LastKeyWins(t *testing.T) {
	release := map[string]chan struct{}{
		"k1": make(chan struct{}),
		"k2": make(chan struct{}),
	}
	started := make(chan string, 2)

	u := New("business", "", func(ctx context.Context, key string) (string, error) {
		started <- key
		<-release[key]
		return "data-" + key, nil
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		u.Load(context.Background(), "k1")
	}()
	require.Equal(t, "k1", <-started)

	go func() {
		defer wg.Done()
		u.Load(context.Background(), "k2")
	}()
	require.Equal(t, "k2", <-started)

	// k2 resolves first, then the stale k1 response arrives
	close(release["k2"])
	require.Eventually(t, func() bool {
		return u.Snapshot().State == Success
	}, time.Second, 5*time.Millisecond)

	close(release["k1"])
	wg.Wait()

	view := u.Snapshot()
	assert.Equal(t, Success, view.State)
	assert.Equal(t, "k2", view.Key)
	assert.Equal(t, "data-k2", view.Data)
}

func TestUnit_StaleErrorDoesNotOverwrite(t *testing.T) {
	releaseOld := make(chan struct{})
	started := make(chan struct{}, 1)

	u := New("trends", "Error fetching trends data: ", func(ctx context.Context, key string) (string, error) {
		if key == "old" {
			started <- struct{}{}
			<-releaseOld
			return "", errors.New("timeout")
		}
		return "fresh", nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		u.Load(context.Background(), "old")
	}()
	<-started

	u.Load(context.Background(), "new")
	close(releaseOld)
	<-done

	view := u.Snapshot()
	assert.Equal(t, Success, view.State)
	assert.Equal(t, "fresh", view.Data)
}

func TestUnit_LoadingWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	u := New("audit", "", func(ctx context.Context, key string) (string, error) {
		close(started)
		<-release
		return "ok", nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		u.Load(context.Background(), "id")
	}()
	<-started

	view := u.Snapshot()
	assert.Equal(t, Loading, view.State)
	assert.Equal(t, "id", view.Key)

	close(release)
	<-done
	assert.Equal(t, Success, u.Snapshot().State)
}

func TestUnit_EmptyKeyInvalidatesInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	u := New("trends", "", func(ctx context.Context, key string) (string, error) {
		close(started)
		<-release
		return "late", nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		u.Load(context.Background(), "name")
	}()
	<-started

	u.Load(context.Background(), "")
	close(release)
	<-done

	assert.Equal(t, Idle, u.Snapshot().State)
}

func TestUnit_Retry(t *testing.T) {
	attempts := 0
	u := New("score", "Error fetching overall score: ", func(ctx context.Context, key string) (int, error) {
		attempts++
		if attempts == 1 {
			return 0, errors.New("backend down")
		}
		return 55, nil
	})

	first := u.Load(context.Background(), "biz")
	require.Equal(t, Error, first.State)

	second := u.Retry(context.Background())
	assert.Equal(t, Success, second.State)
	assert.Equal(t, 55, second.Data)
	assert.Equal(t, 2, attempts)
}

func TestUnit_RetryOnIdleDoesNothing(t *testing.T) {
	u := New("score", "", func(ctx context.Context, key string) (int, error) {
		t.Fatal("unexpected fetch")
		return 0, nil
	})

	assert.Equal(t, Idle, u.Retry(context.Background()).State)
}

func TestUnit_ObserverNotified(t *testing.T) {
	observer := &MockObserver{}
	observer.On("UnitSettled", "score", Success).Once()
	observer.On("UnitSettled", "score", Error).Once()

	fail := false
	u := New("score", "", func(ctx context.Context, key string) (int, error) {
		if fail {
			return 0, errors.New("nope")
		}
		return 1, nil
	}).WithObserver(observer)

	u.Load(context.Background(), "a")
	fail = true
	u.Load(context.Background(), "b")
	u.Load(context.Background(), "")

	observer.AssertExpectations(t)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "unknown", State(42).String())
}
