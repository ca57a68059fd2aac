package lock_test

import (
	"sync"
	"testing"
	"time"

	"go-workforce/internal/shared/lock"

	"github.com/stretchr/testify/assert"
)

func TestKeyed_SerializesHoldersOfOneKey(t *testing.T) {
	k := lock.NewKeyed()

	const workers = 8
	const rounds = 200

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				k.Lock(7)
				counter++
				k.Unlock(7)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*rounds, counter)
}

func TestKeyed_DifferentKeysDoNotBlockEachOther(t *testing.T) {
	k := lock.NewKeyed()
	k.Lock(1)
	defer k.Unlock(1)

	done := make(chan struct{})
	go func() {
		k.Lock(2)
		k.Unlock(2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on an unrelated key blocked")
	}
}

func TestKeyed_SameKeyBlocksUntilUnlock(t *testing.T) {
	k := lock.NewKeyed()
	k.Lock(1)

	acquired := make(chan struct{})
	go func() {
		k.Lock(1)
		close(acquired)
		k.Unlock(1)
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired a held key")
	case <-time.After(50 * time.Millisecond):
	}

	k.Unlock(1)

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("key was not handed over after unlock")
	}
}
