package usecase

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	k := newKeyedMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("501")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestKeyedMutex_DifferentKeysIndependent(t *testing.T) {
	k := newKeyedMutex()

	unlockA := k.Lock("a")
	// Holding "a" must not block "b".
	unlockB := k.Lock("b")

	unlockB()
	unlockA()
}

func TestKeyedMutex_EntriesReleased(t *testing.T) {
	k := newKeyedMutex()

	unlock := k.Lock("501")
	unlock()

	k.mu.Lock()
	defer k.mu.Unlock()
	assert.Empty(t, k.entries)
}
