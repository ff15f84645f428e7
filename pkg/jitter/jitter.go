// Package jitter размывает интервалы повтора случайной добавкой, чтобы
// переподключения и фоновые чистки не выстраивались в синхронные волны.
package jitter

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter — доля случайной добавки к интервалу (50%).
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Duration возвращает d со случайной добавкой в диапазоне [d, d*(1+factor)].
func Duration(d time.Duration, factor float64) time.Duration {
	randMutex.Lock()
	extra := globalRand.Float64() * factor * float64(d)
	randMutex.Unlock()

	return d + time.Duration(extra)
}

// ExponentialBackoff возвращает интервал очередной попытки: base,
// удвоенный attempt раз, но не больше max, плюс джиттер.
// attempt нумеруется с нуля.
func ExponentialBackoff(base, max time.Duration, attempt int, factor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff >= max {
			backoff = max
			break
		}
	}

	return Duration(backoff, factor)
}
