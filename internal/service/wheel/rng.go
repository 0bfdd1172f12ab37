package wheel

import (
	"math/rand/v2"
	"sync"
)

// RNG Источник случайности. *rand.Rand из math/rand/v2 подходит напрямую
type RNG interface {
	// Float64 Случайное число в [0, 1)
	Float64() float64
	// IntN Случайное число в [0, n)
	IntN(n int) int
}

// SystemRNG Глобальный генератор math/rand/v2, безопасен для горутин
type SystemRNG struct{}

func (SystemRNG) Float64() float64 { return rand.Float64() }

func (SystemRNG) IntN(n int) int { return rand.IntN(n) }

// lockedRNG Детерминированный генератор с мьютексом
type lockedRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededRNG Генератор с фиксированным seed (для отладки и воспроизводимых прогонов)
func NewSeededRNG(seed uint64) RNG {
	return &lockedRNG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRNG) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRNG) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
