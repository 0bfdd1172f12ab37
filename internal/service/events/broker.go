package events

import (
	"sync"
	"time"
	"wheel_backend/internal/model"
)

const (
	// Размер буфера канала подписчика
	bufferSize = 10
	// Сколько ждем медленного подписчика
	sendTimeout = time.Second
)

// Broker Рассылка снимков состояния подписчикам одной сессии
type Broker struct {
	mtx         sync.RWMutex
	subscribers map[string]map[chan model.Snapshot]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[string]map[chan model.Snapshot]struct{}),
	}
}

// Subscribe Подписка на снимки сессии. Возвращает функцию отписки
func (b *Broker) Subscribe(sessionID string) (<-chan model.Snapshot, func()) {
	ch := make(chan model.Snapshot, bufferSize)

	b.mtx.Lock()
	subs, ok := b.subscribers[sessionID]
	if !ok {
		subs = make(map[chan model.Snapshot]struct{})
		b.subscribers[sessionID] = subs
	}
	subs[ch] = struct{}{}
	b.mtx.Unlock()

	return ch, func() {
		b.mtx.Lock()
		defer b.mtx.Unlock()

		// Канал мог быть уже закрыт через Close
		if _, ok := b.subscribers[sessionID][ch]; !ok {
			return
		}
		delete(b.subscribers[sessionID], ch)
		if len(b.subscribers[sessionID]) == 0 {
			delete(b.subscribers, sessionID)
		}
		close(ch)
	}
}

// Publish Отправить снимок всем подписчикам сессии, не держа блокировку записи
func (b *Broker) Publish(snap model.Snapshot) {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	for ch := range b.subscribers[snap.SessionID] {
		select {
		case ch <- snap:
		case <-time.After(sendTimeout):
			// Подписчик не успевает, пропускаем
		}
	}
}

// Close Отписать всех подписчиков сессии
func (b *Broker) Close(sessionID string) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	for ch := range b.subscribers[sessionID] {
		close(ch)
	}
	delete(b.subscribers, sessionID)
}

// Subscribers Число подписчиков сессии
func (b *Broker) Subscribers(sessionID string) int {
	b.mtx.RLock()
	defer b.mtx.RUnlock()
	return len(b.subscribers[sessionID])
}
