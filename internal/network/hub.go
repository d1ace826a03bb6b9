package network

import (
	"dungeon-core/pkg/api"

	"github.com/sasha-s/go-deadlock"
)

// subscriberBuffer - сколько кадров может отстать медленный подписчик,
// прежде чем новые кадры для него начнут отбрасываться.
const subscriberBuffer = 64

// Broadcaster занимается только рассылкой кадров подписчикам
// и хранит последний разосланный кадр для новых подключений.
type Broadcaster struct {
	mu deadlock.RWMutex
	// Мапа: SessionID -> Личный канал
	subscribers map[string]chan api.Frame
	latest      *api.Frame
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.Frame),
	}
}

// Register создает личный канал для сессии
func (b *Broadcaster) Register(id string) chan api.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan api.Frame, subscriberBuffer)
	b.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// SendTo отправляет кадр конкретной сессии (Unicast).
// Возвращает false, если подписчика нет или его канал переполнен.
func (b *Broadcaster) SendTo(id string, frame api.Frame) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.subscribers[id]
	if !ok {
		return false
	}
	select {
	case ch <- frame:
		return true
	default:
		return false
	}
}

// Broadcast запоминает кадр как последний и отправляет его всем.
// Переполненные каналы пропускаются: симуляция не ждет зрителей.
func (b *Broadcaster) Broadcast(frame api.Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.latest = &frame
	for _, ch := range b.subscribers {
		select {
		case ch <- frame:
		default:
		}
	}
}

// Latest возвращает последний разосланный кадр.
func (b *Broadcaster) Latest() (api.Frame, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.latest == nil {
		return api.Frame{}, false
	}
	return *b.latest, true
}

// HasSubscriber проверяет, подключена ли сессия
func (b *Broadcaster) HasSubscriber(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[id]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
