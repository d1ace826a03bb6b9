package engine

import (
	"container/heap"

	"dungeon-core/internal/world"
	"dungeon-core/pkg/logger"

	"github.com/oklog/ulid/v2"
)

// TurnManager manages the priority queue of agent turns.
type TurnManager struct {
	queue   TurnQueue
	itemMap map[ulid.ULID]*TurnItem
}

func NewTurnManager() *TurnManager {
	return &TurnManager{
		queue:   make(TurnQueue, 0),
		itemMap: make(map[ulid.ULID]*TurnItem),
	}
}

// Add registers an agent that acts on the given turn or later.
func (tm *TurnManager) Add(a Agent, turn int) {
	if _, ok := tm.itemMap[a.ID()]; ok {
		return
	}

	item := &TurnItem{Value: a, Priority: turn}
	heap.Push(&tm.queue, item)
	tm.itemMap[a.ID()] = item

	logger.Log.WithField("actor_id", a.ID()).Debug("Agent added to TurnManager")
}

// UpdatePriority moves an agent to a new turn (e.g. after they acted).
func (tm *TurnManager) UpdatePriority(id ulid.ULID, turn int) {
	if item, ok := tm.itemMap[id]; ok {
		tm.queue.Update(item, turn)
	}
}

// PeekNext returns the agent whose turn is next, without removing them.
func (tm *TurnManager) PeekNext() *TurnItem {
	if tm.queue.Len() == 0 {
		return nil
	}
	return tm.queue[0]
}

// Remove drops an agent from the turn system (e.g. expiry).
func (tm *TurnManager) Remove(id ulid.ULID) {
	if item, ok := tm.itemMap[id]; ok {
		heap.Remove(&tm.queue, item.Index)
		delete(tm.itemMap, id)
	}
}

// Sync adds new free agents of w and drops the ones that left it or got held.
func (tm *TurnManager) Sync(w *world.World, turn int) {
	for id, item := range tm.itemMap {
		if a := item.Value; !a.BoundTo(w) || a.Held() || a.Expired() {
			tm.Remove(id)
		}
	}
	for _, a := range w.Actors(isAgent) {
		if a.Held() || a.Expired() {
			continue
		}
		tm.Add(a.(Agent), turn)
	}
}

func (tm *TurnManager) Len() int {
	return tm.queue.Len()
}

// DebugDump возвращает снимок очереди для отладки
func (tm *TurnManager) DebugDump() []map[string]interface{} {
	// Инициализируем как пустой слайс, а не nil. Тогда в JSON это будет "[]", а не "null"
	result := make([]map[string]interface{}, 0)

	for _, item := range tm.queue {
		result = append(result, map[string]interface{}{
			"id":       item.Value.ID().String(),
			"kind":     item.Value.Kind().String(),
			"priority": item.Priority,
			"index":    item.Index,
		})
	}
	return result
}

func isAgent(a world.Actor) bool {
	_, ok := a.(Agent)
	return ok
}
