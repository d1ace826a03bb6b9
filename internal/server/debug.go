package server

import (
	"encoding/json"
	"net/http"
	"sort"

	"dungeon-core/internal/engine"
	"dungeon-core/internal/world"
	"dungeon-core/pkg/api"

	"github.com/sasha-s/go-deadlock"
)

// debugSnapshot - состояние мира, снятое после хода. HTTP-обработчики
// читают только его и никогда не обращаются к World напрямую.
type debugSnapshot struct {
	summary api.WorldSummary
	actors  []api.EntityView
	queue   []map[string]interface{}
}

// DebugHandler предоставляет доступ к внутреннему состоянию симуляции
type DebugHandler struct {
	mu    deadlock.RWMutex
	snap  debugSnapshot
	ready bool
}

func NewDebugHandler() *DebugHandler {
	return &DebugHandler{}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/world", h.handleWorld)
	mux.HandleFunc("/debug/actors", h.handleActors)
	mux.HandleFunc("/debug/queue", h.handleTurnQueue)
}

// update снимает снапшот. Вызывается из горутины симуляции.
func (h *DebugHandler) update(g *engine.Game) {
	w := g.World

	byKind := map[string]int{}
	for _, a := range w.Actors(world.Any) {
		byKind[a.Kind().String()]++
	}

	snap := debugSnapshot{
		summary: api.WorldSummary{
			Tick:      w.Turn(),
			Seed:      g.Config.Seed,
			Width:     w.Width(),
			Height:    w.Height(),
			Rooms:     len(g.Layout.Rooms),
			Actors:    w.Len(),
			ByKind:    byKind,
			Algorithm: g.Config.FoV.Algorithm,
		},
		// Удерживаемые тоже нужны: инвентарь видно по позиции держателя
		actors: entityViews(w, world.Any),
		queue:  g.Dungeon.Turns().DebugDump(),
	}
	sort.Slice(snap.queue, func(i, j int) bool {
		return snap.queue[i]["index"].(int) < snap.queue[j]["index"].(int)
	})

	h.mu.Lock()
	h.snap = snap
	h.ready = true
	h.mu.Unlock()
}

func (h *DebugHandler) snapshot() (debugSnapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap, h.ready
}

// /debug/world - сводка: размеры, ход, количество акторов по видам
func (h *DebugHandler) handleWorld(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot()
	if !ok {
		http.Error(w, "Simulation has not published a tick yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, snap.summary)
}

// /debug/actors?kind=monster - дамп акторов, включая удерживаемых
func (h *DebugHandler) handleActors(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot()
	if !ok {
		http.Error(w, "Simulation has not published a tick yet", http.StatusServiceUnavailable)
		return
	}

	kindStr := r.URL.Query().Get("kind")
	if kindStr == "" {
		writeJSON(w, snap.actors)
		return
	}

	kind := world.ParseKind(kindStr)
	if kind == world.KindUnknown {
		http.Error(w, "Unknown kind: "+kindStr, http.StatusBadRequest)
		return
	}

	result := make([]api.EntityView, 0)
	for _, a := range snap.actors {
		if world.ParseKind(a.Kind).Has(kind) {
			result = append(result, a)
		}
	}
	writeJSON(w, result)
}

// /debug/queue - очередь ходов в порядке кучи (не в порядке извлечения)
func (h *DebugHandler) handleTurnQueue(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot()
	if !ok {
		http.Error(w, "Simulation has not published a tick yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, snap.queue)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, пустая очередь), возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
