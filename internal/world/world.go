package world

import (
	"dungeon-core/internal/core/types"
	"dungeon-core/internal/geom"
	"dungeon-core/pkg/logger"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// Dice - источник случайных чисел: целое из [min, max] включительно.
type Dice interface {
	NextInt(min, max int) int
}

// Stepper - логика одного хода конкретного варианта игры.
// Мир ее не реализует, а только вызывает из Tick.
type Stepper interface {
	Tick(w *World)
}

// StepperFunc позволяет использовать функцию как Stepper.
type StepperFunc func(w *World)

func (f StepperFunc) Tick(w *World) { f(w) }

// Terrain переопределяет проходимость и внешний вид клетки
// (например, с учетом стоящих на ней акторов).
type Terrain interface {
	Passable(w *World, x, y int) bool
	Look(w *World, x, y int) types.Glyph
}

// Option настраивает мир при создании.
type Option func(*World)

// WithStepper задает логику хода.
func WithStepper(s Stepper) Option {
	return func(w *World) { w.stepper = s }
}

// WithTerrain задает переопределение проходимости/вида.
func WithTerrain(t Terrain) Option {
	return func(w *World) { w.terrain = t }
}

// World - двумерная сетка клеток и плоский реестр всех акторов
// (и стоящих на сетке, и удерживаемых).
//
// Инвариант: на клетке (x,y) стоят ровно те зарегистрированные
// неудерживаемые акторы, чья позиция равна (x,y).
//
// Мир не потокобезопасен: все вызовы - из одной горутины.
type World struct {
	width  int
	height int
	grid   [][]*Tile // [x][y]

	registry map[ulid.ULID]Actor

	stepper Stepper
	terrain Terrain
	turn    int

	log *logrus.Entry
}

// New создает мир фиксированного размера, все клетки - проходимый пол.
func New(width, height int, opts ...Option) *World {
	if width <= 0 || height <= 0 {
		violate(ErrPrecondition, "world size must be positive, got %dx%d", width, height)
	}

	grid := make([][]*Tile, width)
	for x := 0; x < width; x++ {
		grid[x] = make([]*Tile, height)
		for y := 0; y < height; y++ {
			grid[x][y] = newTile()
		}
	}

	w := &World{
		width:    width,
		height:   height,
		grid:     grid,
		registry: make(map[ulid.ULID]Actor),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "world",
			"size":      geom.C(width, height),
		}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) Width() int  { return w.width }
func (w *World) Height() int { return w.height }

// Bounds возвращает границы мира (включительно).
func (w *World) Bounds() geom.Rect {
	return geom.R(0, 0, w.width-1, w.height-1)
}

// InBounds проверяет, лежит ли клетка внутри мира.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < w.width && y < w.height
}

// Turn - число выполненных ходов.
func (w *World) Turn() int { return w.turn }

// Tick выполняет один ход логики варианта игры.
func (w *World) Tick() {
	w.turn++
	if w.stepper != nil {
		w.stepper.Tick(w)
	}
}

// --- КЛЕТКИ ---

// Tile возвращает клетку или nil за пределами мира.
func (w *World) Tile(x, y int) *Tile {
	if !w.InBounds(x, y) {
		return nil
	}
	return w.grid[x][y]
}

// Passable - можно ли пройти/смотреть сквозь клетку.
// За пределами мира всегда false.
func (w *World) Passable(x, y int) bool {
	if !w.InBounds(x, y) {
		return false
	}
	if w.terrain != nil {
		return w.terrain.Passable(w, x, y)
	}
	return w.grid[x][y].passable
}

// Look возвращает внешний вид клетки (по умолчанию - вид самого тайла).
func (w *World) Look(x, y int) types.Glyph {
	if !w.InBounds(x, y) {
		return types.GlyphVoid
	}
	if w.terrain != nil {
		return w.terrain.Look(w, x, y)
	}
	return w.grid[x][y].look
}

// --- ДОБАВЛЕНИЕ / УДАЛЕНИЕ ---

// AddActor привязывает актора к миру, регистрирует его вместе с
// удерживаемыми и ставит на клетку (x,y).
// Актор должен быть несвязанным и неудерживаемым.
func (w *World) AddActor(a Actor, x, y int) {
	b := a.body()
	if b.world != nil {
		violate(ErrPrecondition, "actor %s is already bound", b.id)
	}
	if b.holder != nil {
		violate(ErrPrecondition, "actor %s is held by %s", b.id, b.holder.ID())
	}
	if !w.InBounds(x, y) {
		violate(ErrPrecondition, "position (%d,%d) is out of bounds", x, y)
	}

	w.register(a)
	b.pos = geom.C(x, y)
	w.addToGrid(a)

	w.log.WithFields(logrus.Fields{
		"actor_id": b.id,
		"kind":     b.kind,
		"pos":      b.pos,
	}).Debug("Actor added.")
}

// AddActorAt - AddActor по координате.
func (w *World) AddActorAt(a Actor, c geom.Coord) {
	w.AddActor(a, c.X, c.Y)
}

// AddActorRandom ставит актора на случайную свободную клетку.
// Вызывающий гарантирует, что такая клетка существует.
func (w *World) AddActorRandom(a Actor, d Dice) geom.Coord {
	c := w.OpenTile(d)
	w.AddActor(a, c.X, c.Y)
	return c
}

// MoveActor переставляет неудерживаемого актора этого мира на (x,y).
func (w *World) MoveActor(a Actor, x, y int) {
	b := a.body()
	if !b.BoundTo(w) {
		violate(ErrOwnership, "move of actor %s", b.id)
	}
	if b.holder != nil {
		violate(ErrPrecondition, "held actor %s cannot be moved", b.id)
	}
	if !w.InBounds(x, y) {
		violate(ErrPrecondition, "position (%d,%d) is out of bounds", x, y)
	}

	w.removeFromGrid(a)
	b.pos = geom.C(x, y)
	w.addToGrid(a)
}

// RemoveActor удаляет актора и всё, что он держит. Удерживаемый актор
// сначала отцепляется от держателя.
func (w *World) RemoveActor(a Actor) {
	b := a.body()
	if !b.BoundTo(w) {
		violate(ErrOwnership, "remove of actor %s", b.id)
	}
	if b.holder != nil {
		Detach(a)
	}
	w.removeFromGrid(a)
	w.unregister(a)

	w.log.WithFields(logrus.Fields{
		"actor_id": b.id,
		"kind":     b.kind,
	}).Debug("Actor removed.")
}

// RemoveExpired удаляет всех помеченных акторов. Сначала собираем
// снимок, потом удаляем: менять реестр во время обхода нельзя.
// Актор, уже отвязанный удалением своего держателя, пропускается.
// Возвращает число акторов снимка, отвязанных после прохода (от порядка
// обхода не зависит).
func (w *World) RemoveExpired() int {
	var expired []Actor
	for _, a := range w.registry {
		if a.Expired() {
			expired = append(expired, a)
		}
	}

	for _, a := range expired {
		if a.BoundTo(w) {
			w.RemoveActor(a)
		}
	}

	removed := 0
	for _, a := range expired {
		if !a.BoundTo(w) {
			removed++
		}
	}

	if removed > 0 {
		w.log.WithFields(logrus.Fields{
			"turn":    w.turn,
			"removed": removed,
		}).Debug("Expired actors removed.")
	}
	return removed
}

// --- ЗАПРОСЫ ---

// Len - размер реестра (включая удерживаемых).
func (w *World) Len() int { return len(w.registry) }

// Actor ищет актора по ID. nil, если не зарегистрирован.
func (w *World) Actor(id ulid.ULID) Actor {
	return w.registry[id]
}

// ActorAt возвращает любого подходящего актора на клетке или nil.
func (w *World) ActorAt(x, y int, f Filter) Actor {
	t := w.Tile(x, y)
	if t == nil {
		return nil
	}
	f = f.orAny()

	var found Actor
	t.occupants.Each(func(a Actor) {
		if found == nil && f(a) {
			found = a
		}
	})
	return found
}

// ActorsAt возвращает всех подходящих акторов на клетке.
func (w *World) ActorsAt(x, y int, f Filter) []Actor {
	t := w.Tile(x, y)
	if t == nil {
		return nil
	}
	f = f.orAny()

	var result []Actor
	t.occupants.Each(func(a Actor) {
		if f(a) {
			result = append(result, a)
		}
	})
	return result
}

// Actors возвращает всех зарегистрированных подходящих акторов,
// включая удерживаемых.
func (w *World) Actors(f Filter) []Actor {
	f = f.orAny()

	var result []Actor
	for _, a := range w.registry {
		if f(a) {
			result = append(result, a)
		}
	}
	return result
}

// --- СВОБОДНЫЕ КЛЕТКИ ---

// OpenTile выбирает случайную проходимую клетку без акторов во всем мире.
func (w *World) OpenTile(d Dice) geom.Coord {
	return w.OpenTileIn(d, w.Bounds())
}

// OpenTileIn выбирает случайную свободную клетку внутри r (включительно).
// Поиск не ограничен: вызывающий гарантирует, что свободная клетка есть.
func (w *World) OpenTileIn(d Dice, r geom.Rect) geom.Coord {
	for {
		if c, ok := w.sampleOpen(d, r); ok {
			return c
		}
	}
}

// TryOpenTileIn - вариант OpenTileIn с ограниченным числом попыток.
func (w *World) TryOpenTileIn(d Dice, r geom.Rect, attempts int) (geom.Coord, error) {
	for i := 0; i < attempts; i++ {
		if c, ok := w.sampleOpen(d, r); ok {
			return c, nil
		}
	}
	return geom.Coord{}, ErrNoOpenTile
}

func (w *World) sampleOpen(d Dice, r geom.Rect) (geom.Coord, bool) {
	x := d.NextInt(r.Min.X, r.Max.X)
	y := d.NextInt(r.Min.Y, r.Max.Y)
	if w.Passable(x, y) && w.grid[x][y].Count() == 0 {
		return geom.C(x, y), true
	}
	return geom.Coord{}, false
}

// --- СИНХРОНИЗАЦИЯ СЕТКИ И РЕЕСТРА ---

func (w *World) addToGrid(a Actor) {
	b := a.body()
	if !b.BoundTo(w) {
		violate(ErrOwnership, "grid insert of actor %s", b.id)
	}
	w.grid[b.pos.X][b.pos.Y].occupants.Put(a)
}

func (w *World) removeFromGrid(a Actor) {
	b := a.body()
	if !b.BoundTo(w) {
		violate(ErrOwnership, "grid remove of actor %s", b.id)
	}
	w.grid[b.pos.X][b.pos.Y].occupants.Remove(a)
}

// register и unregister переносят актора вместе со всем, что он держит.
func (w *World) register(a Actor) {
	for _, x := range Subtree(a) {
		w.registry[x.ID()] = x
		x.body().world = w
	}
}

func (w *World) unregister(a Actor) {
	for _, x := range Subtree(a) {
		delete(w.registry, x.ID())
		x.body().world = nil
	}
}
