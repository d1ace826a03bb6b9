package dungeon

import (
	"dungeon-core/internal/core/types"
	"dungeon-core/internal/geom"
	"dungeon-core/internal/world"
)

// GlyphStairs - вид лестницы вниз на полу последней комнаты.
var GlyphStairs = types.MakeGlyph(types.ColorWhite, '>')

// Layout - результат построения уровня.
type Layout struct {
	Rooms []geom.Rect
	Start geom.Coord
	Exit  geom.Coord
}

// LevelBuilder предоставляет fluent API для построения уровня в готовом мире.
// Первая ошибка запоминается, последующие шаги пропускаются.
type LevelBuilder struct {
	world  *world.World
	dice   world.Dice
	params Params
	layout Layout
	err    error
}

// NewLevel создает builder для мира w.
func NewLevel(w *world.World, d world.Dice) *LevelBuilder {
	return &LevelBuilder{world: w, dice: d, params: DefaultParams()}
}

// WithParams задает параметры генератора.
func (b *LevelBuilder) WithParams(p Params) *LevelBuilder {
	b.params = p
	return b
}

// WithRooms генерирует комнаты и коридоры.
func (b *LevelBuilder) WithRooms() *LevelBuilder {
	if b.err != nil {
		return b
	}
	b.layout.Rooms, b.err = Generate(b.world, b.dice, b.params)
	return b
}

// AsArena делает уровень одной комнатой во весь мир.
func (b *LevelBuilder) AsArena() *LevelBuilder {
	if b.err != nil {
		return b
	}
	b.layout.Rooms, b.err = Arena(b.world)
	return b
}

// PlaceExit отмечает лестницу вниз в центре последней комнаты.
func (b *LevelBuilder) PlaceExit() *LevelBuilder {
	if b.err != nil || len(b.layout.Rooms) == 0 {
		return b
	}
	b.layout.Exit = b.layout.Rooms[len(b.layout.Rooms)-1].Center()
	b.world.Tile(b.layout.Exit.X, b.layout.Exit.Y).SetLook(GlyphStairs)
	return b
}

// StartPos возвращает стартовую позицию (центр первой комнаты).
func (b *LevelBuilder) StartPos() geom.Coord {
	if len(b.layout.Rooms) > 0 {
		return b.layout.Rooms[0].Center()
	}
	return geom.C(b.world.Width()/2, b.world.Height()/2)
}

// Build возвращает готовую раскладку уровня.
func (b *LevelBuilder) Build() (Layout, error) {
	if b.err != nil {
		return Layout{}, b.err
	}
	b.layout.Start = b.StartPos()
	return b.layout, nil
}
