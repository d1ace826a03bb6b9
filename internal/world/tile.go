package world

import (
	"dungeon-core/internal/core/types"

	"github.com/zyedidia/generic/mapset"
)

// Tile - клетка сетки: проходимость, внешний вид и акторы на ней.
// Набор акторов меняет только мир (addToGrid/removeFromGrid).
type Tile struct {
	passable  bool
	look      types.Glyph
	occupants mapset.Set[Actor]
}

func newTile() *Tile {
	return &Tile{
		passable:  true,
		look:      types.GlyphFloor,
		occupants: mapset.New[Actor](),
	}
}

func (t *Tile) Passable() bool { return t.passable }

func (t *Tile) SetPassable(passable bool) { t.passable = passable }

func (t *Tile) Look() types.Glyph { return t.look }

func (t *Tile) SetLook(g types.Glyph) { t.look = g }

// Set меняет проходимость и внешний вид разом (пол, стена).
func (t *Tile) Set(passable bool, look types.Glyph) {
	t.passable = passable
	t.look = look
}

// Occupants возвращает копию списка акторов на клетке (порядок не определен).
func (t *Tile) Occupants() []Actor {
	list := make([]Actor, 0, t.occupants.Size())
	t.occupants.Each(func(a Actor) {
		list = append(list, a)
	})
	return list
}

// Count - число акторов на клетке.
func (t *Tile) Count() int { return t.occupants.Size() }

// Has проверяет, стоит ли актор на клетке.
func (t *Tile) Has(a Actor) bool { return t.occupants.Has(a) }
