package world

import (
	"dungeon-core/internal/core/types"
	"dungeon-core/internal/geom"

	"github.com/oklog/ulid/v2"
	"github.com/zyedidia/generic/mapset"
)

// Actor - контракт сущности, которой владеет мир. Конкретные акторы
// встраивают *Body, который и хранит состояние привязки.
type Actor interface {
	ID() ulid.ULID
	Kind() Kind
	Pos() geom.Coord
	Look() types.Glyph

	World() *World
	Bound() bool
	BoundTo(w *World) bool

	Holder() Actor
	Held() bool
	Holds() []Actor

	Expired() bool
	Expire()

	body() *Body
}

// Body - базовое состояние актора: идентичность, позиция, привязка к миру,
// отношение "держит/удерживается" и флаг истечения.
type Body struct {
	id      ulid.ULID
	kind    Kind
	look    types.Glyph
	pos     geom.Coord
	world   *World
	holder  Actor
	holds   mapset.Set[Actor]
	expired bool
}

// NewBody создает несвязанное тело с новым ULID.
func NewBody(kind Kind, look types.Glyph) *Body {
	return &Body{
		id:    ulid.Make(),
		kind:  kind,
		look:  look,
		holds: mapset.New[Actor](),
	}
}

func (b *Body) body() *Body { return b }

func (b *Body) ID() ulid.ULID { return b.id }

func (b *Body) Kind() Kind { return b.kind }

// Look возвращает внешний вид актора.
func (b *Body) Look() types.Glyph { return b.look }

// SetLook меняет внешний вид (например, сработавшая ловушка).
func (b *Body) SetLook(g types.Glyph) { b.look = g }

// Pos возвращает позицию. Удерживаемый актор находится там же, где его держатель.
func (b *Body) Pos() geom.Coord {
	if b.holder != nil {
		return b.holder.Pos()
	}
	return b.pos
}

func (b *Body) World() *World { return b.world }

func (b *Body) Bound() bool { return b.world != nil }

func (b *Body) BoundTo(w *World) bool { return w != nil && b.world == w }

func (b *Body) Holder() Actor { return b.holder }

func (b *Body) Held() bool { return b.holder != nil }

// Holds возвращает копию множества удерживаемых акторов (порядок не определен).
func (b *Body) Holds() []Actor {
	held := make([]Actor, 0, b.holds.Size())
	b.holds.Each(func(a Actor) {
		held = append(held, a)
	})
	return held
}

func (b *Body) Expired() bool { return b.expired }

// Expire помечает актора на удаление. Реальное удаление - в World.RemoveExpired.
func (b *Body) Expire() { b.expired = true }
