package engine

import "dungeon-core/internal/world"

// Item - предмет на полу или в чьем-то инвентаре (через holds).
type Item struct {
	*world.Body
	Name string
}

// NewItem создает предмет из шаблона.
func NewItem(t ItemTemplate) *Item {
	return &Item{
		Body: world.NewBody(world.KindItem, t.Glyph),
		Name: t.Name,
	}
}
