package engine

import "dungeon-core/internal/core/types"

// MonsterTemplate определяет шаблон для создания монстра
type MonsterTemplate struct {
	Name   string
	Glyph  types.Glyph
	Vision int // Радиус обзора
	Delay  int // Ходов между действиями: 1 - каждый ход
}

// ItemTemplate определяет шаблон для создания предмета
type ItemTemplate struct {
	Name  string
	Glyph types.Glyph
}

// --- ВРАГИ ---

var Goblin = MonsterTemplate{
	Name:   "goblin",
	Glyph:  types.MakeGlyph(types.ColorGreen, 'g'),
	Vision: 6,
	Delay:  1,
}

var Orc = MonsterTemplate{
	Name:   "orc",
	Glyph:  types.MakeGlyph(types.ColorRed, 'O'),
	Vision: 5,
	Delay:  2,
}

var Troll = MonsterTemplate{
	Name:   "troll",
	Glyph:  types.MakeGlyph(types.ColorStone, 'T'),
	Vision: 4,
	Delay:  3,
}

// MonsterTemplates - карта всех доступных врагов
var MonsterTemplates = map[string]MonsterTemplate{
	"goblin": Goblin,
	"orc":    Orc,
	"troll":  Troll,
}

// --- ПРЕДМЕТЫ ---

var Gold = ItemTemplate{Name: "gold", Glyph: types.MakeGlyph(types.ColorYellow, '$')}

var Potion = ItemTemplate{Name: "potion", Glyph: types.MakeGlyph(types.ColorRed, '!')}

var Dagger = ItemTemplate{Name: "dagger", Glyph: types.MakeGlyph(types.ColorCyan, '|')}

// ItemTemplates - карта всех предметов
var ItemTemplates = map[string]ItemTemplate{
	"gold":   Gold,
	"potion": Potion,
	"dagger": Dagger,
}

var (
	glyphPlayer     = types.MakeGlyph(types.ColorCyan, '@')
	glyphTrapArmed  = types.GlyphFloor
	glyphTrapSprung = types.MakeGlyph(types.ColorRed, '^')
)
