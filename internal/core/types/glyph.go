package types

import (
	"fmt"
)

// Glyph - упакованный цветной символ: то, как выглядит тайл или актор.
// Формат uint32:
//
//	[0:8]  - символ (ASCII)
//	[8:32] - RGB-цвет 0xRRGGBB
type Glyph uint32

const (
	bitsChar  = 8
	bitsColor = 24

	shiftColor = bitsChar

	maskChar  = (1 << bitsChar) - 1  // 0xFF
	maskColor = (1 << bitsColor) - 1 // 0xFFFFFF
)

// Палитра, которой пользуются генератор уровней и движок.
const (
	ColorWhite  uint32 = 0xFFFFFF
	ColorGray   uint32 = 0x808080
	ColorStone  uint32 = 0x5A5A5A
	ColorYellow uint32 = 0xFFD700
	ColorRed    uint32 = 0xD03030
	ColorGreen  uint32 = 0x30B030
	ColorCyan   uint32 = 0x30C0C0
)

// Стандартные символы тайлов.
var (
	GlyphFloor = MakeGlyph(ColorGray, '.')
	GlyphWall  = MakeGlyph(ColorStone, '#')
	GlyphVoid  = MakeGlyph(0, ' ')
)

// MakeGlyph создает Glyph из RGB-цвета и символа.
// Учитываются только младшие 24 бита цвета.
//
//	glyph := MakeGlyph(0xFFA500, 'A') // 0xFFA50041
func MakeGlyph(colorRGB uint32, char byte) Glyph {
	return Glyph((colorRGB&maskColor)<<shiftColor | (uint32(char) & maskChar))
}

// Color возвращает цвет в формате 0xRRGGBB.
func (g Glyph) Color() uint32 {
	return uint32(g>>shiftColor) & maskColor
}

// Char возвращает символ.
func (g Glyph) Char() byte {
	return byte(g & maskChar)
}

// WithChar возвращает копию с другим символом и тем же цветом.
func (g Glyph) WithChar(char byte) Glyph {
	return MakeGlyph(g.Color(), char)
}

// WithColor возвращает копию с другим цветом и тем же символом.
func (g Glyph) WithColor(colorRGB uint32) Glyph {
	return MakeGlyph(colorRGB, g.Char())
}

// String реализует fmt.Stringer: "Glyph{char='A', color=#FFA500}".
func (g Glyph) String() string {
	char := g.Char()
	charStr := string([]byte{char})

	// Непечатаемые символы показываем в hex
	if char < 32 || char > 126 {
		charStr = fmt.Sprintf("\\x%02X", char)
	}
	return fmt.Sprintf("Glyph{char='%s', color=%s}", charStr, g.HexColor())
}

// HexColor возвращает цвет строкой вида "#00FF00".
func (g Glyph) HexColor() string {
	return fmt.Sprintf("#%06X", g.Color())
}
