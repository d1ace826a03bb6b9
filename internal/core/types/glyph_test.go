package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeGlyph(t *testing.T) {
	tests := []struct {
		name  string
		color uint32
		char  byte
		want  Glyph
	}{
		{"orange A", 0xFFA500, 'A', Glyph(0xFFA50041)},
		{"black space", 0x000000, ' ', Glyph(0x00000020)},
		{"color truncated to 24 bits", 0x12345678, 'x', Glyph(0x34567878)},
		{"max char", 0x404040, 0xFF, Glyph(0x404040FF)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MakeGlyph(tt.color, tt.char)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.char, got.Char())
			assert.Equal(t, tt.color&0xFFFFFF, got.Color())
		})
	}
}

func TestGlyph_WithCharAndColor(t *testing.T) {
	g := MakeGlyph(ColorRed, 'o')

	assert.Equal(t, byte('O'), g.WithChar('O').Char())
	assert.Equal(t, ColorRed, g.WithChar('O').Color())
	assert.Equal(t, ColorGreen, g.WithColor(ColorGreen).Color())
	assert.Equal(t, byte('o'), g.WithColor(ColorGreen).Char())
}

func TestGlyph_String(t *testing.T) {
	assert.Equal(t, "Glyph{char='A', color=#FFA500}", MakeGlyph(0xFFA500, 'A').String())
	assert.Equal(t, "Glyph{char='\\x0A', color=#FFFFFF}", MakeGlyph(0xFFFFFF, '\n').String())
	assert.Equal(t, "#5A5A5A", GlyphWall.HexColor())
	assert.Equal(t, byte('#'), GlyphWall.Char())
}
