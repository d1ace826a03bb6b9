package world

import "strings"

// Kind - набор тегов-способностей актора. Фильтры запросов работают
// по тегам, а не по конкретному Go-типу актора.
type Kind uint16

const (
	KindUnknown  Kind = 0
	KindCreature Kind = 1 << iota
	KindPlayer
	KindMonster
	KindItem
	KindEffect
	KindMarker
)

var kindNames = []struct {
	kind Kind
	name string
}{
	{KindCreature, "CREATURE"},
	{KindPlayer, "PLAYER"},
	{KindMonster, "MONSTER"},
	{KindItem, "ITEM"},
	{KindEffect, "EFFECT"},
	{KindMarker, "MARKER"},
}

// Has проверяет, что у вида есть все теги other.
func (k Kind) Has(other Kind) bool {
	return k&other == other
}

// String возвращает теги через "|" (для логов и дебага).
func (k Kind) String() string {
	if k == KindUnknown {
		return "UNKNOWN"
	}
	var parts []string
	for _, kn := range kindNames {
		if k.Has(kn.kind) {
			parts = append(parts, kn.name)
		}
	}
	if len(parts) == 0 {
		return "UNKNOWN"
	}
	return strings.Join(parts, "|")
}

// ParseKind разбирает строку вида "creature|monster" (нужно для конфигов).
// Неизвестные теги игнорируются.
func ParseKind(s string) Kind {
	var k Kind
	for _, part := range strings.Split(strings.ToUpper(s), "|") {
		part = strings.TrimSpace(part)
		for _, kn := range kindNames {
			if kn.name == part {
				k |= kn.kind
			}
		}
	}
	return k
}

// Filter - предикат выборки акторов.
type Filter func(Actor) bool

// Any пропускает всех акторов.
func Any(Actor) bool { return true }

// OfKind пропускает акторов, у которых есть все теги хотя бы одного из kinds.
func OfKind(kinds ...Kind) Filter {
	return func(a Actor) bool {
		for _, k := range kinds {
			if a.Kind().Has(k) {
				return true
			}
		}
		return false
	}
}

// Not инвертирует фильтр.
func Not(f Filter) Filter {
	return func(a Actor) bool { return !f(a) }
}

func (f Filter) orAny() Filter {
	if f == nil {
		return Any
	}
	return f
}
