package world

import (
	"errors"
	"fmt"
)

// Нарушения контракта - ошибки программиста. Они не возвращаются,
// а приводят к panic со значением error, оборачивающим один из сентинелов.
var (
	ErrPrecondition = errors.New("precondition violation")
	ErrOwnership    = fmt.Errorf("%w: actor is not bound to this world", ErrPrecondition)
)

// ErrNoOpenTile возвращает ограниченный поиск свободной клетки.
var ErrNoOpenTile = errors.New("no open tile found")

func violate(base error, format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{base}, args...)...))
}
