package dice

import (
	"math/rand"
	"time"

	"dungeon-core/internal/geom"
)

// Dice - детерминированный генератор: один сид дает одну и ту же игру.
type Dice struct {
	rng  *rand.Rand
	seed int64
}

// New создает Dice с заданным сидом.
func New(seed int64) *Dice {
	return &Dice{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// NewRandom создает Dice с сидом от текущего времени.
func NewRandom() *Dice {
	return New(time.Now().UnixNano())
}

// Seed возвращает сид, с которого начат генератор.
func (d *Dice) Seed() int64 { return d.seed }

// NextInt возвращает целое из [min, max] включительно.
func (d *Dice) NextInt(min, max int) int {
	if max < min {
		panic("dice: max must not be less than min")
	}
	return d.rng.Intn(max-min+1) + min
}

// Intn возвращает целое из [0, n).
func (d *Dice) Intn(n int) int {
	return d.rng.Intn(n)
}

// XdY бросает x костей с y гранями и суммирует результат.
func (d *Dice) XdY(x, y int) int {
	sum := 0
	for i := 0; i < x; i++ {
		sum += d.NextInt(1, y)
	}
	return sum
}

// Chance возвращает true с вероятностью p.
func (d *Dice) Chance(p float64) bool {
	return d.rng.Float64() < p
}

// NextDir возвращает случайное из восьми направлений.
func (d *Dice) NextDir() geom.Coord {
	return geom.Directions[d.rng.Intn(len(geom.Directions))]
}

// Fork создает независимый генератор, детерминированно выведенный из этого
// (например, отдельный поток для генератора уровня).
func (d *Dice) Fork() *Dice {
	return New(d.rng.Int63())
}
