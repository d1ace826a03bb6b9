package engine

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"dungeon-core/internal/fov"
	"dungeon-core/pkg/dungeon"

	"gopkg.in/yaml.v3"
)

// Генераторы уровня
const (
	GeneratorRooms = "rooms"
	GeneratorArena = "arena"
)

// ErrInvalidConfig - конфиг не прошел Validate.
var ErrInvalidConfig = errors.New("invalid config")

// FoVConfig выбирает алгоритм обзора.
type FoVConfig struct {
	Algorithm string `yaml:"algorithm"`
	Circular  bool   `yaml:"circular"`
}

// LogConfig - уровень и формат логов; переменные окружения LOG_LEVEL и
// LOG_FORMAT имеют приоритет (см. cmd/dungeon-sim).
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config хранит параметры запуска симуляции
type Config struct {
	// Seed - мастер-зерно. От него зависят карта, спавн и все решения AI.
	Seed int64 `yaml:"seed"`

	Width     int            `yaml:"width"`
	Height    int            `yaml:"height"`
	Generator string         `yaml:"generator"`
	Rooms     dungeon.Params `yaml:"rooms"`
	FoV       FoVConfig      `yaml:"fov"`

	PlayerVision int            `yaml:"player_vision"`
	Monsters     map[string]int `yaml:"monsters"` // шаблон -> количество
	Items        map[string]int `yaml:"items"`
	Traps        int            `yaml:"traps"`
	TrapDuration int            `yaml:"trap_duration"`

	Ticks     int           `yaml:"ticks"`
	TickDelay time.Duration `yaml:"tick_delay"`

	Log LogConfig `yaml:"log"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:         time.Now().UnixNano(),
		Width:        dungeon.MapWidth,
		Height:       dungeon.MapHeight,
		Generator:    GeneratorRooms,
		Rooms:        dungeon.DefaultParams(),
		FoV:          FoVConfig{Algorithm: fov.AlgorithmShadowcast, Circular: true},
		PlayerVision: 8,
		Monsters:     map[string]int{"goblin": 3, "orc": 1},
		Items:        map[string]int{"gold": 4, "potion": 2},
		Traps:        2,
		TrapDuration: 3,
		Ticks:        200,
	}
}

// LoadConfig читает YAML-файл поверх значений по умолчанию.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewConfig(), fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig разбирает YAML поверх значений по умолчанию и проверяет результат.
// Отсутствующие поля сохраняют значения NewConfig; списки monsters/items
// из документа заменяют умолчания целиком.
func ParseConfig(data []byte) (Config, error) {
	cfg := NewConfig()
	defaults := cfg

	cfg.Monsters, cfg.Items = nil, nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse: %w", err)
	}
	if cfg.Monsters == nil {
		cfg.Monsters = defaults.Monsters
	}
	if cfg.Items == nil {
		cfg.Items = defaults.Items
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate отклоняет невозможные значения.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: world size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	switch c.Generator {
	case GeneratorRooms:
		if err := c.Rooms.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	case GeneratorArena:
	default:
		return fmt.Errorf("%w: unknown generator %q", ErrInvalidConfig, c.Generator)
	}
	if _, err := fov.New(c.FoV.Algorithm, c.FoV.Circular); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.PlayerVision < 0 {
		return fmt.Errorf("%w: player_vision must not be negative", ErrInvalidConfig)
	}
	for _, name := range sortedKeys(c.Monsters) {
		if _, ok := MonsterTemplates[name]; !ok {
			return fmt.Errorf("%w: unknown monster %q", ErrInvalidConfig, name)
		}
	}
	for _, name := range sortedKeys(c.Items) {
		if _, ok := ItemTemplates[name]; !ok {
			return fmt.Errorf("%w: unknown item %q", ErrInvalidConfig, name)
		}
	}
	if c.Traps < 0 || c.TrapDuration < 0 {
		return fmt.Errorf("%w: trap counts must not be negative", ErrInvalidConfig)
	}
	if c.Ticks < 0 || c.TickDelay < 0 {
		return fmt.Errorf("%w: ticks and tick_delay must not be negative", ErrInvalidConfig)
	}
	return nil
}

// sortedKeys дает стабильный порядок обхода карт конфига:
// от него зависит детерминизм спавна.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
