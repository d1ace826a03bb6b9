package api

import (
	"encoding/json"
)

// Типы сообщений сервер -> клиент
const (
	FrameTypeInit    = "INIT"
	FrameTypeUpdate  = "UPDATE"
	FrameTypeInspect = "INSPECT"
	FrameTypeError   = "ERROR"
)

// Действия клиент -> сервер
const (
	ActionSnapshot = "SNAPSHOT"
	ActionInspect  = "INSPECT"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Frame это корневой объект, который сервер отправляет клиенту после
// каждого хода симуляции: карта глазами игрока, акторы и статистика.
type Frame struct {
	// Type тип сообщения (INIT, UPDATE, INSPECT, ERROR).
	Type string `json:"type"`

	// Tick номер хода мира.
	Tick int `json:"tick"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Rows - карта построчно, по символу на клетку (вид с учетом акторов).
	Rows []string `json:"rows,omitempty"`

	// Visible - клетки в поле зрения игрока.
	Visible []Point `json:"visible,omitempty"`

	// Entities - акторы на карте (удерживаемые не включаются).
	Entities []EntityView `json:"entities,omitempty"`

	// Stats статистика последнего хода.
	Stats *StatsView `json:"stats,omitempty"`

	// Error текст ошибки для Type == ERROR.
	Error string `json:"error,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// Point - координата клетки.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// EntityView это DTO для актора.
type EntityView struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"` // CREATURE|PLAYER, CREATURE|MONSTER, ITEM, EFFECT
	Name  string `json:"name,omitempty"`
	Pos   Point  `json:"pos"`
	Holds int    `json:"holds,omitempty"`

	Render struct {
		Symbol string `json:"symbol"`
		Color  string `json:"color"`
	} `json:"render"`
}

// StatsView это DTO статистики хода.
type StatsView struct {
	Acted     int `json:"acted"`
	Moved     int `json:"moved"`
	PickedUp  int `json:"pickedUp"`
	Triggered int `json:"triggered"`
	Removed   int `json:"removed"`
	Actors    int `json:"actors"`
}

// WorldSummary - краткая сводка о мире для /debug/world.
type WorldSummary struct {
	Tick      int            `json:"tick"`
	Seed      int64          `json:"seed"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Rooms     int            `json:"rooms"`
	Actors    int            `json:"actors"`
	ByKind    map[string]int `json:"by_kind"`
	Algorithm string         `json:"fov_algorithm"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия (SNAPSHOT, INSPECT).
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// PositionPayload используется для действий, нацеленных на точку на карте (INSPECT).
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}
