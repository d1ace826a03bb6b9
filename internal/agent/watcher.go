package agent

import (
	"context"
	"fmt"
	"io"
	"strings"

	"dungeon-core/internal/core/types"
	"dungeon-core/internal/geom"
	"dungeon-core/internal/network"
	"dungeon-core/internal/world"
	"dungeon-core/pkg/api"
	"dungeon-core/pkg/logger"
	"dungeon-core/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// Watcher - безголовый наблюдатель. Подписывается на хаб так же, как
// websocket-клиент, и по кадрам восстанавливает карту, которую игрок
// успел увидеть (туман войны). Раз в Every ходов печатает ее в Out.
//
// Жизненный цикл:
//  1. NewWatcher -> регистрация в хабе, получение личного канала (Inbox).
//  2. Run -> цикл в отдельной горутине до отмены ctx или закрытия канала.
//  3. Observe -> обновление локальной памяти по видимым клеткам кадра.
type Watcher struct {
	ID    string
	Hub   *network.Broadcaster
	Inbox chan api.Frame
	Every int
	Out   io.Writer

	memory   *world.World
	explored mapset.Set[geom.Coord]
	frames   int
	log      *logrus.Entry
}

func NewWatcher(hub *network.Broadcaster, out io.Writer, every int) *Watcher {
	id := utils.NewSessionID()
	return &Watcher{
		ID:       id,
		Hub:      hub,
		Inbox:    hub.Register(id),
		Every:    every,
		Out:      out,
		explored: mapset.New[geom.Coord](),
		log:      logger.Log.WithFields(logrus.Fields{"component": "watcher", "session_id": id}),
	}
}

// Run запускает цикл наблюдения. Должен быть запущен в горутине.
func (wt *Watcher) Run(ctx context.Context) {
	defer wt.Hub.Unregister(wt.ID)

	for {
		select {
		case <-ctx.Done():
			wt.log.WithField("frames", wt.frames).Debug("Watcher stopped.")
			return
		case frame, ok := <-wt.Inbox:
			if !ok {
				return
			}
			wt.Observe(frame)
			if wt.Every > 0 && frame.Tick%wt.Every == 0 {
				fmt.Fprintf(wt.Out, "--- tick %d, explored %d ---\n%s", frame.Tick, wt.Explored(), wt.Render(frame))
			}
		}
	}
}

// Observe запоминает видимые клетки кадра. Кадр другого размера
// сбрасывает память.
func (wt *Watcher) Observe(frame api.Frame) {
	if frame.Grid == nil || len(frame.Rows) != frame.Grid.Height {
		return
	}
	wt.frames++

	if wt.memory == nil || wt.memory.Width() != frame.Grid.Width || wt.memory.Height() != frame.Grid.Height {
		wt.memory = wt.buildLocalWorld(frame.Grid.Width, frame.Grid.Height)
		wt.explored = mapset.New[geom.Coord]()
	}

	for _, p := range frame.Visible {
		if p.Y >= len(frame.Rows) || p.X >= len(frame.Rows[p.Y]) {
			continue
		}
		ch := frame.Rows[p.Y][p.X]
		if tile := wt.memory.Tile(p.X, p.Y); tile != nil {
			tile.Set(ch != types.GlyphWall.Char(), types.MakeGlyph(types.ColorGray, ch))
			wt.explored.Put(geom.C(p.X, p.Y))
		}
	}
}

// buildLocalWorld создает пустую память: все, что не видели, считается
// непроходимой пустотой.
func (wt *Watcher) buildLocalWorld(width, height int) *world.World {
	m := world.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.Tile(x, y).Set(false, types.GlyphVoid)
		}
	}
	return m
}

// Render рисует карту: видимое - как в кадре, остальное - по памяти.
func (wt *Watcher) Render(frame api.Frame) string {
	if wt.memory == nil {
		return ""
	}

	visible := mapset.New[geom.Coord]()
	for _, p := range frame.Visible {
		visible.Put(geom.C(p.X, p.Y))
	}

	var sb strings.Builder
	for y := 0; y < wt.memory.Height(); y++ {
		for x := 0; x < wt.memory.Width(); x++ {
			if visible.Has(geom.C(x, y)) && y < len(frame.Rows) && x < len(frame.Rows[y]) {
				sb.WriteByte(frame.Rows[y][x])
				continue
			}
			sb.WriteByte(wt.memory.Tile(x, y).Look().Char())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Explored - сколько клеток игрок видел хотя бы раз.
func (wt *Watcher) Explored() int {
	return wt.explored.Size()
}

// Remembers сообщает, видел ли игрок клетку и проходима ли она по памяти.
func (wt *Watcher) Remembers(x, y int) (seen, passable bool) {
	if wt.memory == nil || !wt.explored.Has(geom.C(x, y)) {
		return false, false
	}
	return true, wt.memory.Tile(x, y).Passable()
}
