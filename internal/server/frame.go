package server

import (
	"sort"

	"dungeon-core/internal/engine"
	"dungeon-core/internal/fov"
	"dungeon-core/internal/geom"
	"dungeon-core/internal/world"
	"dungeon-core/pkg/api"
)

// BuildFrame снимает кадр с мира. Вызывается только из горутины
// симуляции: World не потокобезопасен.
func BuildFrame(g *engine.Game, frameType string) api.Frame {
	w := g.World

	rows := make([]string, w.Height())
	line := make([]byte, w.Width())
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			line[x] = w.Look(x, y).Char()
		}
		rows[y] = string(line)
	}

	visible := fov.Coords(g.PlayerView())
	sort.Slice(visible, func(i, j int) bool {
		if visible[i].Y != visible[j].Y {
			return visible[i].Y < visible[j].Y
		}
		return visible[i].X < visible[j].X
	})
	points := make([]api.Point, len(visible))
	for i, c := range visible {
		points[i] = toPoint(c)
	}

	stats := g.Dungeon.Last()

	return api.Frame{
		Type:     frameType,
		Tick:     w.Turn(),
		Grid:     &api.GridMeta{Width: w.Width(), Height: w.Height()},
		Rows:     rows,
		Visible:  points,
		Entities: entityViews(w, world.Not(held)),
		Stats: &api.StatsView{
			Acted:     stats.Acted,
			Moved:     stats.Moved,
			PickedUp:  stats.PickedUp,
			Triggered: stats.Triggered,
			Removed:   stats.Removed,
			Actors:    stats.Actors,
		},
	}
}

// Inspect отвечает на INSPECT по последнему кадру: символ клетки
// и акторы на ней. Мир при этом не трогается.
func Inspect(latest api.Frame, p api.PositionPayload) api.Frame {
	if latest.Grid == nil || p.X >= latest.Grid.Width || p.Y >= latest.Grid.Height {
		return errorFrame(latest.Tick, "position is outside the map")
	}

	frame := api.Frame{
		Type:     api.FrameTypeInspect,
		Tick:     latest.Tick,
		Grid:     latest.Grid,
		Entities: []api.EntityView{},
	}
	if p.Y < len(latest.Rows) && p.X < len(latest.Rows[p.Y]) {
		frame.Rows = []string{latest.Rows[p.Y][p.X : p.X+1]}
	}
	for _, e := range latest.Entities {
		if e.Pos.X == p.X && e.Pos.Y == p.Y {
			frame.Entities = append(frame.Entities, e)
		}
	}
	return frame
}

func errorFrame(tick int, msg string) api.Frame {
	return api.Frame{Type: api.FrameTypeError, Tick: tick, Error: msg}
}

func held(a world.Actor) bool { return a.Held() }

// entityViews возвращает акторов в порядке создания (по ULID).
func entityViews(w *world.World, f world.Filter) []api.EntityView {
	actors := w.Actors(f)
	sort.Slice(actors, func(i, j int) bool {
		return actors[i].ID().Compare(actors[j].ID()) < 0
	})

	views := make([]api.EntityView, 0, len(actors))
	for _, a := range actors {
		views = append(views, entityView(a))
	}
	return views
}

func entityView(a world.Actor) api.EntityView {
	v := api.EntityView{
		ID:    a.ID().String(),
		Kind:  a.Kind().String(),
		Name:  actorName(a),
		Pos:   toPoint(a.Pos()),
		Holds: len(a.Holds()),
	}
	v.Render.Symbol = string([]byte{a.Look().Char()})
	v.Render.Color = a.Look().HexColor()
	return v
}

func actorName(a world.Actor) string {
	switch t := a.(type) {
	case *engine.Creature:
		return t.Name
	case *engine.Item:
		return t.Name
	case *engine.Trap:
		return "trap"
	}
	return ""
}

func toPoint(c geom.Coord) api.Point {
	return api.Point{X: c.X, Y: c.Y}
}
