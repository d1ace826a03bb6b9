package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"dungeon-core/internal/engine"
	"dungeon-core/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "show":
		if len(os.Args) < 3 {
			fmt.Println("Usage: runinfo show <file.dcrn>")
			return
		}
		if err := show(os.Args[2]); err != nil {
			fmt.Printf("Cannot read recording: %v\n", err)
			os.Exit(1)
		}
	case "ticks":
		if len(os.Args) < 3 {
			fmt.Println("Usage: runinfo ticks <file.dcrn>")
			return
		}
		if err := ticks(os.Args[2]); err != nil {
			fmt.Printf("Cannot read recording: %v\n", err)
			os.Exit(1)
		}
	case "format":
		if len(os.Args) < 3 {
			fmt.Println("Usage: runinfo format <unix_timestamp>")
			return
		}
		ts, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Invalid timestamp: %v\n", err)
			return
		}
		fmt.Println(time.Unix(ts, 0).UTC().Format(time.RFC3339))
	default:
		printHelp()
	}
}

func load(path string) (*storage.Recording, error) {
	svc := &storage.RunService{}
	return svc.Load(path)
}

func show(path string) error {
	rec, err := load(path)
	if err != nil {
		return err
	}

	fmt.Printf("Seed:     %d\n", rec.Seed)
	fmt.Printf("Recorded: %s\n", time.Unix(rec.Timestamp, 0).UTC().Format(time.RFC3339))
	fmt.Printf("Map:      %dx%d\n", rec.Width, rec.Height)
	fmt.Printf("Ticks:    %d\n", len(rec.Ticks))

	var total engine.TickStats
	for _, t := range rec.Ticks {
		total.Acted += t.Acted
		total.Moved += t.Moved
		total.PickedUp += t.PickedUp
		total.Triggered += t.Triggered
		total.Removed += t.Removed
	}
	fmt.Printf("Totals:   acted=%d moved=%d picked_up=%d triggered=%d removed=%d\n",
		total.Acted, total.Moved, total.PickedUp, total.Triggered, total.Removed)
	if n := len(rec.Ticks); n > 0 {
		fmt.Printf("Actors:   %d at the end\n", rec.Ticks[n-1].Actors)
	}
	fmt.Printf("Config:\n%s", rec.Config)
	return nil
}

func ticks(path string) error {
	rec, err := load(path)
	if err != nil {
		return err
	}

	fmt.Println("tick\tacted\tmoved\tpicked\ttrapped\tremoved\tactors")
	for _, t := range rec.Ticks {
		fmt.Printf("%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			t.Tick, t.Acted, t.Moved, t.PickedUp, t.Triggered, t.Removed, t.Actors)
	}
	return nil
}

func printHelp() {
	fmt.Println(`Run Info - просмотр записей прогонов (.dcrn)
Commands:
  show <file>            - сид, размер карты, итоги и конфиг прогона
  ticks <file>           - статистика по каждому ходу (TSV)
  format <timestamp>     - преобразовать Unix время в читаемый формат`)
}
