package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dungeon-core/internal/engine"
)

const (
	MagicHeader string = `DCRN` // 4 байта
	Version1    uint32 = 1
)

// RunFileHeader - точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type RunFileHeader struct {
	Magic     [4]byte // 4 байта
	Version   uint32  // 4 байта
	Seed      int64   // 8 байт
	Timestamp int64   // 8 байт
	Width     int32   // 4 байта
	Height    int32   // 4 байта
	TickCount int32   // 4 байта
	ConfigLen uint32  // 4 байта: длина YAML-снимка конфига
}

// TickRecord - запись статистики одного хода, фиксированного размера.
type TickRecord struct {
	Tick      int32
	Acted     int32
	Moved     int32
	PickedUp  int32
	Triggered int32
	Removed   int32
	Actors    int32
}

// Recording - запись прогона симуляции: с чем запускали и что получилось.
type Recording struct {
	Seed      int64
	Timestamp int64
	Width     int
	Height    int
	Config    []byte // YAML
	Ticks     []engine.TickStats
}

type RunService struct {
	SaveDir string
}

func NewRunService(dir string) (*RunService, error) {
	// Создаем папку если нет
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create record dir: %w", err)
	}
	return &RunService{SaveDir: dir}, nil
}

// Save пишет запись в SaveDir и возвращает путь к файлу.
func (s *RunService) Save(rec *Recording) (string, error) {
	filename := fmt.Sprintf("run_%d_%d.dcrn", rec.Seed, rec.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := writeBinary(bw, rec); err != nil {
		return "", err
	}
	if err := bw.Flush(); err != nil {
		return "", err
	}
	return path, nil
}

func writeBinary(w io.Writer, rec *Recording) error {
	// 1. Подготавливаем и пишем ГЛОБАЛЬНЫЙ ЗАГОЛОВОК
	header := RunFileHeader{
		Version:   Version1,
		Seed:      rec.Seed,
		Timestamp: rec.Timestamp,
		Width:     int32(rec.Width),
		Height:    int32(rec.Height),
		TickCount: int32(len(rec.Ticks)),
		ConfigLen: uint32(len(rec.Config)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Снимок конфига
	if len(rec.Config) > 0 {
		if _, err := w.Write(rec.Config); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	// 3. Ходы
	for _, t := range rec.Ticks {
		r := TickRecord{
			Tick:      int32(t.Tick),
			Acted:     int32(t.Acted),
			Moved:     int32(t.Moved),
			PickedUp:  int32(t.PickedUp),
			Triggered: int32(t.Triggered),
			Removed:   int32(t.Removed),
			Actors:    int32(t.Actors),
		}
		if err := binary.Write(w, binary.LittleEndian, &r); err != nil {
			return fmt.Errorf("failed to write tick %d: %w", t.Tick, err)
		}
	}

	return nil
}
