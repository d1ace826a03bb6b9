package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

var ErrBadCommand = errors.New("bad command")

func (p PositionPayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("position must not be negative")
	}
	return nil
}

func (c ClientCommand) Validate() error {
	switch c.Action {
	case ActionSnapshot:
		return nil
	case ActionInspect:
		_, err := c.Position()
		return err
	}
	return fmt.Errorf("%w: unknown action %q", ErrBadCommand, c.Action)
}

// Position разбирает и проверяет PositionPayload.
func (c ClientCommand) Position() (PositionPayload, error) {
	var p PositionPayload
	if len(c.Payload) == 0 {
		return p, fmt.Errorf("%w: %s requires a payload", ErrBadCommand, c.Action)
	}
	if err := json.Unmarshal(c.Payload, &p); err != nil {
		return p, fmt.Errorf("%w: %w", ErrBadCommand, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("%w: %w", ErrBadCommand, err)
	}
	return p, nil
}
