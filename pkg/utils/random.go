package utils

import (
	"github.com/oklog/ulid/v2"
)

// NewSessionID создает идентификатор подписчика (websocket-сессии).
// ULID сортируется по времени подключения, что удобно при чтении логов.
func NewSessionID() string {
	return ulid.Make().String()
}
