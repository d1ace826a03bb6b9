package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всей симуляции.
var Log = logrus.New()

// Init инициализирует глобальный логгер из переменных окружения.
// Вызывается один раз при старте (main.go) и в TestMain пакетов.
func Init() {
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	Log.SetOutput(os.Stdout)
}

// Configure применяет уровень и формат (например, из YAML-конфига).
// Пустые и неизвестные значения откатываются к "info" и текстовому формату.
func Configure(level, format string) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil || level == "" {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// "json" - для сбора логов, "text" - для разработки
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}
}

// Discard глушит вывод (для бенчмарков и шумных тестов).
func Discard() {
	Log.SetOutput(io.Discard)
}
