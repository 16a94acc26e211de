package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options настройки глобального логгера.
type Options struct {
	Level string // debug, info, warn, error (по умолчанию info)
	File  string // пусто — писать в stderr
}

// ParseLevel переводит имя уровня в zerolog.Level.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init настраивает глобальный логгер и возвращает функцию закрытия файла.
func Init(opts Options) func() error {
	zerolog.SetGlobalLevel(ParseLevel(opts.Level))

	if opts.File == "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return func() error { return nil }
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // дней
	}
	log.Logger = zerolog.New(rotator).With().Timestamp().Logger()
	return rotator.Close
}

// New создаёт логгер компонента поверх глобального.
func New(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// NewWriter создаёт логгер в произвольный writer (для тестов и CLI).
func NewWriter(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}
