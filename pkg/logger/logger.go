package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config opciones para el logger.
type Config struct {
	Env     string // development -> consola legible; cualquier otro -> JSON
	Level   string // trace, debug, info, warn, error; vacío = info
	Service string // se agrega como campo "service" a cada línea
	Out     io.Writer
}

// Logger zerolog con campos comunes de la aplicación. Expone Info, Warn, Error, etc. del embebido.
type Logger struct {
	zerolog.Logger
}

// New crea el logger estructurado. En debug o trace agrega el archivo:línea de la llamada.
func New(cfg Config) *Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	level := ParseLevel(cfg.Level)
	zctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.Service != "" {
		zctx = zctx.Str("service", cfg.Service)
	}
	if level <= zerolog.DebugLevel {
		zctx = zctx.Caller()
	}
	return &Logger{Logger: zctx.Logger()}
}

// ParseLevel interpreta LOG_LEVEL; lo desconocido es info.
func ParseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Component devuelve un sublogger etiquetado para inyectar en casos de uso y adaptadores.
func (l *Logger) Component(name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// Zerolog devuelve el logger interno.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.Logger
}
