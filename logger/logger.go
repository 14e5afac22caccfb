package logger

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	DB   *sql.DB
	root = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
)

// Entry is a persisted activity record, shown on the activity page.
type Entry struct {
	ID        int       `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Setup configures the console logger. With a nil writer output goes to
// stdout in console format; any other writer receives raw JSON lines.
// Call once at startup, before Init.
func Setup(level string, w io.Writer) {
	lvl := parseLevel(level)
	if w == nil {
		root = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(lvl).
			With().Timestamp().Logger()
		return
	}
	root = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Init attaches the database used as the activity sink. Until it is called
// entries only reach the console logger.
func Init(db *sql.DB) {
	DB = db
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func logMessage(level zerolog.Level, message, details string) {
	evt := root.WithLevel(level)
	if details != "" {
		evt = evt.Str("details", details)
	}
	evt.Msg(message)

	// Debug chatter stays out of the activity table.
	if DB == nil || level == zerolog.DebugLevel {
		return
	}

	name := strings.ToUpper(level.String())
	_, err := DB.Exec("INSERT INTO activity (level, message, details) VALUES (?, ?, ?)", name, message, details)
	if err != nil {
		root.Error().Err(err).Msg("failed to record activity entry")
	}
}

func Info(message string, args ...interface{}) {
	logMessage(zerolog.InfoLevel, fmt.Sprintf(message, args...), "")
}

func Warn(message string, args ...interface{}) {
	logMessage(zerolog.WarnLevel, fmt.Sprintf(message, args...), "")
}

func Error(message string, args ...interface{}) {
	logMessage(zerolog.ErrorLevel, fmt.Sprintf(message, args...), "")
}

func Debug(message string, args ...interface{}) {
	logMessage(zerolog.DebugLevel, fmt.Sprintf(message, args...), "")
}

// Fatal logs the message and exits. Startup-only.
func Fatal(message string, args ...interface{}) {
	root.Fatal().Msg(fmt.Sprintf(message, args...))
}

// GetLogs returns the most recent activity entries, newest first.
func GetLogs(limit int) ([]Entry, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	rows, err := DB.Query("SELECT id, level, message, details, created_at FROM activity ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Level, &e.Message, &e.Details, &e.CreatedAt); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
