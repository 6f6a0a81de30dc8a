// Package audit provides a JSON-lines event log for generation runs: which
// templates were loaded, what was generated with which seed, where fixtures
// were written, and any soft failures along the way.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EventType represents the type of logged event.
type EventType string

const (
	EventStartup         EventType = "STARTUP"
	EventShutdown        EventType = "SHUTDOWN"
	EventTemplateLoad    EventType = "TEMPLATE_LOAD"
	EventGenerate        EventType = "GENERATE"
	EventExport          EventType = "EXPORT"
	EventUniqueExhausted EventType = "UNIQUE_EXHAUSTED"
	EventError           EventType = "ERROR"
)

// Severity represents the severity level of an event.
type Severity string

const (
	SeverityDebug    Severity = "DEBUG"
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityError    Severity = "ERROR"
	SeverityCritical Severity = "CRITICAL"
)

// Event is a single log entry.
type Event struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Type      EventType              `json:"type"`
	Severity  Severity               `json:"severity"`
	Template  string                 `json:"template,omitempty"`
	Action    string                 `json:"action"`
	Result    string                 `json:"result"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Logger writes events to a JSON-lines file through a background worker,
// rotating by size and cleaning up rotated files by age.
type Logger struct {
	mu        sync.Mutex
	file      *os.File
	filepath  string
	maxSize   int64
	maxAge    time.Duration
	encoder   *json.Encoder
	eventChan chan *Event
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// Config represents logger configuration.
type Config struct {
	FilePath string
	MaxSize  int64         // Maximum file size in bytes before rotation
	MaxAge   time.Duration // Maximum age of rotated log files
}

// NewLogger creates a logger writing to config.FilePath, creating the parent
// directory as needed.
func NewLogger(config Config) (*Logger, error) {
	dir := filepath.Dir(config.FilePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := &Logger{
		file:      file,
		filepath:  config.FilePath,
		maxSize:   config.MaxSize,
		maxAge:    config.MaxAge,
		encoder:   json.NewEncoder(file),
		eventChan: make(chan *Event, 100),
		stopChan:  make(chan struct{}),
	}

	logger.wg.Add(1)
	go logger.worker()

	logger.LogSystem(EventStartup, "logger started", nil)

	return logger, nil
}

// Log enqueues an event. A nil logger discards events, so callers can leave
// logging unconfigured without nil checks at every site.
func (l *Logger) Log(event *Event) {
	if l == nil {
		return
	}
	if event.ID == "" {
		event.ID = generateEventID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	select {
	case l.eventChan <- event:
	case <-time.After(time.Second):
		fmt.Fprintf(os.Stderr, "Failed to log event: timeout\n")
	}
}

// LogGenerate records a completed batch generation.
func (l *Logger) LogGenerate(template string, count int, seed int64, unique bool) {
	l.Log(&Event{
		Type:     EventGenerate,
		Severity: SeverityInfo,
		Template: template,
		Action:   "generate",
		Result:   "SUCCESS",
		Details: map[string]interface{}{
			"count":  count,
			"seed":   seed,
			"unique": unique,
		},
	})
}

// LogExport records a fixture export.
func (l *Logger) LogExport(template, path string, count int, err error) {
	event := &Event{
		Type:     EventExport,
		Severity: SeverityInfo,
		Template: template,
		Action:   "export",
		Result:   "SUCCESS",
		Details: map[string]interface{}{
			"path":  path,
			"count": count,
		},
	}
	if err != nil {
		event.Severity = SeverityError
		event.Result = "FAILED"
		event.Error = err.Error()
	}
	l.Log(event)
}

// LogUniqueExhausted records a slot where the uniqueness retry budget ran
// out and a duplicate record was emitted. This is the soft-failure path:
// generation continues and the batch is still returned at full length.
func (l *Logger) LogUniqueExhausted(template string, slot, attempts int) {
	l.Log(&Event{
		Type:     EventUniqueExhausted,
		Severity: SeverityWarning,
		Template: template,
		Action:   "generate",
		Result:   "DUPLICATE_EMITTED",
		Details: map[string]interface{}{
			"slot":     slot,
			"attempts": attempts,
		},
	})
}

// LogTemplateLoad records template registry activity.
func (l *Logger) LogTemplateLoad(template, source string) {
	l.Log(&Event{
		Type:     EventTemplateLoad,
		Severity: SeverityDebug,
		Template: template,
		Action:   "load",
		Result:   source,
	})
}

// LogError logs an error event.
func (l *Logger) LogError(action string, err error, details map[string]interface{}) {
	l.Log(&Event{
		Type:     EventError,
		Severity: SeverityError,
		Action:   action,
		Result:   "ERROR",
		Error:    err.Error(),
		Details:  details,
	})
}

// LogSystem logs a system lifecycle event.
func (l *Logger) LogSystem(eventType EventType, message string, details map[string]interface{}) {
	l.Log(&Event{
		Type:     eventType,
		Severity: SeverityInfo,
		Action:   string(eventType),
		Result:   message,
		Details:  details,
	})
}

// worker processes events in the background.
func (l *Logger) worker() {
	defer l.wg.Done()

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case event := <-l.eventChan:
			l.writeEvent(event)

		case <-ticker.C:
			l.performMaintenance()

		case <-l.stopChan:
			// Drain remaining events before exiting.
			for {
				select {
				case event := <-l.eventChan:
					l.writeEvent(event)
				default:
					return
				}
			}
		}
	}
}

// writeEvent writes an event to the log file.
func (l *Logger) writeEvent(event *Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.encoder.Encode(event); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write event: %v\n", err)
	}

	if l.maxSize > 0 {
		if info, err := l.file.Stat(); err == nil && info.Size() > l.maxSize {
			l.rotate()
		}
	}
}

// rotate renames the current log aside and opens a fresh one.
func (l *Logger) rotate() {
	_ = l.file.Close()

	timestamp := time.Now().Format("20060102-150405")
	rotatedPath := fmt.Sprintf("%s.%s", l.filepath, timestamp)
	_ = os.Rename(l.filepath, rotatedPath)

	file, err := os.OpenFile(l.filepath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open new log file: %v\n", err)
		return
	}

	l.file = file
	l.encoder = json.NewEncoder(file)
}

// performMaintenance removes rotated files older than maxAge.
func (l *Logger) performMaintenance() {
	if l.maxAge <= 0 {
		return
	}

	dir := filepath.Dir(l.filepath)
	base := filepath.Base(l.filepath)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-l.maxAge)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if name == base || len(name) <= len(base) || name[:len(base)] != base {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
}

// Close flushes pending events and closes the log file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}

	l.LogSystem(EventShutdown, "logger shutting down", nil)

	close(l.stopChan)
	l.wg.Wait()

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.file.Close()
}

// generateEventID generates a unique event ID.
func generateEventID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), os.Getpid())
}
