// Package telemetry records fire-and-forget usage events as CloudEvents.
//
// Events are queued on a buffered channel and written as JSON lines by a
// single worker goroutine. A full queue drops the event instead of blocking
// the caller.
package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	eventTypePrefix = "com.dungeonedit."
	defaultBuffer   = 64
)

// Recorder is the interface the rest of the application logs events through.
type Recorder interface {
	LogEvent(name string, props map[string]any)
}

// Nop discards every event.
type Nop struct{}

// LogEvent implements Recorder.
func (Nop) LogEvent(string, map[string]any) {}

// Logger writes events to an io.Writer.
type Logger struct {
	source  string
	session string
	log     zerolog.Logger

	out    io.WriteCloser
	queue  chan cloudevents.Event
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// Options configure a Logger.
type Options struct {
	Source string // CloudEvents source attribute, e.g. "dungeonedit/0.1.0"
	Buffer int
	Log    zerolog.Logger
}

// Open creates (or appends to) the JSON-lines file at path and starts the writer.
func Open(path string, opts Options) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create telemetry dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open telemetry file: %w", err)
	}
	return New(f, opts), nil
}

// New starts a Logger writing to out. Close flushes and closes out.
func New(out io.WriteCloser, opts Options) *Logger {
	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	source := opts.Source
	if source == "" {
		source = "dungeonedit"
	}
	l := &Logger{
		source:  source,
		session: newID(),
		log:     opts.Log.With().Str("component", "telemetry").Logger(),
		out:     out,
		queue:   make(chan cloudevents.Event, buffer),
	}
	l.wg.Add(1)
	go l.run()
	return l
}

// Session returns the ID attached to every event of this run.
func (l *Logger) Session() string {
	return l.session
}

// LogEvent queues an event. It never blocks.
func (l *Logger) LogEvent(name string, props map[string]any) {
	event := NewEvent(eventTypePrefix+name, l.source, props)
	event.SetExtension("session", l.session)

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return
	}
	select {
	case l.queue <- event:
	default:
		l.log.Debug().Str("event", name).Msg("telemetry queue full, event dropped")
	}
}

// Close stops accepting events, drains the queue and closes the sink.
func (l *Logger) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	close(l.queue)
	l.mu.Unlock()

	l.wg.Wait()
	return l.out.Close()
}

func (l *Logger) run() {
	defer l.wg.Done()
	enc := json.NewEncoder(l.out)
	for event := range l.queue {
		if err := enc.Encode(event); err != nil {
			l.log.Warn().Err(err).Str("type", event.Type()).Msg("write telemetry event")
		}
	}
}

// NewEvent builds a CloudEvent with a time-ordered ID.
func NewEvent(eventType, source string, data map[string]any) cloudevents.Event {
	event := cloudevents.NewEvent()
	event.SetID(newID())
	event.SetSource(source)
	event.SetType(eventType)
	event.SetTime(time.Now())
	event.SetSpecVersion(cloudevents.VersionV1)
	if data != nil {
		_ = event.SetData(cloudevents.ApplicationJSON, data)
	}
	return event
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}
