// Package notify implements the error notification center: it classifies
// what gets surfaced to the user and for how long, and tracks connectivity.
// Rendering itself belongs to the caller-supplied Sink.
package notify

import (
	"sync"
	"time"

	"taskdeck/internal/domain"

	"github.com/google/uuid"
)

// offlineMessage replaces network error messages while the host is offline.
const offlineMessage = "You appear to be offline. Check your connection and try again."

const (
	successDuration = 3 * time.Second
	infoDuration    = 4 * time.Second
)

// Record is one entry in the global error list. Records are transient: each
// one is removed automatically after its severity's display duration.
type Record struct {
	ID             string
	Timestamp      time.Time
	Message        string
	Severity       domain.Severity
	IsNetworkError bool
	StatusCode     int
}

// Kind tells the sink how to style a toast.
type Kind string

const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
)

// Toast is a transient message handed to the Sink together with its display
// duration.
type Toast struct {
	Kind     Kind
	Message  string
	Severity domain.Severity
	Duration time.Duration
}

// Sink renders toasts. Implementations must not block.
type Sink interface {
	Show(Toast)
}

type durations map[domain.Severity]time.Duration

// fallbackDuration applies to unknown severities.
const fallbackDuration = 5 * time.Second

func defaultDurations() durations {
	return durations{
		domain.SeverityLow:      3 * time.Second,
		domain.SeverityMedium:   5 * time.Second,
		domain.SeverityHigh:     8 * time.Second,
		domain.SeverityCritical: 10 * time.Second,
	}
}

func (d durations) forSeverity(s domain.Severity) time.Duration {
	if dur, ok := d[s]; ok {
		return dur
	}
	return fallbackDuration
}

// Center owns the error list, the auto-removal timers, and the connectivity
// flag. All methods are safe for concurrent use.
type Center struct {
	mu          sync.Mutex
	sink        Sink
	records     []Record
	timers      map[string]*time.Timer
	durations   durations
	online      bool
	closed      bool
	unsubscribe func()
}

// New creates a Center rendering through sink. conn may be nil, in which
// case the center assumes it is online.
func New(sink Sink, conn domain.ConnectivitySource) *Center {
	return newCenter(sink, conn, defaultDurations())
}

func newCenter(sink Sink, conn domain.ConnectivitySource, d durations) *Center {
	c := &Center{
		sink:      sink,
		timers:    make(map[string]*time.Timer),
		durations: d,
		online:    true,
	}
	if conn != nil {
		c.online = conn.Online()
		c.unsubscribe = conn.Subscribe(c.setOnline)
	}
	return c
}

// AddError stamps the error with an id and timestamp, appends it to the
// list, and schedules its removal after the severity's display duration.
// It returns the assigned id, or the empty string after Close.
func (c *Center) AddError(e *domain.ClassifiedError) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ""
	}

	id := uuid.NewString()
	c.records = append(c.records, Record{
		ID:             id,
		Timestamp:      time.Now(),
		Message:        e.Message,
		Severity:       e.Severity,
		IsNetworkError: e.IsNetworkError,
		StatusCode:     e.StatusCode,
	})
	c.timers[id] = time.AfterFunc(c.durations.forSeverity(e.Severity), func() {
		c.RemoveError(id)
	})
	return id
}

// RemoveError cancels the pending auto-removal and drops the record.
// Unknown ids are a no-op.
func (c *Center) RemoveError(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i, r := range c.records {
		if r.ID == id {
			c.records = append(c.records[:i], c.records[i+1:]...)
			return
		}
	}
}

// ClearAll cancels every pending timer and empties the list.
func (c *Center) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimersLocked()
	c.records = nil
}

// Errors returns a copy of the current error list, oldest first.
func (c *Center) Errors() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// ShowError displays a classified error as a toast. While offline, network
// errors are replaced with a fixed offline message.
func (c *Center) ShowError(e *domain.ClassifiedError) {
	msg := e.Message
	if e.IsNetworkError && !c.Online() {
		msg = offlineMessage
	}
	c.show(Toast{
		Kind:     KindError,
		Message:  msg,
		Severity: e.Severity,
		Duration: c.durations.forSeverity(e.Severity),
	})
}

// NotifyError records the error and shows it as a toast in one step. This
// is the path the resource managers use.
func (c *Center) NotifyError(e *domain.ClassifiedError) string {
	id := c.AddError(e)
	c.ShowError(e)
	return id
}

// ShowSuccess displays a transient success message.
func (c *Center) ShowSuccess(message string) {
	c.show(Toast{Kind: KindSuccess, Message: message, Duration: successDuration})
}

// ShowInfo displays a transient informational message.
func (c *Center) ShowInfo(message string) {
	c.show(Toast{Kind: KindInfo, Message: message, Duration: infoDuration})
}

// Online reports the last observed connectivity state.
func (c *Center) Online() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online
}

// Close unsubscribes from connectivity updates and cancels all pending
// timers so no callback touches the center afterwards.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.stopTimersLocked()
}

func (c *Center) stopTimersLocked() {
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
}

func (c *Center) setOnline(online bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.online = online
}

func (c *Center) show(t Toast) {
	c.mu.Lock()
	closed := c.closed
	sink := c.sink
	c.mu.Unlock()
	if closed || sink == nil {
		return
	}
	sink.Show(t)
}
