package notify

import (
	"sync"
	"testing"
	"time"

	"taskdeck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureSink records every toast it is asked to show.
type captureSink struct {
	mu     sync.Mutex
	toasts []Toast
}

func (s *captureSink) Show(t Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = append(s.toasts, t)
}

func (s *captureSink) all() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// stubConn is a settable connectivity source.
type stubConn struct {
	mu     sync.Mutex
	online bool
	subs   []func(bool)
}

func (c *stubConn) Online() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online
}

func (c *stubConn) Subscribe(fn func(bool)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
	return func() {}
}

func (c *stubConn) set(online bool) {
	c.mu.Lock()
	c.online = online
	subs := append([]func(bool){}, c.subs...)
	c.mu.Unlock()
	for _, fn := range subs {
		fn(online)
	}
}

// testDurations keeps auto-removal fast enough to observe in tests.
func testDurations() durations {
	return durations{
		domain.SeverityLow:      10 * time.Millisecond,
		domain.SeverityMedium:   20 * time.Millisecond,
		domain.SeverityHigh:     40 * time.Millisecond,
		domain.SeverityCritical: 60 * time.Millisecond,
	}
}

func TestSeverityDurations(t *testing.T) {
	d := defaultDurations()

	assert.Equal(t, 3*time.Second, d.forSeverity(domain.SeverityLow))
	assert.Equal(t, 5*time.Second, d.forSeverity(domain.SeverityMedium))
	assert.Equal(t, 8*time.Second, d.forSeverity(domain.SeverityHigh))
	assert.Equal(t, 10*time.Second, d.forSeverity(domain.SeverityCritical))
	assert.Equal(t, 5*time.Second, d.forSeverity("unknown"))
}

func TestAddError_AppendsAndAutoRemoves(t *testing.T) {
	c := newCenter(&captureSink{}, nil, testDurations())
	defer c.Close()

	id := c.AddError(&domain.ClassifiedError{Message: "boom", Severity: domain.SeverityLow})
	require.NotEmpty(t, id)

	recs := c.Errors()
	require.Len(t, recs, 1)
	assert.Equal(t, id, recs[0].ID)
	assert.Equal(t, "boom", recs[0].Message)
	assert.False(t, recs[0].Timestamp.IsZero())

	assert.Eventually(t, func() bool {
		return len(c.Errors()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestRemoveError_CancelsPendingRemoval(t *testing.T) {
	c := newCenter(&captureSink{}, nil, testDurations())
	defer c.Close()

	id := c.AddError(&domain.ClassifiedError{Message: "boom", Severity: domain.SeverityLow})
	c.RemoveError(id)
	assert.Empty(t, c.Errors())

	// Unknown ids are a no-op.
	c.RemoveError("nope")

	// No late removal: add another record and make sure the first record's
	// expired timer does not touch it.
	second := c.AddError(&domain.ClassifiedError{Message: "later", Severity: domain.SeverityCritical})
	time.Sleep(30 * time.Millisecond)
	recs := c.Errors()
	require.Len(t, recs, 1)
	assert.Equal(t, second, recs[0].ID)
}

func TestClearAll(t *testing.T) {
	c := newCenter(&captureSink{}, nil, testDurations())
	defer c.Close()

	c.AddError(&domain.ClassifiedError{Message: "a", Severity: domain.SeverityHigh})
	c.AddError(&domain.ClassifiedError{Message: "b", Severity: domain.SeverityHigh})
	c.ClearAll()
	assert.Empty(t, c.Errors())
}

func TestShowError_OfflineSubstitution(t *testing.T) {
	sink := &captureSink{}
	conn := &stubConn{online: true}
	c := New(sink, conn)
	defer c.Close()

	netErr := &domain.ClassifiedError{
		Message:        "connection refused",
		Severity:       domain.SeverityHigh,
		IsNetworkError: true,
	}

	c.ShowError(netErr)
	conn.set(false)
	c.ShowError(netErr)
	c.ShowError(&domain.ClassifiedError{Message: "bad input", Severity: domain.SeverityLow})

	toasts := sink.all()
	require.Len(t, toasts, 3)
	assert.Equal(t, "connection refused", toasts[0].Message)
	assert.Equal(t, offlineMessage, toasts[1].Message)
	assert.Equal(t, "bad input", toasts[2].Message)
	assert.Equal(t, 8*time.Second, toasts[0].Duration)
}

func TestShowSuccessAndInfo_FixedDurations(t *testing.T) {
	sink := &captureSink{}
	c := New(sink, nil)
	defer c.Close()

	c.ShowSuccess("Project created successfully!")
	c.ShowInfo("Heads up.")

	toasts := sink.all()
	require.Len(t, toasts, 2)
	assert.Equal(t, KindSuccess, toasts[0].Kind)
	assert.Equal(t, 3*time.Second, toasts[0].Duration)
	assert.Equal(t, KindInfo, toasts[1].Kind)
	assert.Equal(t, 4*time.Second, toasts[1].Duration)
}

func TestClose_StopsTimersAndSilencesToasts(t *testing.T) {
	sink := &captureSink{}
	c := newCenter(sink, nil, testDurations())

	c.AddError(&domain.ClassifiedError{Message: "pending", Severity: domain.SeverityCritical})
	c.Close()

	assert.Empty(t, c.AddError(&domain.ClassifiedError{Message: "after close", Severity: domain.SeverityLow}))
	c.ShowSuccess("after close")
	assert.Empty(t, sink.all())

	// Closing twice is fine.
	c.Close()
}
