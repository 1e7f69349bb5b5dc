package stoneconnect

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/benbjohnson/clock"
)

// TOPIC_STATUS is the bus topic the monitor publishes status updates on.
const TOPIC_STATUS = "stoneconnect/status"

const CACHE_DURATION_INFO = 1800 // seconds; device identity rarely changes

// DEFAULT_POLL_INTERVAL is the monitor's status poll interval.
var DEFAULT_POLL_INTERVAL = 30 * time.Second

// Monitor polls one heater and republishes every status read to its
// subscribers. The client's accessors themselves stay cache-free; only the
// rarely-changing info record is memoized here.
type Monitor struct {
	client    *Client
	logger    Logger
	bus       EventBus.Bus
	clock     clock.Clock
	interval  time.Duration
	infoCache Cacheable[*Info]
}

type MonitorOption func(*Monitor)

func WithMonitorLogger(logger Logger) MonitorOption {
	return func(m *Monitor) {
		m.logger = logger
	}
}

// WithInterval sets the status poll interval.
func WithInterval(interval time.Duration) MonitorOption {
	return func(m *Monitor) {
		m.interval = interval
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clk clock.Clock) MonitorOption {
	return func(m *Monitor) {
		m.clock = clk
	}
}

// NewMonitor creates a polling monitor for the given heater client.
func NewMonitor(client *Client, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		client:   client,
		bus:      EventBus.New(),
		clock:    clock.New(),
		interval: DEFAULT_POLL_INTERVAL,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.infoCache = ResettableCached(func() (*Info, error) {
		return m.client.GetInfo()
	}, CACHE_DURATION_INFO*time.Second)

	return m
}

func (m *Monitor) debug(format string, arg ...any) {
	if m.logger != nil {
		m.logger.Printf(format, arg...)
	}
}

// GetInfo returns the cached device identity record.
func (m *Monitor) GetInfo() (*Info, error) {
	return m.infoCache.Get()
}

// ResetInfo drops the cached info record so the next GetInfo rereads it.
func (m *Monitor) ResetInfo() {
	m.infoCache.Reset()
}

// OnStatus subscribes fn to every status update published while Run is
// active. Handlers run synchronously on the polling goroutine.
func (m *Monitor) OnStatus(fn func(Status)) error {
	return m.bus.Subscribe(TOPIC_STATUS, fn)
}

// OffStatus removes a subscription made with OnStatus.
func (m *Monitor) OffStatus(fn func(Status)) error {
	return m.bus.Unsubscribe(TOPIC_STATUS, fn)
}

// Run polls the device until ctx is cancelled. The first poll happens
// immediately, then once per interval.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := m.clock.Ticker(m.interval)
	defer ticker.Stop()

	for {
		m.poll()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (m *Monitor) poll() {
	status, err := m.client.GetStatus()
	if err != nil {
		m.debug("status poll failed: %v", err)
		return
	}
	m.bus.Publish(TOPIC_STATUS, *status)
}
