package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"rems-service/internal/contextkeys"
	"rems-service/internal/core/port"
)

// clientChannel carries serialized events to one connected browser tab.
type clientChannel chan []byte

type eventWithContext struct {
	ctx   context.Context
	event port.ListingEvent
}

// SSENotifier broadcasts listing events to every connected client over
// Server-Sent Events. Use cases push into an internal channel; a single
// dispatcher goroutine fans the events out.
type SSENotifier struct {
	mu      sync.RWMutex
	clients map[clientChannel]struct{}

	eventChan chan eventWithContext
	logger    port.LoggerPort
}

// NewSSENotifier creates the notifier and starts its dispatcher.
func NewSSENotifier(baseLogger port.LoggerPort) *SSENotifier {
	n := &SSENotifier{
		clients:   make(map[clientChannel]struct{}),
		eventChan: make(chan eventWithContext, 100),
		logger:    baseLogger.WithFields(port.Fields{"component": "SSENotifier"}),
	}
	go n.dispatcher()
	return n
}

// Notify queues an event for broadcast. Never blocks the caller: when the
// queue is full the event is dropped with a warning.
func (n *SSENotifier) Notify(ctx context.Context, event port.ListingEvent) {
	select {
	case n.eventChan <- eventWithContext{ctx: ctx, event: event}:
	default:
		n.logger.Warn("Event queue full, dropping listing event", port.Fields{"event_type": event.Type})
	}
}

func (n *SSENotifier) dispatcher() {
	n.logger.Debug("Notifier dispatcher started", nil)
	for pkg := range n.eventChan {
		eventLogger := contextkeys.LoggerFromContext(pkg.ctx).WithFields(port.Fields{
			"component":   "SSENotifier.dispatcher",
			"event_type":  pkg.event.Type,
			"property_id": pkg.event.Property.ID,
		})

		payload, err := json.Marshal(pkg.event)
		if err != nil {
			eventLogger.Error("Failed to marshal event", err, nil)
			continue
		}

		n.mu.RLock()
		delivered := 0
		for ch := range n.clients {
			select {
			case ch <- payload:
				delivered++
			default:
				// Slow client; skip rather than stall the broadcast.
			}
		}
		n.mu.RUnlock()

		eventLogger.Debug("Event dispatched", port.Fields{"clients": delivered})
	}
}

// ServeHTTP implements the subscription endpoint: it keeps the connection
// open and streams every broadcast event until the client goes away.
func (n *SSENotifier) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(clientChannel, 10)
	n.mu.Lock()
	n.clients[ch] = struct{}{}
	n.mu.Unlock()

	defer func() {
		n.mu.Lock()
		delete(n.clients, ch)
		n.mu.Unlock()
	}()

	// Acknowledge the subscription right away so the client sees the
	// response headers before the first broadcast.
	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	// Comment lines keep idle connections from being reaped by proxies;
	// clients ignore them.
	keepAlive := time.NewTicker(15 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case payload := <-ch:
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		case <-keepAlive.C:
			fmt.Fprintf(w, ": keep-alive\n\n")
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
