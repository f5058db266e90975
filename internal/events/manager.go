package events

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// EventType represents different event types
type EventType string

const (
	TradeCreated      EventType = "TRADE_CREATED"
	TradeUpdated      EventType = "TRADE_UPDATED"
	TradeDeleted      EventType = "TRADE_DELETED"
	CashFlowCreated   EventType = "CASH_FLOW_CREATED"
	CashFlowDeleted   EventType = "CASH_FLOW_DELETED"
	OpeningBalanceSet EventType = "OPENING_BALANCE_SET"
	SnapshotRestored  EventType = "SNAPSHOT_RESTORED"

	RemoteSyncStart    EventType = "REMOTE_SYNC_START"
	RemoteSyncComplete EventType = "REMOTE_SYNC_COMPLETE"
	RemoteSyncFailed   EventType = "REMOTE_SYNC_FAILED"

	ErrorOccurred EventType = "ERROR_OCCURRED"
)

// Event represents a system event
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Module    string                 `json:"module"`
}

// Manager handles event emission and logging
type Manager struct {
	log zerolog.Logger
}

// NewManager creates a new event manager
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		log: log.With().Str("service", "events").Logger(),
	}
}

// Emit emits an event
func (m *Manager) Emit(eventType EventType, module string, data map[string]interface{}) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
		Module:    module,
	}

	eventJSON, _ := json.Marshal(event)
	m.log.Info().
		Str("event_type", string(eventType)).
		Str("module", module).
		RawJSON("event", eventJSON).
		Msg("Event emitted")
}

// EmitError emits an error event
func (m *Manager) EmitError(module string, err error, context map[string]interface{}) {
	data := map[string]interface{}{
		"error":   err.Error(),
		"context": context,
	}
	m.Emit(ErrorOccurred, module, data)
}
