package shell

import (
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/journal"
)

// ErrMappingToEventMetadataFailed is returned when metadata conversion fails.
var ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

// MessageID represents a unique message identifier.
type MessageID = string

// CausationID represents the ID of the message that caused this event.
type CausationID = string

// CorrelationID represents the ID correlating all events of one command.
type CorrelationID = string

// EventMetadata contains event tracking information.
type EventMetadata struct {
	MessageID     MessageID
	CausationID   CausationID
	CorrelationID CorrelationID
}

// BuildEventMetadata creates EventMetadata from UUID values.
func BuildEventMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}

// NewCommandMetadata creates metadata for the events of one command execution:
// causation and correlation both point at a fresh command ID.
func NewCommandMetadata() EventMetadata {
	commandID := uuid.New()

	return BuildEventMetadata(uuid.New(), commandID, commandID)
}

// Next returns metadata for a further event of the same command, with a new message ID.
func (m EventMetadata) Next() EventMetadata {
	m.MessageID = uuid.NewString()

	return m
}

// EventMetadataFrom extracts EventMetadata from a StorableEvent.
func EventMetadataFrom(storableEvent journal.StorableEvent) (EventMetadata, error) {
	metadata := new(EventMetadata)
	if err := jsoniter.ConfigFastest.Unmarshal(storableEvent.MetadataJSON, metadata); err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return *metadata, nil
}
