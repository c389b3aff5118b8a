package shell

import (
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents journal.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent journal.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.BookIssuedToBorrowerEventType:
		return unmarshalAs[core.BookIssuedToBorrower](storableEvent.PayloadJSON)
	case core.BookReturnedByBorrowerEventType:
		return unmarshalAs[core.BookReturnedByBorrower](storableEvent.PayloadJSON)
	case core.HoldRequestPlacedEventType:
		return unmarshalAs[core.HoldRequestPlaced](storableEvent.PayloadJSON)
	case core.HoldRequestExpiredEventType:
		return unmarshalAs[core.HoldRequestExpired](storableEvent.PayloadJSON)
	case core.BookInfoChangedEventType:
		return unmarshalAs[core.BookInfoChanged](storableEvent.PayloadJSON)
	case core.IssuingBookFailedEventType:
		return unmarshalAs[core.IssuingBookFailed](storableEvent.PayloadJSON)
	case core.ReturningBookFailedEventType:
		return unmarshalAs[core.ReturningBookFailed](storableEvent.PayloadJSON)
	case core.PlacingHoldRequestFailedEventType:
		return unmarshalAs[core.PlacingHoldRequestFailed](storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalAs[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E
	if err := eventJSON.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
