package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
)

var (
	// ErrMappingToStorableEventFailedForDomainEvent is returned when domain event serialization fails.
	ErrMappingToStorableEventFailedForDomainEvent = errors.New("mapping to storable event failed for domain event")

	// ErrMappingToStorableEventFailedForMetadata is returned when metadata serialization fails.
	ErrMappingToStorableEventFailedForMetadata = errors.New("mapping to storable event failed for metadata")
)

var eventJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// StorableEventFrom converts a DomainEvent and EventMetadata to a StorableEvent.
func StorableEventFrom(event core.DomainEvent, metadata EventMetadata) (journal.StorableEvent, error) {
	payloadJSON, err := eventJSON.Marshal(event)
	if err != nil {
		return journal.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	metadataJSON, err := eventJSON.Marshal(metadata)
	if err != nil {
		return journal.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForMetadata, err)
	}

	storableEvent, err := journal.BuildStorableEvent(event.IsEventType(), event.HasOccurredAt(), payloadJSON, metadataJSON)
	if err != nil {
		return journal.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	return storableEvent, nil
}

// StorableEventsFrom converts events that belong to one command, giving each its own message ID.
func StorableEventsFrom(events core.DomainEvents, metadata EventMetadata) (journal.StorableEvents, error) {
	storableEvents := make(journal.StorableEvents, 0, len(events))

	for i, event := range events {
		if i > 0 {
			metadata = metadata.Next()
		}

		storableEvent, err := StorableEventFrom(event, metadata)
		if err != nil {
			return nil, err
		}

		storableEvents = append(storableEvents, storableEvent)
	}

	return storableEvents, nil
}
