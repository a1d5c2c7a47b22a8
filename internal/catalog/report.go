package catalog

import (
	"encoding/json"
	"fmt"
)

// Report summarizes one ImportCollections call.
type Report struct {
	Collections   int // collection rows written
	CardEntries   int // card entries visited across all collections
	CardsInserted int // card rows written
	CardsRepeated int // entries whose card was already written earlier in the run
	Links         int // membership rows written
	Failures      []CardFailure
}

// CardFailure describes a card entry that was skipped.
type CardFailure struct {
	CollectionID int64
	Position     int    // index in the collection's cards list
	CardID       string // raw id text, empty if the entry has none
	Raw          json.RawMessage
	Err          error
}

func (f CardFailure) Error() string {
	id := f.CardID
	if id == "" {
		id = "?"
	}
	return fmt.Sprintf("collection %d card %s (entry %d): %v", f.CollectionID, id, f.Position, f.Err)
}

func (f CardFailure) Unwrap() error { return f.Err }
