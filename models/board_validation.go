package models

import (
	"errors"
	"fmt"
)

var ErrInvalidBoard = errors.New("invalid board")

// ValidationError describes the first structural problem found in a board.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid board: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidBoard
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the board is self-consistent: ids match their map keys,
// columnOrder lists known columns once, and every card named in a cardIds
// list exists and sits in exactly one place.
func (b Board) Validate() error {
	if b.Cards == nil {
		return invalid("cards", "is required")
	}
	if b.Columns == nil {
		return invalid("columns", "is required")
	}
	if b.ColumnOrder == nil {
		return invalid("columnOrder", "is required")
	}

	for key, card := range b.Cards {
		if key == "" {
			return invalid("cards", "contains an empty id")
		}
		if card.ID != key {
			return invalid("cards."+key+".id", "must equal its key, got %q", card.ID)
		}
	}

	owner := make(map[string]string, len(b.Cards))
	for key, col := range b.Columns {
		if key == "" {
			return invalid("columns", "contains an empty id")
		}
		if col.ID != key {
			return invalid("columns."+key+".id", "must equal its key, got %q", col.ID)
		}
		if col.CardIDs == nil {
			return invalid("columns."+key+".cardIds", "is required")
		}
		for _, cardID := range col.CardIDs {
			if _, ok := b.Cards[cardID]; !ok {
				return invalid("columns."+key+".cardIds", "references unknown card %q", cardID)
			}
			if prev, dup := owner[cardID]; dup {
				if prev == key {
					return invalid("columns."+key+".cardIds", "lists card %q twice", cardID)
				}
				return invalid("columns."+key+".cardIds", "lists card %q already in column %q", cardID, prev)
			}
			owner[cardID] = key
		}
	}

	seen := make(map[string]struct{}, len(b.ColumnOrder))
	for _, colID := range b.ColumnOrder {
		if _, ok := b.Columns[colID]; !ok {
			return invalid("columnOrder", "references unknown column %q", colID)
		}
		if _, dup := seen[colID]; dup {
			return invalid("columnOrder", "lists column %q twice", colID)
		}
		seen[colID] = struct{}{}
	}
	return nil
}
