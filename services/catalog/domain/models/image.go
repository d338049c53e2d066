package models

import "github.com/google/uuid"

// Image is a listing photo. SortOrder is 1-based and contiguous per item.
type Image struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	URL        string
	StorageKey string // empty for images not held in our bucket (seed data)
	SortOrder  int
}
