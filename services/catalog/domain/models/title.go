package models

import (
	"fmt"
	"unicode/utf8"
)

// Title is a value object for a listing title: 1 to 160 characters.
type Title string

const (
	minTitleLength = 1
	maxTitleLength = 160
)

// NewTitle constructs a valid Title or returns an error if constraints are violated.
func NewTitle(s string) (Title, error) {
	n := utf8.RuneCountInString(s)
	if n < minTitleLength {
		return "", fmt.Errorf("title must be at least %d character", minTitleLength)
	}
	if n > maxTitleLength {
		return "", fmt.Errorf("title must not exceed %d characters", maxTitleLength)
	}
	return Title(s), nil
}

func (t Title) String() string {
	return string(t)
}
