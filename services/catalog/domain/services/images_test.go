package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/models"
)

func TestIsSupportedImageType(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"image/jpeg", true},
		{"image/jpg", true},
		{"image/png", true},
		{"image/gif", true},
		{"image/webp", true},
		{"IMAGE/PNG", true},
		{"image/png; charset=binary", true},
		{"application/pdf", false},
		{"image/svg+xml", false},
		{"image/heic", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSupportedImageType(tt.contentType); got != tt.want {
			t.Errorf("IsSupportedImageType(%q) = %v, want %v", tt.contentType, got, tt.want)
		}
	}
}

func TestNextSortOrder(t *testing.T) {
	if got := NextSortOrder(nil); got != 1 {
		t.Fatalf("empty collection: expected 1, got %d", got)
	}
	images := []models.Image{{SortOrder: 2}, {SortOrder: 1}, {SortOrder: 3}}
	if got := NextSortOrder(images); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	gappy := []models.Image{{SortOrder: 1}, {SortOrder: 5}}
	if got := NextSortOrder(gappy); got != 6 {
		t.Fatalf("expected max+1 = 6, got %d", got)
	}
}

func TestRenumberImages_PreservesRelativeOrder(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	// Remaining images after deleting sort order 2 of four.
	images := []models.Image{
		{ID: c, SortOrder: 4},
		{ID: a, SortOrder: 1},
		{ID: b, SortOrder: 3},
	}

	got := RenumberImages(images)

	wantIDs := []uuid.UUID{a, b, c}
	for i, img := range got {
		if img.ID != wantIDs[i] {
			t.Fatalf("position %d: expected %s, got %s", i, wantIDs[i], img.ID)
		}
		if img.SortOrder != i+1 {
			t.Fatalf("position %d: expected sort order %d, got %d", i, i+1, img.SortOrder)
		}
	}
}

func TestRenumberImages_Empty(t *testing.T) {
	if got := RenumberImages(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
