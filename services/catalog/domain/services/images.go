package services

import (
	"slices"
	"strings"

	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/models"
)

var supportedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

// IsSupportedImageType reports whether contentType is an accepted upload
// format. Parameters such as "; charset=" are ignored.
func IsSupportedImageType(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	return slices.Contains(supportedImageTypes, mediaType)
}

// NextSortOrder returns the sort order for an image appended to images:
// max+1, or 1 for an empty collection.
func NextSortOrder(images []models.Image) int {
	next := 1
	for _, img := range images {
		if img.SortOrder >= next {
			next = img.SortOrder + 1
		}
	}
	return next
}

// RenumberImages orders images by their current SortOrder and reassigns
// 1..n in place. Relative order is preserved.
func RenumberImages(images []models.Image) []models.Image {
	slices.SortStableFunc(images, func(a, b models.Image) int {
		return a.SortOrder - b.SortOrder
	})
	for i := range images {
		images[i].SortOrder = i + 1
	}
	return images
}
