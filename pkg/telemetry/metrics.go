package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/bookmountain/adelaide-uni-market-place"

// Reasons recorded on marketplace.orders.rejected.
const (
	RejectItemNotFound     = "item_not_found"
	RejectItemNotAvailable = "item_not_available"
	RejectSelfPurchase     = "self_purchase"
)

// Marketplace holds the domain counters. A nil *Marketplace records nothing,
// so services can run without telemetry in tests.
type Marketplace struct {
	itemsCreated    metric.Int64Counter
	ordersCreated   metric.Int64Counter
	ordersRejected  metric.Int64Counter
	imagesUploaded  metric.Int64Counter
	imagesDeleted   metric.Int64Counter
	cleanupFailures metric.Int64Counter
}

// NewMarketplace registers the domain counters on the global meter provider.
func NewMarketplace() (*Marketplace, error) {
	return NewMarketplaceWithMeter(otel.Meter(meterName))
}

// NewMarketplaceWithMeter registers the domain counters on meter.
func NewMarketplaceWithMeter(meter metric.Meter) (*Marketplace, error) {
	var (
		m   Marketplace
		err error
	)
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.itemsCreated, "marketplace.items.created", "Listings created"},
		{&m.ordersCreated, "marketplace.orders.created", "Orders placed"},
		{&m.ordersRejected, "marketplace.orders.rejected", "Order attempts rejected by a business rule"},
		{&m.imagesUploaded, "marketplace.images.uploaded", "Listing images uploaded"},
		{&m.imagesDeleted, "marketplace.images.deleted", "Listing images deleted"},
		{&m.cleanupFailures, "marketplace.storage.cleanup_failures", "Best-effort blob deletions that failed"},
	}
	for _, c := range counters {
		*c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("telemetry: counter %s: %w", c.name, err)
		}
	}
	return &m, nil
}

func (m *Marketplace) ItemCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.itemsCreated.Add(ctx, 1)
}

func (m *Marketplace) OrderCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.ordersCreated.Add(ctx, 1)
}

func (m *Marketplace) OrderRejected(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.ordersRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *Marketplace) ImageUploaded(ctx context.Context) {
	if m == nil {
		return
	}
	m.imagesUploaded.Add(ctx, 1)
}

func (m *Marketplace) ImageDeleted(ctx context.Context) {
	if m == nil {
		return
	}
	m.imagesDeleted.Add(ctx, 1)
}

func (m *Marketplace) StorageCleanupFailed(ctx context.Context) {
	if m == nil {
		return
	}
	m.cleanupFailures.Add(ctx, 1)
}
