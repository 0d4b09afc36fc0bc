package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestTrackingPoller_Poll(t *testing.T) {
	f := newLifecycleFixture(kaos())

	booked := func(id string, status entities.OrderStatus) {
		o := seedOrder(f.store, id, status)
		o.Metadata.ShippingBooking = &entities.ShippingBooking{ID: "bk-" + id, TrackingID: "trk-" + id}
		f.store.put(o)
	}
	booked("a", entities.StatusPaid)
	booked("b", entities.StatusShipped)
	booked("c", entities.StatusProcessing)
	booked("d", entities.StatusDelivered)
	seedOrder(f.store, "e", entities.StatusPaid)

	f.carrier.tracking = map[string]string{
		"trk-a": "picking_up",
		"trk-b": "delivered",
		"trk-d": "in_transit",
	}
	f.carrier.trackErr = map[string]error{"trk-c": errors.New("timeout")}

	lc := service.NewLifecycleService(discardLogger(), f.store, f.store, f.store, f.carrier, f.events)
	poller := service.NewTrackingPoller(discardLogger(), f.store, f.carrier, lc, time.Minute, 10)

	moved := poller.Poll(context.Background())

	assert.Equal(t, 2, moved)
	assert.Equal(t, entities.StatusProcessing, f.store.order("a").Status)
	assert.Equal(t, "picking_up", f.store.order("a").TrackingStatus)
	assert.Equal(t, entities.StatusDelivered, f.store.order("b").Status)
	assert.Equal(t, entities.StatusProcessing, f.store.order("c").Status)
	assert.Equal(t, entities.StatusDelivered, f.store.order("d").Status)
	assert.Empty(t, f.store.order("d").TrackingStatus)
	assert.Equal(t, entities.StatusPaid, f.store.order("e").Status)
}

func TestTrackingPoller_StartStops(t *testing.T) {
	f := newLifecycleFixture()
	lc := service.NewLifecycleService(discardLogger(), f.store, f.store, f.store, f.carrier, f.events)
	poller := service.NewTrackingPoller(discardLogger(), f.store, f.carrier, lc, time.Millisecond, 10)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.NoError(t, poller.Start(ctx))
}
