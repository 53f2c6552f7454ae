package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/buket_shop/internal/models"
	"github.com/Skotchmaster/buket_shop/internal/service"
	"github.com/Skotchmaster/buket_shop/internal/testutil"
)

type publishedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (f *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, publishedEvent{Topic: topic, Key: key, Event: event.(map[string]any)})
	return nil
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Event["type"].(string))
	}
	return out
}

func newCartService(t *testing.T) (*service.CartService, *fakePublisher) {
	t.Helper()
	pub := &fakePublisher{}
	return &service.CartService{Repo: testutil.NewRepo(t), Events: pub, Topic: "cart_events"}, pub
}

func rose(q int64) *models.CartItem {
	return &models.CartItem{
		CartID:    models.DefaultCartID,
		ProductID: 1,
		Name:      "Red Rose",
		Price:     1500,
		Images:    models.Images{"red1.jpg", "red2.jpg"},
		Quantity:  q,
	}
}

func TestCartService_Scenario(t *testing.T) {
	ctx := context.Background()
	s, pub := newCartService(t)

	merged, err := s.Add(ctx, rose(2))
	require.NoError(t, err)
	assert.False(t, merged)

	second := rose(3)
	second.Name = "Renamed"
	second.Price = 1
	merged, err = s.Add(ctx, second)
	require.NoError(t, err)
	assert.True(t, merged)

	items, err := s.List(ctx, models.DefaultCartID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 5, items[0].Quantity)
	assert.Equal(t, "Red Rose", items[0].Name)
	assert.EqualValues(t, 1500, items[0].Price)
	assert.Equal(t, models.Images{"red1.jpg", "red2.jpg"}, items[0].Images)

	require.NoError(t, s.UpdateQuantity(ctx, models.DefaultCartID, 1, 10))
	items, err = s.List(ctx, models.DefaultCartID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 10, items[0].Quantity)

	require.NoError(t, s.Remove(ctx, models.DefaultCartID, 1))
	items, err = s.List(ctx, models.DefaultCartID)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.Equal(t, []string{
		"cart_item_added",
		"cart_item_added",
		"cart_item_quantity_set",
		"cart_item_deleted",
	}, pub.types())
	assert.Equal(t, "cart_events", pub.events[0].Topic)
	assert.Equal(t, models.DefaultCartID, pub.events[0].Key)
	assert.NotEmpty(t, pub.events[0].Event["event_id"])
	assert.Equal(t, true, pub.events[1].Event["merged"])
}

func TestCartService_AddValidation(t *testing.T) {
	ctx := context.Background()
	s, pub := newCartService(t)

	cases := map[string]func(it *models.CartItem){
		"zero id":        func(it *models.CartItem) { it.ProductID = 0 },
		"negative id":    func(it *models.CartItem) { it.ProductID = -4 },
		"empty name":     func(it *models.CartItem) { it.Name = "  " },
		"negative price": func(it *models.CartItem) { it.Price = -1 },
		"zero quantity":  func(it *models.CartItem) { it.Quantity = 0 },
		"huge quantity":  func(it *models.CartItem) { it.Quantity = service.MaxQuantity + 1 },
		"empty cart id":  func(it *models.CartItem) { it.CartID = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			it := rose(1)
			mutate(it)
			_, err := s.Add(ctx, it)
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}

	items, err := s.List(ctx, models.DefaultCartID)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, pub.types())
}

func TestCartService_AddNilImages(t *testing.T) {
	ctx := context.Background()
	s, _ := newCartService(t)

	it := rose(1)
	it.Images = nil
	_, err := s.Add(ctx, it)
	require.NoError(t, err)

	items, err := s.List(ctx, models.DefaultCartID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.Images{}, items[0].Images)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	s, _ := newCartService(t)

	err := s.UpdateQuantity(ctx, models.DefaultCartID, 42, 3)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = s.Add(ctx, rose(1))
	require.NoError(t, err)

	assert.ErrorIs(t, s.UpdateQuantity(ctx, models.DefaultCartID, 1, 0), service.ErrValidation)
	assert.ErrorIs(t, s.UpdateQuantity(ctx, models.DefaultCartID, 1, service.MaxQuantity+1), service.ErrValidation)
	assert.ErrorIs(t, s.UpdateQuantity(ctx, models.DefaultCartID, 0, 2), service.ErrValidation)
	require.NoError(t, s.UpdateQuantity(ctx, models.DefaultCartID, 1, service.MaxQuantity))
}

func TestCartService_RemoveMissingAndClear(t *testing.T) {
	ctx := context.Background()
	s, pub := newCartService(t)

	require.NoError(t, s.Remove(ctx, models.DefaultCartID, 99))

	_, err := s.Add(ctx, rose(1))
	require.NoError(t, err)
	tulip := rose(2)
	tulip.ProductID = 4
	tulip.Name = "Yellow Tulip"
	_, err = s.Add(ctx, tulip)
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx, models.DefaultCartID))
	items, err := s.List(ctx, models.DefaultCartID)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Contains(t, pub.types(), "cart_cleared")
}

func TestCartService_PublishFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()
	s, pub := newCartService(t)
	pub.err = errors.New("broker unavailable")

	_, err := s.Add(ctx, rose(1))
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx, models.DefaultCartID))
}

func TestCartService_NoPublisher(t *testing.T) {
	ctx := context.Background()
	s := &service.CartService{Repo: testutil.NewRepo(t)}

	_, err := s.Add(ctx, rose(1))
	require.NoError(t, err)
}

func TestParseProductID(t *testing.T) {
	id, err := service.ParseProductID("17")
	require.NoError(t, err)
	assert.EqualValues(t, 17, id)

	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := service.ParseProductID(raw)
		assert.ErrorIs(t, err, service.ErrValidation, raw)
	}
}
