package event

import "testing"

func TestPublishDeliversToTopic(t *testing.T) {
	b := NewBus()
	var got []string
	b.Subscribe(TopicListChanged, func(e Event) {
		got = append(got, e.Topic)
	})
	b.Subscribe(TopicListRenumbered, func(e Event) {
		t.Error("wrong topic delivered")
	})

	b.Publish(Event{Topic: TopicListChanged})
	if len(got) != 1 || got[0] != TopicListChanged {
		t.Errorf("got %v", got)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus()
	count := 0
	sub := b.Subscribe(TopicListChanged, func(Event) { count++ })

	b.Publish(Event{Topic: TopicListChanged})
	b.Unsubscribe(sub)
	b.Publish(Event{Topic: TopicListChanged})

	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestHandlerPanicIsolated(t *testing.T) {
	b := NewBus()
	reached := false
	b.Subscribe(TopicListChanged, func(Event) { panic("boom") })
	b.Subscribe(TopicListChanged, func(Event) { reached = true })

	b.Publish(Event{Topic: TopicListChanged})

	if !reached {
		t.Error("panic in one handler must not block others")
	}
	if b.Stats().HandlerPanics != 1 {
		t.Errorf("panics = %d, want 1", b.Stats().HandlerPanics)
	}
}

func TestDeliveryFollowsSubscriptionOrder(t *testing.T) {
	b := NewBus()
	var order []int
	for i := 0; i < 8; i++ {
		n := i
		b.Subscribe(TopicListChanged, func(Event) { order = append(order, n) })
	}

	b.Publish(Event{Topic: TopicListChanged})

	if len(order) != 8 {
		t.Fatalf("delivered = %d, want 8", len(order))
	}
	for i, n := range order {
		if n != i {
			t.Fatalf("delivery order %v, want ascending", order)
		}
	}
}

func TestStatsCounters(t *testing.T) {
	b := NewBus()
	b.Subscribe(TopicListChanged, func(Event) {})
	b.Publish(Event{Topic: TopicListChanged})
	b.Publish(Event{Topic: TopicDocumentLoaded})

	s := b.Stats()
	if s.Published != 2 {
		t.Errorf("published = %d, want 2", s.Published)
	}
	if s.Delivered != 1 {
		t.Errorf("delivered = %d, want 1", s.Delivered)
	}
}
