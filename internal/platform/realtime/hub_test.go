package realtime

import (
	"testing"
	"time"
)

func TestHubDeliversToElectionSubscribers(t *testing.T) {
	hub := NewHub(nil)

	ch, cancel := hub.Subscribe("eleicao-1")
	defer cancel()
	other, cancelOther := hub.Subscribe("eleicao-2")
	defer cancelOther()

	hub.Publish(Event{ElectionID: "eleicao-1", Kind: "candidato"})

	select {
	case event := <-ch:
		if event.Kind != "candidato" {
			t.Fatalf("kind = %q, want candidato", event.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive event")
	}

	select {
	case event := <-other:
		t.Fatalf("unexpected event for other election: %+v", event)
	default:
	}
}

func TestHubDropsWhenSubscriberBufferFull(t *testing.T) {
	hub := NewHub(nil)

	ch, cancel := hub.Subscribe("eleicao-1")
	defer cancel()

	for i := 0; i < defaultBuffer+10; i++ {
		hub.Publish(Event{ElectionID: "eleicao-1", Kind: "nulo"})
	}

	// Publish never blocked; the channel holds at most its buffer.
	if got := len(ch); got != defaultBuffer {
		t.Fatalf("buffered = %d, want %d", got, defaultBuffer)
	}
}

func TestHubCancelRemovesSubscriber(t *testing.T) {
	hub := NewHub(nil)

	_, cancel := hub.Subscribe("eleicao-1")
	if hub.SubscriberCount("eleicao-1") != 1 {
		t.Fatal("expected one subscriber")
	}
	cancel()
	if hub.SubscriberCount("eleicao-1") != 0 {
		t.Fatal("expected subscriber to be removed")
	}
}
