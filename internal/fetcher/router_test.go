package fetcher

import (
	"context"
	"testing"
	"time"

	"github.com/brevis-network/pico-ethproofs/internal/messages"
)

func TestRouterDispatchesByVariant(t *testing.T) {
	inbound := messages.NewBlockMsgQueue()
	fromStart := messages.NewFetchMsgQueue()
	latest := messages.NewFetchMsgQueue()
	reproduce := messages.NewFetchMsgQueue()

	r := NewRouter(inbound, fromStart, latest, reproduce)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	inbound.Send(messages.NewFetch(messages.NewProveFromStart(1, 2)))
	inbound.Send(messages.NewFetch(messages.NewProveLatest(3)))
	inbound.Send(messages.NewFetch(messages.NewReproduceFromStart(4, 5)))
	inbound.Send(messages.NewWatch(messages.WatchMsg{}))

	assertFetchMsgRecv(t, fromStart, messages.FetchKindProveFromStart)
	assertFetchMsgRecv(t, latest, messages.FetchKindProveLatest)
	assertFetchMsgRecv(t, reproduce, messages.FetchKindReproduceFromStart)
}

func assertFetchMsgRecv(t *testing.T, q *messages.FetchMsgQueue, want messages.FetchKind) {
	t.Helper()
	done := make(chan messages.FetchMsg, 1)
	go func() {
		msg, err := q.Recv()
		if err == nil {
			done <- msg
		}
	}()
	select {
	case msg := <-done:
		if msg.Kind != want {
			t.Fatalf("got kind %v, want %v", msg.Kind, want)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for fetch msg kind %v", want)
	}
}
