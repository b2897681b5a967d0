package fetchservice

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brevis-network/pico-ethproofs/internal/messages"
)

func TestHandleProveBlockByNumberEnqueuesFetch(t *testing.T) {
	upstream := messages.NewBlockMsgQueue()
	svc := New(upstream)
	srv := httptest.NewServer(svc.Mux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/prove_block_by_number?start_block_num=100&count=5")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	msg, err := upstream.RecvTimeout(time.Second)
	if err != nil {
		t.Fatalf("expected enqueued message: %v", err)
	}
	if msg.Kind != messages.KindFetch || msg.Fetch.Kind != messages.FetchKindProveFromStart {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Fetch.StartBlockNumber != 100 || msg.Fetch.Count != 5 {
		t.Fatalf("unexpected fetch params: %+v", msg.Fetch)
	}
}

func TestHandleProveBlockByNumberMissingStartIs400(t *testing.T) {
	upstream := messages.NewBlockMsgQueue()
	svc := New(upstream)
	srv := httptest.NewServer(svc.Mux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/prove_block_by_number")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHandleProveLatestBlockDefaultsCountToOne(t *testing.T) {
	upstream := messages.NewBlockMsgQueue()
	svc := New(upstream)
	srv := httptest.NewServer(svc.Mux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/prove_latest_block")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	msg, err := upstream.RecvTimeout(time.Second)
	if err != nil {
		t.Fatalf("expected enqueued message: %v", err)
	}
	if msg.Fetch.Kind != messages.FetchKindProveLatest || msg.Fetch.Count != 1 {
		t.Fatalf("unexpected fetch params: %+v", msg.Fetch)
	}
}

func TestHandleReproduceBlockByNumberEnqueuesFetch(t *testing.T) {
	upstream := messages.NewBlockMsgQueue()
	svc := New(upstream)
	srv := httptest.NewServer(svc.Mux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/reproduce_block_by_number?start_block_num=10")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	msg, err := upstream.RecvTimeout(time.Second)
	if err != nil {
		t.Fatalf("expected enqueued message: %v", err)
	}
	if msg.Fetch.Kind != messages.FetchKindReproduceFromStart || msg.Fetch.StartBlockNumber != 10 || msg.Fetch.Count != 1 {
		t.Fatalf("unexpected fetch params: %+v", msg.Fetch)
	}
}

func TestEnqueueReturns500WhenUpstreamClosed(t *testing.T) {
	upstream := messages.NewBlockMsgQueue()
	upstream.Close()
	svc := New(upstream)
	srv := httptest.NewServer(svc.Mux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/prove_latest_block")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}
