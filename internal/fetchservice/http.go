package fetchservice

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/brevis-network/pico-ethproofs/internal/messages"
)

// parseBlockQuery extracts start_block_num (required when requireStart)
// and count (default 1) from r's query string.
func parseBlockQuery(r *http.Request, requireStart bool) (start, count uint64, err error) {
	q := r.URL.Query()

	if requireStart {
		raw := q.Get("start_block_num")
		if raw == "" {
			return 0, 0, fmt.Errorf("missing required query parameter start_block_num")
		}
		start, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid start_block_num: %w", err)
		}
	}

	count = 1
	if raw := q.Get("count"); raw != "" {
		count, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid count: %w", err)
		}
	}
	return start, count, nil
}

// enqueue sends msg upstream, reporting 500 if the upstream channel has
// already been closed (the scheduler has shut down), 200 otherwise, per
// §4.6.
func (s *Service) enqueue(w http.ResponseWriter, msg *messages.BlockMsg, okText string) {
	if s.upstream.IsClosed() {
		http.Error(w, "fetchservice: upstream channel closed", http.StatusInternalServerError)
		return
	}
	s.upstream.Send(msg)
	fmt.Fprintln(w, okText)
}

// handleProveBlockByNumber serves /prove_block_by_number.
func (s *Service) handleProveBlockByNumber(w http.ResponseWriter, r *http.Request) {
	start, count, err := parseBlockQuery(r, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.enqueue(w, messages.NewFetch(messages.NewProveFromStart(start, count)), fmt.Sprintf("enqueued prove_block_by_number start=%d count=%d", start, count))
}

// handleProveLatestBlock serves /prove_latest_block.
func (s *Service) handleProveLatestBlock(w http.ResponseWriter, r *http.Request) {
	_, count, err := parseBlockQuery(r, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.enqueue(w, messages.NewFetch(messages.NewProveLatest(count)), fmt.Sprintf("enqueued prove_latest_block count=%d", count))
}

// handleReproduceBlockByNumber serves /reproduce_block_by_number.
func (s *Service) handleReproduceBlockByNumber(w http.ResponseWriter, r *http.Request) {
	start, count, err := parseBlockQuery(r, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.enqueue(w, messages.NewFetch(messages.NewReproduceFromStart(start, count)), fmt.Sprintf("enqueued reproduce_block_by_number start=%d count=%d", start, count))
}
