// Package messages defines BlockMsg, the tagged union that flows on every
// coordination channel in the system, and the FetchMsg sub-union it carries,
// mirroring crates/common/src/messages.rs.
package messages

import (
	"github.com/brevis-network/pico-ethproofs/internal/common/inputs"
	"github.com/brevis-network/pico-ethproofs/internal/common/report"
)

// Kind discriminates a BlockMsg's active variant.
type Kind int

const (
	KindWatch Kind = iota
	KindFetch
	KindProving
	KindProved
	KindReport
)

func (k Kind) String() string {
	switch k {
	case KindWatch:
		return "Watch"
	case KindFetch:
		return "Fetch"
	case KindProving:
		return "Proving"
	case KindProved:
		return "Proved"
	case KindReport:
		return "Report"
	default:
		return "Unknown"
	}
}

// WatchMsg registers a new WebSocket subscriber's delivery channel.
type WatchMsg struct {
	Sender ReportSender
}

// ReportSender is the narrow interface the reporter needs to deliver a
// report to one subscriber; satisfied directly by *channel.Unbounded[*BlockMsg]
// (BlockMsgQueue), which internal/fetchservice registers per connection.
type ReportSender interface {
	Send(msg *BlockMsg)
}

// ProvingMsg carries inputs ready to be proved, alongside the
// in-progress report they belong to.
type ProvingMsg struct {
	FetchReport   *report.BlockProvingReport
	ProvingInputs *inputs.ProvingInputs
}

// CompleteProvingResult is the wire contract returned by a remote worker via
// the proof service's inbound gRPC callback.
type CompleteProvingResult struct {
	BlockNumber         uint64
	Success             bool
	Cycles              uint64
	ProvingMilliseconds uint64
	Proof               []byte
}

// FetchKind discriminates a FetchMsg's active variant.
type FetchKind int

const (
	FetchKindProveFromStart FetchKind = iota
	FetchKindProveLatest
	FetchKindReproduceFromStart
)

// FetchMsg is the tagged union of fetch requests routed by the fetcher.
type FetchMsg struct {
	Kind FetchKind

	// ProveFromStart / ReproduceFromStart.
	StartBlockNumber uint64
	Count            uint64
}

// NewProveFromStart builds a ProveFromStart FetchMsg.
func NewProveFromStart(startBlockNumber, count uint64) FetchMsg {
	return FetchMsg{Kind: FetchKindProveFromStart, StartBlockNumber: startBlockNumber, Count: count}
}

// NewProveLatest builds a ProveLatest FetchMsg.
func NewProveLatest(count uint64) FetchMsg {
	return FetchMsg{Kind: FetchKindProveLatest, Count: count}
}

// NewReproduceFromStart builds a ReproduceFromStart FetchMsg.
func NewReproduceFromStart(startBlockNumber, count uint64) FetchMsg {
	return FetchMsg{Kind: FetchKindReproduceFromStart, StartBlockNumber: startBlockNumber, Count: count}
}

// BlockMsg is the tagged union flowing on every coordination channel.
// Exactly one of the variant-specific fields is meaningful, selected by Kind.
type BlockMsg struct {
	Kind Kind

	Watch   WatchMsg
	Fetch   FetchMsg
	Proving ProvingMsg
	Proved  CompleteProvingResult
	Report  report.BlockProvingReport
}

// NewWatch wraps a WatchMsg as a BlockMsg.
func NewWatch(w WatchMsg) *BlockMsg {
	return &BlockMsg{Kind: KindWatch, Watch: w}
}

// NewFetch wraps a FetchMsg as a BlockMsg.
func NewFetch(f FetchMsg) *BlockMsg {
	return &BlockMsg{Kind: KindFetch, Fetch: f}
}

// NewProving wraps a ProvingMsg as a BlockMsg.
func NewProving(p ProvingMsg) *BlockMsg {
	return &BlockMsg{Kind: KindProving, Proving: p}
}

// NewProved wraps a CompleteProvingResult as a BlockMsg.
func NewProved(p CompleteProvingResult) *BlockMsg {
	return &BlockMsg{Kind: KindProved, Proved: p}
}

// NewReport wraps a BlockProvingReport as a BlockMsg.
func NewReport(r report.BlockProvingReport) *BlockMsg {
	return &BlockMsg{Kind: KindReport, Report: r}
}
