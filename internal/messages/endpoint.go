package messages

import "github.com/brevis-network/pico-ethproofs/internal/common/channel"

// BlockMsgQueue is the concrete unbounded queue type every coordination edge
// in §4.8's message graph is built from.
type BlockMsgQueue = channel.Unbounded[*BlockMsg]

// FetchMsgQueue is the private per-sub-fetcher queue the fetcher router (C3)
// dispatches FetchMsg onto.
type FetchMsgQueue = channel.Unbounded[FetchMsg]

// NewBlockMsgQueue creates an empty BlockMsgQueue.
func NewBlockMsgQueue() *BlockMsgQueue { return channel.NewUnbounded[*BlockMsg]() }

// NewFetchMsgQueue creates an empty FetchMsgQueue.
func NewFetchMsgQueue() *FetchMsgQueue { return channel.NewUnbounded[FetchMsg]() }

// ProvingEndpoint is the proving client's duplex endpoint (C4): it sends
// Report upstream and receives Proving/Proved from the scheduler.
type ProvingEndpoint = channel.DuplexEndpoint[*BlockMsg, *BlockMsg]

// NewProvingEndpointPair wires the proving client's endpoint to the
// scheduler's matching endpoint.
func NewProvingEndpointPair() (*ProvingEndpoint, *ProvingEndpoint) {
	return channel.NewDuplexPair[*BlockMsg, *BlockMsg]()
}
