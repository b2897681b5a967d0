// Package rpcapi defines the three gRPC services the coordination plane
// speaks (Aggregator, Subblock, Proof) and the wire codec they share. There
// is no protoc toolchain available in this environment, so the service
// descriptors below are hand-authored against grpc-go's public
// google.golang.org/grpc and google.golang.org/grpc/encoding APIs rather
// than generated from a .proto file, the same way crates/rpcapi's tonic
// descriptors are built from a build.rs codegen step we have no equivalent
// for here. Message framing uses a JSON codec (see codec.go) instead of
// protobuf wire format; compression still negotiates zstd (see
// compressor.go) exactly as §6 requires.
package rpcapi

// CompleteProvingResult mirrors crates/rpcapi's generated message of the
// same name: the payload the proof service receives from a remote worker.
type CompleteProvingResult struct {
	BlockNumber         uint64 `json:"block_number"`
	Success             bool   `json:"success"`
	Cycles              uint64 `json:"cycles"`
	ProvingMilliseconds uint64 `json:"proving_milliseconds"`
	Proof               []byte `json:"proof,omitempty"`
}

// Empty is the nullary response every outbound RPC and complete_proving
// return.
type Empty struct{}

// ProveAggregationRequest is sent to the aggregator worker.
type ProveAggregationRequest struct {
	BlockNumber          uint64   `json:"block_number"`
	NumSubblocks         uint32   `json:"num_subblocks"`
	SubblockPublicValues [][]byte `json:"subblock_public_values"`
	Input                []byte   `json:"input"`
}

// ProveSubblockRequest is sent to one subblock worker.
type ProveSubblockRequest struct {
	BlockNumber   uint64 `json:"block_number"`
	NumSubblocks  uint32 `json:"num_subblocks"`
	SubblockIndex uint32 `json:"subblock_index"`
	Input         []byte `json:"input"`
}
