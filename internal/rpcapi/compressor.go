package rpcapi

import (
	"io"

	"github.com/DataDog/zstd"
	"google.golang.org/grpc/encoding"
)

// zstdCompressor implements encoding.Compressor on top of DataDog/zstd,
// giving every RPC in this package the zstd negotiation §6 requires on both
// the inbound proof-service callback and the outbound aggregator/subblock
// calls.
type zstdCompressor struct{}

func (zstdCompressor) Compress(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w), nil
}

func (zstdCompressor) Decompress(r io.Reader) (io.Reader, error) {
	return zstd.NewReader(r), nil
}

func (zstdCompressor) Name() string { return "zstd" }

func init() {
	encoding.RegisterCompressor(zstdCompressor{})
}
