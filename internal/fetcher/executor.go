// Package fetcher implements the fetch-request router (C3) and its three
// sub-fetchers (from-start, latest, reproduce), mirroring
// crates/fetcher/src/{router,fromstart,latest,reproduce}.rs.
package fetcher

import (
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"

	"github.com/brevis-network/pico-ethproofs/internal/common/inputs"
)

// SubblockExecutor is the collaborator contract from §4.2: given a block
// number, produce ProvingInputs. Its internals (subblock decomposition,
// witness construction, ZK emulation) are out of scope; this package only
// names the boundary and ships a minimal concrete implementation that
// fetches the block over RPC and treats it as a single subblock, which is
// enough to exercise every downstream component end to end.
type SubblockExecutor interface {
	GenerateInputs(ctx context.Context, blockNumber uint64, isInputEmulated bool) (*inputs.ProvingInputs, error)
}

// ethSubblockExecutor is the concrete SubblockExecutor backed by an RPC
// connection to an execution-layer node, per §4.2 step 1.
type ethSubblockExecutor struct {
	client         *ethclient.Client
	subblockVKHash []byte
}

// NewEthSubblockExecutor dials httpURL and returns a SubblockExecutor over
// it. vkDigestPath, if non-empty, is read once at startup (the subblock
// verifying-key digest named SUBBLOCK_VK_DIGEST_PATH) and folded into every
// agg_input this executor produces; an empty path leaves it unset.
func NewEthSubblockExecutor(ctx context.Context, httpURL, vkDigestPath string) (SubblockExecutor, error) {
	client, err := ethclient.DialContext(ctx, httpURL)
	if err != nil {
		return nil, fmt.Errorf("fetcher: dial execution client: %w", err)
	}
	e := &ethSubblockExecutor{client: client}
	if vkDigestPath != "" {
		digest, err := os.ReadFile(vkDigestPath)
		if err != nil {
			return nil, fmt.Errorf("fetcher: read subblock vk digest %s: %w", vkDigestPath, err)
		}
		e.subblockVKHash = digest
	}
	return e, nil
}

// GenerateInputs fetches the block by number and serializes it into a
// single-subblock ProvingInputs. A full decomposition into up to
// utils.MaxNumSubblocks subblocks is the ZK executor's job and out of scope
// here; this boundary only needs to produce something structurally valid
// for the proving client to dispatch.
func (e *ethSubblockExecutor) GenerateInputs(ctx context.Context, blockNumber uint64, isInputEmulated bool) (*inputs.ProvingInputs, error) {
	block, err := e.client.BlockByNumber(ctx, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		return nil, fmt.Errorf("fetcher: fetch block %d: %w", blockNumber, err)
	}

	agg := append(encodeHeader(block.Header()), e.subblockVKHash...)
	subblockInput := encodeBlockBody(block)

	if isInputEmulated {
		log.Debug("emulating subblock input", "block_number", blockNumber, "bytes", len(subblockInput))
	}

	p := &inputs.ProvingInputs{
		BlockNumber:          blockNumber,
		AggInput:             agg,
		SubblockInputs:       [][]byte{subblockInput},
		SubblockPublicValues: [][]byte{block.Header().Root.Bytes()},
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func encodeHeader(h *types.Header) []byte {
	b, _ := h.MarshalJSON()
	return b
}

func encodeBlockBody(b *types.Block) []byte {
	out := make([]byte, 0, len(b.Transactions())*64)
	for _, tx := range b.Transactions() {
		out = append(out, tx.Hash().Bytes()...)
	}
	return out
}
