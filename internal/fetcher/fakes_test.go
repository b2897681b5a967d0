package fetcher

import (
	"context"
	"fmt"

	"github.com/brevis-network/pico-ethproofs/internal/common/inputs"
)

type fakeExecutor struct {
	failBlocks map[uint64]bool
}

func (f *fakeExecutor) GenerateInputs(_ context.Context, blockNumber uint64, _ bool) (*inputs.ProvingInputs, error) {
	if f.failBlocks[blockNumber] {
		return nil, fmt.Errorf("fake executor: forced failure for block %d", blockNumber)
	}
	return &inputs.ProvingInputs{
		BlockNumber:          blockNumber,
		AggInput:             []byte("agg"),
		SubblockInputs:       [][]byte{[]byte("sb0")},
		SubblockPublicValues: [][]byte{[]byte("pv0")},
	}, nil
}
