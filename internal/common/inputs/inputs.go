// Package inputs holds ProvingInputs, the unit of work handed from the
// fetcher to the proving client, and its on-disk dump/load format,
// mirroring crates/common/src/inputs.rs and the subblock executor's
// dump_to_dir/load_from_dir pair.
package inputs

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	putils "github.com/brevis-network/pico-ethproofs/internal/common/utils"
)

// gasDirLiteral is the fixed, undocumented segment of the dump path. The
// Rust prototype hard-codes it without explanation; flagged in SPEC_FULL.md
// as an open question (possibly a gas-limit discriminator from an earlier
// multi-gas-limit design) and preserved verbatim rather than guessed at.
const gasDirLiteral = "gas10000000"

const (
	publicValuesFile  = "public_values.bin"
	aggStdinFile      = "final_aggregator_stdin_builder.bin"
	subblockStdinFile = "subblock_stdin_builder_%d.bin"
)

// ProvingInputs is the unit of work handed to the remote provers.
type ProvingInputs struct {
	BlockNumber          uint64
	AggInput             []byte
	SubblockInputs       [][]byte
	SubblockPublicValues [][]byte
}

// Validate enforces the invariant len(SubblockInputs) == len(SubblockPublicValues)
// in [1, MaxNumSubblocks].
func (p *ProvingInputs) Validate() error {
	n := len(p.SubblockInputs)
	if n != len(p.SubblockPublicValues) {
		return fmt.Errorf("inputs: subblock_inputs has %d entries but subblock_public_values has %d", n, len(p.SubblockPublicValues))
	}
	if n < 1 || n > putils.MaxNumSubblocks {
		return fmt.Errorf("inputs: block %d has %d subblocks, want between 1 and %d", p.BlockNumber, n, putils.MaxNumSubblocks)
	}
	return nil
}

// blockDir returns <root>/block<N>/gas10000000.
func blockDir(root string, blockNumber uint64) string {
	return filepath.Join(root, fmt.Sprintf("block%d", blockNumber), gasDirLiteral)
}

// DumpToDir serializes the proving inputs under <root>/block<N>/gas10000000/,
// writing public_values.bin, final_aggregator_stdin_builder.bin and one
// subblock_stdin_builder_<i>.bin per subblock.
func (p *ProvingInputs) DumpToDir(root string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	dir := blockDir(root, p.BlockNumber)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("inputs: failed to create dump dir %s: %w", dir, err)
	}

	publicValues := encodeByteSlices(p.SubblockPublicValues)
	if err := os.WriteFile(filepath.Join(dir, publicValuesFile), publicValues, 0o644); err != nil {
		return fmt.Errorf("inputs: failed to write %s: %w", publicValuesFile, err)
	}
	if err := os.WriteFile(filepath.Join(dir, aggStdinFile), p.AggInput, 0o644); err != nil {
		return fmt.Errorf("inputs: failed to write %s: %w", aggStdinFile, err)
	}
	for i, sb := range p.SubblockInputs {
		name := fmt.Sprintf(subblockStdinFile, i)
		if err := os.WriteFile(filepath.Join(dir, name), sb, 0o644); err != nil {
			return fmt.Errorf("inputs: failed to write %s: %w", name, err)
		}
	}
	return nil
}

// LoadFromDir is the dual of DumpToDir, used by the reproduce sub-fetcher.
// It fails if any expected file is missing.
func LoadFromDir(blockNumber uint64, root string) (*ProvingInputs, error) {
	dir := blockDir(root, blockNumber)

	publicValuesRaw, err := os.ReadFile(filepath.Join(dir, publicValuesFile))
	if err != nil {
		return nil, fmt.Errorf("inputs: failed to read %s: %w", publicValuesFile, err)
	}
	subblockPublicValues, err := decodeByteSlices(publicValuesRaw)
	if err != nil {
		return nil, fmt.Errorf("inputs: failed to decode %s: %w", publicValuesFile, err)
	}

	aggInput, err := os.ReadFile(filepath.Join(dir, aggStdinFile))
	if err != nil {
		return nil, fmt.Errorf("inputs: failed to read %s: %w", aggStdinFile, err)
	}

	subblockInputs := make([][]byte, len(subblockPublicValues))
	for i := range subblockInputs {
		name := fmt.Sprintf(subblockStdinFile, i)
		sb, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("inputs: failed to read %s: %w", name, err)
		}
		subblockInputs[i] = sb
	}

	p := &ProvingInputs{
		BlockNumber:          blockNumber,
		AggInput:             aggInput,
		SubblockInputs:       subblockInputs,
		SubblockPublicValues: subblockPublicValues,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// encodeByteSlices/decodeByteSlices give [][]byte a simple self-describing
// length-prefixed encoding (u64 count, then per-entry u64 length + bytes),
// used for the public_values.bin dump file.
func encodeByteSlices(values [][]byte) []byte {
	var out []byte
	var lenBuf [8]byte

	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(values)))
	out = append(out, lenBuf[:]...)
	for _, v := range values {
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(v)))
		out = append(out, lenBuf[:]...)
		out = append(out, v...)
	}
	return out
}

func decodeByteSlices(data []byte) ([][]byte, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("inputs: truncated length-prefixed payload")
	}
	count := binary.LittleEndian.Uint64(data[:8])
	data = data[8:]

	out := make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		if len(data) < 8 {
			return nil, fmt.Errorf("inputs: truncated entry %d", i)
		}
		n := binary.LittleEndian.Uint64(data[:8])
		data = data[8:]
		if uint64(len(data)) < n {
			return nil, fmt.Errorf("inputs: truncated entry %d body", i)
		}
		out = append(out, append([]byte(nil), data[:n]...))
		data = data[n:]
	}
	return out, nil
}
