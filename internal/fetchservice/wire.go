package fetchservice

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/brevis-network/pico-ethproofs/internal/common/report"
)

// encodeReport serializes r per §6's binary frame layout, field order as
// declared: success u8 (0|1), block_number u64 LE, cycles u64 LE,
// proving_milliseconds u64 LE, data_fetch_milliseconds u64 LE, proof as an
// optional byte string prefixed by its u64 LE length (zero length doubling
// as "absent", since an empty proof and a missing one are indistinguishable
// to any consumer that only checks success).
func encodeReport(r *report.BlockProvingReport) []byte {
	buf := new(bytes.Buffer)
	buf.Grow(1 + 8*4 + 8 + len(r.Proof))

	var success byte
	if r.Success {
		success = 1
	}
	buf.WriteByte(success)

	var scratch [8]byte
	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(scratch[:], v)
		buf.Write(scratch[:])
	}
	writeU64(r.BlockNumber)
	writeU64(r.Cycles)
	writeU64(r.ProvingMilliseconds)
	writeU64(r.DataFetchMilliseconds)
	writeU64(uint64(len(r.Proof)))
	buf.Write(r.Proof)

	return buf.Bytes()
}

// decodeReport is the inverse of encodeReport, used by this package's tests;
// cmd/testclient carries its own independent decoder.
func decodeReport(b []byte) (*report.BlockProvingReport, error) {
	const fixedLen = 1 + 8*4 + 8
	if len(b) < fixedLen {
		return nil, fmt.Errorf("fetchservice: report frame too short: %d bytes", len(b))
	}
	r := &report.BlockProvingReport{Success: b[0] != 0}
	off := 1
	readU64 := func() uint64 {
		v := binary.LittleEndian.Uint64(b[off : off+8])
		off += 8
		return v
	}
	r.BlockNumber = readU64()
	r.Cycles = readU64()
	r.ProvingMilliseconds = readU64()
	r.DataFetchMilliseconds = readU64()
	proofLen := readU64()
	if uint64(len(b)-off) < proofLen {
		return nil, fmt.Errorf("fetchservice: report frame proof length %d exceeds remaining %d bytes", proofLen, len(b)-off)
	}
	if proofLen > 0 {
		r.Proof = append([]byte(nil), b[off:off+int(proofLen)]...)
	}
	return r, nil
}
