package main

import (
	"encoding/binary"
	"fmt"

	"github.com/brevis-network/pico-ethproofs/internal/common/report"
)

// decodeReport is the reference test client's independent decoder for the
// binary frame layout named in §6: success u8, block_number/cycles/
// proving_milliseconds/data_fetch_milliseconds as u64 LE, then an optional
// proof prefixed by its u64 LE length. It is written against the wire
// contract directly rather than importing the server's codec, the way a
// real external client would.
func decodeReport(b []byte) (*report.BlockProvingReport, error) {
	const fixedLen = 1 + 8*4 + 8
	if len(b) < fixedLen {
		return nil, fmt.Errorf("testclient: report frame too short: %d bytes", len(b))
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
		return nil, fmt.Errorf("testclient: report frame proof length %d exceeds remaining %d bytes", proofLen, len(b)-off)
	}
	if proofLen > 0 {
		r.Proof = append([]byte(nil), b[off:off+int(proofLen)]...)
	}
	return r, nil
}
