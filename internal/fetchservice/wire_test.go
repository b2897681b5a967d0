package fetchservice

import (
	"reflect"
	"testing"

	"github.com/brevis-network/pico-ethproofs/internal/common/report"
)

func TestEncodeDecodeReportRoundTrip(t *testing.T) {
	r := &report.BlockProvingReport{
		BlockNumber:           100,
		Success:               true,
		Cycles:                99999,
		ProvingMilliseconds:   1234,
		DataFetchMilliseconds: 56,
		Proof:                 []byte{0xde, 0xad, 0xbe, 0xef},
	}
	got, err := decodeReport(encodeReport(r))
	if err != nil {
		t.Fatalf("decodeReport: %v", err)
	}
	if !reflect.DeepEqual(got, r) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, r)
	}
}

func TestEncodeDecodeReportNoProof(t *testing.T) {
	r := &report.BlockProvingReport{BlockNumber: 7, Success: false}
	got, err := decodeReport(encodeReport(r))
	if err != nil {
		t.Fatalf("decodeReport: %v", err)
	}
	if got.Proof != nil {
		t.Fatalf("expected nil proof, got %v", got.Proof)
	}
	if got.BlockNumber != 7 || got.Success {
		t.Fatalf("unexpected decode: %+v", got)
	}
}

func TestDecodeReportTooShort(t *testing.T) {
	if _, err := decodeReport([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for short frame")
	}
}
