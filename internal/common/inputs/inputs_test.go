package inputs

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func sample() *ProvingInputs {
	return &ProvingInputs{
		BlockNumber:          100,
		AggInput:             []byte("agg-input-bytes"),
		SubblockInputs:       [][]byte{[]byte("sb0"), []byte("sb1"), []byte("sb2")},
		SubblockPublicValues: [][]byte{[]byte("pv0"), []byte("pv1"), []byte("pv2")},
	}
}

func TestValidate(t *testing.T) {
	p := sample()
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.SubblockPublicValues = p.SubblockPublicValues[:2]
	if err := p.Validate(); err == nil {
		t.Fatal("expected error on mismatched lengths")
	}

	p2 := sample()
	p2.SubblockInputs = nil
	p2.SubblockPublicValues = nil
	if err := p2.Validate(); err == nil {
		t.Fatal("expected error on zero subblocks")
	}
}

func TestDumpAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := sample()

	if err := p.DumpToDir(dir); err != nil {
		t.Fatalf("DumpToDir: %v", err)
	}

	expectedDir := filepath.Join(dir, "block100", "gas10000000")
	if _, err := os.Stat(expectedDir); err != nil {
		t.Fatalf("expected dump dir %s to exist: %v", expectedDir, err)
	}

	loaded, err := LoadFromDir(p.BlockNumber, dir)
	if err != nil {
		t.Fatalf("LoadFromDir: %v", err)
	}

	if loaded.BlockNumber != p.BlockNumber {
		t.Fatalf("block number mismatch: %d != %d", loaded.BlockNumber, p.BlockNumber)
	}
	if !reflect.DeepEqual(loaded.AggInput, p.AggInput) {
		t.Fatalf("agg input mismatch")
	}
	if !reflect.DeepEqual(loaded.SubblockInputs, p.SubblockInputs) {
		t.Fatalf("subblock inputs mismatch")
	}
	if !reflect.DeepEqual(loaded.SubblockPublicValues, p.SubblockPublicValues) {
		t.Fatalf("subblock public values mismatch")
	}
}

func TestLoadFromDirMissingFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadFromDir(999, dir); err == nil {
		t.Fatal("expected error loading from a directory with no dumped files")
	}
}

