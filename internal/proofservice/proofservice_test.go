package proofservice

import (
	"context"
	"testing"
	"time"

	"github.com/brevis-network/pico-ethproofs/internal/messages"
	"github.com/brevis-network/pico-ethproofs/internal/rpcapi"
)

func TestCompleteProvingForwardsProved(t *testing.T) {
	upstream := messages.NewBlockMsgQueue()
	svc := New(upstream)

	in := &rpcapi.CompleteProvingResult{
		BlockNumber:         42,
		Success:             true,
		Cycles:              1000,
		ProvingMilliseconds: 2500,
		Proof:               []byte{1, 2, 3},
	}
	out, err := svc.CompleteProving(context.Background(), in)
	if err != nil {
		t.Fatalf("CompleteProving: %v", err)
	}
	if out == nil {
		t.Fatal("expected non-nil Empty response")
	}

	msg, err := upstream.RecvTimeout(time.Second)
	if err != nil {
		t.Fatalf("expected forwarded message: %v", err)
	}
	if msg.Kind != messages.KindProved {
		t.Fatalf("expected KindProved, got %v", msg.Kind)
	}
	if msg.Proved.BlockNumber != 42 || !msg.Proved.Success || msg.Proved.Cycles != 1000 {
		t.Fatalf("unexpected proved payload: %+v", msg.Proved)
	}
}
