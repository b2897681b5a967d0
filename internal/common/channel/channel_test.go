package channel

import (
	"sync"
	"testing"
	"time"
)

func TestUnboundedFIFO(t *testing.T) {
	c := NewUnbounded[int]()
	for i := 0; i < 5; i++ {
		c.Send(i)
	}
	for i := 0; i < 5; i++ {
		v, err := c.Recv()
		if err != nil {
			t.Fatalf("Recv: %v", err)
		}
		if v != i {
			t.Fatalf("got %d, want %d", v, i)
		}
	}
}

func TestUnboundedBlocksUntilSend(t *testing.T) {
	c := NewUnbounded[string]()
	done := make(chan string, 1)
	go func() {
		v, err := c.Recv()
		if err != nil {
			t.Error(err)
			return
		}
		done <- v
	}()

	time.Sleep(20 * time.Millisecond)
	c.Send("hello")

	select {
	case v := <-done:
		if v != "hello" {
			t.Fatalf("got %q", v)
		}
	case <-time.After(time.Second):
		t.Fatal("Recv did not unblock after Send")
	}
}

func TestUnboundedCloseUnblocksRecv(t *testing.T) {
	c := NewUnbounded[int]()
	errCh := make(chan error, 1)
	go func() {
		_, err := c.Recv()
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	c.Close()

	select {
	case err := <-errCh:
		if err != ErrClosed {
			t.Fatalf("got %v, want ErrClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Recv did not unblock after Close")
	}
}

func TestUnboundedCloseDrainsQueueFirst(t *testing.T) {
	c := NewUnbounded[int]()
	c.Send(1)
	c.Send(2)
	c.Close()

	v, err := c.Recv()
	if err != nil || v != 1 {
		t.Fatalf("got %d, %v", v, err)
	}
	v, err = c.Recv()
	if err != nil || v != 2 {
		t.Fatalf("got %d, %v", v, err)
	}
	if _, err := c.Recv(); err != ErrClosed {
		t.Fatalf("got %v, want ErrClosed", err)
	}
}

func TestUnboundedTryRecv(t *testing.T) {
	c := NewUnbounded[int]()
	if _, ok := c.TryRecv(); ok {
		t.Fatal("TryRecv on empty channel returned ok")
	}
	c.Send(7)
	v, ok := c.TryRecv()
	if !ok || v != 7 {
		t.Fatalf("got %d, %v", v, ok)
	}
}

func TestUnboundedConcurrentSenders(t *testing.T) {
	c := NewUnbounded[int]()
	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Send(i)
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool)
	for i := 0; i < n; i++ {
		v, err := c.Recv()
		if err != nil {
			t.Fatalf("Recv: %v", err)
		}
		seen[v] = true
	}
	if len(seen) != n {
		t.Fatalf("got %d distinct values, want %d", len(seen), n)
	}
}

func TestUnboundedRecvTimeoutExpires(t *testing.T) {
	c := NewUnbounded[int]()
	_, err := c.RecvTimeout(20 * time.Millisecond)
	if err != ErrTimeout {
		t.Fatalf("got %v, want ErrTimeout", err)
	}
}

func TestUnboundedRecvTimeoutReturnsValue(t *testing.T) {
	c := NewUnbounded[int]()
	c.Send(5)
	v, err := c.RecvTimeout(time.Second)
	if err != nil || v != 5 {
		t.Fatalf("got %d, %v", v, err)
	}
}

func TestDuplexPair(t *testing.T) {
	e1, e2 := NewDuplexPair[string, int]()

	e1.Send("ping")
	v, err := e2.Recv()
	if err != nil || v != "ping" {
		t.Fatalf("got %q, %v", v, err)
	}

	e2.Send(42)
	n, err := e1.Recv()
	if err != nil || n != 42 {
		t.Fatalf("got %d, %v", n, err)
	}
}
