// Package provingclient implements the proving client (C4): it serializes
// proof dispatch across blocks, retries requests and remote-worker
// connections, and recovers from stuck workers via a pluggable
// container-restart command, mirroring crates/proving-client/src/lib.rs.
package provingclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/brevis-network/pico-ethproofs/internal/common/channel"
	"github.com/brevis-network/pico-ethproofs/internal/common/inputs"
	"github.com/brevis-network/pico-ethproofs/internal/common/report"
	"github.com/brevis-network/pico-ethproofs/internal/messages"
	"github.com/brevis-network/pico-ethproofs/internal/rpcapi"
)

// Timing constants named directly in §5.
const (
	ClientRetryInterval         = 2 * time.Second
	ProvingRequestRetryInterval = 10 * time.Second
	MaxProvingRequestRetries    = 50
	MaxProvingWaiting           = 120 * time.Second
	DockerRetryWait             = 10 * time.Second
)

// DefaultMaxRecoveryAttempts bounds how many consecutive recoveries the
// client will attempt for the same in-flight block before escalating to a
// fatal error, per SPEC_FULL.md's resolution of spec.md's open question on
// watchdog reset behavior. The prototype recovers forever; we cap it so a
// permanently wedged worker fleet surfaces to the operator instead of
// looping silently.
const DefaultMaxRecoveryAttempts = 10

// RunCommand executes the container-restart command. The default
// implementation shells out via os/exec; tests inject a fake.
type RunCommand func(ctx context.Context, name string, args ...string) error

// Stubs bundles the live gRPC client stubs and their closers for one
// worker fleet (one aggregator + N subblock workers).
type Stubs struct {
	Agg            rpcapi.AggregatorClient
	AggCloser      Closer
	Subblock       []rpcapi.SubblockClient
	SubblockCloser []Closer
}

// Closer matches grpc.ClientConn's Close method, narrowed so tests can
// supply a fake without dialing real connections.
type Closer interface {
	Close() error
}

// Dialer builds worker stubs. The default implementation dials real gRPC
// connections via rpcapi.Dial; tests inject a fake that returns in-memory
// stubs.
type Dialer interface {
	DialAggregator(ctx context.Context, url string, maxMsgBytes int) (rpcapi.AggregatorClient, Closer, error)
	DialSubblock(ctx context.Context, url string, maxMsgBytes int) (rpcapi.SubblockClient, Closer, error)
}

// Config bundles the proving client's static configuration.
type Config struct {
	AggURL              string
	SubblockURLs        []string
	MaxGRPCMsgBytes     int
	RecoveryCommand     []string
	MaxRecoveryAttempts int
}

// ProvingClient implements §4.4.
type ProvingClient struct {
	cfg      Config
	endpoint *messages.ProvingEndpoint
	dialer   Dialer
	runCmd   RunCommand

	// clientRetryInterval and dockerRetryWait default to the package
	// constants of the same timing; tests shrink them to keep runtime
	// bounded without changing the state machine under test.
	clientRetryInterval time.Duration
	dockerRetryWait     time.Duration

	stubs Stubs

	inFlight         *report.BlockProvingReport
	lastInputs       *inputs.ProvingInputs
	pending          []messages.ProvingMsg
	recoveryAttempts int
}

// New builds a ProvingClient. dialer and runCmd may be nil to use the
// production defaults (real gRPC dials, os/exec).
func New(cfg Config, endpoint *messages.ProvingEndpoint, dialer Dialer, runCmd RunCommand) *ProvingClient {
	if cfg.MaxRecoveryAttempts <= 0 {
		cfg.MaxRecoveryAttempts = DefaultMaxRecoveryAttempts
	}
	if dialer == nil {
		dialer = grpcDialer{}
	}
	if runCmd == nil {
		runCmd = execRunCommand
	}
	return &ProvingClient{
		cfg:                  cfg,
		endpoint:             endpoint,
		dialer:               dialer,
		runCmd:               runCmd,
		clientRetryInterval: ClientRetryInterval,
		dockerRetryWait:     DockerRetryWait,
	}
}

// Run performs startup connect-with-retry, then the main loop from §4.4.
// It returns when ctx is canceled or a fatal condition is hit (in which
// case the error is non-nil and the caller is expected to log.Crit).
func (c *ProvingClient) Run(ctx context.Context) error {
	if err := c.connectAll(ctx); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msg, err := c.endpoint.RecvTimeout(MaxProvingWaiting)
		switch {
		case err == nil:
			if err := c.handleMessage(ctx, msg); err != nil {
				return err
			}
		case isTimeout(err):
			if c.inFlight != nil {
				if err := c.recover(ctx); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("provingclient: receive error: %w", err)
		}
	}
}

func (c *ProvingClient) handleMessage(ctx context.Context, msg *messages.BlockMsg) error {
	switch msg.Kind {
	case messages.KindProving:
		if c.inFlight == nil {
			c.inFlight = msg.Proving.FetchReport
			c.lastInputs = msg.Proving.ProvingInputs
			c.recoveryAttempts = 0
			return c.dispatch(ctx, c.lastInputs)
		}
		c.pending = append(c.pending, msg.Proving)
		return nil

	case messages.KindProved:
		if c.inFlight == nil || msg.Proved.BlockNumber != c.inFlight.BlockNumber {
			log.Error("provingclient: proved result for unexpected block, terminating", "want", blockNumberOrZero(c.inFlight), "got", msg.Proved.BlockNumber)
			return fmt.Errorf("provingclient: proved result block mismatch: in-flight=%d got=%d", blockNumberOrZero(c.inFlight), msg.Proved.BlockNumber)
		}
		if msg.Proved.Success {
			c.inFlight.OnProvingSuccess(msg.Proved.Cycles, msg.Proved.ProvingMilliseconds, msg.Proved.Proof)
		} else {
			c.inFlight.OnProvingFailure()
		}
		c.endpoint.Send(messages.NewReport(*c.inFlight))
		c.inFlight = nil
		c.lastInputs = nil
		c.recoveryAttempts = 0

		if len(c.pending) > 0 {
			next := c.pending[0]
			c.pending = c.pending[1:]
			c.inFlight = next.FetchReport
			c.lastInputs = next.ProvingInputs
			return c.dispatch(ctx, c.lastInputs)
		}
		return nil

	default:
		log.Error("provingclient: unexpected message variant, terminating", "kind", msg.Kind)
		return fmt.Errorf("provingclient: unexpected message variant %v", msg.Kind)
	}
}

func blockNumberOrZero(r *report.BlockProvingReport) uint64 {
	if r == nil {
		return 0
	}
	return r.BlockNumber
}

func isTimeout(err error) bool {
	return errors.Is(err, channel.ErrTimeout)
}
