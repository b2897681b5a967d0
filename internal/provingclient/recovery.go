package provingclient

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/ethereum/go-ethereum/log"
)

// execRunCommand is the production RunCommand: os/exec.
func execRunCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Run()
}

// recover implements §4.4's Recovery(inputs): restart the worker
// containers, wait, reconnect, and re-dispatch the in-flight inputs. It
// never touches inFlight; it only re-sends lastInputs. Escalates to a
// fatal error once MaxRecoveryAttempts is exceeded for the same block,
// per SPEC_FULL.md's bounded-recovery-budget redesign.
func (c *ProvingClient) recover(ctx context.Context) error {
	c.recoveryAttempts++
	if c.recoveryAttempts > c.cfg.MaxRecoveryAttempts {
		log.Error("provingclient: recovery budget exhausted, terminating", "block_number", c.inFlight.BlockNumber, "attempts", c.recoveryAttempts)
		return fmt.Errorf("provingclient: recovery budget exhausted for block %d", c.inFlight.BlockNumber)
	}

	log.Warn("provingclient: proving watchdog expired, recovering", "block_number", c.inFlight.BlockNumber, "attempt", c.recoveryAttempts)

	if len(c.cfg.RecoveryCommand) > 0 {
		if err := c.runCmd(ctx, c.cfg.RecoveryCommand[0], c.cfg.RecoveryCommand[1:]...); err != nil {
			log.Error("provingclient: container restart command failed, terminating", "err", err)
			return fmt.Errorf("provingclient: container restart failed: %w", err)
		}
	}

	select {
	case <-time.After(c.dockerRetryWait):
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := c.reconnectAll(ctx); err != nil {
		return err
	}

	return c.dispatch(ctx, c.lastInputs)
}
