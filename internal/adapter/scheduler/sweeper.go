package scheduler

import (
	"context"
	"log"
	"time"

	"creditpool/internal/usecase/ledger"
)

// Sweeper is the slice of the ledger the scheduler drives.
type Sweeper interface {
	SweepOverdueLoans(ctx context.Context) (*ledger.SweepResult, error)
}

// RunSweeper marks overdue loans on a fixed period until ctx is done.
// Callers run it in its own goroutine.
func RunSweeper(ctx context.Context, s Sweeper, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			res, err := s.SweepOverdueLoans(ctx)
			if err != nil {
				log.Printf("sweeper: sweep failed: %v", err)
				continue
			}
			if res.Struck > 0 || res.Defaulted > 0 {
				log.Printf("sweeper: checked=%d struck=%d defaulted=%d", res.Checked, res.Struck, res.Defaulted)
			}
		}
	}
}
