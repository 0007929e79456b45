package engine

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Hz int
	// Frames stops the runner after N frames (0 = until closed).
	Frames uint64
}

// RunHeadless steps the loop on a ticker without opening a window. It
// returns nil once the loop closes or the frame budget is spent.
func RunHeadless(ctx context.Context, loop *FrameLoop, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()
	defer loop.Finish()

	var frames uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if !loop.Step() {
				return nil
			}
			frames++
			if cfg.Frames > 0 && frames >= cfg.Frames {
				return nil
			}
		}
	}
}
