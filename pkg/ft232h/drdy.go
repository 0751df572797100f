package ft232h

import (
	"context"
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

var ErrDRDYUnset = errors.New("DRDY pin not set")

const drdyPoll = 100 * time.Microsecond

// setDRDY configures ACBUS pin C<n> as an input. The header lists D0-D7 then
// C0-C9.
func (ft *FT232H) setDRDY(n int) error {
	hdr := ft.dev.Header()
	if n > 9 || 8+n >= len(hdr) {
		return fmt.Errorf("no ACBUS pin C%d", n)
	}
	pin := hdr[8+n]
	if err := pin.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return fmt.Errorf("failed to configure DRDY pin %s: %w", pin, err)
	}
	ft.drdy = pin
	return nil
}

// WaitDRDY polls the active-low DRDY pin until it reads low or ctx is done.
func (ft *FT232H) WaitDRDY(ctx context.Context) error {
	if ft.drdy == nil {
		return ErrDRDYUnset
	}
	return waitLow(ctx, ft.drdy, drdyPoll)
}

func waitLow(ctx context.Context, pin gpio.PinIn, every time.Duration) error {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		if pin.Read() == gpio.Low {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
