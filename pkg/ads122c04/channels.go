package ads122c04

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// maxScanErrors stops a scan once this many errors have accumulated.
const maxScanErrors = 50

// DataCallback receives each parsed conversion of a scan.
type DataCallback func(input Mux, frame Frame)

// ChannelScan tracks one running ScanChannels goroutine.
type ChannelScan struct {
	Interval time.Duration
	done     *atomic.Bool
	running  *atomic.Bool
	inputs   []Mux
	callback DataCallback
	err      []error
	errMu    sync.Mutex
}

// NewChannelScan returns an idle scan. ScanChannels creates and starts one.
func NewChannelScan(interval time.Duration, inputs []Mux, onData DataCallback) *ChannelScan {
	return &ChannelScan{
		Interval: interval,
		done:     &atomic.Bool{},
		running:  &atomic.Bool{},
		inputs:   inputs,
		callback: onData,
		err:      make([]error, 0),
	}
}

func (cs *ChannelScan) addErr(err error) {
	if err == nil {
		return
	}
	cs.errMu.Lock()
	cs.err = append(cs.err, err)
	if len(cs.err) >= maxScanErrors {
		cs.done.Store(true)
	}
	cs.errMu.Unlock()
}

// Err returns the accumulated scan errors, or nil.
func (cs *ChannelScan) Err() error {
	cs.errMu.Lock()
	defer cs.errMu.Unlock()
	if len(cs.err) == 0 {
		return nil
	}
	return fmt.Errorf("channel scan errors: %w", errors.Join(cs.err...))
}

// Stop asks the scan to end after the current conversion.
func (cs *ChannelScan) Stop() {
	cs.done.Store(true)
}

// IsDone reports whether the scan has been stopped.
func (cs *ChannelScan) IsDone() bool {
	return cs.done.Load()
}

// Wait blocks until the scan goroutine has exited or ctx is done.
func (cs *ChannelScan) Wait(ctx context.Context) error {
	t := time.NewTicker(10 * time.Millisecond)
	defer t.Stop()

	for cs.running.Load() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}

	return cs.Err()
}

// scanInputs converts each input once. The device lock is held per input so
// other callers can interleave between conversions.
func (adc *ADS122C04) scanInputs(ctx context.Context, cs *ChannelScan) {
	for _, input := range cs.inputs {
		if cs.done.Load() || ctx.Err() != nil {
			return
		}

		adc.mu.Lock()

		r0 := DecodeRegister0(adc.regLW[Reg0])
		r0.Mux = input
		if err := adc.writeRegister(r0); err != nil {
			cs.addErr(err)
			adc.mu.Unlock()
			continue
		}

		cfg2, log := adc.cfg2, adc.log
		raw := getFrame(FrameLen(cfg2))
		err := adc.convert(ctx, raw)

		adc.mu.Unlock()

		if err != nil {
			putFrame(raw)
			if ctx.Err() == nil {
				cs.addErr(err)
			}
			continue
		}

		frame, err := ParseFrame(cfg2, raw)
		putFrame(raw)
		if err != nil {
			cs.addErr(fmt.Errorf("%s: %w", input, err))
			continue
		}

		log.Trace().Stringer("input", input).Int32("code", frame.Code()).Msg("scanned")

		cs.callback(input, frame)
	}
}

// ScanChannels cycles through inputs, running one single-shot conversion per
// input and handing the parsed frame to onData. Register 0 keeps the gain and
// PGA bypass of the last written value; only MUX changes.
//
// The scan runs in its own goroutine until ctx is cancelled, Stop is called,
// or maxScanErrors errors have accumulated.
func (adc *ADS122C04) ScanChannels(
	ctx context.Context,
	scanInterval time.Duration,
	onData DataCallback,
	inputs ...Mux,
) (*ChannelScan, error) {
	if len(inputs) == 0 {
		return nil, errors.New("no inputs to scan")
	}
	if onData == nil {
		return nil, errors.New("nil data callback")
	}

	cs := NewChannelScan(scanInterval, inputs, onData)
	cs.running.Store(true)

	go func() {
		defer cs.running.Store(false)
		defer cs.done.Store(true)

		t := time.NewTimer(0)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			if cs.done.Load() {
				return
			}
			adc.scanInputs(ctx, cs)
			if cs.done.Load() {
				return
			}
			t.Reset(cs.Interval)
		}
	}()

	return cs, nil
}
