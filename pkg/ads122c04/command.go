package ads122c04

import (
	"context"
	"time"
)

func (adc *ADS122C04) sendCommand(cmd byte) error {
	adc.w[0] = cmd
	if err := adc.write(adc.w[:1]); err != nil {
		return err
	}

	if cmd == CMDReset {
		// RESET restores the power-on register values.
		adc.regLW = [NumRegisters]byte{}
		adc.cfg2 = Register2{}
	}

	return nil
}

// Reset returns the device to its power-on configuration.
func (adc *ADS122C04) Reset() error {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	return adc.sendCommand(CMDReset)
}

// StartSync starts or restarts conversions. In single-shot mode each call
// produces one conversion.
func (adc *ADS122C04) StartSync() error {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	return adc.sendCommand(CMDStartSync)
}

// PowerDown enters power-down mode. A later StartSync wakes the device.
func (adc *ADS122C04) PowerDown() error {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	return adc.sendCommand(CMDPowerDown)
}

// ReadData issues RDATA and reads len(buf) bytes of conversion data into buf.
// The bytes are not interpreted; see FrameLen and ParseFrame.
func (adc *ADS122C04) ReadData(buf []byte) error {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	return adc.readData(buf)
}

func (adc *ADS122C04) readData(buf []byte) error {
	adc.w[0] = CMDRData
	return adc.writeRead(adc.w[:1], buf)
}

// ReadDataReady reports whether new conversion data is available (DRDY, bit 7
// of register 2).
func (adc *ADS122C04) ReadDataReady() (bool, error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	return adc.readDataReady()
}

func (adc *ADS122C04) readDataReady() (bool, error) {
	buf := get1Byte()
	defer put1Byte(buf)

	adc.w[0] = CMDRDataReady
	if err := adc.writeRead(adc.w[:1], buf); err != nil {
		return false, err
	}
	return buf[0]&Reg2DRDYBit != 0, nil
}

// SingleConversion issues START/SYNC, polls DRDY until a result is available
// and reads one frame sized for the last known register 2 configuration.
// It returns ctx.Err() if ctx is done before the conversion completes.
func (adc *ADS122C04) SingleConversion(ctx context.Context) ([]byte, error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()

	buf := make([]byte, FrameLen(adc.cfg2))
	if err := adc.convert(ctx, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (adc *ADS122C04) convert(ctx context.Context, buf []byte) error {
	if err := adc.sendCommand(CMDStartSync); err != nil {
		return err
	}

	if err := adc.waitDataReady(ctx); err != nil {
		return err
	}

	return adc.readData(buf)
}

func (adc *ADS122C04) waitDataReady(ctx context.Context) error {
	t := time.NewTimer(adc.pollInterval)
	defer t.Stop()

	for {
		ready, err := adc.readDataReady()
		if err != nil {
			return err
		}
		if ready {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			t.Reset(adc.pollInterval)
		}
	}
}
