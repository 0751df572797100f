package ft232h

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/ftdi"
)

var ErrNotFound = errors.New("FT232H not found by host driver")

// Options configures an FT232H as the I2C controller for one ADC.
//
// The MPSSE engine drives the bus on ADBUS: D0 is SCL, D1 and D2 are tied
// together as SDA.
type Options struct {
	Device Descriptor

	// Speed is the SCL frequency. Zero keeps the driver default.
	Speed physic.Frequency

	// Pull is gpio.Float with external pull-ups, or gpio.PullUp.
	Pull gpio.Pull

	// DRDY is the ACBUS pin C<n> wired to the ADC's DRDY output; -1 for none.
	DRDY int
}

func DefaultOptions() Options {
	return Options{
		Device: ByIndex(0),
		Speed:  100 * physic.KiloHertz,
		Pull:   gpio.Float,
		DRDY:   -1,
	}
}

// FT232H is an FT232H running as an I2C controller, optionally with the ADC's
// DRDY line on an ACBUS pin.
type FT232H struct {
	info DeviceInfo
	dev  *ftdi.FT232H
	bus  i2c.BusCloser
	drdy gpio.PinIn
}

// ConnectFT232h identifies the device opts.Device selects, hands it to the
// periph host driver and opens its I2C bus. The host driver keeps every FTDI
// device open once initialized, so call it once per process and before
// anything else runs host.Init.
func ConnectFT232h(opts Options) (*FT232H, error) {
	info, err := discover(opts.Device)
	if err != nil {
		return nil, err
	}

	if _, err = host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize host drivers: %w", err)
	}

	all := ftdi.All()
	i, err := pick(len(all), func(i int) string {
		var ee ftdi.EEPROM
		if all[i].EEPROM(&ee) != nil {
			return ""
		}
		return ee.Serial
	}, info)
	if err != nil {
		return nil, err
	}

	dev, ok := all[i].(*ftdi.FT232H)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an FT232H", ErrNotFound, all[i])
	}

	ft := &FT232H{info: info, dev: dev}

	if ft.bus, err = dev.I2C(opts.Pull); err != nil {
		return nil, fmt.Errorf("failed to open I2C on %s: %w", dev, err)
	}

	if opts.Speed > 0 {
		if err = ft.bus.SetSpeed(opts.Speed); err != nil {
			return nil, errors.Join(fmt.Errorf("failed to set I2C speed: %w", err), ft.bus.Close())
		}
	}

	if opts.DRDY >= 0 {
		if err = ft.setDRDY(opts.DRDY); err != nil {
			return nil, errors.Join(err, ft.bus.Close())
		}
	}

	return ft, nil
}

// Info returns what discovery learned about the device.
func (ft *FT232H) Info() DeviceInfo {
	return ft.info
}

func (ft *FT232H) String() string {
	return fmt.Sprintf("FT232H[%s:%s]: %s (%s)", ft.info.VendorID, ft.info.ProductID, ft.info.Description, ft.info.Serial)
}

// I2C returns the bus opened by ConnectFT232h.
func (ft *FT232H) I2C() i2c.Bus {
	return ft.bus
}

// Close releases the I2C bus.
func (ft *FT232H) Close() error {
	return ft.bus.Close()
}
