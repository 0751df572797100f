package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/yunginnanet/ftdi-ads122c04/pkg/ads122c04"
	"github.com/yunginnanet/ftdi-ads122c04/pkg/ft232h"
)

var log zerolog.Logger

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stdout}
	log = zerolog.New(cw).With().Timestamp().Logger()
}

type options struct {
	bus     string
	i2cName string
	hz      int64
	addr    uint

	ftindex int
	serial  string
	pullup  bool
	drdy    int

	mux     string
	gain    string
	samples int
	debug   bool
}

func flags() options {
	var o options
	flag.StringVar(&o.bus, "bus", "ft232h", "I2C transport: ft232h or host")
	flag.StringVar(&o.i2cName, "i2c", "", "host I2C bus name (host transport, empty for first)")
	flag.Int64Var(&o.hz, "hz", 100000, "I2C clock in Hz")
	flag.UintVar(&o.addr, "addr", ads122c04.DefaultAddress, "ADS122C04 7-bit address")
	flag.IntVar(&o.ftindex, "FT232H", 0, "FT232H Index")
	flag.StringVar(&o.serial, "serial", "", "FT232H serial number (overrides -FT232H)")
	flag.BoolVar(&o.pullup, "pullup", false, "enable FT232H internal pull-ups on SCL/SDA")
	flag.IntVar(&o.drdy, "DRDY", -1, "Data Ready pin C<n> (FT232H GPIO, -1 to poll the register)")
	flag.StringVar(&o.mux, "mux", "A0A1", "input multiplexer")
	flag.StringVar(&o.gain, "gain", "x1", "PGA gain")
	flag.IntVar(&o.samples, "n", 10, "number of conversions")
	flag.BoolVar(&o.debug, "debug", false, "trace bus traffic")
	flag.Parse()
	return o
}

func parseMux(s string) (ads122c04.Mux, error) {
	for m := ads122c04.MuxA0A1; m <= ads122c04.MuxShorted; m++ {
		if strings.EqualFold(m.String(), s) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mux %q", s)
}

func parseGain(s string) (ads122c04.Gain, error) {
	for g := ads122c04.GainX1; g <= ads122c04.GainX128; g++ {
		if strings.EqualFold(g.String(), s) {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown gain %q", s)
}

// openBus returns the transport, a close func, and the FT232H when that is
// the transport in use.
func openBus(o options) (ads122c04.Bus, func() error, *ft232h.FT232H, error) {
	switch o.bus {
	case "ft232h":
		opts := ft232h.DefaultOptions()
		opts.Device = ft232h.ByIndex(o.ftindex)
		if o.serial != "" {
			opts.Device = ft232h.BySerial(o.serial)
		}
		opts.Speed = physic.Frequency(o.hz) * physic.Hertz
		if o.pullup {
			opts.Pull = gpio.PullUp
		}
		opts.DRDY = o.drdy

		ft, err := ft232h.ConnectFT232h(opts)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to FT232H: %w", err)
		}
		log.Info().Any("info", ft.Info()).Msgf("connected to FT232H: %s", ft)
		return ft.I2C(), ft.Close, ft, nil

	case "host":
		if _, err := host.Init(); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to initialize host drivers: %w", err)
		}
		bus, err := i2creg.Open(o.i2cName)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open I2C bus: %w", err)
		}
		if err = bus.SetSpeed(physic.Frequency(o.hz) * physic.Hertz); err != nil {
			log.Warn().Err(err).Msg("bus does not support setting the clock")
		}
		log.Info().Stringer("bus", bus).Msg("opened host I2C bus")
		return bus, bus.Close, nil, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown bus %q", o.bus)
	}
}

func main() {
	o := flags()

	if o.debug {
		log = log.Level(zerolog.TraceLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	cfg := ads122c04.DefaultConfig()

	var err error
	if cfg.Mux, err = parseMux(o.mux); err != nil {
		log.Fatal().Err(err).Msg("bad -mux")
	}
	if cfg.Gain, err = parseGain(o.gain); err != nil {
		log.Fatal().Err(err).Msg("bad -gain")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bus, closeBus, ft, err := openBus(o)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open bus")
	}

	if err = run(ctx, o, cfg, bus, ft); err != nil {
		log.Error().Err(err).Msg("ADS122C04 session failed")
	}

	if cerr := closeBus(); cerr != nil {
		log.Error().Err(cerr).Msg("failed to close bus")
	}

	if err != nil {
		os.Exit(1)
	}

	log.Info().Msg("closed ADS122C04")
}

func run(ctx context.Context, o options, cfg ads122c04.Config, bus ads122c04.Bus, ft *ft232h.FT232H) error {
	adc := ads122c04.NewADS122C04(bus, uint16(o.addr)).WithLogger(log)

	log.Debug().Any("config", cfg).Msg("initializing ADS122C04")
	if err := adc.Initialize(cfg); err != nil {
		return fmt.Errorf("failed to initialize ADS122C04: %w", err)
	}

	log.Info().Msg("initialized ADS122C04")

	regs, err := adc.ReadAllRegisters()
	if err != nil {
		return fmt.Errorf("failed to read ADS122C04 registers: %w", err)
	}

	log.Info().Any("values", regs).Msg("ADS122C04 Registers")

	usePin := ft != nil && o.drdy >= 0

	frame := make([]byte, ads122c04.FrameLen(regs.R2))

	for i := 0; i < o.samples; i++ {
		var raw []byte
		if usePin {
			err = pinConversion(ctx, adc, ft, frame)
			raw = frame
		} else {
			raw, err = adc.SingleConversion(ctx)
		}
		if err != nil {
			return fmt.Errorf("conversion %d: %w", i, err)
		}

		f, err := ads122c04.ParseFrame(regs.R2, raw)
		if err != nil {
			log.Warn().Err(err).Hex("raw", raw).Msg("bad frame")
			continue
		}

		ev := log.Info().Stringer("mux", cfg.Mux).Int32("code", f.Code())
		if f.HasCounter {
			ev = ev.Uint8("count", f.Counter)
		}
		ev.Msg("conversion")
	}

	if err = adc.PowerDown(); err != nil {
		return fmt.Errorf("failed to power down ADS122C04: %w", err)
	}
	return nil
}

// pinConversion starts a conversion and waits on the DRDY pin instead of
// polling register 2 over the bus.
func pinConversion(ctx context.Context, adc *ads122c04.ADS122C04, ft *ft232h.FT232H, buf []byte) error {
	if err := adc.StartSync(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := ft.WaitDRDY(ctx); err != nil {
		return err
	}
	return adc.ReadData(buf)
}
