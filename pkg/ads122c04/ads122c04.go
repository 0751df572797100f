package ads122c04

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/i2c"
	"tinygo.org/x/drivers"
)

// Bus is the I2C transport. Tx writes w and then, if r is not empty, reads
// len(r) bytes with a repeated start, without releasing the bus in between.
//
// Timeouts, retries and arbitration belong to the Bus implementation; errors
// are returned to the caller unmodified.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

var (
	_ Bus = i2c.Bus(nil)
	_ Bus = drivers.I2C(nil)
)

// ErrConfigMismatch is returned by Initialize when the read back differs.
var ErrConfigMismatch = errors.New("register read back does not match written value")

// ADS122C04 provides high-level control over a TI ADS122C04 ADC.
//
// The device owns its Bus for its whole lifetime. Methods are serialized
// internally, but callers sharing one Bus between devices must arbitrate
// access themselves.
type ADS122C04 struct {
	mu   sync.Mutex
	bus  Bus
	addr uint16
	log  zerolog.Logger

	w [2]byte

	// Last read or written register states (for reference or debugging)
	regLR [NumRegisters]byte // "Last Read"  register data
	regLW [NumRegisters]byte // "Last Write" register data

	// frame configuration used to size RDATA reads in SingleConversion
	cfg2 Register2

	pollInterval time.Duration
}

// Config represents user-level configuration parameters.
type Config struct {
	Mux       Mux
	Gain      Gain
	PGABypass bool

	DataRate          DataRate
	ConversionMode    ConversionMode
	VoltageReference  Vref
	TemperatureSensor bool

	DataCountEnable   bool
	DataIntegrityMode DataIntegrityMode
	BurnOutSource     bool
	CurrentDac        CurrentDac

	CurrentMux1 CurrentMux
	CurrentMux2 CurrentMux

	// PollInterval is the delay between DRDY polls in SingleConversion.
	// Zero keeps the current interval.
	PollInterval time.Duration
}

// DefaultConfig provides default config. You can adjust as needed
func DefaultConfig() Config {
	return Config{
		Mux:               MuxA0A1,
		Gain:              GainX1,
		DataRate:          DataRateN20,
		ConversionMode:    ConversionSingle,
		VoltageReference:  VrefInternal,
		DataIntegrityMode: IntegrityDisabled,
		CurrentDac:        IDACOff,
		CurrentMux1:       IMuxDisabled,
		CurrentMux2:       IMuxDisabled,
		PollInterval:      defaultPollInterval,
	}
}

// Registers returns the register values described by cfg.
func (cfg Config) Registers() Registers {
	return Registers{
		R0: Register0{Mux: cfg.Mux, Gain: cfg.Gain, PGABypass: cfg.PGABypass},
		R1: Register1{
			DataRate:          cfg.DataRate,
			ConversionMode:    cfg.ConversionMode,
			VoltageReference:  cfg.VoltageReference,
			TemperatureSensor: cfg.TemperatureSensor,
		},
		R2: Register2{
			DataCountEnable:   cfg.DataCountEnable,
			DataIntegrityMode: cfg.DataIntegrityMode,
			BurnOutSource:     cfg.BurnOutSource,
			CurrentDac:        cfg.CurrentDac,
		},
		R3: Register3{CurrentMux1: cfg.CurrentMux1, CurrentMux2: cfg.CurrentMux2},
	}
}

// Registers is a snapshot of all four configuration registers.
type Registers struct {
	R0 Register0
	R1 Register1
	R2 Register2
	R3 Register3
}

// List returns the registers in index order, ready for WriteRegisters.
func (r Registers) List() []Register {
	return []Register{r.R0, r.R1, r.R2, r.R3}
}

// Config converts the snapshot back to user-level parameters.
func (r Registers) Config() Config {
	return Config{
		Mux:               r.R0.Mux,
		Gain:              r.R0.Gain,
		PGABypass:         r.R0.PGABypass,
		DataRate:          r.R1.DataRate,
		ConversionMode:    r.R1.ConversionMode,
		VoltageReference:  r.R1.VoltageReference,
		TemperatureSensor: r.R1.TemperatureSensor,
		DataCountEnable:   r.R2.DataCountEnable,
		DataIntegrityMode: r.R2.DataIntegrityMode,
		BurnOutSource:     r.R2.BurnOutSource,
		CurrentDac:        r.R2.CurrentDac,
		CurrentMux1:       r.R3.CurrentMux1,
		CurrentMux2:       r.R3.CurrentMux2,
	}
}

const defaultPollInterval = 2 * time.Millisecond

// resetSettle is the wait after RESET before the device accepts commands.
var resetSettle = 500 * time.Microsecond

// NewADS122C04 constructs an ADS122C04 on bus at the given 7-bit address.
// It does not touch the device.
func NewADS122C04(bus Bus, address uint16) *ADS122C04 {
	return &ADS122C04{
		bus:          bus,
		addr:         address,
		log:          zerolog.Nop(),
		pollInterval: defaultPollInterval,
	}
}

// WithLogger sets the logger used for bus tracing and returns adc.
func (adc *ADS122C04) WithLogger(l zerolog.Logger) *ADS122C04 {
	adc.mu.Lock()
	adc.log = l.With().Str("device", "ads122c04").
		Str("addr", fmt.Sprintf("0x%02X", adc.addr)).Logger()
	adc.mu.Unlock()
	return adc
}

// Address returns the 7-bit bus address.
func (adc *ADS122C04) Address() uint16 {
	return adc.addr
}

// Initialize resets the device, writes all four registers in one transaction
// and reads them back. A read back that differs from the written value
// (ignoring DRDY) yields ErrConfigMismatch.
func (adc *ADS122C04) Initialize(cfg Config) error {
	adc.mu.Lock()
	defer adc.mu.Unlock()

	if cfg.PollInterval > 0 {
		adc.pollInterval = cfg.PollInterval
	}

	if err := adc.sendCommand(CMDReset); err != nil {
		return err
	}

	time.Sleep(resetSettle)

	regs := cfg.Registers()
	if err := adc.writeRegisters(regs.List()...); err != nil {
		return err
	}

	got, err := adc.readAllRegisters()
	if err != nil {
		return err
	}

	want := regs.List()
	have := got.List()
	for i := range want {
		w, h := want[i].Byte(), have[i].Byte()
		if i == Reg2 {
			w, h = w&^Reg2DRDYBit, h&^Reg2DRDYBit
		}
		if w != h {
			return fmt.Errorf("%w: register %d wrote 0x%02X, read 0x%02X", ErrConfigMismatch, i, w, h)
		}
	}

	adc.log.Debug().Stringer("mux", cfg.Mux).Stringer("gain", cfg.Gain).
		Stringer("rate", cfg.DataRate).Stringer("integrity", cfg.DataIntegrityMode).
		Msg("initialized")

	return nil
}
