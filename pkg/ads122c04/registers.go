package ads122c04

import "strconv"

// Mux selects the input pair routed to the PGA (register 0, bits 7:4).
type Mux uint8

const (
	MuxA0A1    Mux = iota // AINp = AIN0, AINn = AIN1
	MuxA0A2               // AINp = AIN0, AINn = AIN2
	MuxA0A3               // AINp = AIN0, AINn = AIN3
	MuxA1A0               // AINp = AIN1, AINn = AIN0
	MuxA1A2               // AINp = AIN1, AINn = AIN2
	MuxA1A3               // AINp = AIN1, AINn = AIN3
	MuxA2A3               // AINp = AIN2, AINn = AIN3
	MuxA3A2               // AINp = AIN3, AINn = AIN2
	MuxA0Vss              // AINp = AIN0, AINn = AVSS
	MuxA1Vss              // AINp = AIN1, AINn = AVSS
	MuxA2Vss              // AINp = AIN2, AINn = AVSS
	MuxA3Vss              // AINp = AIN3, AINn = AVSS
	MuxVref               // (VREFP - VREFN) / 4
	MuxSupply             // (AVDD - AVSS) / 4
	MuxShorted            // AINp and AINn shorted to (AVDD + AVSS) / 2

	// MuxDefault is substituted for the reserved code 15.
	MuxDefault = MuxA0A1
)

var muxNames = [...]string{
	"A0A1", "A0A2", "A0A3", "A1A0", "A1A2", "A1A3", "A2A3", "A3A2",
	"A0Vss", "A1Vss", "A2Vss", "A3Vss", "Vref", "Supply", "Shorted",
}

func muxFromCode(code byte) Mux {
	if int(code) < len(muxNames) {
		return Mux(code)
	}
	return MuxDefault
}

func (m Mux) String() string {
	if int(m) < len(muxNames) {
		return muxNames[m]
	}
	return "(invalid mux)"
}

// Gain is the PGA gain (register 0, bits 3:1).
type Gain uint8

const (
	GainX1 Gain = iota
	GainX2
	GainX4
	GainX8
	GainX16
	GainX32
	GainX64
	GainX128

	GainDefault = GainX1
)

func gainFromCode(code byte) Gain {
	if code <= byte(GainX128) {
		return Gain(code)
	}
	return GainDefault
}

// Multiplier returns 1, 2, 4 ... 128.
func (g Gain) Multiplier() int {
	return 1 << g
}

func (g Gain) String() string {
	if g > GainX128 {
		return "(invalid gain)"
	}
	return "x" + strconv.Itoa(g.Multiplier())
}

// DataRate is a nominal output data rate. The low three bits are the DR field
// (register 1, bits 7:5) and rateTurbo marks the turbo family (bit 4). Both
// families reuse DR codes 0..6.
type DataRate uint8

const rateTurbo DataRate = 0x10

const (
	DataRateN20 DataRate = iota
	DataRateN45
	DataRateN90
	DataRateN175
	DataRateN330
	DataRateN600
	DataRateN1000
)

const (
	DataRateT40 DataRate = rateTurbo | iota
	DataRateT90
	DataRateT180
	DataRateT350
	DataRateT660
	DataRateT1200
	DataRateT2000
)

var (
	normalRates = [...]int{20, 45, 90, 175, 330, 600, 1000}
	turboRates  = [...]int{40, 90, 180, 350, 660, 1200, 2000}
)

// dataRateFromCode resolves the (DR, turbo) pair. DR 7 is unused in both
// families and maps to the family's slowest rate.
func dataRateFromCode(dr byte, turbo bool) DataRate {
	if dr > byte(DataRateN1000) {
		dr = 0
	}
	if turbo {
		return rateTurbo | DataRate(dr)
	}
	return DataRate(dr)
}

// Turbo reports whether the rate belongs to the turbo-mode family.
func (r DataRate) Turbo() bool {
	return r&rateTurbo != 0
}

func (r DataRate) code() byte {
	return byte(r) & reg1RateMask
}

// SPS returns the nominal rate in samples per second, or 0 if r is not a
// defined rate.
func (r DataRate) SPS() int {
	c := r.code()
	if r&^(rateTurbo|reg1RateMask) != 0 || int(c) >= len(normalRates) {
		return 0
	}
	if r.Turbo() {
		return turboRates[c]
	}
	return normalRates[c]
}

func (r DataRate) String() string {
	sps := r.SPS()
	if sps == 0 {
		return "(invalid data rate)"
	}
	if r.Turbo() {
		return "T" + strconv.Itoa(sps)
	}
	return "N" + strconv.Itoa(sps)
}

// ConversionMode selects single-shot or continuous conversions.
type ConversionMode uint8

const (
	ConversionSingle ConversionMode = iota
	ConversionContinuous
)

func conversionModeFromCode(code byte) ConversionMode {
	if code == byte(ConversionContinuous) {
		return ConversionContinuous
	}
	return ConversionSingle
}

func (c ConversionMode) String() string {
	switch c {
	case ConversionSingle:
		return "Single"
	case ConversionContinuous:
		return "Continuous"
	default:
		return "(invalid conversion mode)"
	}
}

// Vref selects the voltage reference.
type Vref uint8

const (
	VrefInternal Vref = iota // 2.048 V internal reference
	VrefExternal             // REFP / REFN pins
	VrefSupply               // AVDD - AVSS
	VrefSupply2              // AVDD - AVSS (second encoding)

	VrefDefault = VrefInternal
)

func vrefFromCode(code byte) Vref {
	if code <= byte(VrefSupply2) {
		return Vref(code)
	}
	return VrefDefault
}

func (v Vref) String() string {
	switch v {
	case VrefInternal:
		return "Internal"
	case VrefExternal:
		return "External"
	case VrefSupply:
		return "Supply"
	case VrefSupply2:
		return "Supply2"
	default:
		return "(invalid vref)"
	}
}

// DataIntegrityMode selects the check bytes appended to conversion data.
type DataIntegrityMode uint8

const (
	IntegrityDisabled DataIntegrityMode = iota
	IntegrityInvertedData
	IntegrityCRC16

	// IntegrityDefault is substituted for the reserved code 3.
	IntegrityDefault = IntegrityDisabled
)

func dataIntegrityModeFromCode(code byte) DataIntegrityMode {
	if code <= byte(IntegrityCRC16) {
		return DataIntegrityMode(code)
	}
	return IntegrityDefault
}

func (m DataIntegrityMode) String() string {
	switch m {
	case IntegrityDisabled:
		return "Disabled"
	case IntegrityInvertedData:
		return "InvertedData"
	case IntegrityCRC16:
		return "CRC16"
	default:
		return "(invalid data integrity mode)"
	}
}

// CurrentDac is the excitation current level of both IDACs.
type CurrentDac uint8

const (
	IDACOff CurrentDac = iota
	IDAC10uA
	IDAC50uA
	IDAC100uA
	IDAC250uA
	IDAC500uA
	IDAC1000uA
	IDAC1500uA

	IDACDefault = IDACOff
)

var idacMicroAmps = [...]int{0, 10, 50, 100, 250, 500, 1000, 1500}

func currentDacFromCode(code byte) CurrentDac {
	if int(code) < len(idacMicroAmps) {
		return CurrentDac(code)
	}
	return IDACDefault
}

// MicroAmps returns the nominal excitation current.
func (c CurrentDac) MicroAmps() int {
	if int(c) < len(idacMicroAmps) {
		return idacMicroAmps[c]
	}
	return 0
}

func (c CurrentDac) String() string {
	switch {
	case c == IDACOff:
		return "Off"
	case int(c) < len(idacMicroAmps):
		return strconv.Itoa(idacMicroAmps[c]) + "uA"
	default:
		return "(invalid current dac)"
	}
}

// CurrentMux routes an IDAC output to a pin.
type CurrentMux uint8

const (
	IMuxDisabled CurrentMux = iota
	IMuxAIN0
	IMuxAIN1
	IMuxAIN2
	IMuxAIN3
	IMuxREFP
	IMuxREFN

	// IMuxDefault is substituted for the reserved code 7.
	IMuxDefault = IMuxDisabled
)

var imuxNames = [...]string{"Disabled", "AIN0", "AIN1", "AIN2", "AIN3", "REFP", "REFN"}

func currentMuxFromCode(code byte) CurrentMux {
	if int(code) < len(imuxNames) {
		return CurrentMux(code)
	}
	return IMuxDefault
}

func (c CurrentMux) String() string {
	if int(c) < len(imuxNames) {
		return imuxNames[c]
	}
	return "(invalid current mux)"
}
