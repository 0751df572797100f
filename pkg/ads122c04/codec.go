package ads122c04

// Register is one of [Register0], [Register1], [Register2] or [Register3].
// The set is closed; Index identifies the variant.
type Register interface {
	// Index returns the register index, 0 through 3.
	Index() uint8
	// Byte returns the wire encoding of the register.
	Byte() byte

	sealed()
}

// Register0 configures the input multiplexer and the PGA.
type Register0 struct {
	Mux       Mux
	Gain      Gain
	PGABypass bool
}

// Register1 configures data rate, conversion mode, reference and the
// temperature sensor.
type Register1 struct {
	DataRate          DataRate
	ConversionMode    ConversionMode
	VoltageReference  Vref
	TemperatureSensor bool
}

// Register2 carries the DRDY flag and configures the data counter, the data
// integrity check, the burn-out current sources and the IDAC level.
//
// DataReady is read-only on the device; the value written is ignored.
type Register2 struct {
	DataReady         bool
	DataCountEnable   bool
	DataIntegrityMode DataIntegrityMode
	BurnOutSource     bool
	CurrentDac        CurrentDac
}

// Register3 routes the two IDAC outputs.
type Register3 struct {
	CurrentMux1 CurrentMux
	CurrentMux2 CurrentMux
}

func (Register0) Index() uint8 { return Reg0 }
func (Register1) Index() uint8 { return Reg1 }
func (Register2) Index() uint8 { return Reg2 }
func (Register3) Index() uint8 { return Reg3 }

func (Register0) sealed() {}
func (Register1) sealed() {}
func (Register2) sealed() {}
func (Register3) sealed() {}

func bit(b bool, mask byte) byte {
	if b {
		return mask
	}
	return 0
}

// Byte encodes r as the raw register 0 value.
func (r Register0) Byte() byte {
	return byte(r.Mux&reg0MuxMask)<<reg0MuxShift |
		byte(r.Gain&reg0GainMask)<<reg0GainShift |
		bit(r.PGABypass, reg0BypassBit)
}

// Byte encodes r; the turbo bit comes from the data rate family.
func (r Register1) Byte() byte {
	return r.DataRate.code()<<reg1RateShift |
		bit(r.DataRate.Turbo(), reg1TurboBit) |
		byte(r.ConversionMode&reg1CMMask)<<reg1CMShift |
		byte(r.VoltageReference&reg1VrefMask)<<reg1VrefShift |
		bit(r.TemperatureSensor, reg1TSBit)
}

// Byte encodes r. DRDY is read-only on the device and ignored when written.
func (r Register2) Byte() byte {
	return bit(r.DataReady, Reg2DRDYBit) |
		bit(r.DataCountEnable, reg2DCNTBit) |
		byte(r.DataIntegrityMode&reg2CRCMask)<<reg2CRCShift |
		bit(r.BurnOutSource, reg2BCSBit) |
		byte(r.CurrentDac&reg2IDACMask)
}

// Byte encodes r with the reserved bits [1:0] cleared.
func (r Register3) Byte() byte {
	return byte(r.CurrentMux1&reg3IMuxMask)<<reg3I1MuxShift |
		byte(r.CurrentMux2&reg3IMuxMask)<<reg3I2MuxShift
}

// DecodeRegister0 unpacks register 0. The reserved MUX code 15 reads as
// [MuxDefault].
func DecodeRegister0(v byte) Register0 {
	return Register0{
		Mux:       muxFromCode(v >> reg0MuxShift & reg0MuxMask),
		Gain:      gainFromCode(v >> reg0GainShift & reg0GainMask),
		PGABypass: v&reg0BypassBit != 0,
	}
}

// DecodeRegister1 unpacks register 1. DR is resolved together with the turbo
// bit; DR 7 reads as the slowest rate of the selected family.
func DecodeRegister1(v byte) Register1 {
	return Register1{
		DataRate:          dataRateFromCode(v>>reg1RateShift&reg1RateMask, v&reg1TurboBit != 0),
		ConversionMode:    conversionModeFromCode(v >> reg1CMShift & reg1CMMask),
		VoltageReference:  vrefFromCode(v >> reg1VrefShift & reg1VrefMask),
		TemperatureSensor: v&reg1TSBit != 0,
	}
}

// DecodeRegister2 unpacks register 2. The reserved CRC code 3 reads as
// [IntegrityDefault].
func DecodeRegister2(v byte) Register2 {
	return Register2{
		DataReady:         v&Reg2DRDYBit != 0,
		DataCountEnable:   v&reg2DCNTBit != 0,
		DataIntegrityMode: dataIntegrityModeFromCode(v >> reg2CRCShift & reg2CRCMask),
		BurnOutSource:     v&reg2BCSBit != 0,
		CurrentDac:        currentDacFromCode(v & reg2IDACMask),
	}
}

// DecodeRegister3 unpacks register 3. The reserved routing code 7 reads as
// [IMuxDefault].
func DecodeRegister3(v byte) Register3 {
	return Register3{
		CurrentMux1: currentMuxFromCode(v >> reg3I1MuxShift & reg3IMuxMask),
		CurrentMux2: currentMuxFromCode(v >> reg3I2MuxShift & reg3IMuxMask),
	}
}
