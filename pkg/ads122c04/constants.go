package ads122c04

// Constants from the datasheet

// Register indexes
const (
	// Reg0 holds MUX, GAIN and PGA_BYPASS.
	Reg0 = 0x00
	// Reg1 holds DR, MODE, CM, VREF and TS.
	Reg1 = 0x01
	// Reg2 holds DRDY, DCNT, CRC, BCS and IDAC.
	Reg2 = 0x02
	// Reg3 holds I1MUX and I2MUX.
	Reg3 = 0x03

	// NumRegisters is the total number of configuration registers.
	NumRegisters = 0x04
)

// DefaultAddress is the 7-bit address with A0 and A1 tied to DGND.
const DefaultAddress = 0x40

// Command Opcodes
const (
	CMDReset     = 0b0000_0110
	CMDStartSync = 0b0000_1000
	CMDPowerDown = 0b0000_0010
	CMDRData     = 0b0001_0000
	CMDRReg      = 0b0010_0000 // 0x20 | (reg << 2)
	CMDWReg      = 0b0100_0000 // 0x40 | (reg << 2)

	// CMDRDataReady reads register 2; only bit 7 (DRDY) is inspected.
	CMDRDataReady = 0b0010_1000
)

// Register 0 bit layout
const (
	reg0MuxShift  = 4
	reg0MuxMask   = 0x0F
	reg0GainShift = 1
	reg0GainMask  = 0x07
	reg0BypassBit = 0x01
)

// Register 1 bit layout
const (
	reg1RateShift = 5
	reg1RateMask  = 0x07
	reg1TurboBit  = 0x10
	reg1CMShift   = 3
	reg1CMMask    = 0x01
	reg1VrefShift = 1
	reg1VrefMask  = 0x03
	reg1TSBit     = 0x01
)

// Register 2 bit layout
const (
	Reg2DRDYBit  = 0x80 // (bit7, read-only)
	reg2DCNTBit  = 0x40
	reg2CRCShift = 4
	reg2CRCMask  = 0x03
	reg2BCSBit   = 0x08
	reg2IDACMask = 0x07
)

// Register 3 bit layout
const (
	reg3I1MuxShift = 5
	reg3I2MuxShift = 2
	reg3IMuxMask   = 0x07
)

func readRegCmd(reg uint8) byte {
	return CMDRReg | (reg&0x03)<<2
}

func writeRegCmd(reg uint8) byte {
	return CMDWReg | (reg&0x03)<<2
}
