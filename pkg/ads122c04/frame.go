package ads122c04

import (
	"errors"
	"fmt"

	"github.com/sigurn/crc16"
)

// MaxFrameLen is the longest RDATA response: counter and data followed by
// their inverted copy.
const MaxFrameLen = 8

var (
	// ErrShortFrame means raw holds fewer bytes than FrameLen requires.
	ErrShortFrame = errors.New("conversion frame too short")
	// ErrIntegrity means the inverted copy or CRC did not match the data.
	ErrIntegrity = errors.New("conversion frame failed integrity check")
)

// CRC-16-CCITT, polynomial 0x1021, initial value 0xFFFF.
var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// Frame is one parsed RDATA response.
type Frame struct {
	// Counter is the conversion counter; valid when HasCounter is set.
	Counter    uint8
	HasCounter bool

	// Raw is the 24-bit conversion result, MSB first.
	Raw [3]byte
}

// Code returns the signed conversion result.
func (f Frame) Code() int32 {
	return Convert24To32(f.Raw[:])
}

// FrameLen returns the number of bytes RDATA returns for the given register 2
// configuration: an optional counter byte, three data bytes, and either an
// inverted copy of both or two CRC bytes.
func FrameLen(r Register2) int {
	n := 3
	if r.DataCountEnable {
		n++
	}
	switch r.DataIntegrityMode {
	case IntegrityInvertedData:
		n *= 2
	case IntegrityCRC16:
		n += 2
	}
	return n
}

// ParseFrame splits raw as laid out for the register 2 configuration r and
// verifies the integrity bytes if enabled.
func ParseFrame(r Register2, raw []byte) (Frame, error) {
	var f Frame

	if want := FrameLen(r); len(raw) < want {
		return f, fmt.Errorf("%w: want %d bytes, have %d", ErrShortFrame, want, len(raw))
	}

	n := 3
	if r.DataCountEnable {
		n++
		f.HasCounter = true
		f.Counter = raw[0]
	}
	payload := raw[:n]
	copy(f.Raw[:], payload[n-3:])

	switch r.DataIntegrityMode {
	case IntegrityInvertedData:
		for i, b := range payload {
			if raw[n+i] != ^b {
				return f, fmt.Errorf("%w: byte %d is 0x%02X, inverted copy is 0x%02X", ErrIntegrity, i, b, raw[n+i])
			}
		}
	case IntegrityCRC16:
		want := uint16(raw[n])<<8 | uint16(raw[n+1])
		if got := crc16.Checksum(payload, crcTable); got != want {
			return f, fmt.Errorf("%w: crc 0x%04X, computed 0x%04X", ErrIntegrity, want, got)
		}
	}

	return f, nil
}

// Convert24To32 interprets a 3-byte, 24-bit signed value
// in two's complement form, MSB first, as a 32-bit int.
func Convert24To32(data []byte) int32 {
	// data[0] is MSB. If top bit set => negative
	var u32 uint32
	u32 |= uint32(data[0]) << 16
	u32 |= uint32(data[1]) << 8
	u32 |= uint32(data[2])

	// sign extension
	if (u32 & 0x800000) != 0 {
		u32 |= 0xFF000000
	}
	return int32(u32)
}
