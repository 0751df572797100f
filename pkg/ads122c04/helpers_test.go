package ads122c04

import (
	"errors"
	"sync"
	"testing"

	"github.com/l0nax/go-spew/spew"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

var pprint = spew.ConfigState{
	Indent:                  "\t",
	MaxDepth:                0,
	DisableMethods:          false,
	DisablePointerMethods:   false,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	ContinueOnMethod:        true,
	SortKeys:                true,
	SpewKeys:                true,
}

const testAddr = DefaultAddress

func init() {
	resetSettle = 0
}

// playback returns a device whose bus expects exactly ops, in order.
func playback(t *testing.T, ops ...i2ctest.IO) (*ADS122C04, *i2ctest.Playback) {
	t.Helper()
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}
	t.Cleanup(func() {
		if err := bus.Close(); err != nil {
			t.Errorf("unconsumed bus operations: %v\n%s", err, pprint.Sdump(bus.Ops[bus.Count:]))
		}
	})
	return NewADS122C04(bus, testAddr), bus
}

func op(w []byte, r ...byte) i2ctest.IO {
	io := i2ctest.IO{Addr: testAddr, W: w}
	if len(r) > 0 {
		io.R = r
	}
	return io
}

var errBus = errors.New("bus: arbitration lost")

// failBus fails every transaction with errBus and counts attempts.
type failBus struct {
	calls int
}

func (b *failBus) Tx(uint16, []byte, []byte) error {
	b.calls++
	return errBus
}

// simADC is a minimal behavioural model of the device: it keeps the four
// registers, latches a result a few DRDY polls after START/SYNC, and answers
// RDATA with a frame laid out for register 2. The result code is produced by
// sample from the current MUX setting.
type simADC struct {
	mu sync.Mutex

	regs   [NumRegisters]byte
	ready  bool
	pend   int
	delay  int
	count  uint8
	sample func(m Mux) int32

	txs  int
	seen [][]byte
}

func newSimADC(delay int) *simADC {
	return &simADC{
		delay:  delay,
		sample: func(m Mux) int32 { return int32(m) * 1000 },
	}
}

func (s *simADC) Tx(addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs++
	s.seen = append(s.seen, append([]byte(nil), w...))

	if addr != testAddr {
		return errBus
	}
	if len(w) == 0 {
		return errors.New("sim: empty write")
	}

	switch cmd := w[0]; {
	case cmd == CMDReset:
		s.regs = [NumRegisters]byte{}
		s.ready = false
	case cmd == CMDStartSync:
		s.ready = false
		s.pend = s.delay + 1
	case cmd == CMDPowerDown:
	case cmd == CMDRData:
		s.rdata(r)
		s.ready = false
	case cmd&0xF0 == CMDRReg:
		reg := (cmd >> 2) & 0x03
		if s.pend > 0 {
			s.pend--
			if s.pend == 0 {
				s.ready = true
				s.count++
			}
		}
		v := s.regs[reg]
		if reg == Reg2 {
			v &^= Reg2DRDYBit
			if s.ready {
				v |= Reg2DRDYBit
			}
		}
		r[0] = v
	case cmd&0xF0 == CMDWReg:
		for i := 0; i+1 < len(w); i += 2 {
			s.regs[(w[i]>>2)&0x03] = w[i+1]
		}
	default:
		return errors.New("sim: unknown command")
	}
	return nil
}

func (s *simADC) rdata(r []byte) {
	r2 := DecodeRegister2(s.regs[Reg2])
	code := s.sample(DecodeRegister0(s.regs[Reg0]).Mux)

	payload := []byte{byte(code >> 16), byte(code >> 8), byte(code)}
	if r2.DataCountEnable {
		payload = append([]byte{s.count}, payload...)
	}

	out := append([]byte(nil), payload...)
	switch r2.DataIntegrityMode {
	case IntegrityInvertedData:
		for _, b := range payload {
			out = append(out, ^b)
		}
	case IntegrityCRC16:
		sum := crcCCITT(payload)
		out = append(out, byte(sum>>8), byte(sum))
	}
	copy(r, out)
}

// crcCCITT is a bitwise reference implementation, independent of the table
// driven one used by ParseFrame.
func crcCCITT(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
