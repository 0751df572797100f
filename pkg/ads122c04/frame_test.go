package ads122c04

import (
	"errors"
	"testing"
)

func TestConvert24To32(t *testing.T) {
	t.Run("PositiveValue", func(t *testing.T) {
		data := []byte{0x7F, 0xFF, 0xFF}
		result := Convert24To32(data)
		if result != int32(8388607) {
			t.Errorf("expected 8388607, got %d", result)
		}
	})

	t.Run("NegativeValue", func(t *testing.T) {
		data := []byte{0x80, 0x00, 0x00}
		result := Convert24To32(data)
		if result != int32(-8388608) {
			t.Errorf("expected -8388608, got %d", result)
		}
	})

	t.Run("MinusOne", func(t *testing.T) {
		data := []byte{0xFF, 0xFF, 0xFF}
		result := Convert24To32(data)
		if result != int32(-1) {
			t.Errorf("expected -1, got %d", result)
		}
	})

	t.Run("ZeroValue", func(t *testing.T) {
		data := []byte{0x00, 0x00, 0x00}
		result := Convert24To32(data)
		if result != int32(0) {
			t.Errorf("expected 0, got %d", result)
		}
	})
}

func TestFrameLen(t *testing.T) {
	tests := []struct {
		name string
		r2   Register2
		want int
	}{
		{"Plain", Register2{}, 3},
		{"Counter", Register2{DataCountEnable: true}, 4},
		{"Inverted", Register2{DataIntegrityMode: IntegrityInvertedData}, 6},
		{"CounterInverted", Register2{DataCountEnable: true, DataIntegrityMode: IntegrityInvertedData}, MaxFrameLen},
		{"CRC", Register2{DataIntegrityMode: IntegrityCRC16}, 5},
		{"CounterCRC", Register2{DataCountEnable: true, DataIntegrityMode: IntegrityCRC16}, 6},
		{"IgnoresOtherFields", Register2{DataReady: true, BurnOutSource: true, CurrentDac: IDAC1500uA}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FrameLen(tt.r2); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseFrame(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		f, err := ParseFrame(Register2{}, []byte{0xFF, 0xFF, 0xFE})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.HasCounter || f.Code() != -2 {
			t.Errorf("unexpected frame %s", pprint.Sdump(f))
		}
	})

	t.Run("CRC", func(t *testing.T) {
		r2 := Register2{DataIntegrityMode: IntegrityCRC16}
		f, err := ParseFrame(r2, []byte{0x12, 0x34, 0x56, 0x12, 0xFD})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Code() != 0x123456 {
			t.Errorf("unexpected code 0x%06X", f.Code())
		}

		_, err = ParseFrame(r2, []byte{0x12, 0x34, 0x57, 0x12, 0xFD})
		if !errors.Is(err, ErrIntegrity) {
			t.Errorf("expected ErrIntegrity, got %v", err)
		}
	})

	t.Run("CounterCRC", func(t *testing.T) {
		r2 := Register2{DataCountEnable: true, DataIntegrityMode: IntegrityCRC16}
		f, err := ParseFrame(r2, []byte{0x07, 0x80, 0x00, 0x01, 0xFE, 0x96})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !f.HasCounter || f.Counter != 0x07 || f.Code() != -8388607 {
			t.Errorf("unexpected frame %s", pprint.Sdump(f))
		}
	})

	t.Run("Inverted", func(t *testing.T) {
		r2 := Register2{DataCountEnable: true, DataIntegrityMode: IntegrityInvertedData}
		f, err := ParseFrame(r2, []byte{0x02, 0x00, 0x10, 0x00, 0xFD, 0xFF, 0xEF, 0xFF})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Counter != 2 || f.Code() != 0x1000 {
			t.Errorf("unexpected frame %s", pprint.Sdump(f))
		}

		_, err = ParseFrame(r2, []byte{0x02, 0x00, 0x10, 0x00, 0xFD, 0xFF, 0xEF, 0xFE})
		if !errors.Is(err, ErrIntegrity) {
			t.Errorf("expected ErrIntegrity, got %v", err)
		}
	})

	t.Run("Short", func(t *testing.T) {
		_, err := ParseFrame(Register2{DataIntegrityMode: IntegrityCRC16}, []byte{0x00, 0x00, 0x00})
		if !errors.Is(err, ErrShortFrame) {
			t.Errorf("expected ErrShortFrame, got %v", err)
		}
	})

	t.Run("MatchesReference", func(t *testing.T) {
		payload := []byte{0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39}
		if got := crcCCITT(payload); got != 0x29B1 {
			t.Fatalf("reference crc check value: expected 0x29B1, got 0x%04X", got)
		}
	})
}
