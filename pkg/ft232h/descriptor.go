package ft232h

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/yunginnanet/ft232h"
)

var ErrBadDescriptor = errors.New("invalid FT232H descriptor provided")

// DeviceInfo is what discovery learned about the selected FT232H.
type DeviceInfo struct {
	Index       int
	Serial      string
	Description string
	ProductID   string
	VendorID    string
	IsHighSpeed bool
}

// Descriptor selects one FT232H, by serial number when Serial is set and by
// enumeration index otherwise.
type Descriptor struct {
	Index  int
	Serial string
}

// ByIndex selects the index'th FTDI device.
func ByIndex(index int) Descriptor {
	return Descriptor{Index: index}
}

// BySerial selects the device with the given USB serial number.
func BySerial(serial string) Descriptor {
	return Descriptor{Serial: serial, Index: -1}
}

func (d Descriptor) Validate() error {
	if d.Index < 0 && d.Serial == "" {
		return ErrBadDescriptor
	}
	return nil
}

// Mask converts d to the lookup mask used to open the device.
func (d Descriptor) Mask() *ft232h.Mask {
	m := new(ft232h.Mask)
	if d.Serial != "" {
		m.Serial = d.Serial
		return m
	}
	m.Index = strconv.Itoa(d.Index)
	return m
}

// discover opens the device d names just long enough to identify it. The
// host driver opens it again afterwards, so the handle must be released.
func discover(d Descriptor) (info DeviceInfo, err error) {
	if err = d.Validate(); err != nil {
		return info, err
	}

	dev, err := ft232h.OpenMask(d.Mask())
	if err != nil {
		return info, fmt.Errorf("failed to open FT232H %+v: %w", d, err)
	}

	info = DeviceInfo{
		Index:       dev.Index(),
		Serial:      dev.Serial(),
		Description: dev.Desc(),
		ProductID:   fmt.Sprintf("%04x", dev.PID()),
		VendorID:    fmt.Sprintf("%04x", dev.VID()),
		IsHighSpeed: dev.IsHiSpeed(),
	}

	if err = dev.Close(); err != nil {
		return info, fmt.Errorf("failed to release FT232H after discovery: %w", err)
	}
	return info, nil
}

// pick returns the position among n host devices that matches info: the
// serial number when known, else the enumeration index.
func pick(n int, serialOf func(i int) string, info DeviceInfo) (int, error) {
	if info.Serial != "" {
		for i := 0; i < n; i++ {
			if serialOf(i) == info.Serial {
				return i, nil
			}
		}
		return -1, fmt.Errorf("%w: serial %q", ErrNotFound, info.Serial)
	}
	if info.Index < 0 || info.Index >= n {
		return -1, fmt.Errorf("%w: index %d of %d", ErrNotFound, info.Index, n)
	}
	return info.Index, nil
}
