package ads122c04

import "sync"

var (
	oneByte = &sync.Pool{New: func() interface{} { return make([]byte, 1) }}
	frames  = &sync.Pool{New: func() interface{} { return make([]byte, 0, MaxFrameLen) }}
)

func get1Byte() []byte {
	return oneByte.Get().([]byte)
}

func put1Byte(b []byte) {
	b[0] = 0
	oneByte.Put(b)
}

// getFrame returns a zeroed buffer of length n (n <= MaxFrameLen).
func getFrame(n int) []byte {
	b := frames.Get().([]byte)[:n]
	clear(b)
	return b
}

func putFrame(b []byte) {
	frames.Put(b[:0])
}
