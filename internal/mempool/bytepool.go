// Package mempool provides sized byte-buffer pools for the pixel planes
// allocated during image preprocessing. Every upload allocates several
// full-frame grayscale buffers; pooling them keeps allocation churn down
// under concurrent parsing load.
package mempool

import "sync"

var bytePools sync.Map // key: size class (int), value: *sync.Pool

// sizeClass rounds n up to the next 64KiB bucket to reduce churn.
func sizeClass(n int) int {
	const step = 64 * 1024
	if n <= step {
		return step
	}
	r := (n + step - 1) / step
	return r * step
}

// GetBytes retrieves a zeroed []byte buffer of length n from the pool.
// The caller must return it via PutBytes when done.
func GetBytes(n int) []byte {
	cls := sizeClass(n)
	pAny, _ := bytePools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]byte, cls) }})
	p, ok := pAny.(*sync.Pool)
	if !ok {
		return make([]byte, n)
	}
	buf, ok := p.Get().([]byte)
	if !ok || cap(buf) < cls {
		buf = make([]byte, cls)
	}
	buf = buf[:cap(buf)]
	// Pooled buffers are reused; callers expect a clean plane.
	for i := range buf[:n] {
		buf[i] = 0
	}
	return buf[:n]
}

// PutBytes returns a buffer to the pool. It is safe to pass a nil slice.
func PutBytes(buf []byte) {
	if buf == nil {
		return
	}
	cls := sizeClass(cap(buf))
	pAny, _ := bytePools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]byte, cls) }})
	p, ok := pAny.(*sync.Pool)
	if !ok {
		return
	}
	p.Put(buf[:cap(buf)]) //nolint:staticcheck
}
