package bitmap

import (
	"github.com/samber/lo"
)

// DefaultThreshold is the luminance above which a pixel becomes paper. The
// scale is the weighted sum of the native 5/6/5 bit channels, 0..49.
const DefaultThreshold = 40

// MaxLuminance is the luminance of white.
const MaxLuminance = 49

type reducer struct {
	threshold uint32
}

// Option tunes Reduce.
type Option func(r *reducer)

// WithThreshold overrides DefaultThreshold.
func WithThreshold(t int) Option {
	return func(r *reducer) {
		if t < 0 {
			t = 0
		}
		r.threshold = uint32(t)
	}
}

// Reduce quantizes big-endian RGB565 pixels to one bit each, eight pixels per
// byte. The k-th pixel of a group lands in bit 1<<k, and the finished byte
// sequence is reversed. Decoding the result MSB-first therefore walks the
// pixels back to front; assets are stored with that orientation, so dropping
// the reversal mirrors every icon.
func Reduce(rgb []byte, opts ...Option) []byte {
	r := &reducer{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(r)
	}

	pixels := len(rgb) / 2
	out := make([]byte, 0, (pixels+7)/8)

	for start := 0; start < pixels; start += 8 {
		var b byte
		for k := 0; k < 8 && start+k < pixels; k++ {
			i := 2 * (start + k)
			if r.paper(rgb565(rgb[i])<<8 | rgb565(rgb[i+1])) {
				b |= 1 << k
			}
		}
		out = append(out, b)
	}

	return lo.Reverse(out)
}

func (r *reducer) paper(c rgb565) bool {
	red, green, blue := c.channels()
	return Luminance(red, green, blue) > r.threshold
}

// Luminance weighs native-width channels 30/59/11.
func Luminance(r, g, b uint32) uint32 {
	return (r*30 + g*59 + b*11) / 100
}

// ReduceImage reduces rgb and wraps the result with its width.
func ReduceImage(width int, rgb []byte, opts ...Option) (*Packed, error) {
	return NewPacked(width, Reduce(rgb, opts...))
}
