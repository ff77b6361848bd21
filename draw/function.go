package draw

import (
	"errors"
	"fmt"

	"github.com/lucidpdf/core/model"
)

// errFunctionUnsupported marks function types the evaluator knows but
// does not compute (the PostScript calculator).
var errFunctionUnsupported = errors.New("unsupported function type")

// evalFunction evaluates a PDF function at `in`, clipping the inputs to
// the function's Domain and the outputs to its Range when declared.
func evalFunction(fn model.FunctionDict, in []Fl) ([]Fl, error) {
	x := make([]Fl, len(in))
	copy(x, in)
	for i := range x {
		if i < len(fn.Domain) {
			x[i] = clampF(x[i], fn.Domain[i][0], fn.Domain[i][1])
		}
	}

	var (
		out []Fl
		err error
	)
	switch ft := fn.FunctionType.(type) {
	case model.FunctionSampled:
		out, err = evalSampled(fn, ft, x)
	case model.FunctionExpInterpolation:
		out, err = evalExpInterpolation(ft, x)
	case model.FunctionStitching:
		out, err = evalStitching(fn, ft, x)
	case model.FunctionPostScriptCalculator:
		err = fmt.Errorf("%w: PostScript calculator", errFunctionUnsupported)
	default:
		err = fmt.Errorf("%w: %T", errFunctionUnsupported, fn.FunctionType)
	}
	if err != nil {
		return nil, err
	}
	for i := range out {
		if i < len(fn.Range) {
			out[i] = clampF(out[i], fn.Range[i][0], fn.Range[i][1])
		}
	}
	return out, nil
}

// evalExpInterpolation computes C0 + x^N (C1 - C0) over one input.
func evalExpInterpolation(f model.FunctionExpInterpolation, in []Fl) ([]Fl, error) {
	if len(in) == 0 {
		return nil, errors.New("exponential function needs one input")
	}
	x := in[0]
	n := len(f.C0)
	if len(f.C1) > n {
		n = len(f.C1)
	}
	if n == 0 {
		n = 1
	}
	c := func(arr []Fl, i int, def Fl) Fl {
		if i < len(arr) {
			return arr[i]
		}
		return def
	}
	xn := powF(x, Fl(f.N))
	if f.N == 1 {
		xn = x // avoid pow's zero-clamping of negative domains
	}
	out := make([]Fl, n)
	for i := range out {
		c0 := c(f.C0, i, 0)
		c1 := c(f.C1, i, 1)
		out[i] = c0 + xn*(c1-c0)
	}
	return out, nil
}

// evalStitching dispatches the single input to the sub-function whose
// subdomain contains it, re-encoding the input per /Encode.
func evalStitching(fn model.FunctionDict, f model.FunctionStitching, in []Fl) ([]Fl, error) {
	if len(in) == 0 || len(f.Functions) == 0 {
		return nil, errors.New("malformed stitching function")
	}
	x := in[0]
	d0, d1 := Fl(0), Fl(1)
	if len(fn.Domain) > 0 {
		d0, d1 = fn.Domain[0][0], fn.Domain[0][1]
	}
	k := 0
	for k < len(f.Bounds) && x >= f.Bounds[k] {
		k++
	}
	if k >= len(f.Functions) {
		k = len(f.Functions) - 1
	}
	lo := d0
	if k > 0 {
		lo = f.Bounds[k-1]
	}
	hi := d1
	if k < len(f.Bounds) {
		hi = f.Bounds[k]
	}
	e0, e1 := Fl(0), Fl(1)
	if k < len(f.Encode) {
		e0, e1 = f.Encode[k][0], f.Encode[k][1]
	}
	var t Fl
	if hi != lo {
		t = e0 + (x-lo)/(hi-lo)*(e1-e0)
	} else {
		t = e0
	}
	return evalFunction(f.Functions[k], []Fl{t})
}

// evalSampled interpolates the sample grid multilinearly. The sample
// stream is decoded once per call; shading and tint evaluation over a
// whole span caches at a higher level.
func evalSampled(fn model.FunctionDict, f model.FunctionSampled, in []Fl) ([]Fl, error) {
	m := len(f.Size)
	if m == 0 || len(in) < m {
		return nil, errors.New("malformed sampled function")
	}
	nOut := len(fn.Range)
	if nOut == 0 {
		return nil, errors.New("sampled function requires a Range")
	}
	data, err := f.Stream.Decode()
	if err != nil {
		return nil, err
	}

	// map each input to a fractional grid position per /Encode
	pos := make([]Fl, m)
	for i := 0; i < m; i++ {
		d0, d1 := Fl(0), Fl(1)
		if i < len(fn.Domain) {
			d0, d1 = fn.Domain[i][0], fn.Domain[i][1]
		}
		e0, e1 := Fl(0), Fl(f.Size[i]-1)
		if i < len(f.Encode) {
			e0, e1 = f.Encode[i][0], f.Encode[i][1]
		}
		x := in[i]
		if d1 != d0 {
			x = e0 + (x-d0)/(d1-d0)*(e1-e0)
		} else {
			x = e0
		}
		pos[i] = clampF(x, 0, Fl(f.Size[i]-1))
	}

	maxSample := Fl(uint64(1)<<f.BitsPerSample - 1)
	out := make([]Fl, nOut)
	// multilinear interpolation over the 2^m corners surrounding pos
	corners := 1 << m
	for c := 0; c < corners; c++ {
		weight := Fl(1)
		flat := 0
		stride := 1
		for i := 0; i < m; i++ {
			i0 := int(pos[i])
			frac := pos[i] - Fl(i0)
			idx := i0
			if c&(1<<i) != 0 {
				if i0+1 < f.Size[i] {
					idx = i0 + 1
				}
				weight *= frac
			} else {
				weight *= 1 - frac
			}
			flat += idx * stride
			stride *= f.Size[i]
		}
		if weight == 0 {
			continue
		}
		for j := 0; j < nOut; j++ {
			raw, err := readSample(data, (flat*nOut+j), f.BitsPerSample)
			if err != nil {
				return nil, err
			}
			v := Fl(raw) / maxSample
			r0, r1 := fn.Range[j][0], fn.Range[j][1]
			if j < len(f.Decode) {
				r0, r1 = f.Decode[j][0], f.Decode[j][1]
			}
			out[j] += weight * (r0 + v*(r1-r0))
		}
	}
	return out, nil
}

// readSample extracts the i-th bit-packed sample from the stream.
func readSample(data []byte, i int, bits uint8) (uint64, error) {
	bitPos := i * int(bits)
	end := (bitPos + int(bits) + 7) / 8
	if end > len(data) {
		return 0, errors.New("sampled function stream too short")
	}
	var v uint64
	for n := 0; n < int(bits); n++ {
		b := bitPos + n
		bit := (data[b/8] >> (7 - uint(b%8))) & 1
		v = v<<1 | uint64(bit)
	}
	return v, nil
}
