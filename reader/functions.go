package reader

import (
	"errors"
	"fmt"

	"github.com/lucidpdf/core/model"
)

// if not error return a non nil pointer
func (r resolver) resolveFunction(fn model.Object) (*model.FunctionDict, error) {
	fnRef, isRef := fn.(model.ObjIndirectRef)
	if fnM := r.functions[fnRef]; isRef && fnM != nil {
		return fnM, nil
	}
	fn = r.resolve(fn)
	var (
		out    model.FunctionDict
		err    error
		dict   model.ObjDict
		stream model.ObjStream
	)
	// fn is either a dict (type 2 and 3) or a content stream (type 0 and 4)
	switch fn := fn.(type) {
	case model.ObjDict:
		dict = fn
	case model.ObjStream:
		dict = fn.Args
		stream = fn
	default:
		return nil, errType("Function", fn)
	}

	// specialization
	fType, _ := dict["FunctionType"].(model.ObjInt)
	switch fType {
	case 0:
		out.FunctionType, err = r.processSampledFn(stream)
	case 2:
		out.FunctionType, err = processExpInterpolationFn(dict)
	case 3:
		out.FunctionType, err = r.resolveStitchingFn(dict)
	case 4:
		cs, ok, serr := r.resolveStream(stream)
		if serr != nil {
			return nil, serr
		}
		if !ok {
			return nil, errors.New("missing stream for PostScript calculator function")
		}
		out.FunctionType = model.FunctionPostScriptCalculator(cs)
	default:
		return nil, fmt.Errorf("invalid function type %d", fType)
	}
	if err != nil {
		return nil, err
	}

	// common fields
	domain := dict.ArrayEntry("Domain")
	out.Domain, err = processRange(domain)
	if err != nil {
		return nil, err
	}
	range_ := dict.ArrayEntry("Range")
	out.Range, err = processRange(range_)
	if err != nil {
		return nil, err
	}

	if isRef {
		r.functions[fnRef] = &out
	}
	return &out, nil
}

func processExpInterpolationFn(fn model.ObjDict) (model.FunctionExpInterpolation, error) {
	C0 := fn.ArrayEntry("C0")
	C1 := fn.ArrayEntry("C1")
	if len(C0) != len(C1) {
		return model.FunctionExpInterpolation{}, errors.New("array length must be equal for C0 and C1")
	}
	var out model.FunctionExpInterpolation
	out.C0 = processFl(C0)
	out.C1 = processFl(C1)
	if N := fn.IntEntry("N"); N != nil {
		out.N = *N
	}
	return out, nil
}

func (r resolver) resolveStitchingFn(fn model.ObjDict) (model.FunctionStitching, error) {
	fns := fn.ArrayEntry("Functions")
	k := len(fns)
	var out model.FunctionStitching
	out.Functions = make([]model.FunctionDict, k)
	for i, f := range fns {
		fn, err := r.resolveFunction(f)
		if err != nil {
			return out, err
		}
		out.Functions[i] = *fn
	}
	bounds := fn.ArrayEntry("Bounds")
	if len(bounds) != k-1 {
		return out, fmt.Errorf("expected k-1 elements array for Bounds, got %v", bounds)
	}
	out.Bounds = processFl(bounds)

	encode := fn.ArrayEntry("Encode")
	if len(encode) != 2*k {
		return out, fmt.Errorf("expected 2 x k elements array for Encode, got %v", encode)
	}
	out.Encode = make([][2]Fl, k)
	for i := range out.Encode {
		out.Encode[i][0], _ = isNumber(encode[2*i])
		out.Encode[i][1], _ = isNumber(encode[2*i+1])
	}
	return out, nil
}

func (r resolver) processSampledFn(stream model.ObjStream) (model.FunctionSampled, error) {
	cs, ok, err := r.resolveStream(stream)
	if err != nil {
		return model.FunctionSampled{}, err
	}
	if !ok {
		return model.FunctionSampled{}, errors.New("missing stream for Sampled function")
	}
	out := model.FunctionSampled{Stream: cs}
	size, _ := r.resolveArray(stream.Args["Size"])
	m := len(size)
	out.Size = make([]int, m)
	for i, s := range size {
		si, _ := r.resolve(s).(model.ObjInt)
		out.Size[i] = int(si)
	}
	if bs, ok := r.resolveInt(stream.Args["BitsPerSample"]); ok {
		out.BitsPerSample = uint8(bs)
	}
	if o, ok := r.resolveInt(stream.Args["Order"]); ok {
		out.Order = uint8(o)
	}
	encode, _ := r.resolveArray(stream.Args["Encode"])
	if len(encode) != 0 {
		if len(encode) != 2*m {
			return out, fmt.Errorf("expected 2 x m elements array for Encode, got %v", encode)
		}
		out.Encode = make([][2]Fl, m)
		for i := range out.Encode {
			out.Encode[i][0], _ = isNumber(encode[2*i])
			out.Encode[i][1], _ = isNumber(encode[2*i+1])
		}
	}
	decodeArr, _ := r.resolveArray(stream.Args["Decode"])
	out.Decode, err = r.processPoints(decodeArr)

	return out, err
}

// processFl converts an already-resolved array of numbers to []Fl.
func processFl(ar model.ObjArray) []Fl {
	out := make([]Fl, len(ar))
	for i, v := range ar {
		out[i], _ = isNumber(v)
	}
	return out
}
