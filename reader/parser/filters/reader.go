package filters

import "io"

// countReader wraps a reader and records how many bytes have actually
// been pulled from the underlying source, so a Skip implementation can
// report the encoded length even though the decoder it drives may
// buffer ahead of what it consumed logically.
type countReader struct {
	r         io.Reader
	totalRead int
}

func newCountReader(r io.Reader) *countReader {
	return &countReader{r: r}
}

func (c *countReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.totalRead += n
	return n, err
}

// reacher reads from an underlying reader and reports io.EOF as soon as
// the eod marker has been produced, byte for byte, so callers never read
// past the end of the encoded stream.
type reacher struct {
	r       io.Reader
	eod     []byte
	matched int
	done    bool
	one     [1]byte
}

func newReacher(r io.Reader, eod []byte) io.Reader {
	return &reacher{r: r, eod: eod}
}

func (re *reacher) Read(p []byte) (int, error) {
	if re.done {
		return 0, io.EOF
	}
	n := 0
	for n < len(p) {
		_, err := re.r.Read(re.one[:])
		if err != nil {
			return n, err
		}
		b := re.one[0]
		p[n] = b
		n++

		if b == re.eod[re.matched] {
			re.matched++
			if re.matched == len(re.eod) {
				re.done = true
				return n, nil
			}
		} else if b == re.eod[0] {
			re.matched = 1
		} else {
			re.matched = 0
		}
	}
	return n, nil
}
