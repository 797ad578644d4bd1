package sort_bench

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"unsafe"
)

var ErrMalformedArray = errors.New("malformed array file")

func bitSize[T Value]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

// FormatValue renders v in its standard decimal form.
func FormatValue[T Value](v T) string {
	if IsFloat[T]() {
		return strconv.FormatFloat(float64(v), 'g', -1, bitSize[T]())
	}
	return strconv.FormatInt(int64(v), 10)
}

// ParseValue reads one decimal element of type T. NaN is rejected since it
// has no place in an ordering.
func ParseValue[T Value](s string) (T, error) {
	if IsFloat[T]() {
		f, err := strconv.ParseFloat(s, bitSize[T]())
		if err == nil && math.IsNaN(f) {
			return 0, fmt.Errorf("%w: NaN is not ordered", ErrMalformedArray)
		}
		return T(f), err
	}
	i, err := strconv.ParseInt(s, 10, bitSize[T]())
	return T(i), err
}

// SaveArray writes the element count followed by one element per line.
func SaveArray[T Value](w io.Writer, data []T) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, len(data))
	for _, v := range data {
		bw.WriteString(FormatValue(v))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// LoadArray reads the format written by SaveArray. Tokens may be separated
// by any whitespace. A count that does not match the number of elements, or
// a token that is not a number, fails with ErrMalformedArray.
func LoadArray[T Value](r io.Reader) ([]T, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: missing element count", ErrMalformedArray)
	}
	n, err := strconv.Atoi(sc.Text())
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: bad element count %q", ErrMalformedArray, sc.Text())
	}

	out := make([]T, 0, n)
	for len(out) < n && sc.Scan() {
		v, err := ParseValue[T](sc.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrMalformedArray, len(out)+1, err)
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) < n {
		return nil, fmt.Errorf("%w: expected %d elements, found %d", ErrMalformedArray, n, len(out))
	}
	if sc.Scan() {
		return nil, fmt.Errorf("%w: more than %d elements", ErrMalformedArray, n)
	}
	return out, nil
}

func SaveArrayFile[T Value](path string, data []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot open %s for writing: %w", path, err)
	}
	if err := SaveArray(f, data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func LoadArrayFile[T Value](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s for reading: %w", path, err)
	}
	defer f.Close()

	data, err := LoadArray[T](f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
