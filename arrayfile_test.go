package sort_bench

import (
	"bytes"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	test "testing"
)

func TestSaveArrayFormat(t *test.T) {
	var buf bytes.Buffer
	if err := SaveArray(&buf, []int{5, 3, 8}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "3\n5\n3\n8\n" {
		t.Errorf("SaveArray wrote %q", got)
	}

	buf.Reset()
	if err := SaveArray(&buf, []float64{1.5, 10000, 2.25}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "3\n1.5\n10000\n2.25\n" {
		t.Errorf("SaveArray wrote %q", got)
	}
}

func TestLoadArray(t *test.T) {
	got, err := LoadArray[int](strings.NewReader("4\n7 1\n\n3\t2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{7, 1, 3, 2}) {
		t.Errorf("LoadArray = %v", got)
	}

	empty, err := LoadArray[float64](strings.NewReader("0\n"))
	if err != nil || len(empty) != 0 || empty == nil {
		t.Errorf("empty array: %v, %v", empty, err)
	}
}

func TestLoadArrayMalformed(t *test.T) {
	for name, in := range map[string]string{
		"empty":     "",
		"count":     "three\n1\n2\n3\n",
		"negative":  "-1\n",
		"short":     "3\n1\n2\n",
		"token":     "2\n1\nx\n",
		"trailing":  "1\n1\n2\n",
		"float int": "1\n1.5\n",
	} {
		if _, err := LoadArray[int](strings.NewReader(in)); !errors.Is(err, ErrMalformedArray) {
			t.Errorf("%s: err = %v, want ErrMalformedArray", name, err)
		}
	}
}

func TestLoadArrayRejectsNaN(t *test.T) {
	for _, in := range []string{"2\nNaN\n1\n", "4\n3\nnan\n1\n2\n"} {
		if _, err := LoadArray[float64](strings.NewReader(in)); !errors.Is(err, ErrMalformedArray) {
			t.Errorf("%q: err = %v, want ErrMalformedArray", in, err)
		}
	}
	if _, err := ParseValue[float32]("NaN"); !errors.Is(err, ErrMalformedArray) {
		t.Errorf("ParseValue(NaN) err = %v", err)
	}
	if v, err := ParseValue[float64]("+Inf"); err != nil || v < MaxValue {
		t.Errorf("ParseValue(+Inf) = %v, %v", v, err)
	}
}

func TestArrayFileRoundTrip(t *test.T) {
	path := filepath.Join(t.TempDir(), "array.txt")
	data, _ := NewGenerator[float64](NewRandom(8)).Random(257)
	if err := SaveArrayFile(path, data); err != nil {
		t.Fatal(err)
	}
	back, err := LoadArrayFile[float64](path)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(back, data) {
		t.Error("float array changed across save and load")
	}

	if _, err := LoadArrayFile[int](filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
