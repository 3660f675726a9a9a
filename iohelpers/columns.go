package iohelpers

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lettis/clustering/clustererr"
)

// LoadFloatColumn reads one f32 per line.
func LoadFloatColumn(path string) ([]float32, error) {
	var out []float32
	err := scanLines(path, func(line string) error {
		v, perr := strconv.ParseFloat(line, 32)
		if perr != nil {
			return perr
		}
		out = append(out, float32(v))
		return nil
	})
	return out, err
}

// WriteFloatColumn writes one f32 per line.
func WriteFloatColumn(path string, values []float32) error {
	return writeLines(path, len(values), func(w *bufio.Writer, i int) error {
		_, err := fmt.Fprintf(w, "%g\n", values[i])
		return err
	})
}

// LoadIntColumn reads one integer per line.
func LoadIntColumn(path string) ([]int, error) {
	var out []int
	err := scanLines(path, func(line string) error {
		v, perr := strconv.Atoi(line)
		if perr != nil {
			return perr
		}
		out = append(out, v)
		return nil
	})
	return out, err
}

// WriteIntColumn writes one integer per line.
func WriteIntColumn(path string, values []int) error {
	return writeLines(path, len(values), func(w *bufio.Writer, i int) error {
		_, err := fmt.Fprintf(w, "%d\n", values[i])
		return err
	})
}

// scanLines opens path and calls fn once per non-blank trimmed line,
// wrapping any open/scan/fn error in clustererr.IoFailure.
func scanLines(path string, fn func(line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return clustererr.IoFailure(path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn(line); err != nil {
			return clustererr.IoFailure(path, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return clustererr.IoFailure(path, err)
	}
	return nil
}

// writeLines creates path and calls fn once per index in [0, n), flushing
// and closing afterward, wrapping any error in clustererr.IoFailure.
func writeLines(path string, n int, fn func(w *bufio.Writer, i int) error) error {
	f, err := os.Create(path)
	if err != nil {
		return clustererr.IoFailure(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := 0; i < n; i++ {
		if err := fn(w, i); err != nil {
			return clustererr.IoFailure(path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return clustererr.IoFailure(path, err)
	}
	return nil
}
