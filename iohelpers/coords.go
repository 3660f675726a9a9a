// Package iohelpers adapts the line-oriented ASCII formats this pipeline
// reads and writes to the typed values the density and mpp packages
// operate on: coordinate matrices, free-energy and trajectory columns,
// and every output artifact format.
package iohelpers

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/lettis/clustering/clustererr"
)

// fields splits a line on any run of whitespace or commas, the
// "whitespace/CSV-tolerant" convention this loader promises.
func fields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// LoadCoordinates reads a text matrix, one row per line, columns
// separated by whitespace or commas, into a row-major float32 buffer.
// Every line must have the same number of columns as the first
// non-blank line.
func LoadCoordinates(path string) (X []float32, nRows, nCols int, err error) {
	f, openErr := os.Open(path)
	if openErr != nil {
		return nil, 0, 0, clustererr.IoFailure(path, openErr)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := fields(line)
		if nCols == 0 {
			nCols = len(parts)
		} else if len(parts) != nCols {
			return nil, 0, 0, clustererr.BadArgument(
				"%s: row %d has %d columns, want %d", path, nRows, len(parts), nCols)
		}
		for _, p := range parts {
			v, perr := strconv.ParseFloat(p, 32)
			if perr != nil {
				return nil, 0, 0, clustererr.IoFailure(path, perr)
			}
			X = append(X, float32(v))
		}
		nRows++
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, 0, clustererr.IoFailure(path, err)
	}
	return X, nRows, nCols, nil
}
