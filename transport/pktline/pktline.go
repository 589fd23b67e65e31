// Package pktline implements the length-prefixed line framing used by the
// smart-HTTP receive-pack protocol (spec.md §4.E): each line is prefixed by
// a 4-character hex length that counts itself, and a zero length ("0000")
// is a flush packet with no payload.
package pktline

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// ErrTruncated is returned when a length header claims more data than the
// buffer actually has left.
var ErrTruncated = errors.New("pkt-line stream is truncated")

// flushLine is the payload ExtractLines reports for a "0000" flush packet.
var flushLine = []byte{}

// ExtractLines splits a pkt-line stream into its constituent lines. A flush
// packet ("0000") is reported as an empty, non-nil line, matching
// original_source/th.py's extract_lines (which appends b'' for it) so
// callers can tell a flush apart from the absence of a line.
//
// Unlike th.py's extract_lines, this has no iteration cap: a receive-pack
// response or ref advertisement is bounded by the data actually present,
// not by an arbitrary line count (spec.md §9).
func ExtractLines(data []byte) ([][]byte, error) {
	var lines [][]byte
	i := 0
	for i < len(data) {
		if i+4 > len(data) {
			return nil, fmt.Errorf("length header at offset %d: %w", i, ErrTruncated)
		}
		length, err := strconv.ParseInt(string(data[i:i+4]), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid length header %q at offset %d: %w", data[i:i+4], i, err)
		}

		if length == 0 {
			lines = append(lines, flushLine)
			i += 4
			continue
		}

		end := i + int(length)
		if end > len(data) || end < i+4 {
			return nil, fmt.Errorf("line at offset %d claims length %d: %w", i, length, ErrTruncated)
		}
		lines = append(lines, data[i+4:end])
		i = end
	}
	return lines, nil
}

// BuildLinesData frames lines as a pkt-line stream terminated by a flush
// packet. Each line is written with a trailing newline the way
// original_source/th.py's build_lines_data does (the length header counts
// the 4 header bytes, the line itself, and that appended newline).
func BuildLinesData(lines [][]byte) []byte {
	buf := new(bytes.Buffer)
	for _, line := range lines {
		fmt.Fprintf(buf, "%04x", len(line)+5)
		buf.Write(line)
		buf.WriteByte('\n')
	}
	buf.WriteString("0000")
	return buf.Bytes()
}
