// Copyright 2025 The graphvar Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package vcf contains support for reading VCF variant call files.
package vcf

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const columnHeaderPrefix = "#CHROM"

// fixedColumns is the number of mandatory VCF columns preceding the
// per-sample columns on the #CHROM line (including FORMAT).
const fixedColumns = 9

// Contig is one reference sequence declared in a VCF header.
type Contig struct {
	ID     string
	Length uint32
}

// Header holds the parts of a VCF header needed to answer region queries.
type Header struct {
	Contigs []Contig
	Samples []string
}

// HasContig reports whether name is declared as a contig in the header.
func (h *Header) HasContig(name string) bool {
	for _, contig := range h.Contigs {
		if contig.ID == name {
			return true
		}
	}
	return false
}

// ScanHeader reads the textual header of the VCF data in r, which may be
// plain or gzip compressed, and stops at the column header line without
// consuming any records.
func ScanHeader(r io.Reader) (*Header, error) {
	buffered := bufio.NewReader(r)
	if magic, err := buffered.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gzr, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, fmt.Errorf("initializing gzip reader: %v", err)
		}
		defer gzr.Close()
		return scanHeaderLines(gzr)
	}
	return scanHeaderLines(buffered)
}

func scanHeaderLines(r io.Reader) (*Header, error) {
	header := &Header{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "##contig") {
			contig := Contig{ID: contigField(line, "ID")}
			if length := contigField(line, "length"); length != "" {
				n, err := strconv.ParseUint(length, 10, 32)
				if err != nil {
					return nil, fmt.Errorf("parsing contig length: %v", err)
				}
				contig.Length = uint32(n)
			}
			header.Contigs = append(header.Contigs, contig)
			continue
		}
		if strings.HasPrefix(line, columnHeaderPrefix) {
			if fields := strings.Split(line, "\t"); len(fields) > fixedColumns {
				header.Samples = fields[fixedColumns:]
			}
			return header, nil
		}
		if !strings.HasPrefix(line, "#") {
			return nil, errors.New("records before column header")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning header: %v", err)
	}
	return nil, errors.New("truncated header")
}

// contigField extracts the value of a named field from a structured header
// line such as "##contig=<ID=chr4,length=190214555>".
func contigField(input, name string) string {
	field := fmt.Sprintf("%s=", name)
	for {
		start := strings.Index(input, field)
		if start == -1 {
			return ""
		}
		if start > 0 && !isDelimiter(input[start-1]) {
			input = input[start+len(field):]
			continue
		}
		input = input[start+len(field):]
		if end := strings.IndexAny(input, ",>"); end > 0 {
			return input[:end]
		}
		return input
	}
}

func isDelimiter(chr byte) bool {
	return chr == ',' || chr == '<'
}
