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

package vcf

import (
	"bytes"
	"compress/gzip"
	"strings"
	"testing"
)

const testHeader = "##fileformat=VCFv4.2\n" +
	"##contig=<ID=chr4,length=190214555>\n" +
	"##contig=<ID=chr5>\n" +
	"##FORMAT=<ID=GT,Number=1,Type=String,Description=\"Genotype\">\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tHG002\tHG003\n" +
	"chr4\t355041\t.\tA\tG\t30\tPASS\t.\tGT\t1/1\t0/1\n"

func TestScanHeader(t *testing.T) {
	header, err := ScanHeader(strings.NewReader(testHeader))
	if err != nil {
		t.Fatalf("ScanHeader() returned error: %v", err)
	}

	if got, want := len(header.Contigs), 2; got != want {
		t.Fatalf("Wrong contig count: got %d, want %d", got, want)
	}
	if got, want := header.Contigs[0], (Contig{ID: "chr4", Length: 190214555}); got != want {
		t.Fatalf("Wrong contig: got %v, want %v", got, want)
	}
	if got, want := len(header.Samples), 2; got != want {
		t.Fatalf("Wrong sample count: got %d, want %d", got, want)
	}
	if header.Samples[0] != "HG002" || header.Samples[1] != "HG003" {
		t.Fatalf("Wrong samples: got %v", header.Samples)
	}
}

func TestScanHeader_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(testHeader)); err != nil {
		t.Fatalf("Failed to compress testdata: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close gzip writer: %v", err)
	}

	header, err := ScanHeader(&buf)
	if err != nil {
		t.Fatalf("ScanHeader() returned error: %v", err)
	}
	if !header.HasContig("chr5") {
		t.Fatalf("Missing contig chr5 in %v", header.Contigs)
	}
}

func TestScanHeader_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no column header", "##fileformat=VCFv4.2\n"},
		{"record before column header", "##fileformat=VCFv4.2\nchr1\t1\t.\tA\tG\t.\t.\t.\n"},
		{"bad contig length", "##contig=<ID=chr1,length=x>\n#CHROM\tPOS\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ScanHeader(strings.NewReader(tc.input)); err == nil {
				t.Fatal("ScanHeader() succeeded, want error")
			}
		})
	}
}

func TestHasContig(t *testing.T) {
	header := &Header{Contigs: []Contig{{ID: "chr4"}, {ID: "chr5"}}}
	if !header.HasContig("chr4") {
		t.Error("HasContig(chr4) = false, want true")
	}
	if header.HasContig("chr6") {
		t.Error("HasContig(chr6) = true, want false")
	}
}

func TestContigField(t *testing.T) {
	testCases := []struct {
		contig string
		field  string
		want   string
	}{
		{"##contig=<ID=chr4,length=190214555>", "ID", "chr4"},
		{"##contig=<ID=chr4,length=190214555>", "length", "190214555"},
		{"##contig=<length=190214555>", "ID", ""},
		{"##contig=<ID=length,length=7>", "length", "7"},
	}

	for _, tc := range testCases {
		t.Run(tc.field, func(t *testing.T) {
			if got := contigField(tc.contig, tc.field); got != tc.want {
				t.Fatalf("Wrong contigField response: got %q, want %q", got, tc.want)
			}
		})
	}
}
