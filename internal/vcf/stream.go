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
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/brentp/vcfgo"

	"github.com/pangenomics/graphvar/internal/variants"
)

// Open returns a stream over every record in the VCF file at path.  Files
// ending in .gz are decompressed transparently.  Callers must close the
// stream to release the underlying file handle.
func Open(path string) (variants.Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vcf: %v", err)
	}

	var r io.Reader = f
	var gz *gzip.Reader
	if strings.HasSuffix(path, ".gz") {
		gz, err = gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("initializing gzip reader: %v", err)
		}
		r = gz
	}

	reader, err := vcfgo.NewReader(r, false)
	if err != nil {
		if gz != nil {
			gz.Close()
		}
		f.Close()
		return nil, fmt.Errorf("reading vcf header: %v", err)
	}

	return &fileStream{file: f, gzip: gz, reader: reader}, nil
}

type fileStream struct {
	file   *os.File
	gzip   *gzip.Reader
	reader *vcfgo.Reader
}

func (s *fileStream) Next() (*variants.Record, error) {
	v := s.reader.Read()
	if v == nil {
		return nil, io.EOF
	}
	return FromVCF(v), nil
}

func (s *fileStream) Close() error {
	if s.gzip != nil {
		s.gzip.Close()
	}
	return s.file.Close()
}

// FromVCF converts a parsed vcfgo record into the internal record form.
// Positions are converted to the zero-based coordinates used throughout
// graphvar.  Haploid calls are widened to a homozygous pair.  Samples with
// no call keep their position as an uncalled (-1, -1) pair so that declared
// sample order is preserved.
func FromVCF(v *vcfgo.Variant) *variants.Record {
	record := &variants.Record{
		Contig: v.Chromosome,
		Start:  uint32(v.Pos - 1),
		Ref:    v.Reference,
		Alt:    v.Alternate,
	}
	for _, sample := range v.Samples {
		if sample == nil || len(sample.GT) == 0 {
			record.Genotypes = append(record.Genotypes, variants.Genotype{A: -1, B: -1})
			continue
		}
		genotype := variants.Genotype{A: sample.GT[0], B: sample.GT[0], Phased: sample.Phased}
		if len(sample.GT) > 1 {
			genotype.B = sample.GT[1]
		}
		record.Genotypes = append(record.Genotypes, genotype)
	}
	return record
}
