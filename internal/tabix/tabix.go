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

// Package tabix answers region queries against tabix-indexed VCF files.
package tabix

import (
	"fmt"
	"io"

	"github.com/brentp/bix"
	"github.com/brentp/irelate/interfaces"
	"github.com/brentp/irelate/parsers"
	"github.com/brentp/vcfgo"

	"github.com/pangenomics/graphvar/internal/genomics"
	"github.com/pangenomics/graphvar/internal/variants"
	"github.com/pangenomics/graphvar/internal/vcf"
)

// position adapts a genomics.Region to the query interface bix expects.
type position struct {
	region genomics.Region
}

func (p position) Chrom() string { return p.region.Contig }
func (p position) Start() uint32 { return p.region.Start }
func (p position) End() uint32   { return p.region.End }

// Query opens the bgzip-compressed, tabix-indexed VCF at path (the .tbi file
// must sit alongside it) and returns a stream of the records overlapping
// region, in position order.  The stream owns the index handle; callers must
// close it on every exit path, including an early return from a scan.
func Query(path string, region genomics.Region) (variants.Stream, error) {
	tbx, err := bix.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening tabix index: %v", err)
	}

	iter, err := tbx.Query(position{region})
	if err != nil {
		tbx.Close()
		return nil, fmt.Errorf("querying %s: %v", region, err)
	}

	return &queryStream{tbx: tbx, iter: iter}, nil
}

type queryStream struct {
	tbx  *bix.Bix
	iter interfaces.RelatableIterator
}

func (s *queryStream) Next() (*variants.Record, error) {
	rel, err := s.iter.Next()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("reading record: %v", err)
	}
	raw, err := rawVariant(rel)
	if err != nil {
		return nil, err
	}
	// The index reader defers genotype parsing until asked; fill in the
	// sample columns before conversion or every record looks call-less.
	if err := s.tbx.VReader.Header.ParseSamples(raw); err != nil {
		return nil, fmt.Errorf("parsing genotypes: %v", err)
	}
	return vcf.FromVCF(raw), nil
}

func (s *queryStream) Close() error {
	s.iter.Close()
	return s.tbx.Close()
}

// rawVariant unwraps the concrete vcfgo record behind an iterator value.
func rawVariant(rel interfaces.Relatable) (*vcfgo.Variant, error) {
	iv, ok := rel.(interfaces.IVariant)
	if !ok {
		return nil, fmt.Errorf("record %T is not a variant", rel)
	}
	if wrapped, ok := iv.(interfaces.VarWrap); ok {
		iv = wrapped.IVariant
	}
	if wrapped, ok := iv.(*parsers.Variant); ok {
		iv = wrapped.IVariant
	}
	if raw, ok := iv.(*vcfgo.Variant); ok {
		return raw, nil
	}
	return nil, fmt.Errorf("record %T carries no vcf data", iv)
}
