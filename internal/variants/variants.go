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

// Package variants defines variant call records and scans over them.
package variants

import (
	"errors"
	"fmt"
	"io"
)

// ErrNoHomozygousAlt is returned when a scan exhausts its stream without
// finding a homozygous-alternate call.  It is an explicit result so that
// callers cannot mistake "no variant" for a variant at position zero.
var ErrNoHomozygousAlt = errors.New("no homozygous-alternate variant found")

// Genotype is one sample's called genotype at a site: a pair of allele
// indices where 0 is the reference allele and 1 is the first alternate.
type Genotype struct {
	A, B   int
	Phased bool
}

// HomozygousAlt reports whether both alleles are the first alternate.
func (g Genotype) HomozygousAlt() bool {
	return g.A == 1 && g.B == 1
}

func (g Genotype) String() string {
	sep := "/"
	if g.Phased {
		sep = "|"
	}
	return fmt.Sprintf("%d%s%d", g.A, sep, g.B)
}

// Record is one row of a variant call stream.
type Record struct {
	// Contig and Start locate the site;  Start uses the coordinate system
	// of the stream the record came from.
	Contig string
	Start  uint32
	Ref    string
	Alt    []string
	// Genotypes holds one call per sample, in declared sample order.
	Genotypes []Genotype
}

func (r *Record) String() string {
	return fmt.Sprintf("%s:%d %s>%v", r.Contig, r.Start, r.Ref, r.Alt)
}

// Stream yields variant records in ascending position order.  Producers are
// expected to restrict the stream to a region of interest before handing it
// to a consumer.  Next returns io.EOF when the stream is exhausted.
type Stream interface {
	Next() (*Record, error)
	Close() error
}

// FirstHomozygousAlt scans stream in order and returns the first record
// whose first sample carries a homozygous-alternate genotype.  The scan
// stops as soon as a match is found; the remainder of the stream is not
// consumed.  Records without genotype calls are skipped.  If the stream
// ends without a match, ErrNoHomozygousAlt is returned.
//
// The stream is not closed here: callers own its lifetime so that the
// handle is released on every exit path, match or not.
func FirstHomozygousAlt(stream Stream) (*Record, error) {
	for {
		record, err := stream.Next()
		if err == io.EOF {
			return nil, ErrNoHomozygousAlt
		}
		if err != nil {
			return nil, fmt.Errorf("reading variant stream: %v", err)
		}
		if len(record.Genotypes) == 0 {
			continue
		}
		if record.Genotypes[0].HomozygousAlt() {
			return record, nil
		}
	}
}
