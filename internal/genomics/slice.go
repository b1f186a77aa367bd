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

package genomics

// Slice describes a contiguous sub-region of a whole-genome coordinate
// system that has been extracted for local analysis.  Positions inside the
// extracted sequence are addressed relative to Offset, the start of the
// slice in whole-genome coordinates.
type Slice struct {
	// Contig names the extracted sequence in the local coordinate system.
	Contig string
	// Offset is the whole-genome position at which the slice begins.
	Offset uint32
	// Length is the extent of the slice in base pairs.  It is advisory:
	// the translation methods never consult it.
	Length uint32
}

// Translate converts a whole-genome position to a slice-relative position.
// The subtraction is unchecked: a position outside the slice produces an
// equally shifted, meaningless result rather than an error.  Callers that
// care should test the input with Contains first.
func (s Slice) Translate(pos uint32) uint32 {
	return pos - s.Offset
}

// TranslateRegion converts a whole-genome range to a slice-relative Region.
// Ordering of start and end is preserved and no bounds are enforced.
func (s Slice) TranslateRegion(start, end uint32) Region {
	return Region{Contig: s.Contig, Start: s.Translate(start), End: s.Translate(end)}
}

// Contains reports whether a whole-genome position falls inside the slice.
// If Length is zero only the lower bound is checked.
func (s Slice) Contains(pos uint32) bool {
	if pos < s.Offset {
		return false
	}
	return s.Length == 0 || pos < s.Offset+s.Length
}
