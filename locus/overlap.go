package locus

import (
	"strconv"

	"github.com/pkg/errors"
)

// OverlapResult describes how two loci intersect.  Chrom, Start, End and Width
// are set only when Overlaps is true; otherwise they are all zero.
type OverlapResult struct {
	Overlaps bool
	// Chrom is the chromosome shared by both loci.
	Chrom string
	// Start and End bound the overlap, inclusive.
	Start PosType
	End   PosType
	// Width is End - Start + 1.  It is unsigned so that every overlap
	// between int64 coordinates is representable, except the full
	// [MinInt64, MaxInt64] range, whose width 2^64 wraps to 0.
	Width uint64
}

// StartLabel returns the overlap start as "<chrom>:<pos>", or "" if there is
// no overlap.
func (r OverlapResult) StartLabel() string {
	if !r.Overlaps {
		return ""
	}
	return r.Chrom + ":" + strconv.FormatInt(int64(r.Start), 10)
}

// EndLabel returns the overlap end as "<chrom>:<pos>", or "" if there is no
// overlap.
func (r OverlapResult) EndLabel() string {
	if !r.Overlaps {
		return ""
	}
	return r.Chrom + ":" + strconv.FormatInt(int64(r.End), 10)
}

// Region returns the overlapping range as a Locus.  ok is false if there is no
// overlap.
func (r OverlapResult) Region() (l Locus, ok bool) {
	if !r.Overlaps {
		return
	}
	return Locus{Chrom: r.Chrom, Start: r.Start, Stop: r.End}, true
}

func maxPos(a, b PosType) PosType {
	if a > b {
		return a
	}
	return b
}

func minPos(a, b PosType) PosType {
	if a < b {
		return a
	}
	return b
}

// Evaluate computes the overlap of a and b.  Loci on different chromosomes
// never overlap.  Evaluate(a, b) == Evaluate(b, a).
func Evaluate(a, b Locus) (r OverlapResult) {
	if a.Chrom != b.Chrom {
		return
	}
	start := maxPos(a.Start, b.Start)
	end := minPos(a.Stop, b.Stop)
	if start > end {
		return
	}
	r.Overlaps = true
	r.Chrom = a.Chrom
	r.Start = start
	r.End = end
	r.Width = uint64(end-start) + 1
	return
}

// Overlaps is shorthand for Evaluate(a, b).Overlaps.
func Overlaps(a, b Locus) bool {
	return Evaluate(a, b).Overlaps
}

// FindOverlap parses both locus strings and evaluates them.  If either fails
// to parse, the (first) parse error is returned along with a zero result.
func FindOverlap(rawA, rawB string) (OverlapResult, error) {
	a, err := Parse(rawA)
	if err != nil {
		return OverlapResult{}, errors.Wrap(err, "first locus")
	}
	b, err := Parse(rawB)
	if err != nil {
		return OverlapResult{}, errors.Wrap(err, "second locus")
	}
	return Evaluate(a, b), nil
}
