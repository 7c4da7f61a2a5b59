package pairtsv

import (
	"encoding/binary"
	"hash"
	"sort"

	"blainsmith.com/go/seahash"
)

// ChromSummary aggregates the overlapping pairs on one chromosome.
type ChromSummary struct {
	Chrom string
	// NOverlap is the # of overlapping pairs on this chromosome.
	NOverlap int64
	// SumWidth is the sum of their overlap widths, modulo 2^64.
	SumWidth uint64
}

// Summary is a compact description of a batch of results, meant for
// comparing two runs without diffing the full output.
type Summary struct {
	NPairs   int64
	NOverlap int64
	NInvalid int64
	SumWidth uint64
	// Digest is the sum of per-result hashes, so it does not depend on row
	// order.
	Digest uint64
	// Chroms is sorted by name.
	Chroms []ChromSummary
}

func hashResult(h hash.Hash64, r *Result) uint64 {
	var buf [8 * 3]byte
	h.Reset()
	h.Write([]byte(r.LocusA)) // nolint: errcheck
	h.Write([]byte{'\t'})     // nolint: errcheck
	h.Write([]byte(r.LocusB)) // nolint: errcheck
	h.Write([]byte{'\t'})     // nolint: errcheck
	switch {
	case r.Err != nil:
		h.Write([]byte{'E'}) // nolint: errcheck
	case r.Overlaps:
		h.Write([]byte{'T'}) // nolint: errcheck
		binary.LittleEndian.PutUint64(buf[0:], uint64(r.Start))
		binary.LittleEndian.PutUint64(buf[8:], uint64(r.End))
		binary.LittleEndian.PutUint64(buf[16:], r.Width)
		h.Write(buf[:]) // nolint: errcheck
	default:
		h.Write([]byte{'F'}) // nolint: errcheck
	}
	return h.Sum64()
}

// Summarize computes the Summary of results.
func Summarize(results []Result) Summary {
	var (
		s      Summary
		h      = seahash.New()
		chroms = map[string]*ChromSummary{}
	)
	for i := range results {
		r := &results[i]
		s.NPairs++
		s.Digest += hashResult(h, r)
		if r.Err != nil {
			s.NInvalid++
			continue
		}
		if !r.Overlaps {
			continue
		}
		s.NOverlap++
		s.SumWidth += r.Width
		c := chroms[r.Chrom]
		if c == nil {
			c = &ChromSummary{Chrom: r.Chrom}
			chroms[r.Chrom] = c
		}
		c.NOverlap++
		c.SumWidth += r.Width
	}
	for _, c := range chroms {
		s.Chroms = append(s.Chroms, *c)
	}
	sort.Slice(s.Chroms, func(i, j int) bool { return s.Chroms[i].Chrom < s.Chroms[j].Chrom })
	return s
}
