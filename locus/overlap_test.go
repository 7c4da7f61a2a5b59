package locus

import (
	"math"
	"math/rand"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		a, b Locus
		want OverlapResult
	}{
		{
			Locus{"chr1", 1, 100},
			Locus{"chr2", 1, 100},
			OverlapResult{},
		},
		{
			Locus{"chr1", 100, 200},
			Locus{"chr1", 200, 300},
			OverlapResult{Overlaps: true, Chrom: "chr1", Start: 200, End: 200, Width: 1},
		},
		{
			Locus{"chr1", 100, 200},
			Locus{"chr1", 250, 300},
			OverlapResult{},
		},
		{
			Locus{"chr1", 100, 200},
			Locus{"chr1", 201, 300},
			OverlapResult{},
		},
		{
			Locus{"chr3", 800, 5000},
			Locus{"chr3", 100, 900},
			OverlapResult{Overlaps: true, Chrom: "chr3", Start: 800, End: 900, Width: 101},
		},
		{
			Locus{"chr2", 400, 600},
			Locus{"chr2", 200, 500},
			OverlapResult{Overlaps: true, Chrom: "chr2", Start: 400, End: 500, Width: 101},
		},
		{
			Locus{"chr5", 10, 10},
			Locus{"chr5", 10, 10},
			OverlapResult{Overlaps: true, Chrom: "chr5", Start: 10, End: 10, Width: 1},
		},
		{
			// Reversed loci are not normalized.
			Locus{"chr1", 200, 100},
			Locus{"chr1", 50, 300},
			OverlapResult{},
		},
		{
			Locus{"chr1", 300, 100},
			Locus{"chr1", 400, 50},
			OverlapResult{},
		},
		{
			Locus{"chr1", 150, 300},
			Locus{"chr1", 100, 400},
			OverlapResult{Overlaps: true, Chrom: "chr1", Start: 150, End: 300, Width: 151},
		},
		{
			Locus{"chr1", 100, 200},
			Locus{"chrom1", 100, 200},
			OverlapResult{},
		},
		{
			Locus{"chr1", 0, math.MaxInt64},
			Locus{"chr1", 0, math.MaxInt64},
			OverlapResult{Overlaps: true, Chrom: "chr1", Start: 0, End: math.MaxInt64, Width: 1 << 63},
		},
		{
			Locus{"chr1", -10, math.MaxInt64},
			Locus{"chr1", math.MinInt64, 10},
			OverlapResult{Overlaps: true, Chrom: "chr1", Start: -10, End: 10, Width: 21},
		},
		{
			Locus{"chr1", math.MinInt64 + 1, math.MaxInt64},
			Locus{"chr1", math.MinInt64, math.MaxInt64},
			OverlapResult{Overlaps: true, Chrom: "chr1", Start: math.MinInt64 + 1, End: math.MaxInt64, Width: math.MaxUint64},
		},
		{
			// The only width that does not fit.
			Locus{"chr1", math.MinInt64, math.MaxInt64},
			Locus{"chr1", math.MinInt64, math.MaxInt64},
			OverlapResult{Overlaps: true, Chrom: "chr1", Start: math.MinInt64, End: math.MaxInt64, Width: 0},
		},
	}
	for _, tt := range tests {
		expect.EQ(t, Evaluate(tt.a, tt.b), tt.want, "%v %v", tt.a, tt.b)
		expect.EQ(t, Evaluate(tt.b, tt.a), tt.want, "%v %v", tt.b, tt.a)
		expect.EQ(t, Overlaps(tt.a, tt.b), tt.want.Overlaps)
	}
}

func TestEvaluateSymmetric(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	randLocus := func() Locus {
		// Small ranges so that both overlapping and disjoint pairs (and
		// start > stop loci) show up often.
		return Locus{
			Chrom: []string{"chr1", "chr2"}[r.Intn(2)],
			Start: PosType(r.Intn(50)),
			Stop:  PosType(r.Intn(50)),
		}
	}
	nOverlap := 0
	for i := 0; i < 5000; i++ {
		a, b := randLocus(), randLocus()
		ab := Evaluate(a, b)
		expect.EQ(t, ab, Evaluate(b, a), "%v %v", a, b)
		if ab.Overlaps {
			nOverlap++
			expect.EQ(t, ab.Width, uint64(ab.End-ab.Start+1))
			expect.True(t, ab.Width >= 1)
		} else {
			expect.EQ(t, ab, OverlapResult{})
		}
	}
	expect.True(t, nOverlap > 0)
}

func TestEvaluateParallel(t *testing.T) {
	a := MustParse("chr3:800-5000")
	b := MustParse("chr3:100-900")
	want := OverlapResult{Overlaps: true, Chrom: "chr3", Start: 800, End: 900, Width: 101}
	for i := 0; i < 8; i++ {
		t.Run("worker", func(t *testing.T) {
			t.Parallel()
			for j := 0; j < 1000; j++ {
				expect.EQ(t, Evaluate(a, b), want)
			}
		})
	}
}

func TestEvaluateLargeCoordinates(t *testing.T) {
	l := MustParse("chr1:0-9223372036854775807")
	r := Evaluate(l, l)
	expect.True(t, r.Overlaps)
	expect.EQ(t, r.Width, uint64(1)<<63)
}

func TestOverlapLabels(t *testing.T) {
	r := Evaluate(MustParse("chr3:800-5000"), MustParse("chr3:100-900"))
	expect.EQ(t, r.StartLabel(), "chr3:800")
	expect.EQ(t, r.EndLabel(), "chr3:900")
	region, ok := r.Region()
	expect.True(t, ok)
	expect.EQ(t, region, Locus{"chr3", 800, 900})

	var none OverlapResult
	expect.EQ(t, none.StartLabel(), "")
	expect.EQ(t, none.EndLabel(), "")
	_, ok = none.Region()
	expect.False(t, ok)
}

func TestFindOverlap(t *testing.T) {
	r, err := FindOverlap("chr2:400 - 600", "chr2 : 200-500")
	expect.NoError(t, err)
	expect.EQ(t, r, OverlapResult{Overlaps: true, Chrom: "chr2", Start: 400, End: 500, Width: 101})

	r, err = FindOverlap("chr1:1-100", "chr2:1-100")
	expect.NoError(t, err)
	expect.False(t, r.Overlaps)

	r, err = FindOverlap("chr1-100-200", "chr1:1-100")
	expect.True(t, IsInvalidLocusFormat(err))
	expect.EQ(t, r, OverlapResult{})

	_, err = FindOverlap("chr1:1-100", "1:100-200")
	expect.True(t, IsInvalidLocusFormat(err))
}
