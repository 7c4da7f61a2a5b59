// Package pairtsv evaluates locus overlaps for many pairs at once.  Pairs are
// read from a two-column TSV file with a "locus_a\tlocus_b" header, and
// results are written as a TSV with one line per input pair.
package pairtsv

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/locus/locus"
	"github.com/klauspost/compress/gzip"
	"v.io/x/lib/vlog"
)

// Row is one input pair, i.e. one line of a two-column pair TSV.
type Row struct {
	LocusA string
	LocusB string
}

// Result is the outcome for one Row.  If Err is non-nil the row could not be
// parsed and the overlap fields are zero.
type Result struct {
	Row
	locus.OverlapResult
	Err error
}

// Opts controls Evaluate and Run.
type Opts struct {
	// Parallelism is the max number of concurrent evaluation jobs.  Zero means
	// runtime.NumCPU().
	Parallelism int
	// SkipInvalid makes a malformed pair yield a Result with Err set, instead
	// of failing the whole batch.
	SkipInvalid bool
}

// DefaultOpts is the default Opts.
var DefaultOpts = Opts{}

// Header lists the output columns written by WriteResults.
var Header = []string{"locus_a", "locus_b", "overlaps", "overlap_start", "overlap_end", "overlap_width", "error"}

// How many rows a job processes between context checks.
const ctxCheckInterval = 4096

func evaluateRow(row Row) (r Result) {
	r.Row = row
	r.OverlapResult, r.Err = locus.FindOverlap(row.LocusA, row.LocusB)
	return
}

// Evaluate computes the overlap for every row.  Rows are split into
// opts.Parallelism contiguous blocks which are evaluated concurrently.
//
// Unless opts.SkipInvalid is set, the first malformed row (by position) fails
// the batch; the returned error has kind errors.Invalid and names the 1-based
// row number.
func Evaluate(ctx context.Context, rows []Row, opts Opts) ([]Result, error) {
	results := make([]Result, len(rows))
	if len(rows) == 0 {
		return results, nil
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > len(rows) {
		parallelism = len(rows)
	}
	err := traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * len(rows)) / parallelism
		endIdx := ((jobIdx + 1) * len(rows)) / parallelism
		vlog.VI(1).Infof("pairtsv: job %d evaluating rows [%d, %d)", jobIdx, startIdx, endIdx)
		for i := startIdx; i < endIdx; i++ {
			if (i-startIdx)%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			results[i] = evaluateRow(rows[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	nOverlap, nInvalid := 0, 0
	for i := range results {
		if results[i].Err != nil {
			if !opts.SkipInvalid {
				return nil, errors.E(errors.Invalid, results[i].Err, fmt.Sprintf("pairtsv.Evaluate: row %d", i+1))
			}
			log.Error.Printf("pairtsv: skipping row %d: %v", i+1, results[i].Err)
			nInvalid++
			continue
		}
		if results[i].Overlaps {
			nOverlap++
		}
	}
	log.Printf("pairtsv: evaluated %d pair(s), %d overlapping, %d invalid", len(rows), nOverlap, nInvalid)
	return results, nil
}

// ReadRows reads pairs from r.  The first line must be the header
// "locus_a\tlocus_b"; lines starting with '#' are skipped.
func ReadRows(r io.Reader) ([]Row, error) {
	tr := tsv.NewReader(r)
	tr.Comment = '#'

	var rows []Row
	for lineIdx := 0; ; lineIdx++ {
		var row Row
		if err := tr.Read(&row); err != nil {
			if err == io.EOF {
				if lineIdx == 0 {
					return nil, errors.E(errors.Invalid, "pairtsv.ReadRows: missing header")
				}
				break
			}
			return nil, errors.E(errors.Invalid, err, fmt.Sprintf("pairtsv.ReadRows: record %d", lineIdx+1))
		}
		if lineIdx == 0 {
			if row.LocusA != Header[0] || row.LocusB != Header[1] {
				return nil, errors.E(errors.Invalid, fmt.Sprintf("pairtsv.ReadRows: header starts with %q, %q; want %q, %q",
					row.LocusA, row.LocusB, Header[0], Header[1]))
			}
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadRowsFromPath is a wrapper for ReadRows that takes a path instead of an
// io.Reader.  Paths ending in .gz are decompressed.
func ReadRowsFromPath(ctx context.Context, path string) (rows []Row, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "pairtsv.ReadRowsFromPath", path)
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = errors.E(cerr, "pairtsv.ReadRowsFromPath: close", path)
		}
	}()
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		var gz *gzip.Reader
		if gz, err = gzip.NewReader(reader); err != nil {
			return nil, errors.E(err, "pairtsv.ReadRowsFromPath", path)
		}
		defer gz.Close() // nolint: errcheck
		reader = gz
	}
	if rows, err = ReadRows(reader); err != nil {
		return nil, errors.E(err, "pairtsv.ReadRowsFromPath", path)
	}
	return rows, nil
}

// quoteField returns s in Go-quoted form if it contains a character that would
// break the TSV line structure.
func quoteField(s string) string {
	if strings.ContainsAny(s, "\t\n\r") {
		return strconv.Quote(s)
	}
	return s
}

// WriteResults writes a header line followed by one line per result.  The
// overlap_* columns are empty for non-overlapping pairs, and the error column
// is empty for valid ones.  Fields containing tabs or newlines are written as
// Go-quoted strings.
func WriteResults(w io.Writer, results []Result) error {
	tw := tsv.NewWriter(w)
	for _, col := range Header {
		tw.WriteString(col)
	}
	if err := tw.EndLine(); err != nil {
		return err
	}
	for _, r := range results {
		tw.WriteString(quoteField(r.LocusA))
		tw.WriteString(quoteField(r.LocusB))
		tw.WriteString(strconv.FormatBool(r.Overlaps))
		if r.Overlaps {
			tw.WriteInt64(int64(r.Start))
			tw.WriteInt64(int64(r.End))
			tw.WriteString(strconv.FormatUint(r.Width, 10))
		} else {
			tw.WriteString("")
			tw.WriteString("")
			tw.WriteString("")
		}
		if r.Err != nil {
			tw.WriteString(quoteField(r.Err.Error()))
		} else {
			tw.WriteString("")
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Run reads pairs from inPath, evaluates them, and writes the results to
// outPath.  Either path may end in .gz.
func Run(ctx context.Context, inPath, outPath string, opts Opts) (err error) {
	rows, err := ReadRowsFromPath(ctx, inPath)
	if err != nil {
		return err
	}
	log.Debug.Printf("pairtsv: read %d row(s) from %s", len(rows), inPath)
	results, err := Evaluate(ctx, rows, opts)
	if err != nil {
		return errors.E(err, inPath)
	}

	out, err := file.Create(ctx, outPath)
	if err != nil {
		return errors.E(err, "pairtsv.Run", outPath)
	}
	defer func() {
		if cerr := out.Close(ctx); cerr != nil && err == nil {
			err = errors.E(cerr, "pairtsv.Run: close", outPath)
		}
	}()
	w := out.Writer(ctx)
	switch fileio.DetermineType(outPath) {
	case fileio.Gzip:
		gz := gzip.NewWriter(w)
		if err = WriteResults(gz, results); err != nil {
			return errors.E(err, "pairtsv.Run", outPath)
		}
		if err = gz.Close(); err != nil {
			return errors.E(err, "pairtsv.Run", outPath)
		}
	default:
		if err = WriteResults(w, results); err != nil {
			return errors.E(err, "pairtsv.Run", outPath)
		}
	}
	log.Printf("pairtsv: wrote %d result(s) to %s", len(results), outPath)
	return nil
}
