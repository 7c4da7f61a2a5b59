package locus

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// PosType is the coordinate type of a Locus.
type PosType int64

// ChromPrefix must start every chromosome name.
const ChromPrefix = "chr"

// Locus is a chromosome name plus an inclusive [Start, Stop] coordinate pair.
// Values returned by Parse, New and NewFromFields always have a trimmed Chrom
// starting with ChromPrefix.  Start <= Stop is not enforced.
type Locus struct {
	Chrom string
	Start PosType
	Stop  PosType
}

// String renders l as "<chrom>:<start>-<stop>".  Parse accepts the result
// only when both coordinates are non-negative, since a '-' sign is
// indistinguishable from the range delimiter.
func (l Locus) String() string {
	return l.Chrom + ":" + strconv.FormatInt(int64(l.Start), 10) + "-" + strconv.FormatInt(int64(l.Stop), 10)
}

// Parse parses a locus string of the form
//   <chrom>:<start>-<stop>
// Whitespace around either delimiter is ignored, so "chr2 : 400 - 600" is the
// same locus as "chr2:400-600".  All failures have ErrInvalidLocusFormat as
// their cause.
func Parse(raw string) (l Locus, err error) {
	fields := strings.Split(raw, ":")
	if len(fields) != 2 {
		err = errors.Wrapf(ErrInvalidLocusFormat, "locus.Parse %q: want exactly one ':' separating chromosome and range", raw)
		return
	}
	chrom := strings.TrimSpace(fields[0])
	if !strings.HasPrefix(chrom, ChromPrefix) {
		err = errors.Wrapf(ErrInvalidLocusFormat, "locus.Parse %q: chromosome %q does not start with %q", raw, chrom, ChromPrefix)
		return
	}
	rangeFields := strings.Split(fields[1], "-")
	if len(rangeFields) != 2 {
		err = errors.Wrapf(ErrInvalidLocusFormat, "locus.Parse %q: want exactly one '-' separating start and stop", raw)
		return
	}
	var start, stop PosType
	if start, err = parsePos(rangeFields[0]); err != nil {
		err = errors.Wrapf(err, "locus.Parse %q: start", raw)
		return
	}
	if stop, err = parsePos(rangeFields[1]); err != nil {
		err = errors.Wrapf(err, "locus.Parse %q: stop", raw)
		return
	}
	return Locus{Chrom: chrom, Start: start, Stop: stop}, nil
}

// MustParse is like Parse, but panics on error.  Intended for tests and
// package-level literals.
func MustParse(raw string) Locus {
	l, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return l
}

func parsePos(s string) (PosType, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Out-of-range values are reported the same way as garbage.
		return 0, errors.Wrapf(ErrInvalidLocusFormat, "coordinate %q is not an integer", s)
	}
	return PosType(v), nil
}

func checkChrom(chrom string) (string, error) {
	chrom = strings.TrimSpace(chrom)
	if !strings.HasPrefix(chrom, ChromPrefix) {
		return "", errors.Wrapf(ErrInvalidLocusFormat, "chromosome %q does not start with %q", chrom, ChromPrefix)
	}
	return chrom, nil
}

// New builds a Locus from already separated fields.  The chromosome is
// trimmed and must start with ChromPrefix.
func New(chrom string, start, stop PosType) (Locus, error) {
	chrom, err := checkChrom(chrom)
	if err != nil {
		return Locus{}, errors.Wrap(err, "locus.New")
	}
	return Locus{Chrom: chrom, Start: start, Stop: stop}, nil
}

// NewFromFields is New for loosely typed values, e.g. fields of a decoded
// JSON or YAML document.  chrom must be a string, otherwise the error cause is
// ErrInvalidLocusFormat.  start and stop must have an integer kind whose value
// fits in PosType, otherwise the error cause is ErrInvalidCoordinateType.
// Floats are rejected even if integral.
func NewFromFields(chrom, start, stop interface{}) (Locus, error) {
	name, ok := chrom.(string)
	if !ok {
		return Locus{}, errors.Wrapf(ErrInvalidLocusFormat, "locus.NewFromFields: chromosome %v (%T) is not a string", chrom, chrom)
	}
	name, err := checkChrom(name)
	if err != nil {
		return Locus{}, errors.Wrap(err, "locus.NewFromFields")
	}
	startPos, err := toPos(start)
	if err != nil {
		return Locus{}, errors.Wrap(err, "locus.NewFromFields: start")
	}
	stopPos, err := toPos(stop)
	if err != nil {
		return Locus{}, errors.Wrap(err, "locus.NewFromFields: stop")
	}
	return Locus{Chrom: name, Start: startPos, Stop: stopPos}, nil
}

func toPos(v interface{}) (PosType, error) {
	if v == nil {
		return 0, errors.Wrap(ErrInvalidCoordinateType, "coordinate is missing")
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return PosType(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, errors.Wrapf(ErrInvalidCoordinateType, "coordinate %d overflows int64", u)
		}
		return PosType(u), nil
	}
	return 0, errors.Wrapf(ErrInvalidCoordinateType, "coordinate %v has type %T, want an integer", v, v)
}
