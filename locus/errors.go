package locus

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidLocusFormat is the cause of every error produced for a
	// malformed locus: a bad "<chrom>:<start>-<stop>" layout, a chromosome
	// without the "chr" prefix, or a coordinate that is not a base-10
	// integer.
	ErrInvalidLocusFormat = errors.New("invalid locus format")

	// ErrInvalidCoordinateType is the cause of errors produced by
	// NewFromFields when start or stop is not an integer.
	ErrInvalidCoordinateType = errors.New("invalid coordinate type")
)

// IsInvalidLocusFormat reports whether err was caused by
// ErrInvalidLocusFormat.
func IsInvalidLocusFormat(err error) bool {
	return err != nil && errors.Cause(err) == ErrInvalidLocusFormat
}

// IsInvalidCoordinateType reports whether err was caused by
// ErrInvalidCoordinateType.
func IsInvalidCoordinateType(err error) bool {
	return err != nil && errors.Cause(err) == ErrInvalidCoordinateType
}
