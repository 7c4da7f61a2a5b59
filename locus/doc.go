/*Package locus parses genomic loci of the form "chr1:100-200" and reports
  whether two loci overlap, and by how much.

  Coordinates are treated as inclusive on both ends, so "chr1:100-200" and
  "chr1:200-300" overlap at exactly one position.  Strand is ignored, and
  start > stop is neither rejected nor normalized; such a locus simply flows
  through the max/min arithmetic in Evaluate.

  Everything in this package is a pure function over immutable values and may
  be called concurrently.
*/
package locus
