/*Command bio-locus-overlap reports whether genomic loci overlap.

  Usage:
    bio-locus-overlap pair [-json] "chr2:400-600" "chr2:200-500"
    bio-locus-overlap batch [-parallelism N] [-skip-invalid] pairs.tsv[.gz] out.tsv[.gz]
    bio-locus-overlap summary [-skip-invalid] pairs.tsv[.gz]

  Loci are written as <chrom>:<start>-<stop> with inclusive coordinates.
  The chromosome must start with "chr".  Whitespace around ':' and '-' is
  ignored.
*/
package main
