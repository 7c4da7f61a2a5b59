package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/locus/locus"
	"github.com/grailbio/locus/locus/pairtsv"
	"v.io/x/lib/cmdline"
)

// pairOutput is the JSON form of a single comparison.
type pairOutput struct {
	LocusA       string `json:"locus_a"`
	LocusB       string `json:"locus_b"`
	Overlaps     bool   `json:"overlap"`
	OverlapStart string `json:"overlap_starts_at,omitempty"`
	OverlapEnd   string `json:"overlap_ends_at,omitempty"`
	OverlapWidth *uint64 `json:"overlap_width,omitempty"`
}

func pair(w io.Writer, rawA, rawB string, asJSON bool) error {
	r, err := locus.FindOverlap(rawA, rawB)
	if err != nil {
		return err
	}
	if !asJSON {
		return pairtsv.WriteResults(w, []pairtsv.Result{{
			Row:           pairtsv.Row{LocusA: rawA, LocusB: rawB},
			OverlapResult: r,
		}})
	}
	out := pairOutput{
		LocusA:       rawA,
		LocusB:       rawB,
		Overlaps:     r.Overlaps,
		OverlapStart: r.StartLabel(),
		OverlapEnd:   r.EndLabel(),
	}
	if r.Overlaps {
		width := r.Width
		out.OverlapWidth = &width
	}
	js, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Panic(err)
	}
	_, err = fmt.Fprintln(w, string(js))
	return err
}

func summary(w io.Writer, path string, opts pairtsv.Opts) error {
	ctx := vcontext.Background()
	rows, err := pairtsv.ReadRowsFromPath(ctx, path)
	if err != nil {
		return err
	}
	results, err := pairtsv.Evaluate(ctx, rows, opts)
	if err != nil {
		return err
	}
	js, err := json.MarshalIndent(pairtsv.Summarize(results), "", "  ")
	if err != nil {
		log.Panic(err)
	}
	_, err = fmt.Fprintln(w, string(js))
	return err
}

func newCmdPair() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "pair",
		Short:    "Compare two loci",
		ArgsName: "locus_a locus_b",
		Long: `
Each locus has the form <chrom>:<start>-<stop>, e.g. "chr2:400-600".
Coordinates are inclusive, so "chr1:100-200" and "chr1:200-300" overlap by
one position. By default the result is printed as a TSV line with a header.`,
	}
	jsonFlag := cmd.Flags.Bool("json", false, "Print the result as JSON")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return env.UsageErrorf("pair takes two loci, but got %v", argv)
		}
		return pair(env.Stdout, argv[0], argv[1], *jsonFlag)
	})
	return cmd
}

func newCmdBatch() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "batch",
		Short:    "Compare every pair of loci listed in a TSV file",
		ArgsName: "srcpath destpath",
		Long: `
srcpath is a two-column TSV file with the header "locus_a<TAB>locus_b".
Lines starting with '#' are skipped. destpath
receives one line per pair with the columns

  locus_a locus_b overlaps overlap_start overlap_end overlap_width error

Either path may end in .gz.`,
	}
	opts := pairtsv.DefaultOpts
	cmd.Flags.IntVar(&opts.Parallelism, "parallelism", pairtsv.DefaultOpts.Parallelism, "Max number of concurrent jobs; 0 = runtime.NumCPU()")
	cmd.Flags.BoolVar(&opts.SkipInvalid, "skip-invalid", pairtsv.DefaultOpts.SkipInvalid, "Report malformed pairs in the error column instead of failing")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return env.UsageErrorf("batch takes srcpath destpath, but got %v", argv)
		}
		return pairtsv.Run(vcontext.Background(), argv[0], argv[1], opts)
	})
	return cmd
}

func newCmdSummary() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "summary",
		Short:    "Print a JSON summary of the overlaps in a pair TSV file",
		ArgsName: "path",
		Long: `
The summary holds pair counts, total overlap width per chromosome, and an
order-independent digest of all results. Two runs producing the same digest
produced the same results.`,
	}
	opts := pairtsv.DefaultOpts
	cmd.Flags.IntVar(&opts.Parallelism, "parallelism", pairtsv.DefaultOpts.Parallelism, "Max number of concurrent jobs; 0 = runtime.NumCPU()")
	cmd.Flags.BoolVar(&opts.SkipInvalid, "skip-invalid", pairtsv.DefaultOpts.SkipInvalid, "Count malformed pairs instead of failing")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return env.UsageErrorf("summary takes one path, but got %v", argv)
		}
		return summary(env.Stdout, argv[0], opts)
	})
	return cmd
}

func newCmdRoot() *cmdline.Command {
	return &cmdline.Command{
		Name:     "bio-locus-overlap",
		Short:    "Find overlaps between genomic loci",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdPair(),
			newCmdBatch(),
			newCmdSummary(),
		},
	}
}

// Run executes the command named by os.Args and returns the exit code.
func Run() int {
	shutdown := grail.Init()
	defer shutdown()
	cmdline.HideGlobalFlagsExcept()
	env := cmdline.EnvFromOS()
	runner, args, err := cmdline.Parse(newCmdRoot(), env, os.Args[1:])
	if err == nil {
		err = runner.Run(env, args)
	}
	return cmdline.ExitCode(err, env.Stderr)
}
