package main

// See doc.go for documentation
import (
	"os"

	"github.com/grailbio/locus/cmd/bio-locus-overlap/cmd"
)

func main() {
	os.Exit(cmd.Run())
}
