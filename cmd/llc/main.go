// Command llc is a thin wrapper around internal/pipeline: it reads a project
// manifest, runs the driver, and either prints the resulting program as text
// or renders the diagnostics that stopped it. It never invokes a linker or
// backend; turning ir.Program into an object file is an external
// collaborator's job.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/config"
	"github.com/bherbruck/llts/internal/diag"
	"github.com/bherbruck/llts/internal/pipeline"
)

var (
	// Version info, set by ldflags during build.
	Version = "dev"
	Commit  = "unknown"

	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

func main() {
	var (
		manifestFlag = flag.String("manifest", "llts.toml", "path to the project manifest")
		versionFlag  = flag.Bool("version", false, "print version information")
		timingsFlag  = flag.Bool("timings", false, "print per-phase timings after a successful build")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("llc %s (%s)\n", Version, Commit)
		return
	}

	entry := flag.Arg(0)

	manifest, err := config.Load(*manifestFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", red("error"), err)
		os.Exit(1)
	}
	if entry == "" {
		entry = manifest.Entry
	}
	if entry == "" {
		fmt.Fprintf(os.Stderr, "%s: no entry file given (pass one, or set entry in %s)\n", red("error"), *manifestFlag)
		os.Exit(1)
	}

	result := pipeline.Run(pipeline.Config{
		EntryPath: entry,
		ParseFile: parseFile,
	})

	if len(result.Reports) > 0 {
		diag.Render(os.Stderr, result.Reports)
		diag.Summary(os.Stderr, result.Reports)
	}

	if !result.Success {
		os.Exit(1)
	}

	if manifest.Output.EmitIR {
		fmt.Println(result.Program.String())
	} else {
		fmt.Fprintf(os.Stderr, "%s build succeeded (%d functions, %d structs)\n",
			green("✓"), len(result.Program.Functions), len(result.Program.Structs))
	}

	if *timingsFlag {
		for _, phase := range []string{"resolve", "parse", "validate", "types", "lower"} {
			fmt.Fprintf(os.Stderr, "  %-10s %dms\n", phase, result.PhaseTimings[phase])
		}
	}
}

// parseFile is a placeholder: turning source text into an *ast.File is the
// external parser collaborator's job, not implemented in this repo.
func parseFile(path string) (*ast.File, error) {
	return nil, fmt.Errorf("parsing %s: no parser collaborator wired into this build", path)
}
