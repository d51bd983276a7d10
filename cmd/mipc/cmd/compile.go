package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cwbudde/mipc/internal/codegen"
	"github.com/cwbudde/mipc/internal/config"
	"github.com/cwbudde/mipc/internal/diag"
	"github.com/cwbudde/mipc/internal/lexer"
	"github.com/cwbudde/mipc/internal/parser"
	"github.com/cwbudde/mipc/internal/sema"
	"github.com/maruel/natural"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	outputFile   string
	jsonOutput   bool
	compileQuiet bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <input-source>...",
	Short: "Run name analysis, type check, and code generation over one or more source files",
	Long: `compile reads each input source file, runs the lexer and parser, then
the three semantic passes (name analysis, type check, code generation),
and writes the resulting SPIM/MIPS assembly next to each input with a
.s extension (or to -o when a single input is given).

Multiple inputs are compiled independently and processed in natural
sort order, so "file2.src" runs before "file10.src".

Examples:
  mipc compile hello.src
  mipc compile hello.src -o hello.s
  mipc compile a.src b.src c.src --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (single input only; default: <input>.s)")
	compileCmd.Flags().BoolVar(&jsonOutput, "json", false, "report diagnostics as JSON instead of caret-annotated text")
	compileCmd.Flags().BoolVarP(&compileQuiet, "quiet", "q", false, "suppress the per-file success banner")
}

func runCompile(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", configPath, err)
	}

	if outputFile != "" && len(args) > 1 {
		return fmt.Errorf("-o may only be used with a single input file")
	}

	inputs := append([]string(nil), args...)
	sort.Slice(inputs, func(i, j int) bool { return natural.Less(inputs[i], inputs[j]) })

	failures := 0
	for _, filename := range inputs {
		ok, err := compileOne(filename, cfg)
		if err != nil {
			return err
		}
		if !ok {
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d file(s) failed to compile", failures, len(inputs))
	}
	return nil
}

// compileOne runs the full pipeline for a single input file. It returns
// (true, nil) on success, (false, nil) when the file produced any
// diagnostics (whether or not assembly was still written for it), and a
// non-nil error only for I/O failures.
func compileOne(filename string, cfg *config.Config) (bool, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return false, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	src := string(content)

	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()

	sink := diag.NewCollectingSink(src, filename)
	for _, perr := range p.Errors() {
		sink.Error(0, 0, perr)
	}
	if sink.FatalCount() > 0 {
		reportDiagnostics(sink, cfg)
		return false, nil
	}

	// Name-analysis errors always halt the pipeline here: a symbol the
	// analyzer rejected (e.g. a duplicate declaration) is recorded in
	// NameInfo.Decls but was never inserted into a scope, so it carries
	// no valid offset or global flag for code generation to use.
	names := sema.NameAnalysis(prog, sink)
	if sink.FatalCount() > 0 {
		reportDiagnostics(sink, cfg)
		return false, nil
	}

	typeInfo := sema.TypeCheck(prog, names, sink)
	if sink.FatalCount() > 0 {
		reportDiagnostics(sink, cfg)
		if cfg.WarningsAsErrors {
			return false, nil
		}
		// Code generation still runs over an ill-typed program, producing
		// semantically meaningless assembly, unless the project
		// configuration opts into strict gating with warningsAsErrors.
	}

	asm := codegen.Generate(prog, names, typeInfo)
	if err := writeOutput(filename, asm, cfg); err != nil {
		return false, err
	}
	return sink.FatalCount() == 0, nil
}

func reportDiagnostics(sink *diag.CollectingSink, cfg *config.Config) {
	useJSON := jsonOutput || cfg.JSONDiagnostics
	if useJSON {
		out, err := sink.FormatJSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to format diagnostics as JSON: %v\n", err)
			fmt.Fprint(os.Stderr, sink.Format())
			return
		}
		fmt.Fprintln(os.Stderr, out)
		return
	}

	heading := cases.Title(language.English).String("diagnostics")
	fmt.Fprintf(os.Stderr, "%s:\n", heading)
	fmt.Fprint(os.Stderr, sink.Format())
}

func writeOutput(filename, asm string, cfg *config.Config) error {
	outFile := outputFile
	if outFile == "" {
		ext := filepath.Ext(filename)
		base := strings.TrimSuffix(filepath.Base(filename), ext) + ".s"
		if cfg.OutputDir != "" {
			outFile = filepath.Join(cfg.OutputDir, base)
		} else {
			outFile = filepath.Join(filepath.Dir(filename), base)
		}
	}

	if err := os.WriteFile(outFile, []byte(asm), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	if !compileQuiet {
		fmt.Printf("Compiled %s -> %s\n", filename, outFile)
	}
	return nil
}
