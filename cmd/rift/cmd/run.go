package cmd

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/cwbudde/go-rift/internal/interp"
	"github.com/cwbudde/go-rift/internal/lexer"
	"github.com/cwbudde/go-rift/internal/module"
	"github.com/cwbudde/go-rift/internal/parser"
	"github.com/cwbudde/go-rift/internal/stdlib"
)

var (
	evalExpr   string
	dumpAST    bool
	dumpTokens bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a rift file or expression",
	Long: `Execute a rift program from a file or inline expression.

Examples:
  # Run a script file
  rift run script.rift

  # Evaluate an inline expression
  rift run -e "print(\"hi\")"

  # Run with AST dump (for debugging)
  rift run --dump-ast script.rift`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed syntax tree (for debugging)")
	runCmd.Flags().BoolVar(&dumpTokens, "dump-tokens", false, "dump the token stream (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	toks, err := lexer.New(source, filename).Tokenize()
	if err != nil {
		return err
	}
	if dumpTokens {
		for _, t := range toks {
			fmt.Printf("%-16s %q\n", t.Type, t.Lexeme)
		}
	}

	program, err := parser.Parse(toks, filename)
	if err != nil {
		return err
	}
	if dumpAST {
		for _, stmt := range program.Statements {
			pretty.Println(stmt)
		}
	}

	resolver := module.NewResolver()
	stdlib.RegisterAll(resolver)
	resolver.LoadSource = fileLoader

	it := interp.New(filename, resolver)
	if _, err := it.Run(program); err != nil {
		return err
	}
	return nil
}

// readSource resolves the run command's input: an inline -e expression,
// a single file argument, or neither (an error).
func readSource(eval string, args []string) (source, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(data), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}

// fileLoader resolves a `grab` path against the filesystem as a last
// resort after the stdlib registry, reading "path" or "path.rift"
// relative to the current working directory.
func fileLoader(path string) (string, string, error) {
	for _, candidate := range []string{path, path + ".rift"} {
		if data, err := os.ReadFile(candidate); err == nil {
			return string(data), candidate, nil
		}
	}
	return "", "", fmt.Errorf("module %q not found", path)
}
