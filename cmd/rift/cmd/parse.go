package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/lexer"
	"github.com/cwbudde/go-rift/internal/parser"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse rift source and display the syntax tree",
	Long: `Parse rift source code and display its syntax tree.

Examples:
  rift parse script.rift
  rift parse -e "x = 1 + 2"
  rift parse --dump-ast script.rift`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "print each top-level node's fields instead of only its type and position")
}

func runParse(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	toks, err := lexer.New(source, filename).Tokenize()
	if err != nil {
		return err
	}
	program, err := parser.Parse(toks, filename)
	if err != nil {
		return err
	}

	for _, stmt := range program.Statements {
		dumpNode(stmt, 0)
	}
	return nil
}

func dumpNode(node ast.Node, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	p := node.Position()
	if parseDumpAST {
		fmt.Printf("%s%T @%d:%d %+v\n", indent, node, p.Line, p.Column, node)
		return
	}
	fmt.Printf("%s%T @%d:%d\n", indent, node, p.Line, p.Column)
}
