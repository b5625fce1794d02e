package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-rift/internal/lexer"
)

var (
	showPos  bool
	showType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a rift file or expression",
	Long: `Tokenize (lex) a rift program and print the resulting tokens. Useful
for debugging the lexer and understanding how source is tokenized.

Examples:
  # Tokenize a script file
  rift lex script.rift

  # Tokenize an inline expression
  rift lex -e "x = 1 + 2"

  # Show token types and positions
  rift lex --show-type --show-pos script.rift`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
}

func lexScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	toks, err := lexer.New(source, filename).Tokenize()
	if err != nil {
		return err
	}

	for _, t := range toks {
		var out string
		if showType {
			out = fmt.Sprintf("[%-14s]", t.Type)
		}
		if t.Lexeme == "" {
			out += fmt.Sprintf(" %s", t.Type)
		} else {
			out += fmt.Sprintf(" %q", t.Lexeme)
		}
		if showPos {
			out += fmt.Sprintf(" @%d:%d", t.Line, t.Column)
		}
		fmt.Println(out)
	}

	return nil
}
