package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-rift/internal/interp"
	"github.com/cwbudde/go-rift/internal/lexer"
	"github.com/cwbudde/go-rift/internal/module"
	"github.com/cwbudde/go-rift/internal/parser"
	"github.com/cwbudde/go-rift/internal/stdlib"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive rift shell",
	Long:  `Start an interactive read-eval-print loop over standard input.`,
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	resolver := module.NewResolver()
	stdlib.RegisterAll(resolver)
	resolver.LoadSource = fileLoader

	it := interp.New("<repl>", resolver)

	scanner := bufio.NewScanner(os.Stdin)
	var buf strings.Builder

	prompt := func() {
		if buf.Len() == 0 {
			fmt.Print("rift> ")
		} else {
			fmt.Print("  ... ")
		}
	}

	prompt()
	for scanner.Scan() {
		line := scanner.Text()
		buf.WriteString(line)
		buf.WriteByte('\n')

		if needsMoreInput(buf.String()) {
			prompt()
			continue
		}

		source := buf.String()
		buf.Reset()

		toks, err := lexer.New(source, "<repl>").Tokenize()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			prompt()
			continue
		}
		program, err := parser.Parse(toks, "<repl>")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			prompt()
			continue
		}
		val, err := it.Run(program)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			prompt()
			continue
		}
		if val != nil {
			fmt.Println(val.String())
		}
		prompt()
	}
	fmt.Println()
	return nil
}

// needsMoreInput decides whether the buffered source is a complete
// statement by counting paren/brace/bracket nesting (`(` `)`, `@` `#`,
// `~` `!`) and trailing binary or assignment operators; a naive rune
// scan is good enough for a REPL continuation prompt, not a full lexer
// pass.
func needsMoreInput(source string) bool {
	depth := 0
	inString := false
	var stringQuote rune
	runes := []rune(source)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if inString {
			if r == '\\' {
				i++
				continue
			}
			if r == stringQuote {
				inString = false
			}
			continue
		}
		switch r {
		case '"', '\'':
			inString = true
			stringQuote = r
		case '~':
			if i+1 < len(runes) && runes[i+1] == '>' {
				i++ // skip the async-pipeline operator "~>"
				continue
			}
			depth++
		case '(', '@':
			depth++
		case '#':
			depth--
		case '!':
			if i+1 < len(runes) && runes[i+1] == '=' {
				i++ // skip the not-equal operator "!="
				continue
			}
			depth--
		case ')':
			depth--
		}
	}
	if depth > 0 {
		return true
	}

	trimmed := strings.TrimRight(strings.TrimSpace(source), "\n")
	if trimmed == "" {
		return false
	}
	trailers := []string{"->", "~>", "+", "-", "*", "/", "=", "&&", "||", ","}
	for _, t := range trailers {
		if strings.HasSuffix(trimmed, t) {
			return true
		}
	}
	return false
}
