// Command snuplc-middle is a demonstration harness for the middle-end: it
// hand-builds a small sample AST (no lexer/parser is in scope here), runs
// it through type checking and TAC lowering, and prints the result.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Leeingnyo/snupl-scanning/colors"
	"github.com/Leeingnyo/snupl-scanning/internal/ast"
	"github.com/Leeingnyo/snupl-scanning/internal/middleend"
	"github.com/Leeingnyo/snupl-scanning/internal/source"
	"github.com/Leeingnyo/snupl-scanning/internal/symbols"
	"github.com/Leeingnyo/snupl-scanning/internal/table"
	"github.com/Leeingnyo/snupl-scanning/internal/tac"
	"github.com/Leeingnyo/snupl-scanning/internal/tokens"
	"github.com/Leeingnyo/snupl-scanning/internal/types"
)

func main() {
	plain := flag.Bool("plain", false, "print TAC without ANSI colors")
	flag.Parse()

	tm := types.NewManager()
	mod := sampleModule(tm)

	res, diag := middleend.Run(mod, tm)
	if diag != nil {
		reportError(*plain, diag.Message, diag.Token.String())
		os.Exit(1)
	}

	if *plain {
		fmt.Println("-- module --")
	} else {
		colors.BOLD_CYAN.Println("-- module --")
	}
	printBlock(res.TAC.Module, *plain)
}

func reportError(plain bool, message, tokStr string) {
	if plain {
		fmt.Printf("type error: %s (%s)\n", message, tokStr)
		return
	}
	colors.RED.Printf("type error: %s (%s)\n", message, tokStr)
}

func printBlock(cb *tac.CodeBlock, plain bool) {
	for _, instr := range cb.Instructions() {
		if l, isLabel := instr.(*tac.Label); isLabel {
			if plain {
				fmt.Printf("%s:\n", l.String())
			} else {
				colors.YELLOW.Printf("%s:\n", l.String())
			}
			continue
		}
		if s, ok := instr.(fmt.Stringer); ok {
			fmt.Printf("    %s\n", s.String())
		}
	}
}

// sampleModule hand-builds a module that assigns `a[i,j] := 0` where
// `a: array 3 of array 4 of integer`, to exercise array address lowering.
func sampleModule(tm *types.Manager) *ast.Module {
	st := table.NewModuleTable(tm)

	arrType := tm.GetArray(3, tm.GetArray(4, tm.GetInt()))
	a := symbols.NewSymbol("a", symbols.Global, arrType)
	i := symbols.NewSymbol("i", symbols.Global, tm.GetInt())
	j := symbols.NewSymbol("j", symbols.Global, tm.GetInt())
	_ = st.Declare("a", a)
	_ = st.Declare("i", i)
	_ = st.Declare("j", j)

	mod := ast.NewModule(tok("module"), st)

	ad := ast.NewArrayDesignator(tok("a"), a, tm)
	ad.AddIndex(ast.NewDesignator(tok("i"), i))
	ad.AddIndex(ast.NewDesignator(tok("j"), j))
	ad.IndicesComplete()

	assign := ast.NewAssign(tok(":="), ad, ast.NewConstant(tok("0"), ast.ConstInt, 0, tm))
	mod.SetStatementSequence(assign)
	return mod
}

func tok(value string) tokens.Token {
	p := source.Position{Line: 1, Column: 1}
	return tokens.NewToken(tokens.IDENT_TOKEN, value, p, p)
}
