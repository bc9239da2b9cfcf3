package cmd

import (
	"fmt"

	"github.com/smasonuk/oopchecker/internal/lexer"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file and print its token stream",
	Args:  cobra.ExactArgs(1),
	Run:   runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) {
	src, _ := readSource(args)
	l := lexer.New(src)

	for {
		tok := l.NextToken()
		fmt.Printf("%-4d %-10s %q\n", tok.Pos.Line, tokenName(tok.Type), tok.Literal)
		if tok.Type == lexer.EOF {
			break
		}
	}

	for _, e := range l.Errors() {
		fmt.Println("lex error:", e)
	}
}

func tokenName(tt lexer.TokenType) string {
	names := map[lexer.TokenType]string{
		lexer.ILLEGAL: "ILLEGAL", lexer.EOF: "EOF",
		lexer.IDENT: "IDENT", lexer.INT: "INT", lexer.REAL: "REAL", lexer.STRING: "STRING",
		lexer.PROGRAM: "PROGRAM", lexer.CLASS: "CLASS", lexer.EXTENDS: "EXTENDS", lexer.VAR: "VAR",
		lexer.FUNCTION: "FUNCTION", lexer.PROCEDURE: "PROCEDURE", lexer.BEGIN: "BEGIN", lexer.END: "END",
		lexer.IF: "IF", lexer.THEN: "THEN", lexer.ELSE: "ELSE", lexer.WHILE: "WHILE", lexer.DO: "DO",
		lexer.PRINT: "PRINT", lexer.NEW: "NEW", lexer.THIS: "THIS", lexer.NOT: "NOT",
		lexer.TRUE: "TRUE", lexer.FALSE: "FALSE", lexer.ARRAY: "ARRAY", lexer.OF: "OF",
		lexer.INTEGER: "INTEGER", lexer.REALTYPE: "REAL_TYPE", lexer.CHARTYPE: "CHAR_TYPE", lexer.BOOLEAN: "BOOLEAN_TYPE",
		lexer.AND: "AND", lexer.OR: "OR",
		lexer.SEMICOLON: "SEMICOLON", lexer.COLON: "COLON", lexer.COMMA: "COMMA",
		lexer.DOT: "DOT", lexer.DOTDOT: "DOTDOT", lexer.LPAREN: "LPAREN", lexer.RPAREN: "RPAREN",
		lexer.LBRACK: "LBRACK", lexer.RBRACK: "RBRACK", lexer.ASSIGN: "ASSIGN",
		lexer.PLUS: "PLUS", lexer.MINUS: "MINUS", lexer.ASTERISK: "ASTERISK", lexer.SLASH: "SLASH",
		lexer.EQ: "EQ", lexer.NOT_EQ: "NOT_EQ", lexer.LESS: "LESS", lexer.GREATER: "GREATER",
		lexer.LESS_EQ: "LESS_EQ", lexer.GREATER_EQ: "GREATER_EQ",
	}
	if n, ok := names[tt]; ok {
		return n
	}
	return "?"
}
