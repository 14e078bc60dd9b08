package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cakeruu/typegen/compiler/diag"
	"github.com/cakeruu/typegen/compiler/lexer"
	"github.com/cakeruu/typegen/compiler/parser"
)

// The daemon speaks a line protocol on stdin/stdout for editor
// integration: one request per line, one reply per line. Diagnostics
// are serialized in the machine format, whose separators cannot occur
// in messages, so the consumer can split the reply reliably.
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run an interactive parse loop for editor integration",
	Long: `Reads commands from stdin, one per line:

  parse <file>   parse one schema file, reply "ok" or its diagnostics
  exit           quit

Replies are single lines; diagnostics use the machine serialization.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer log.Sync()

		log.Info("daemon started")

		scanner := bufio.NewScanner(os.Stdin)
		out := bufio.NewWriter(os.Stdout)
		defer out.Flush()

		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			cmdName, arg, _ := strings.Cut(line, " ")
			switch cmdName {
			case "exit", "quit":
				log.Info("daemon stopping")
				return nil
			case "parse":
				if arg == "" {
					fmt.Fprintln(out, "error: parse requires a file path")
					break
				}
				fmt.Fprintln(out, parseReply(arg))
			default:
				fmt.Fprintf(out, "error: unknown command %q\n", cmdName)
			}
			out.Flush()
		}
		return scanner.Err()
	},
}

// parseReply parses one file and serializes the outcome as one line
func parseReply(path string) string {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	tokens, lexErrors := lexer.New(string(source), path).ScanTokens()
	if len(lexErrors) > 0 {
		var diags diag.List
		for _, lexErr := range lexErrors {
			diags = append(diags, diag.New(path, lexErr.Line, lexErr.Column, lexErr.Message))
		}
		return diags.Machine()
	}

	_, diags := parser.Parse(tokens, path)
	if diags.HasErrors() {
		return diags.Machine()
	}
	return "ok"
}
