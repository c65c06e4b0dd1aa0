package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/relcraft/mono/internal/change"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate release-engine inputs",
}

var validateCommitCmd = &cobra.Command{
	Use:   "commit [file]",
	Short: "Parse a commit summary as a conventional commit",
	Long:  "Reads a commit summary line from file, or from stdin when file is omitted, and reports whether it parses as a conventional commit.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidateCommit,
}

func init() {
	validateCmd.AddCommand(validateCommitCmd)
}

func runValidateCommit(cmd *cobra.Command, args []string) error {
	var raw []byte
	var err error
	if len(args) == 1 {
		raw, err = os.ReadFile(args[0])
	} else {
		raw, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("read commit summary: %w", err)
	}

	summary := strings.SplitN(strings.TrimRight(string(raw), "\n"), "\n", 2)[0]
	parsed, err := change.Parse(summary)
	if err != nil {
		kind := "Unknown"
		for name, sentinel := range map[string]error{
			"Format": change.ErrFormat, "Kind": change.ErrKind, "Whitespace": change.ErrWhitespace,
			"Casing": change.ErrCasing, "Punctuation": change.ErrPunctuation, "Reference": change.ErrReference,
		} {
			if errors.Is(err, sentinel) {
				kind = name
			}
		}
		return fmt.Errorf("invalid commit summary (%s): %w", kind, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", parsed.String())
	return nil
}
