package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ion/internal/term"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [flags] <term>",
	Short: "Decode a serialized front-end token",
	Long:  `Decode the textual encoding of a structured token ({sigil,...}, ['name'], binaries) and print its canonical form`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runDecode(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	text := args[0]
	value, err := term.Parse(text)
	if err != nil {
		return fmt.Errorf("failed to decode term: %w", err)
	}

	switch format {
	case "pretty":
		fmt.Fprintln(cmd.OutOrStdout(), value)
		if note := describeToken(text); note != "" {
			fmt.Fprintln(cmd.OutOrStdout(), note)
		}
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(termJSON(value))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}

// describeToken распознаёт известные формы токенов поверх общего декодера.
func describeToken(text string) string {
	if strings.HasPrefix(text, "{sigil,") {
		s, err := term.DecodeSigil(text)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("sigil: ~%c with content %q", s.Tag, s.Content)
	}
	if name, err := term.DecodeIdentifier(text); err == nil {
		return fmt.Sprintf("identifier: %s", name)
	}
	return ""
}

// termJSON lowers a decoded value into a JSON-friendly tree.
func termJSON(v term.Value) any {
	switch t := v.(type) {
	case term.Atom:
		return map[string]any{"atom": string(t)}
	case term.Int:
		return map[string]any{"int": int64(t)}
	case term.Str:
		return map[string]any{"text": string(t)}
	case term.List:
		elems := make([]any, 0, len(t))
		for _, e := range t {
			elems = append(elems, termJSON(e))
		}
		return map[string]any{"list": elems}
	case term.Tuple:
		elems := make([]any, 0, len(t))
		for _, e := range t {
			elems = append(elems, termJSON(e))
		}
		return map[string]any{"tuple": elems}
	default:
		return nil
	}
}
