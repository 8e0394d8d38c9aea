package cmd

import (
	"os"

	json "github.com/goccy/go-json"

	"github.com/theirongolddev/fyfire/internal/cli"
)

// writeJSON writes v to stdout as indented JSON.
func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatGBP(v float64) string {
	return cli.FormatGBP(v)
}
