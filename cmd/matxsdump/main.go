// matxsdump - decode a MATXS card-image file and print the document tree
//
// Usage:
//
//	matxsdump [--format json|yaml] [--width N] [--verbose] [file]
//
// Gzip-compressed inputs (*.gz) are decompressed transparently. If no
// file is given, reads from stdin.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/neutronics/cardimage/card"
	"github.com/neutronics/cardimage/matxs"
)

var (
	flagFormat  string
	flagWidth   int
	flagVerbose bool
	flagStore   bool
)

var rootCmd = &cobra.Command{
	Use:   "matxsdump [file]",
	Short: "Decode a MATXS card-image file",
	Long: `Decodes a MATXS multigroup cross-section file and prints the
document tree as JSON or YAML. Reads stdin when no file is given;
gzip-compressed files (*.gz) are decompressed transparently.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDump,
}

func init() {
	rootCmd.Flags().StringVar(&flagFormat, "format", "json", "output format: json or yaml")
	rootCmd.Flags().IntVar(&flagWidth, "width", card.DefaultLineWidth, "physical line width limit")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable per-card debug logging")
	rootCmd.Flags().BoolVar(&flagStore, "store", false, "dump the raw result store instead of the tree")
}

func runDump(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(flagVerbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	lines, err := readLines(args)
	if err != nil {
		return err
	}

	doc, store, err := matxs.Parse(lines, matxs.Options{
		LineWidth: flagWidth,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	var out any = doc
	if flagStore {
		dump := make(map[string]any, store.Len())
		for _, label := range store.Labels() {
			res, _ := store.Get(label)
			recs := make([]any, len(res.Records))
			for i, rec := range res.Records {
				m := make(map[string]any, len(rec))
				for k, v := range rec {
					m[k] = v.Interface()
				}
				recs[i] = m
			}
			dump[label] = recs
		}
		out = dump
	}

	switch flagFormat {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close()
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", flagFormat)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return config.Build()
}

func readLines(args []string) ([]string, error) {
	var r io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
		if strings.HasSuffix(args[0], ".gz") {
			gz, err := gzip.NewReader(f)
			if err != nil {
				return nil, err
			}
			defer gz.Close()
			r = gz
		}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimRight(string(data), "\n")
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	return lines, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "matxsdump:", err)
		os.Exit(1)
	}
}
