package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rulebook-dev/rulebook/internal/config"
	"github.com/rulebook-dev/rulebook/internal/diffview"
	"github.com/rulebook-dev/rulebook/internal/document"
	"github.com/rulebook-dev/rulebook/internal/parser"
	"github.com/rulebook-dev/rulebook/internal/render"
	"github.com/rulebook-dev/rulebook/internal/rule"
	"github.com/rulebook-dev/rulebook/internal/watch"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// Exit codes: 1 generic, 2 document structurally invalid, 3 usage/IO/config.

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		// cobra already printed the error
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:          "rulebook",
		Short:        "Validate and inspect safety-critical coding rule documents",
		Long:         "Rulebook parses coding-rule documents written in the dash-separated ten-rule\nconvention, validates their structure, and renders the resulting catalog.",
		Version:      version,
		SilenceUsage: true,
	}

	def := parser.DefaultConvention()
	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default: rulebook.yaml in the working directory)")
	pf.String("separator", def.Separator, "Separator character between rule segments")
	pf.Int("separator-min", def.SeparatorMin, "Minimum separator run length")
	pf.String("explanation-marker", def.Explanation, "Heading that introduces a rule's rationale")
	pf.String("non-compliant-marker", def.NonCompliant, "Heading that introduces the before example")
	pf.String("compliant-marker", def.Compliant, "Heading that introduces the after example")
	pf.String("fence", def.Fence, "Code fence marker")
	pf.Bool("verbose", false, "Print processing steps to stderr")

	root.AddCommand(
		newCheckCmd(&cfgFile),
		newListCmd(&cfgFile),
		newShowCmd(&cfgFile),
		newDiffCmd(&cfgFile),
		newExportCmd(&cfgFile),
		newWatchCmd(&cfgFile),
	)
	return root
}

// load resolves configuration, reads the document, and parses it into a
// validated catalog. Structural defects map to exit code 2, everything
// else to 3.
func load(cmd *cobra.Command, cfgFile, path string) (*config.Config, *document.Document, *rule.Catalog, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, nil, codeError(3, "loading config: %s", err)
	}

	logVerbose(cfg.Verbose, "Loading document: %s", path)
	doc, err := document.Load(path)
	if err != nil {
		return nil, nil, nil, codeError(3, "loading document: %s", err)
	}

	logVerbose(cfg.Verbose, "Parsing %d lines", doc.LineCount)
	cat, err := parser.Parse(doc, cfg.Convention())
	if err != nil {
		return nil, nil, nil, codeError(2, "%s", err)
	}
	logVerbose(cfg.Verbose, "Catalog validated: %d rules", cat.Len())

	return cfg, doc, cat, nil
}

func newCheckCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check <document>",
		Short: "Validate a rules document against the ten-rule structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, doc, cat, err := load(cmd, *cfgFile, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules OK (%s)\n", args[0], cat.Len(), doc.Hash)
			return nil
		},
	}
}

func newListCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list <document>",
		Short: "List the rules of a validated document as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, doc, cat, err := load(cmd, *cfgFile, args[0])
			if err != nil {
				return err
			}
			r, _ := render.NewRenderer("table")
			out, err := r.Render(render.NewListing(doc, cat))
			if err != nil {
				return codeError(3, "rendering table: %s", err)
			}
			_, _ = cmd.OutOrStdout().Write(out)
			return nil
		},
	}
}

func newShowCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <document> <rule>",
		Short: "Print a single rule with its rationale and examples",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return codeError(3, "rule must be a number, got %q", args[1])
			}
			cfg, _, cat, err := load(cmd, *cfgFile, args[0])
			if err != nil {
				return err
			}
			e, err := cat.Get(index)
			if err != nil {
				return codeError(2, "%s", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%d. %s\n\n%s\n\n%s\n", e.Index(), e.Title(), cfg.ExplanationMarker, e.Explanation())
			if e.HasNonCompliant() {
				fmt.Fprintf(w, "\n%s\n%s\n", cfg.NonCompliantMarker, e.NonCompliant())
			}
			fmt.Fprintf(w, "\n%s\n%s\n", cfg.CompliantMarker, e.Compliant())
			return nil
		},
	}
}

func newDiffCmd(cfgFile *string) *cobra.Command {
	var patchFormat bool

	cmd := &cobra.Command{
		Use:   "diff <document> <rule>",
		Short: "Show the non-compliant to compliant transition of a rule as a diff",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return codeError(3, "rule must be a number, got %q", args[1])
			}
			_, _, cat, err := load(cmd, *cfgFile, args[0])
			if err != nil {
				return err
			}
			e, err := cat.Get(index)
			if err != nil {
				return codeError(2, "%s", err)
			}
			if !e.HasNonCompliant() {
				fmt.Fprintf(cmd.OutOrStdout(), "rule %d has no non-compliant example\n", index)
				return nil
			}

			out := diffview.Pretty(e)
			if patchFormat {
				out = diffview.PatchText(e)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&patchFormat, "patch", false, "Emit diff-match-patch text instead of an inline diff")
	return cmd
}

func newExportCmd(cfgFile *string) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export <document>",
		Short: "Export the validated catalog as json, md, or yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := render.NewRenderer(format)
			if err != nil {
				return codeError(3, "invalid format: %s", err)
			}
			_, doc, cat, err := load(cmd, *cfgFile, args[0])
			if err != nil {
				return err
			}
			outputBytes, err := renderer.Render(render.NewListing(doc, cat))
			if err != nil {
				return codeError(3, "rendering output: %s", err)
			}

			if out != "" {
				if err := os.WriteFile(out, outputBytes, 0o644); err != nil {
					return codeError(3, "writing output file: %s", err)
				}
				return nil
			}
			if _, err := cmd.OutOrStdout().Write(outputBytes); err != nil {
				return codeError(3, "writing output: %s", err)
			}
			// Ensure output ends with a newline for terminal friendliness.
			if len(outputBytes) > 0 && outputBytes[len(outputBytes)-1] != '\n' {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&format, "format", "json", "Output format: json, md, or yaml")
	f.StringVar(&out, "out", "", "Write output to file instead of stdout")
	return cmd
}

func newWatchCmd(cfgFile *string) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <document>",
		Short: "Re-validate a rules document whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			recheck := func() {
				_, doc, cat, err := load(cmd, *cfgFile, args[0])
				if err != nil {
					// Keep watching; the author fixes the document and saves again.
					fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules OK (%s)\n", args[0], cat.Len(), doc.Hash)
			}

			recheck()
			fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl-C to stop)\n", args[0])
			if err := watch.Run(ctx, args[0], debounce, recheck); err != nil {
				return codeError(3, "%s", err)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "Quiet period before re-validating after a change")
	return cmd
}

// logVerbose writes a message to stderr when verbose mode is enabled.
func logVerbose(verbose bool, format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "INFO: "+format+"\n", args...)
	}
}
