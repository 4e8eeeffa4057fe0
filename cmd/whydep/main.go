// Command whydep explains why a package is part of a locked resolution.
//
//	whydep --lockfile packages.lock requests
//	whydep --lockfile packages.lock --all --format table
//	whydep --lockfile packages.lock --tree
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/depwise/whydep"
	"github.com/depwise/whydep/graph"
	"github.com/depwise/whydep/lockfile"
)

const (
	flagLockfile = "lockfile"
	flagFormat   = "format"
	flagAll      = "all"
	flagTree     = "tree"
	flagVerbose  = "verbose"

	formatText  = "text"
	formatTable = "table"
	formatJSON  = "json"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whydep [package]",
		Short: "Explain why a package is part of a locked resolution",
		Long: `whydep reconstructs the chain of packages that caused a package to be
required, from a top-level requirement down to the package's immediate
requirer. An empty chain means the package is a direct requirement of the
root.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	cmd.Flags().StringP(flagLockfile, "l", "packages.lock", "path to the resolution lockfile")
	cmd.Flags().StringP(flagFormat, "f", formatText, "output format: text, table or json")
	cmd.Flags().Bool(flagAll, false, "explain every package in the lockfile")
	cmd.Flags().Bool(flagTree, false, "print the dependency tree instead of a chain")
	cmd.Flags().BoolP(flagVerbose, "v", false, "enable debug logging on stderr")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString(flagLockfile)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString(flagFormat)
	if err != nil {
		return err
	}
	all, err := cmd.Flags().GetBool(flagAll)
	if err != nil {
		return err
	}
	tree, err := cmd.Flags().GetBool(flagTree)
	if err != nil {
		return err
	}
	verbose, err := cmd.Flags().GetBool(flagVerbose)
	if err != nil {
		return err
	}

	var opts []whydep.Option
	if verbose {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		opts = append(opts, whydep.WithLogger(logger))
	}

	lf, err := lockfile.ReadFile(path)
	if err != nil {
		return err
	}
	g, err := lf.Graph()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch {
	case tree:
		fmt.Fprint(out, g.ToText())
		return nil
	case all:
		return explainAll(cmd, g, format, opts)
	case len(args) == 1:
		return explainOne(cmd, g, args[0], format, opts)
	default:
		return cmd.Help()
	}
}

func explainOne(cmd *cobra.Command, g *graph.Graph, name, format string, opts []whydep.Option) error {
	chain, err := whydep.Explain(g, name, opts...)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), format, []explanation{{
		Target: g.Find(name),
		Chain:  chain,
	}})
}

func explainAll(cmd *cobra.Command, g *graph.Graph, format string, opts []whydep.Option) error {
	var targets []*graph.Distribution
	for _, n := range g.Nodes() {
		if n.Dist != nil && !n.Dist.Installed {
			targets = append(targets, n.Dist)
		}
	}

	chains, err := whydep.ExplainAll(cmd.Context(), g, targets, opts...)
	if err != nil {
		return err
	}

	explanations := make([]explanation, len(targets))
	for i, target := range targets {
		explanations[i] = explanation{Target: target, Chain: chains[i]}
	}
	return render(cmd.OutOrStdout(), format, explanations)
}

// explanation pairs a target with its derivation chain for rendering.
type explanation struct {
	Target *graph.Distribution
	Chain  whydep.DerivationChain
}

func render(out io.Writer, format string, explanations []explanation) error {
	switch format {
	case formatText:
		return renderText(out, explanations)
	case formatTable:
		return renderTable(out, explanations)
	case formatJSON:
		return renderJSON(out, explanations)
	default:
		return fmt.Errorf("unknown format %q (expected text, table or json)", format)
	}
}

func renderText(out io.Writer, explanations []explanation) error {
	for _, e := range explanations {
		fmt.Fprintln(out, e.Target)
		if e.Chain.IsEmpty() {
			fmt.Fprintln(out, "  direct requirement of the root")
		} else {
			fmt.Fprintf(out, "  via: %s\n", e.Chain)
		}
	}
	return nil
}

func renderTable(out io.Writer, explanations []explanation) error {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Package", "Version", "Required Via"})
	for _, e := range explanations {
		via := "(root)"
		if !e.Chain.IsEmpty() {
			via = e.Chain.String()
		}
		t.AppendRow(table.Row{e.Target.Name, e.Target.Version, via})
	}
	t.Render()
	return nil
}

func renderJSON(out io.Writer, explanations []explanation) error {
	type step struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	type entry struct {
		Name    string `json:"name"`
		Version string `json:"version"`
		Chain   []step `json:"chain"`
	}

	entries := make([]entry, 0, len(explanations))
	for _, e := range explanations {
		en := entry{
			Name:    e.Target.Name,
			Version: e.Target.Version.String(),
			Chain:   make([]step, 0, e.Chain.Len()),
		}
		for s := range e.Chain.All() {
			en.Chain = append(en.Chain, step{Name: s.Name, Version: s.Version.String()})
		}
		entries = append(entries, en)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
