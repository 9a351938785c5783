// Command puli runs derivability, justification, and hitting-set queries
// over inference graphs loaded from YAML files.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/OmOmofonmwan/puli/pkg/puli"
	"github.com/OmOmofonmwan/puli/pkg/puli/config"
	"github.com/OmOmofonmwan/puli/pkg/puli/interrupt"
	"github.com/OmOmofonmwan/puli/pkg/puli/justifications"
	"github.com/OmOmofonmwan/puli/pkg/puli/prooftree"
	"github.com/OmOmofonmwan/puli/pkg/puli/sets"
)

var (
	graphPath  string
	configPath string
	logLevel   string
	blocked    []string
	timeout    time.Duration
	showProof  bool
)

func main() {
	root := &cobra.Command{
		Use:           "puli",
		Short:         "Reason over inference graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&graphPath, "graph", "", "inference graph YAML file (required)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "engine configuration YAML file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "log level")
	root.MarkPersistentFlagRequired("graph")

	derivable := &cobra.Command{
		Use:   "derivable <goal>",
		Short: "Check whether a conclusion is derivable",
		Args:  cobra.ExactArgs(1),
		RunE:  runDerivable,
	}
	derivable.Flags().StringSliceVar(&blocked, "block", nil, "conclusions to block")
	derivable.Flags().BoolVar(&showProof, "proof", false, "print a derivation tree when derivable")

	justify := &cobra.Command{
		Use:   "justify <goal>",
		Short: "Enumerate the minimal justifications of a conclusion",
		Args:  cobra.ExactArgs(1),
		RunE:  runJustify,
	}
	justify.Flags().DurationVar(&timeout, "timeout", 0, "abort enumeration after this duration")

	hittingSets := &cobra.Command{
		Use:   "hitting-sets <set>...",
		Short: "Enumerate the minimal hitting sets of a family of sets",
		Long:  "Each argument is one set, written as comma-separated elements, e.g. a,b",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runHittingSets,
	}

	root.AddCommand(derivable, justify, hittingSets)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func load() (*puli.Puli[string, string], error) {
	g, justifier, err := config.LoadGraph(graphPath)
	if err != nil {
		return nil, err
	}
	cfg := config.Default()
	if configPath != "" {
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}
	selection, err := config.SelectionFor[string, string](cfg)
	if err != nil {
		return nil, err
	}
	var monitor interrupt.Monitor
	if timeout > 0 {
		monitor = interrupt.After(timeout)
	}
	return puli.New(puli.Options[string, string]{
		Graph:     g,
		Justifier: justifier,
		Monitor:   monitor,
		Selection: selection,
	})
}

func runDerivable(cmd *cobra.Command, args []string) error {
	p, err := load()
	if err != nil {
		return err
	}
	goal := args[0]
	for _, c := range blocked {
		p.Block(c)
	}
	derivable := p.IsDerivable(goal)
	fmt.Println(derivable)
	if !derivable {
		if diag := p.NonDerivableConclusions(); diag.Len() > 0 {
			fmt.Println("waiting on:", formatSet(diag))
		}
		return nil
	}
	if showProof {
		tree, err := p.ProofTree(goal)
		if err != nil {
			return err
		}
		printer := prooftree.Printer[string, string]{}
		printer.Print(os.Stdout, tree)
	}
	return nil
}

func runJustify(cmd *cobra.Command, args []string) error {
	p, err := load()
	if err != nil {
		return err
	}
	n := 0
	err = p.Enumerator(args[0]).Enumerate(func(just sets.Set[string]) {
		n++
		fmt.Println(formatSet(just))
	})
	if err != nil {
		return err
	}
	stats := p.Stats()
	fmt.Printf("%d minimal justifications (%d inferences produced, %d minimal)\n",
		n, stats.ProducedInferences, stats.MinimalInferences)
	return nil
}

func runHittingSets(cmd *cobra.Command, args []string) error {
	family := make([]sets.Set[string], 0, len(args))
	for _, arg := range args {
		family = append(family, sets.FromSlice(strings.Split(arg, ",")))
	}
	hittingSets, err := justifications.MinimalHittingSets(family)
	if err != nil {
		return err
	}
	for _, hs := range hittingSets {
		fmt.Println(formatSet(hs))
	}
	return nil
}

func formatSet(s sets.Set[string]) string {
	elems := s.Elements()
	sort.Strings(elems)
	return "{" + strings.Join(elems, ", ") + "}"
}
