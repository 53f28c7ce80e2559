package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/rascent"
	"github.com/npillmayer/rascent/lr"
	"github.com/npillmayer/rascent/lr/ascent"
	"github.com/npillmayer/rascent/lr/scanner"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

const defaultInput = "a+a*(a+a)*a"

func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	vname := flag.String("variant", "", "Run a single parser variant")
	interactive := flag.Bool("i", false, "Interactive mode")
	showTree := flag.Bool("tree", false, "Print derivation trees")
	dotfile := flag.String("dot", "", "Write the LR(0) automaton in GraphViz format to a file")
	htmlfile := flag.String("html", "", "Write GOTO and ACTION tables as HTML, prefixing file names")
	flag.Parse()
	level := tracing.TraceLevelFromString(*tlevel)
	for _, key := range []string{"rascent.cli", "rascent.lr", "rascent.scanner", "rascent.ascent"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if input == "" {
		input = defaultInput
	}
	tracer().Infof("Input argument is %q", input)
	//
	variants := ascent.Variants()
	if *vname != "" {
		v, ok := ascent.Lookup(*vname)
		if !ok {
			pterm.Error.Printf("no parser variant named %q\n", *vname)
			os.Exit(2)
		}
		variants = []*ascent.Variant{v}
	}
	if err := exportAutomaton(*dotfile, *htmlfile); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	if *interactive {
		repl, err := NewREPL(variants, *showTree)
		if err != nil {
			tracer().Errorf(err.Error())
			os.Exit(3)
		}
		tracer().Infof("Quit with <ctrl>D")
		repl.Loop()
		return
	}
	if !runVariants(variants, input, *showTree) {
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// runVariants runs each variant once on input and prints a table of the
// results. It returns false if the variants do not agree.
func runVariants(variants []*ascent.Variant, input string, showTree bool) bool {
	data := [][]string{{"variant", "result", "rules", "pushes", "max depth", "description"}}
	var first *rascent.Recorder
	var firstErr error
	agree := true
	for i, v := range variants {
		pterm.Info.Println(v.Name)
		rec := &rascent.Recorder{}
		stats, err := v.ParseStats(scanner.FromString(input), rec.Sink())
		data = append(data, []string{
			v.Name,
			result(err),
			strconv.Itoa(len(rec.Rules)),
			strconv.Itoa(stats.Pushes),
			strconv.Itoa(stats.MaxDepth),
			v.Description,
		})
		if i == 0 {
			first, firstErr = rec, err
			continue
		}
		if err != firstErr || (err == nil && !rec.Equal(first.Rules)) {
			tracer().Errorf("variant %s disagrees with %s", v.Name, variants[0].Name)
			agree = false
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if showTree && firstErr == nil && first != nil {
		printTree(first.Rules)
	}
	if firstErr != nil {
		pterm.Error.Println(firstErr.Error())
	}
	return agree
}

func result(err error) string {
	if err == nil {
		return "accept"
	}
	if e, ok := rascent.AsError(err); ok {
		if e.Kind == rascent.EOF {
			return "EOF"
		}
		return fmt.Sprintf("Unexpected %q", e.Char)
	}
	return err.Error()
}

// exportAutomaton writes the automaton shared by all variants, if requested.
func exportAutomaton(dotfile, htmlprefix string) error {
	a := ascent.Automaton()
	if dotfile != "" {
		if err := writeFile(dotfile, a.WriteGraphViz); err != nil {
			return err
		}
		pterm.Info.Printf("automaton written to %s\n", dotfile)
	}
	if htmlprefix != "" {
		tables := lr.NewTables(a)
		if err := writeFile(htmlprefix+"-goto.html", func(w io.Writer) error {
			return lr.GotoTableAsHTML(tables, w)
		}); err != nil {
			return err
		}
		if err := writeFile(htmlprefix+"-action.html", func(w io.Writer) error {
			return lr.ActionTableAsHTML(tables, w)
		}); err != nil {
			return err
		}
		pterm.Info.Printf("tables written to %s-goto.html and %s-action.html\n", htmlprefix, htmlprefix)
	}
	return nil
}

func writeFile(name string, write func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", name, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("cannot write %s: %w", name, err)
	}
	return nil
}
