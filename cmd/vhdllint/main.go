// Command vhdllint is a static style and correctness checker for VHDL
// source, built on regex-level heuristics rather than a full parse. See
// internal/engine for the per-file pipeline and internal/rules for the
// individual checks.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/intrepidcs/vhdllint/internal/config"
	"github.com/intrepidcs/vhdllint/internal/diag"
	"github.com/intrepidcs/vhdllint/internal/discover"
	"github.com/intrepidcs/vhdllint/internal/engine"
	"github.com/intrepidcs/vhdllint/internal/format"
	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/rules"
)

var log = logrus.New()

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("vhdllint", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	output := fs.String("output", "emacs", "output format: emacs|vs7|eclipse|junit|sed|gsed")
	verbose := fs.Int("verbose", 1, "minimum confidence level to report (0-5)")
	counting := fs.String("counting", "total", "summary style: total|toplevel|detailed")
	lineLength := fs.Int("linelength", 80, "maximum line length; 0 disables the check")
	root := fs.String("root", "", "strip this prefix before matching the entity/filename rule")
	repository := fs.String("repository", "", "print paths relative to this directory")
	extensionsFlag := fs.String("extensions", "vhd,vhdl", "comma-separated file extensions to treat as VHDL")
	var excludes []string
	fs.StringArrayVar(&excludes, "exclude", nil, "glob pattern or directory to skip (repeatable)")
	var filters []string
	fs.StringArrayVar(&filters, "filter", nil, "±category filter, e.g. -whitespace,+build (repeatable)")
	recursive := fs.Bool("recursive", false, "recurse into directories given on the command line")
	quiet := fs.Bool("quiet", false, "suppress informational messages")
	logFormat := fs.String("log-format", "text", "ambient log format: text|json")
	configPath := fs.String("config", "", "path to a vhdllint.json file (default: search standard locations)")
	showVersion := fs.Bool("version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Println("vhdllint (unreleased)")
		return 0
	}

	if *logFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if *quiet {
		log.SetLevel(logrus.WarnLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		log.Warnf("could not load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	if !fs.Changed("output") && cfg.Output != "" {
		*output = cfg.Output
	}
	if !fs.Changed("verbose") && cfg.Verbose != 0 {
		*verbose = cfg.Verbose
	}
	if !fs.Changed("counting") && cfg.Counting != "" {
		*counting = cfg.Counting
	}
	if !fs.Changed("linelength") && cfg.LineLength != 0 {
		*lineLength = cfg.LineLength
	}
	if !fs.Changed("recursive") && cfg.Recursive {
		*recursive = true
	}
	if !fs.Changed("quiet") && cfg.Quiet {
		*quiet = true
	}
	if !fs.Changed("extensions") && len(cfg.Extensions) > 0 {
		*extensionsFlag = strings.Join(cfg.Extensions, ",")
	}
	excludes = append(excludes, cfg.Exclude...)

	paths := fs.Args()
	if len(paths) == 0 {
		fs.Usage()
		return 2
	}

	extensions := map[string]bool{}
	for _, ext := range strings.Split(*extensionsFlag, ",") {
		ext = strings.TrimSpace(ext)
		if ext != "" {
			extensions[ext] = true
		}
	}

	formatter, cleanup, err := buildFormatter(*output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer cleanup()

	warnUnknownFilterCategories(filters)

	sink := diag.New(*verbose, diag.Counting(*counting), formatter, rules.Categories)
	runFilters := append(append(append([]string{}, rules.DefaultFilters...), cfg.Filters...), filters...)
	if err := sink.SetFilters(runFilters); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	expanded, err := discover.Expand(paths, *recursive, extensions)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	expanded, err = discover.FilterExcluded(expanded, excludes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	for _, filename := range expanded {
		if cfg.ShouldIgnoreFile(filename) {
			continue
		}
		lintOneFile(sink, filename, *lineLength, *root, repository, extensions, *quiet)
	}

	sink.Flush()
	printSummary(sink, *quiet, *counting, *output)

	if sink.AnyEmitted() {
		return 1
	}
	return 0
}

// lintOneFile resolves the VHDLLINT.cfg chain for filename, reads its
// contents (stdin for "-"), and runs it through internal/engine. CRLF
// detection happens here, on the raw file bytes, before cleanse.New ever
// sees the lines: once \r is stripped nothing downstream can recover which
// lines originally had it.
func lintOneFile(sink *diag.Sink, filename string, lineLength int, root string, repository *string, extensions map[string]bool, quiet bool) {
	displayName := discover.RepositoryRelative(filename, *repository)

	if filename != "-" {
		ext := strings.TrimPrefix(extFor(filename), ".")
		if !extensions[ext] {
			log.Errorf("ignoring %s; not a recognized VHDL extension", filename)
			return
		}

		chain, cfgErrs := config.LoadCfgChain(filename)
		for _, e := range cfgErrs {
			log.Error(e)
		}
		if chain.Excluded {
			if !quiet {
				log.Infof("ignoring %q: file excluded by %q (path component %q matches pattern %q)",
					filename, chain.ExcludedBy, chain.ExcludedComponent, chain.ExcludedPattern)
			}
			return
		}
		if chain.LineLength != nil {
			lineLength = *chain.LineLength
		}
		if chain.Root != "" {
			root = chain.Root
		}
		// Apply the accumulated VHDLLINT.cfg filters, closest directory last
		// so it loses no priority against an ancestor's broader filter.
		for i := len(chain.Filters) - 1; i >= 0; i-- {
			if err := sink.AddFilters([]string{chain.Filters[i]}); err != nil {
				log.Error(err)
			}
		}
	}

	var content string
	if filename == "-" {
		data, rerr := io.ReadAll(bufio.NewReader(os.Stdin))
		if rerr != nil {
			log.Errorf("skipping input '-': %v", rerr)
			return
		}
		content = string(data)
	} else {
		raw, err := os.ReadFile(filename)
		if err != nil {
			log.Errorf("skipping %q: %v", filename, err)
			return
		}
		content = string(raw)
	}

	lines := strings.Split(content, "\n")
	var crlfLines []int
	for i := 0; i < len(lines)-1; i++ {
		if strings.HasSuffix(lines[i], "\r") {
			lines[i] = strings.TrimSuffix(lines[i], "\r")
			crlfLines = append(crlfLines, i+1)
		}
	}

	engine.ProcessFileData(displayName, lines, sink, func(msg string, args ...any) {
		log.Debugf(strings.TrimSuffix(msg, "\n"), args...)
	}, lineLength, root)

	// If end-of-line sequences are a mix of LF and CRLF, warn on the CRLF
	// lines; uniformly LF or uniformly CRLF files get no warning.
	if len(crlfLines) > 0 && len(crlfLines) < len(lines)-1 {
		for _, l := range crlfLines {
			sink.Emit(diag.Diagnostic{
				File:       displayName,
				Ref:        lineref.Point(l, 0),
				Category:   "whitespace/newline",
				Confidence: 1,
				Message:    `Unexpected \r (^M) found; better to use only \n`,
			})
		}
	}
}

// warnUnknownFilterCategories logs a warning for a --filter entry whose
// category prefix matches nothing in rules.Categories, with a "did you
// mean" suggestion when a full category name is within edit distance 3
// (e.g. "-whitespace/tabs" for "-whitespace/tab").
func warnUnknownFilterCategories(filters []string) {
	for _, f := range filters {
		if len(f) < 2 {
			continue
		}
		prefix := f[1:]
		known := false
		for _, c := range rules.Categories {
			if strings.HasPrefix(c, prefix) {
				known = true
				break
			}
		}
		if known {
			continue
		}
		if suggestion, ok := nearestCategory(prefix); ok {
			log.Warnf("--filter=%s matches no known category; did you mean %q?", f, suggestion)
		} else {
			log.Warnf("--filter=%s matches no known category", f)
		}
	}
}

func nearestCategory(prefix string) (string, bool) {
	best, bestDist := "", -1
	for _, c := range rules.Categories {
		d := levenshtein.ComputeDistance(prefix, c)
		if bestDist == -1 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist >= 0 && bestDist <= 3 {
		return best, true
	}
	return "", false
}

func extFor(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		return filename[idx:]
	}
	return filename
}

func buildFormatter(output string) (diag.Formatter, func(), error) {
	switch output {
	case "emacs":
		return format.Emacs{W: os.Stderr}, func() {}, nil
	case "vs7":
		return format.VS7{W: os.Stderr}, func() {}, nil
	case "eclipse":
		return format.Eclipse{W: os.Stderr}, func() {}, nil
	case "junit":
		return format.NewJUnit(os.Stdout), func() {}, nil
	case "sed", "gsed":
		return format.Sed{W: os.Stdout, Unfixed: os.Stderr, Program: output, Fixups: rules.SedFixups}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unrecognized --output format %q", output)
	}
}

// printSummary prints the per-category breakdown (toplevel/detailed
// counting only) followed by the total, matching PrintErrorCounts: the
// category breakdown never appears under the default "total" counting mode
// since nothing is bucketed by category in that mode, and nothing prints at
// all for a machine-readable output format (junit/sed/gsed), to keep their
// stdout parseable.
func printSummary(sink *diag.Sink, quiet bool, counting, output string) {
	if quiet || output == "junit" || output == "sed" || output == "gsed" {
		return
	}

	okColor := color.New(color.FgGreen)
	warnColor := color.New(color.FgYellow, color.Bold)

	if counting == string(diag.CountingTopLevel) || counting == string(diag.CountingDetailed) {
		counts := sink.Counts()
		categories := make([]string, 0, len(counts))
		for c := range counts {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		for _, c := range categories {
			fmt.Fprintf(os.Stderr, "Category '%s' errors found: %s\n", c, warnColor.Sprint(counts[c]))
		}
	}

	if sink.Total() > 0 {
		fmt.Fprintf(os.Stderr, "Total errors found: %d\n", sink.Total())
	} else {
		fmt.Fprintln(os.Stderr, okColor.Sprint("Done processing. No lint errors found."))
	}
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "Usage: vhdllint [options] <file|dir|-> ...")
	fmt.Fprintln(os.Stderr)
	fs.PrintDefaults()
}
