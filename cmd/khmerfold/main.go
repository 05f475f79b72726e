// Command khmerfold streams text through the Khmer canonicalization pipeline
// and writes one JSON object per input line
//
//	echo 'ស្រ្តី' | khmerfold -mode analyze -level 2
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"khmerfold/internal/core/analyzer"
	"khmerfold/internal/core/normalize"
	"khmerfold/internal/core/reorder"
	"khmerfold/internal/core/rulepack"
	"khmerfold/internal/core/segment"
	"khmerfold/internal/platform/config"
	"khmerfold/internal/platform/logger"
)

// modes the CLI understands
const (
	modeAnalyze   = "analyze"
	modeNormalize = "normalize"
	modeSegment   = "segment"
	modeReorder   = "reorder"
	modeRules     = "rules"
)

// maxLine bounds one stdin line
const maxLine = 1 << 20

type options struct {
	mode  string
	level normalize.Level
	text  string
	trace bool
}

func main() {
	opts := logger.FromEnv()
	opts.Writer = os.Stderr
	opts.Component = "cli"
	logger.Init(opts)
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		l.Error().Err(err).Msg("khmerfold failed")
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	def := config.New().Prefix("CORE_ANALYZER_").MayString("LEVEL", normalize.DefaultLevel.String())

	fs := flag.NewFlagSet("khmerfold", flag.ContinueOnError)
	fs.SetOutput(stderr)
	mode := fs.String("mode", modeAnalyze, "analyze, normalize, segment, reorder or rules")
	level := fs.String("level", def, "normalization level: 0|canonical, 1|standard, 2|aggressive")
	text := fs.String("text", "", "analyze this text instead of reading stdin lines")
	trace := fs.Bool("trace", false, "include normalization edits in normalize output")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	lv, err := normalize.ParseLevel(*level)
	if err != nil {
		return options{}, err
	}
	switch *mode {
	case modeAnalyze, modeNormalize, modeSegment, modeReorder, modeRules:
	default:
		return options{}, fmt.Errorf("unknown -mode %q", *mode)
	}
	return options{mode: *mode, level: lv, text: *text, trace: *trace}, nil
}

// run is main without process exits so tests can drive it
func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	o, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	defer w.Flush()
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if o.mode == modeRules {
		return dumpRules(enc, o.level)
	}

	a, err := analyzer.New(analyzer.WithLevel(o.level))
	if err != nil {
		return err
	}
	emit := func(line string) error { return enc.Encode(process(a, o, line)) }

	if o.text != "" {
		return emit(o.text)
	}

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	n := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(sc.Text()); err != nil {
			return err
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read line %d: %w", n+1, err)
	}
	logger.C(ctx).Debug().Int("lines", n).Str("mode", o.mode).Msg("done")
	return nil
}

type normalizeLine struct {
	Input      string           `json:"input"`
	Normalized string           `json:"normalized"`
	Edits      []normalize.Edit `json:"edits,omitempty"`
}

type segmentLine struct {
	Input  string          `json:"input"`
	Tokens []segment.Token `json:"tokens"`
}

type reorderLine struct {
	Input     string   `json:"input"`
	Canonical []string `json:"canonical"`
}

type analyzeLine struct {
	Input      string          `json:"input"`
	Normalized string          `json:"normalized"`
	Terms      []analyzer.Term `json:"terms"`
}

func process(a *analyzer.Analyzer, o options, line string) any {
	switch o.mode {
	case modeNormalize:
		norm, tr := a.Normalize(line)
		out := normalizeLine{Input: line, Normalized: norm}
		if o.trace {
			out.Edits = tr.Edits()
		}
		return out
	case modeSegment:
		return segmentLine{Input: line, Tokens: nonNil(segment.All(line))}
	case modeReorder:
		// whitespace separated clusters, each put in canonical order
		return reorderLine{Input: line, Canonical: nonNil(reorder.All(strings.Fields(line)))}
	default:
		res := a.Analyze(line)
		return analyzeLine{Input: line, Normalized: res.Normalized, Terms: nonNil(res.Terms)}
	}
}

type ruleLine struct {
	Level int    `json:"level"`
	From  string `json:"from"`
	To    string `json:"to"`
	Note  string `json:"note,omitempty"`
}

// dumpRules prints every rule active at level, in application order
func dumpRules(enc *json.Encoder, level normalize.Level) error {
	p, err := rulepack.Default()
	if err != nil {
		return err
	}
	for _, r := range p.Tier(int(level)) {
		if err := enc.Encode(ruleLine{Level: r.Level, From: r.From, To: r.To, Note: r.Note}); err != nil {
			return err
		}
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
