package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cognicore/jnorm/pkg/jnorm/config"
	"github.com/cognicore/jnorm/pkg/jnorm/lexicon"
)

type options struct {
	lemmatize bool
	pos       lexicon.POS
}

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// realMain parses args, runs the normalizer and returns the process exit
// code. Deferred cleanup runs before the caller exits.
func realMain(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jnorm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "Config file (optional, defaults to the canonical pipeline)")
		text       = fs.String("text", "", "One-shot input (otherwise lines are read from stdin)")
		lemmatize  = fs.Bool("lemmatize", false, "Lemmatize each whitespace-separated token after normalizing")
		posFlag    = fs.String("pos", "", "Part of speech for -lemmatize: n, v, a, s, r (default: detect)")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	pos, err := lexicon.ParsePOS(*posFlag)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	ctx := context.Background()

	loader := config.Loader{ConfigPath: *configPath}
	comp, err := loader.Load(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer comp.Close()

	opts := options{lemmatize: *lemmatize, pos: pos}

	// One-shot mode
	in := stdin
	if *text != "" {
		in = strings.NewReader(*text)
	}

	if err := run(ctx, comp, in, stdout, opts); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// run normalizes every line of in and writes one result line per input line.
func run(ctx context.Context, comp *config.Components, in io.Reader, out io.Writer, opts options) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	w := bufio.NewWriter(out)
	for scanner.Scan() {
		line := comp.Normalizer.Process(scanner.Text())
		if opts.lemmatize {
			lemmas, err := lemmatizeLine(ctx, comp, line, opts.pos)
			if err != nil {
				return errors.Join(err, w.Flush())
			}
			line = lemmas
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Join(err, w.Flush())
	}
	return w.Flush()
}

func lemmatizeLine(ctx context.Context, comp *config.Components, line string, pos lexicon.POS) (string, error) {
	fields := strings.Fields(line)
	for i, f := range fields {
		lemma, err := comp.Normalizer.LemmatizeTerm(ctx, f, pos)
		if err != nil {
			return "", fmt.Errorf("lemmatize %q: %w", f, err)
		}
		fields[i] = lemma
	}
	return strings.Join(fields, " "), nil
}
