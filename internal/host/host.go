// Package host runs translation of a flex file: it resolves input and output,
// guards existing grammar files, and reports progress.
package host

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ava12/flexpeg"
	"github.com/ava12/flexpeg/ast"
	"github.com/ava12/flexpeg/emitter"
	"github.com/ava12/flexpeg/flex"
	"github.com/ava12/flexpeg/internal/logging"
	"github.com/ava12/flexpeg/internal/logging/logfields"
	"github.com/ava12/flexpeg/source"
	"github.com/ava12/flexpeg/translate"
)

// AutogeneratedLine is the first line of generated grammar files.
// Existing files are only overwritten if they start with this line.
const AutogeneratedLine = "# Autogenerated by flexpeg.  Edits may be lost."

// StdinName is the source name used for standard input.
const StdinName = "-"

// Error codes used by host:
const (
	// UsageError indicates wrong command line arguments.
	UsageError = flexpeg.HostErrors + iota

	// OverwriteError indicates an existing output file not produced by flexpeg.
	OverwriteError
)

// Options control a single run.
type Options struct {
	// Grammar is the namespace qualifier, e.g. "A::B::Grammar".
	Grammar         string
	CaseInsensitive bool
	// Output is the grammar file path, empty means Host.Stdout.
	Output string
	// Force allows regenerating existing output file.
	Force bool
	// Buffered makes output written at once after successful translation.
	Buffered bool
	// Sexp makes the parsed syntax tree written instead of the grammar.
	Sexp bool
}

// Host holds process streams. Log and IsTerminal may be nil.
type Host struct {
	Stdin  io.Reader
	Stdout io.Writer
	Log    logrus.FieldLogger
	// IsTerminal reports whether a reader is an interactive terminal.
	IsTerminal func(io.Reader) bool
}

// New creates host using process standard streams.
func New() *Host {
	return &Host{
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Log:        logging.DefaultLogger.WithField(logfields.LogSubsys, "host"),
		IsTerminal: IsTerminal,
	}
}

// IsTerminal reports whether r is a file descriptor attached to a terminal.
func IsTerminal(r io.Reader) bool {
	f, is := r.(interface{ Fd() uintptr })
	if !is {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (h *Host) log() logrus.FieldLogger {
	if h.Log == nil {
		return logging.DefaultLogger.WithField(logfields.LogSubsys, "host")
	}
	return h.Log
}

func (h *Host) isTerminal(r io.Reader) bool {
	if h.IsTerminal == nil {
		return IsTerminal(r)
	}
	return h.IsTerminal(r)
}

type input struct {
	name string
	r    io.Reader
	c    io.Closer
}

// resolveInput picks the single file argument or standard input if it is not a terminal.
func (h *Host) resolveInput(args []string) (*input, error) {
	switch len(args) {
	case 0:
		if h.Stdin == nil || h.isTerminal(h.Stdin) {
			return nil, flexpeg.FormatError(UsageError, "expecting <flexfile>")
		}
		return &input{name: StdinName, r: h.Stdin}, nil

	case 1:
		if args[0] == StdinName {
			return h.resolveInput(nil)
		}

		f, err := os.Open(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "<flexfile> not found")
		}
		return &input{name: args[0], r: f, c: f}, nil

	default:
		return nil, flexpeg.FormatError(UsageError, "expecting single <flexfile>, got (%s)", strings.Join(args, " "))
	}
}

// checkOutput decides whether path may be written.
// Returns verb describing the action or empty string if existing file must be kept.
func (h *Host) checkOutput(path string, force bool) (string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return "creating", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "cannot check output file %s", path)
	}
	defer f.Close()

	if !force {
		h.log().WithField(logfields.Path, path).Infof("using: %s", path)
		return "", nil
	}

	sc := bufio.NewScanner(f)
	if sc.Scan() && strings.TrimRight(sc.Text(), "\r") != AutogeneratedLine {
		return "", flexpeg.FormatError(OverwriteError, "won't overwrite file without autogenerated line: %s", path)
	}
	if err := sc.Err(); err != nil {
		return "", errors.Wrapf(err, "cannot read output file %s", path)
	}

	return "regenerating", nil
}

// Run translates flex file named in args (or standard input) according to opts.
func (h *Host) Run(opts Options, args []string) (err error) {
	log := h.log()
	verb := ""
	if opts.Output != "" && !opts.Sexp {
		verb, err = h.checkOutput(opts.Output, opts.Force)
		if err != nil || verb == "" {
			return err
		}
	}

	in, err := h.resolveInput(args)
	if err != nil {
		return err
	}
	if in.c != nil {
		defer in.c.Close()
	}

	content, err := io.ReadAll(in.r)
	if err != nil {
		return errors.Wrapf(err, "cannot read %s", in.name)
	}

	root, err := Parse(source.New(in.name, content))
	if err != nil {
		return err
	}

	if opts.Sexp {
		_, err = io.WriteString(h.Stdout, ast.Sexp(root)+"\n")
		return errors.Wrap(err, "cannot write syntax tree")
	}

	var dst io.Writer = h.Stdout
	if opts.Output != "" {
		log.WithFields(logrus.Fields{logfields.Path: opts.Output, logfields.Source: in.name}).
			Infof("%s %s with %s", verb, opts.Output, in.name)

		f, e := os.Create(opts.Output)
		if e != nil {
			return errors.Wrapf(e, "cannot create %s", opts.Output)
		}
		defer func() {
			if ce := f.Close(); err == nil && ce != nil {
				err = errors.Wrapf(ce, "cannot close %s", opts.Output)
			}
		}()
		dst = f
	}

	var sink emitter.Sink
	if opts.Buffered {
		sink = emitter.Buffered(dst)
	} else {
		sink = emitter.Streaming(bufio.NewWriter(dst))
	}

	em := emitter.New(sink)
	if opts.Output != "" {
		em.Line(AutogeneratedLine)
	}

	ctx := translate.NewContext(opts.Grammar, opts.CaseInsensitive)
	tr := translate.New(ctx, em, log.WithField(logfields.Grammar, opts.Grammar))
	if err = tr.Translate(root); err != nil {
		return err
	}

	if err = em.Flush(); err != nil {
		return errors.Wrap(err, "cannot write grammar")
	}

	log.WithField(logfields.Notices, len(ctx.Notices())).Debug("translation done")
	return nil
}

// Parse parses flex source and resolves its syntax tree.
func Parse(src *source.Source) (*ast.Node, error) {
	p, err := flex.Parse(src)
	if err != nil {
		return nil, err
	}
	return ast.Resolve(p)
}
