// Binary tmplview renders templates with locals loaded
// from files and NAME=VALUE flags, and reports rendering
// failures with the failing template line in context.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/byte4ever/tmplview/diagnose"
	"github.com/byte4ever/tmplview/locals"
	"github.com/byte4ever/tmplview/templating"
	"github.com/byte4ever/tmplview/view"
)

type options struct {
	localsFiles []string
	assigns     []string
	fromString  bool
	output      string
	executable  bool
	startTag    string
	endTag      string
	keepUnknown bool
	radius      int
	colorMode   string
	jobs        int
	verbose     bool
}

// errReported marks failures already printed to stderr.
var errReported = errors.New("render failed")

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "tmplview [flags] <template>...",
		Short: "Render templates with locals",
		Long: "Render one or more templates with locals taken from " +
			"files and --set flags. Rendering failures are reported " +
			"with the template line that caused them.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}

	fl := cmd.Flags()
	fl.StringArrayVar(
		&opts.localsFiles, "locals-file", nil,
		"locals file: json, yaml, toml, msgpack, cbor or KEY VALUE lines (repeatable)",
	)
	fl.StringArrayVar(
		&opts.assigns, "set", nil,
		"local in NAME=VALUE format, overrides files (repeatable)",
	)
	fl.BoolVar(
		&opts.fromString, "string", false,
		"treat arguments as template text instead of paths",
	)
	fl.StringVar(
		&opts.output, "output", "",
		"output file path (stdout if empty, single template only)",
	)
	fl.BoolVar(
		&opts.executable, "executable", false,
		"set executable bit on output file",
	)
	fl.StringVar(
		&opts.startTag, "start-tag", "{{",
		"start tag for template placeholders",
	)
	fl.StringVar(
		&opts.endTag, "end-tag", "}}",
		"end tag for template placeholders",
	)
	fl.BoolVar(
		&opts.keepUnknown, "keep-unknown", false,
		"leave tags naming unknown locals untouched",
	)
	fl.IntVar(
		&opts.radius, "context", diagnose.DefaultRadius,
		"source lines shown around a failing line",
	)
	fl.StringVar(
		&opts.colorMode, "color", "auto",
		"colorize error reports (auto|on|off)",
	)
	fl.IntVar(
		&opts.jobs, "jobs", 0,
		"max templates rendered in parallel (0=auto)",
	)
	fl.BoolVar(
		&opts.verbose, "verbose", false,
		"enable debug logging",
	)

	return cmd
}

func run(
	ctx context.Context,
	opts *options,
	args []string,
) error {
	const errCtx = "tmplview"

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(
		os.Stderr, &slog.HandlerOptions{Level: level},
	)))

	if opts.output != "" && len(args) > 1 {
		return fmt.Errorf(
			"%s: --output requires a single template", errCtx,
		)
	}

	printer, err := newPrinter(opts)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	vars, err := loadLocals(opts)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	results, err := renderAll(ctx, opts, args, vars)
	if err != nil {
		if perr := printer.Fprint(os.Stderr, err); perr != nil {
			slog.Error("printing report", "error", perr)
		}

		return errReported
	}

	out, closer, err := openOutput(opts.output, opts.executable)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if closer != nil {
		defer closer()
	}

	for _, res := range results {
		if _, err := io.WriteString(out, res); err != nil {
			return fmt.Errorf(
				"%s: writing output: %w", errCtx, err,
			)
		}
	}

	return nil
}

func newPrinter(opts *options) (diagnose.Printer, error) {
	pr := diagnose.Printer{Radius: opts.radius}

	switch opts.colorMode {
	case "auto":
		pr.Color = term.IsTerminal(int(os.Stderr.Fd()))
	case "on":
		pr.Color = true
	case "off":
	default:
		return pr, fmt.Errorf(
			"unknown --color value %q (auto|on|off)",
			opts.colorMode,
		)
	}

	return pr, nil
}

// loadLocals merges locals files in order, then applies
// --set assignments on top.
func loadLocals(opts *options) (map[string]any, error) {
	vars, err := locals.LoadAll(opts.localsFiles)
	if err != nil {
		return nil, err
	}

	for _, as := range opts.assigns {
		name, val, err := locals.ParseAssignment(as)
		if err != nil {
			return nil, err
		}

		vars[name] = val
	}

	slog.Debug(
		"locals loaded",
		"files", len(opts.localsFiles),
		"count", len(vars),
	)

	return vars, nil
}

// renderAll renders every template concurrently. Results
// keep argument order.
func renderAll(
	ctx context.Context,
	opts *options,
	args []string,
	vars map[string]any,
) ([]string, error) {
	jobs := opts.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	engine := templating.Engine{
		StartTag:    opts.startTag,
		EndTag:      opts.endTag,
		KeepUnknown: opts.keepUnknown,
	}

	results := make([]string, len(args))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(args)))

	for idx, arg := range args {
		idx, arg := idx, arg

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			out, err := renderOne(
				arg, opts.fromString, vars, engine,
			)
			if err != nil {
				return err
			}

			slog.Debug("rendered", "template", arg, "bytes", len(out))
			results[idx] = out

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func renderOne(
	arg string,
	fromString bool,
	vars map[string]any,
	engine templating.Engine,
) (string, error) {
	if fromString {
		return view.RenderString(
			arg, vars, view.WithEngine(engine),
		)
	}

	return view.RenderFile(arg, vars, view.WithEngine(engine))
}

// openOutput returns a writer for the result. When
// outPath is empty it returns stdout. The returned
// closer function must be called to finalize the file
// (may be nil for stdout).
func openOutput(
	outPath string,
	executable bool,
) (io.Writer, func(), error) {
	const errCtx = "opening output"

	if outPath == "" {
		return os.Stdout, nil, nil
	}

	var perm os.FileMode = 0o666
	if executable {
		perm = 0o777
	}

	fi, err := os.OpenFile( //nolint:gosec // path from CLI flag
		outPath,
		os.O_RDWR|os.O_CREATE|os.O_TRUNC,
		perm,
	)
	if err != nil {
		return nil, nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return fi, func() {
		_ = fi.Close() //nolint:errcheck // best-effort close
	}, nil
}

func main() {
	if err := newRootCmd().ExecuteContext(
		context.Background(),
	); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
