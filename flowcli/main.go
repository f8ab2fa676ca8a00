// Package flowcli implements the flowdraw command line.
package flowcli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"cdr.dev/slog"
	"github.com/spf13/pflag"

	"oss.terrastruct.com/flowdraw/flowlayouts"
	"oss.terrastruct.com/flowdraw/flowlib"
	"oss.terrastruct.com/flowdraw/flowplugin"
	"oss.terrastruct.com/flowdraw/lib/go2"
	"oss.terrastruct.com/flowdraw/lib/log"
	timelib "oss.terrastruct.com/flowdraw/lib/time"
	"oss.terrastruct.com/flowdraw/lib/version"
	"oss.terrastruct.com/flowdraw/lib/xmain"
)

func Run(ctx context.Context, ms *xmain.State) (err error) {
	ctx = log.Human(ctx, ms.Stderr)

	layoutFlag := ms.Opts.String("FLOWDRAW_LAYOUT", "layout", "l", flowlib.DEFAULT_LAYOUT, "the layout engine used")
	padFlag, err := ms.Opts.Float64("FLOWDRAW_PAD", "pad", "", flowlayouts.DefaultOpts.Padding, "pixels padded around the diagram")
	if err != nil {
		return err
	}
	nodeSpacingFlag, err := ms.Opts.Float64("FLOWDRAW_NODE_SPACING", "node-spacing", "", flowlayouts.DefaultOpts.NodeSpacing, "pixels between nodes in the same rank")
	if err != nil {
		return err
	}
	layerSpacingFlag, err := ms.Opts.Float64("FLOWDRAW_LAYER_SPACING", "layer-spacing", "", flowlayouts.DefaultOpts.LayerSpacing, "pixels between ranks")
	if err != nil {
		return err
	}
	fontFlag := ms.Opts.String("FLOWDRAW_FONT", "font", "", flowlayouts.DefaultOpts.Font, "font family used to size labels")
	timeoutFlag, err := ms.Opts.Float64("FLOWDRAW_TIMEOUT", "timeout", "", 120, "the maximum number of seconds spent on layout. 0 means no limit")
	if err != nil {
		return err
	}
	formatFlag := ms.Opts.String("FLOWDRAW_FORMAT", "format", "f", "", fmt.Sprintf("output format (%s). Inferred from the output extension when unset", strings.Join(flowlib.Formats, ", ")))
	debugFlag, err := ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		ms.Log.Warn.Printf("Invalid DEBUG flag value ignored")
		debugFlag = go2.Pointer(false)
	}
	versionFlag, err := ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return err
	}

	plugins, err := flowplugin.ListPlugins(ctx)
	if err != nil {
		return err
	}

	err = ms.Opts.Flags.Parse(ms.Opts.Args)
	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}
	if err != nil {
		return xmain.UsageErrorf("failed to parse flags: %v", err)
	}

	if *debugFlag {
		ctx = log.Leveled(ctx, slog.LevelDebug)
		ms.Env.Setenv("DEBUG", "1")
	}

	args := ms.Opts.Flags.Args()
	if len(args) > 0 {
		switch args[0] {
		case "layout":
			return layoutCmd(ctx, ms, plugins)
		case "version":
			if len(args) > 1 {
				return xmain.UsageErrorf("version subcommand accepts no arguments")
			}
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
	}

	switch {
	case len(args) == 0:
		if *versionFlag {
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
		help(ms)
		return nil
	case len(args) > 2:
		return xmain.UsageErrorf("too many arguments passed")
	}

	inputPath := args[0]
	outputPath := "-"
	if len(args) == 2 {
		outputPath = args[1]
	} else if inputPath != "-" {
		outputPath = renameExt(inputPath, ".excalidraw")
	}

	format, err := outputFormat(*formatFlag, outputPath)
	if err != nil {
		return xmain.UsageErrorf("%v", err)
	}

	plugin, err := flowplugin.FindPlugin(ctx, plugins, *layoutFlag)
	if err != nil {
		if errors.Is(err, flowplugin.ErrNotFound) {
			return layoutNotFound(ctx, plugins, *layoutFlag)
		}
		return err
	}
	ms.Log.Debug.Printf("using layout engine %s", *layoutFlag)

	opts := &flowlayouts.Opts{
		Font:         *fontFlag,
		Padding:      *padFlag,
		NodeSpacing:  *nodeSpacingFlag,
		LayerSpacing: *layerSpacingFlag,
	}
	ctx, cancel := timelib.WithTimeout(ctx, timelib.Seconds(*timeoutFlag))
	defer cancel()
	return compile(ctx, ms, plugin, opts, format, inputPath, outputPath)
}

func compile(ctx context.Context, ms *xmain.State, plugin flowplugin.Plugin, opts *flowlayouts.Opts, format, inputPath, outputPath string) error {
	start := time.Now()
	input, err := ms.ReadPath(inputPath)
	if err != nil {
		return err
	}

	engine, err := plugin.Engine(ctx)
	if err != nil {
		return err
	}
	diagram, _, err := flowlib.Compile(ctx, input, &flowlib.CompileOptions{
		Engine: engine,
		Layout: opts,
	})
	if errors.Is(err, context.DeadlineExceeded) {
		return xmain.ExitErrorf(1, "%s: layout timed out, raise --timeout for large diagrams", ms.HumanPath(inputPath))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ms.HumanPath(inputPath), err)
	}

	out, err := flowlib.Render(ctx, diagram, format, nil)
	if err != nil {
		return err
	}
	if err := ms.WritePath(outputPath, out); err != nil {
		return err
	}

	if outputPath != "-" {
		ms.Log.Success.Printf("successfully compiled %s to %s in %s", ms.HumanPath(inputPath), ms.HumanPath(outputPath), time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// outputFormat prefers an explicit format, then the output extension.
// Writing to stdout defaults to excalidraw.
func outputFormat(flag, outputPath string) (string, error) {
	format := strings.ToLower(flag)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(outputPath)), ".")
		if outputPath == "-" || format == "" {
			format = flowlib.FORMAT_EXCALIDRAW
		}
	}
	if !go2.Contains(flowlib.Formats, format) {
		return "", fmt.Errorf("unsupported output format %q, expected one of: %s", format, strings.Join(flowlib.Formats, ", "))
	}
	return format, nil
}

// newExt must include leading .
func renameExt(fp string, newExt string) string {
	ext := filepath.Ext(fp)
	return strings.TrimSuffix(fp, ext) + newExt
}
