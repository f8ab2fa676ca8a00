// Package flowlib runs the whole pipeline: parse a graph document, lay it out
// and render the result.
package flowlib

import (
	"context"
	"fmt"
	"time"

	"oss.terrastruct.com/flowdraw/flowgraph"
	"oss.terrastruct.com/flowdraw/flowlayouts"
	"oss.terrastruct.com/flowdraw/flowlayouts/placement"
	"oss.terrastruct.com/flowdraw/flowplugin"
	"oss.terrastruct.com/flowdraw/flowrenderers/flowexcalidraw"
	"oss.terrastruct.com/flowdraw/flowtarget"
)

const (
	FORMAT_EXCALIDRAW = "excalidraw"
	FORMAT_JSON       = "json"

	DEFAULT_LAYOUT = "dot"
)

var Formats = []string{FORMAT_EXCALIDRAW, FORMAT_JSON}

type CompileOptions struct {
	// Engine places the graph. Defaults to the bundled dot plugin.
	Engine placement.Engine
	Layout *flowlayouts.Opts
}

func Compile(ctx context.Context, input []byte, opts *CompileOptions) (*flowtarget.Diagram, *flowgraph.Graph, error) {
	if opts == nil {
		opts = &CompileOptions{}
	}

	g, err := flowgraph.Parse(input)
	if err != nil {
		return nil, nil, err
	}

	engine := opts.Engine
	if engine == nil {
		engine, err = defaultEngine(ctx)
		if err != nil {
			return nil, nil, err
		}
	}

	diagram, err := flowlayouts.Layout(ctx, g, engine, opts.Layout)
	return diagram, g, err
}

func defaultEngine(ctx context.Context) (placement.Engine, error) {
	ps, err := flowplugin.ListPlugins(ctx)
	if err != nil {
		return nil, err
	}
	p, err := flowplugin.FindPlugin(ctx, ps, DEFAULT_LAYOUT)
	if err != nil {
		return nil, err
	}
	return p.Engine(ctx)
}

type RenderOptions struct {
	// Clock stamps excalidraw elements. Defaults to time.Now.
	Clock func() time.Time
}

func Render(ctx context.Context, diagram *flowtarget.Diagram, format string, opts *RenderOptions) ([]byte, error) {
	if opts == nil {
		opts = &RenderOptions{}
	}
	switch format {
	case FORMAT_EXCALIDRAW:
		return flowexcalidraw.Render(ctx, diagram, &flowexcalidraw.RenderOpts{Clock: opts.Clock})
	case FORMAT_JSON:
		return diagram.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
