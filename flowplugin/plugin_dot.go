//go:build !nodot

package flowplugin

import (
	"context"

	"oss.terrastruct.com/flowdraw/flowlayouts/flowdot"
	"oss.terrastruct.com/flowdraw/flowlayouts/placement"
)

var DotPlugin = dotPlugin{}

func init() {
	plugins = append(plugins, &DotPlugin)
}

type dotPlugin struct{}

func (p dotPlugin) Info(context.Context) (*PluginInfo, error) {
	return &PluginInfo{
		Name:      "dot",
		ShortHelp: "Graphviz dot, compiled in",
		LongHelp: `dot is the layered graph layout engine of Graphviz.
See https://graphviz.org/docs/layouts/dot/
It runs in-process through go-graphviz, so no Graphviz install is needed.
Regions are laid out as dot clusters. Regions flowing in their own direction
are laid out separately and placed as single boxes.
`,
		Type: "bundled",
	}, nil
}

func (p dotPlugin) Engine(context.Context) (placement.Engine, error) {
	return flowdot.New(), nil
}
