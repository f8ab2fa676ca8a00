package flowcli

import (
	"context"
	"fmt"
	"strings"

	"oss.terrastruct.com/flowdraw/flowplugin"
	"oss.terrastruct.com/flowdraw/lib/version"
	"oss.terrastruct.com/flowdraw/lib/xmain"
)

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `%[1]s %[2]s
Usage:
  %[1]s [--layout=dot] [--format=excalidraw] file.yaml [file.excalidraw | file.json]
  %[1]s layout [name]
  %[1]s version

%[1]s lays out the flowchart in file.yaml and writes it as an Excalidraw scene,
or as positioned JSON. It defaults to file.excalidraw if an output path is not
provided. The input may be YAML or JSON.

Use - to have %[1]s read from stdin or write to stdout.

Flags:
%[3]s

Subcommands:
  %[1]s layout - Lists available layout engines with short help
  %[1]s layout [name] - Display long help for a particular layout engine
  %[1]s version - Print the version
`, ms.Name, version.Version, ms.Opts.Help())
}

func layoutCmd(ctx context.Context, ms *xmain.State, ps []flowplugin.Plugin) error {
	switch len(ms.Opts.Flags.Args()) {
	case 1:
		return shortLayoutHelp(ctx, ms, ps)
	case 2:
		return longLayoutHelp(ctx, ms, ps)
	default:
		return xmain.UsageErrorf("layout subcommand accepts at most one engine name")
	}
}

func shortLayoutHelp(ctx context.Context, ms *xmain.State, ps []flowplugin.Plugin) error {
	pinfos, err := flowplugin.ListPluginInfos(ctx, ps)
	if err != nil {
		return err
	}
	var lines []string
	for _, p := range pinfos {
		lines = append(lines, fmt.Sprintf("%s (%s) - %s", p.Name, p.Type, p.ShortHelp))
	}
	fmt.Fprintf(ms.Stdout, `Available layout engines found:

%s

Usage:
  - Set the environment variable FLOWDRAW_LAYOUT, e.g. FLOWDRAW_LAYOUT=dot %[2]s file.yaml
  - Or use the flag --layout, e.g. %[2]s --layout=dot file.yaml

Run "%[2]s layout [name]" to learn more about an engine.
`, strings.Join(lines, "\n"), ms.Name)
	return nil
}

func longLayoutHelp(ctx context.Context, ms *xmain.State, ps []flowplugin.Plugin) error {
	layout := ms.Opts.Flags.Arg(1)
	plugin, err := flowplugin.FindPlugin(ctx, ps, layout)
	if err != nil {
		return layoutNotFound(ctx, ps, layout)
	}
	pinfo, err := plugin.Info(ctx)
	if err != nil {
		return err
	}
	longHelp := pinfo.LongHelp
	if !strings.HasSuffix(longHelp, "\n") {
		longHelp += "\n"
	}
	fmt.Fprintf(ms.Stdout, "%s (%s):\n\n%s", pinfo.Name, pinfo.Type, longHelp)
	return nil
}

func layoutNotFound(ctx context.Context, ps []flowplugin.Plugin, layout string) error {
	pinfos, err := flowplugin.ListPluginInfos(ctx, ps)
	if err != nil {
		return err
	}
	var names []string
	for _, p := range pinfos {
		names = append(names, p.Name)
	}
	return xmain.UsageErrorf(`layout engine %q not found. The available options are: %s`, layout, strings.Join(names, ", "))
}
