package flowcli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"oss.terrastruct.com/cmdlog"
	"oss.terrastruct.com/xos"

	"oss.terrastruct.com/flowdraw/flowtarget"
	"oss.terrastruct.com/flowdraw/lib/env"
	"oss.terrastruct.com/flowdraw/lib/version"
	"oss.terrastruct.com/flowdraw/lib/xmain"
)

func requireDot(t *testing.T) {
	if !env.GraphvizSmoke() {
		t.Skip("FLOWDRAW_GRAPHVIZ_TESTS not set")
	}
}

type buffer struct {
	bytes.Buffer
}

func (b *buffer) Close() error { return nil }

func runTestMain(t *testing.T, env []string, stdin string, args ...string) (stdout string, err error) {
	t.Helper()

	out := &buffer{}
	ms := xmain.NewState("flowdraw", args, xos.NewEnv(env), strings.NewReader(stdin), out, &buffer{})
	ms.Log = cmdlog.NewTB(ms.Env, t)
	err = Run(context.Background(), ms)
	return out.String(), err
}

const helloWorld = `
nodes:
  - id: x
    label: Hello
  - id: y
    label: World
edges:
  - from: x
    to: y
`

func TestRun(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		run  func(t *testing.T, dir string)
	}{
		{
			name: "help",
			run: func(t *testing.T, dir string) {
				out, err := runTestMain(t, nil, "", "--help")
				require.NoError(t, err)
				assert.Contains(t, out, "Usage:")
				assert.Contains(t, out, "--node-spacing")
				assert.Contains(t, out, "$FLOWDRAW_LAYOUT")
			},
		},
		{
			name: "no_args",
			run: func(t *testing.T, dir string) {
				out, err := runTestMain(t, nil, "")
				require.NoError(t, err)
				assert.Contains(t, out, "Subcommands:")
			},
		},
		{
			name: "version",
			run: func(t *testing.T, dir string) {
				out, err := runTestMain(t, nil, "", "version")
				require.NoError(t, err)
				assert.Equal(t, version.Version+"\n", out)

				out, err = runTestMain(t, nil, "", "--version")
				require.NoError(t, err)
				assert.Equal(t, version.Version+"\n", out)

				_, err = runTestMain(t, nil, "", "version", "extra")
				assert.ErrorAs(t, err, &xmain.UsageError{})
			},
		},
		{
			name: "layout",
			run: func(t *testing.T, dir string) {
				out, err := runTestMain(t, nil, "", "layout")
				require.NoError(t, err)
				assert.Contains(t, out, "dot (bundled) - ")

				out, err = runTestMain(t, nil, "", "layout", "DOT")
				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(out, "dot (bundled):\n\n"), out)

				_, err = runTestMain(t, nil, "", "layout", "elk")
				assert.EqualError(t, err, `bad usage: layout engine "elk" not found. The available options are: dot`)
			},
		},
		{
			name: "unknown_layout",
			run: func(t *testing.T, dir string) {
				_, err := runTestMain(t, []string{"FLOWDRAW_LAYOUT=elk"}, helloWorld, "-")
				assert.ErrorAs(t, err, &xmain.UsageError{})
			},
		},
		{
			name: "too_many_args",
			run: func(t *testing.T, dir string) {
				_, err := runTestMain(t, nil, "", "a.yaml", "b.json", "c.json")
				assert.EqualError(t, err, "bad usage: too many arguments passed")
			},
		},
		{
			name: "unknown_format",
			run: func(t *testing.T, dir string) {
				_, err := runTestMain(t, nil, "", "in.yaml", "out.svg")
				assert.EqualError(t, err, `bad usage: unsupported output format "svg", expected one of: excalidraw, json`)
			},
		},
		{
			name: "bad_env",
			run: func(t *testing.T, dir string) {
				_, err := runTestMain(t, []string{"FLOWDRAW_PAD=wide"}, "", "in.yaml")
				assert.EqualError(t, err, `invalid environment variable FLOWDRAW_PAD: expected number, found "wide"`)
			},
		},
		{
			name: "bad_flag",
			run: func(t *testing.T, dir string) {
				_, err := runTestMain(t, nil, "", "--pad=wide", "in.yaml")
				assert.ErrorAs(t, err, &xmain.UsageError{})
			},
		},
		{
			name: "missing_input",
			run: func(t *testing.T, dir string) {
				_, err := runTestMain(t, nil, "", filepath.Join(dir, "missing.yaml"))
				assert.ErrorIs(t, err, os.ErrNotExist)
			},
		},
		{
			name: "invalid_input",
			run: func(t *testing.T, dir string) {
				_, err := runTestMain(t, nil, "edges: [{from: a}]", "-")
				require.Error(t, err)
				assert.Contains(t, err.Error(), "stdin: failed to parse graph")
			},
		},
		{
			name: "json_file",
			run: func(t *testing.T, dir string) {
				requireDot(t)
				in := filepath.Join(dir, "hello.yaml")
				require.NoError(t, os.WriteFile(in, []byte(helloWorld), 0644))
				out := filepath.Join(dir, "hello.json")
				_, err := runTestMain(t, nil, "", "--pad=10", in, out)
				require.NoError(t, err)

				b, err := os.ReadFile(out)
				require.NoError(t, err)
				var d flowtarget.Diagram
				require.NoError(t, json.Unmarshal(b, &d))
				require.Len(t, d.Nodes, 2)
				assert.Len(t, d.Edges, 1)
				topLeft, _ := d.BoundingBox()
				assert.Equal(t, 10., topLeft.X)
				assert.Equal(t, 10., topLeft.Y)
			},
		},
		{
			name: "default_output_path",
			run: func(t *testing.T, dir string) {
				requireDot(t)
				in := filepath.Join(dir, "hello.yaml")
				require.NoError(t, os.WriteFile(in, []byte(helloWorld), 0644))
				_, err := runTestMain(t, nil, "", in)
				require.NoError(t, err)

				b, err := os.ReadFile(filepath.Join(dir, "hello.excalidraw"))
				require.NoError(t, err)
				var scene struct {
					Type     string            `json:"type"`
					Elements []json.RawMessage `json:"elements"`
				}
				require.NoError(t, json.Unmarshal(b, &scene))
				assert.Equal(t, "excalidraw", scene.Type)
				assert.Len(t, scene.Elements, 5)
			},
		},
		{
			name: "stdio",
			run: func(t *testing.T, dir string) {
				requireDot(t)
				out, err := runTestMain(t, nil, helloWorld, "-f", "json", "-")
				require.NoError(t, err)
				var d flowtarget.Diagram
				require.NoError(t, json.Unmarshal([]byte(out), &d))
				assert.Len(t, d.Nodes, 2)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tc.run(t, t.TempDir())
		})
	}
}

func TestOutputFormat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		flag   string
		path   string
		exp    string
		expErr bool
	}{
		{path: "-", exp: "excalidraw"},
		{path: "out.excalidraw", exp: "excalidraw"},
		{path: "out.JSON", exp: "json"},
		{path: "out", exp: "excalidraw"},
		{flag: "json", path: "out.excalidraw", exp: "json"},
		{flag: "svg", path: "-", expErr: true},
		{path: "out.png", expErr: true},
	}
	for _, tc := range testCases {
		format, err := outputFormat(tc.flag, tc.path)
		if tc.expErr {
			assert.Error(t, err, tc.path)
			continue
		}
		require.NoError(t, err, tc.path)
		assert.Equal(t, tc.exp, format, tc.path)
	}
}
