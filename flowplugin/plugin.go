// Package flowplugin is the registry of placement engines bundled with
// flowdraw.
//
// See plugin_* files for the engines available for bundling.
package flowplugin

import (
	"context"
	"errors"
	"strings"

	"oss.terrastruct.com/flowdraw/flowlayouts/placement"
	"oss.terrastruct.com/flowdraw/lib/go2"
)

// plugins contains the bundled engines.
var plugins []Plugin

var ErrNotFound = errors.New("layout engine not found")

type Plugin interface {
	// Info returns the current info information of the plugin.
	Info(context.Context) (*PluginInfo, error)

	// Engine returns the placement engine flowlayouts drives.
	Engine(context.Context) (placement.Engine, error)
}

type PluginInfo struct {
	Name      string `json:"name"`
	ShortHelp string `json:"shortHelp"`
	LongHelp  string `json:"longHelp"`

	// Always bundled for now.
	Type string `json:"type"`
}

// ListPlugins returns the bundled plugins sorted by name.
func ListPlugins(ctx context.Context) ([]Plugin, error) {
	byName := make(map[string]Plugin, len(plugins))
	for _, p := range plugins {
		info, err := p.Info(ctx)
		if err != nil {
			return nil, err
		}
		byName[info.Name] = p
	}
	var ps []Plugin
	for _, name := range go2.SortedKeys(byName) {
		ps = append(ps, byName[name])
	}
	return ps, nil
}

func ListPluginInfos(ctx context.Context, ps []Plugin) ([]*PluginInfo, error) {
	var infoSlice []*PluginInfo
	for _, p := range ps {
		info, err := p.Info(ctx)
		if err != nil {
			return nil, err
		}
		infoSlice = append(infoSlice, info)
	}
	return infoSlice, nil
}

// FindPlugin finds the plugin with the given name, ignoring case.
func FindPlugin(ctx context.Context, ps []Plugin, name string) (Plugin, error) {
	for _, p := range ps {
		info, err := p.Info(ctx)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(info.Name, name) {
			return p, nil
		}
	}
	return nil, ErrNotFound
}
