// Package manager resolves exporter names to built-in formats or external
// plugin binaries and runs them against a palette.
package manager

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/go-homedir"

	"github.com/jmylchreest/huekit/internal/export"
	"github.com/jmylchreest/huekit/internal/palette"
	"github.com/jmylchreest/huekit/internal/plugin/executor"
	"github.com/jmylchreest/huekit/internal/version"
	huekitplugin "github.com/jmylchreest/huekit/pkg/plugin"
)

// ErrUnknownExporter is returned when a name matches no exporter.
var ErrUnknownExporter = errors.New("unknown exporter")

// Source tells built-in exporters apart from external plugins.
type Source string

const (
	SourceBuiltin  Source = "builtin"
	SourceExternal Source = "external"
)

// Config configures a Manager.
type Config struct {
	// Exporters maps plugin names to binary paths. Paths may start with ~.
	Exporters map[string]string
	Logger    hclog.Logger
	Runner    executor.ProcessRunner
}

// Entry describes one exporter for listings.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      Source `json:"source"`
	Path        string `json:"path,omitempty"`
}

// Manager owns the exporter set. External executors are started on first
// use and kept until Close.
type Manager struct {
	builtins map[string]huekitplugin.Exporter
	external map[string]string
	logger   hclog.Logger
	runner   executor.ProcessRunner

	mu   sync.Mutex
	open map[string]*executor.Executor
}

// New builds a manager with every built-in export format registered and the
// configured external plugins added. A plugin named like a built-in format
// is rejected.
func New(cfg Config) (*Manager, error) {
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	m := &Manager{
		builtins: make(map[string]huekitplugin.Exporter),
		external: make(map[string]string),
		logger:   cfg.Logger.Named("plugins"),
		runner:   cfg.Runner,
		open:     make(map[string]*executor.Executor),
	}

	for _, info := range export.Formats() {
		m.builtins[string(info.Format)] = &formatExporter{info: info}
	}

	for name, path := range cfg.Exporters {
		if _, ok := m.builtins[name]; ok {
			return nil, fmt.Errorf("plugin %q conflicts with a built-in format", name)
		}
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("failed to expand plugin path %s: %w", path, err)
		}
		m.external[name] = expanded
	}

	return m, nil
}

// List returns every exporter sorted by name.
func (m *Manager) List() []Entry {
	entries := make([]Entry, 0, len(m.builtins)+len(m.external))
	for name, e := range m.builtins {
		entries = append(entries, Entry{
			Name:        name,
			Description: e.GetMetadata().Description,
			Source:      SourceBuiltin,
		})
	}
	for name, path := range m.external {
		entries = append(entries, Entry{Name: name, Source: SourceExternal, Path: path})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return entries
}

// Names returns the sorted exporter names.
func (m *Manager) Names() []string {
	names := slices.Collect(maps.Keys(m.builtins))
	names = append(names, slices.Collect(maps.Keys(m.external))...)
	slices.Sort(names)
	return names
}

// Run exports p through the named exporter.
func (m *Manager) Run(ctx context.Context, name string, p palette.Palette, args map[string]any) (map[string][]byte, error) {
	exporter, err := m.exporter(ctx, name)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("running exporter", "name", name, "palette", p.Name)
	files, err := exporter.Export(ctx, ToPaletteData(p, args, false))
	if err != nil {
		return nil, fmt.Errorf("exporter %s failed: %w", name, err)
	}
	return files, nil
}

// Info returns an exporter's metadata and flag help. External plugins are
// started to answer.
func (m *Manager) Info(ctx context.Context, name string) (huekitplugin.PluginInfo, []huekitplugin.FlagHelp, error) {
	exporter, err := m.exporter(ctx, name)
	if err != nil {
		return huekitplugin.PluginInfo{}, nil, err
	}
	return exporter.GetMetadata(), exporter.GetFlagHelp(), nil
}

// Close stops every external plugin that was started.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, e := range m.open {
		e.Close()
		delete(m.open, name)
	}
}

func (m *Manager) exporter(ctx context.Context, name string) (huekitplugin.Exporter, error) {
	if e, ok := m.builtins[name]; ok {
		return e, nil
	}

	path, ok := m.external[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.open[name]; ok {
		return e, nil
	}

	e, err := executor.New(ctx, path, executor.Options{Runner: m.runner, Logger: m.logger})
	if err != nil {
		return nil, fmt.Errorf("failed to load plugin %s: %w", name, err)
	}
	m.open[name] = e
	return e, nil
}

// formatExporter adapts a built-in export format to the plugin interface so
// built-ins and external plugins run through the same path.
type formatExporter struct {
	info export.FormatInfo
}

func (f *formatExporter) Export(_ context.Context, data huekitplugin.PaletteData) (map[string][]byte, error) {
	p := FromPaletteData(data)
	out, err := export.Render(p, f.info.Format)
	if err != nil {
		return nil, err
	}
	name := export.SafeName(p.Name)
	if name == "" {
		name = "palette"
	}
	return map[string][]byte{name + f.info.Extension: []byte(out + "\n")}, nil
}

func (f *formatExporter) GetMetadata() huekitplugin.PluginInfo {
	return huekitplugin.PluginInfo{
		Name:            string(f.info.Format),
		Version:         version.Version,
		ProtocolVersion: huekitplugin.ProtocolVersion,
		Description:     f.info.Name,
	}
}

func (f *formatExporter) GetFlagHelp() []huekitplugin.FlagHelp {
	return []huekitplugin.FlagHelp{}
}
