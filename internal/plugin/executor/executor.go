// Package executor runs external exporter plugins over either go-plugin
// RPC or JSON on stdin/stdout.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/huekit/internal/plugin/protocol"
	huekitplugin "github.com/jmylchreest/huekit/pkg/plugin"
)

// DefaultDetectTimeout bounds the --plugin-info query.
const DefaultDetectTimeout = 5 * time.Second

// DefaultOutputName is the file name given to raw stdout from a
// json-stdio plugin that does not reply with a files envelope.
const DefaultOutputName = "output.txt"

// ErrClosed is returned when an executor is used after Close.
var ErrClosed = errors.New("plugin executor closed")

// Options configures an Executor.
type Options struct {
	Runner        ProcessRunner
	Logger        hclog.Logger
	DetectTimeout time.Duration
}

// Executor runs one plugin binary. It is not safe for concurrent use.
type Executor struct {
	path         string
	info         huekitplugin.PluginInfo
	protocolType huekitplugin.PluginType
	runner       ProcessRunner
	logger       hclog.Logger

	client   *plugin.Client
	exporter huekitplugin.Exporter
	closed   bool
}

// New queries the plugin at path for its metadata and returns an executor
// for whichever protocol it reports. The go-plugin process is started
// lazily on first Export.
func New(ctx context.Context, path string, opts Options) (*Executor, error) {
	if opts.Runner == nil {
		opts.Runner = NewRealProcessRunner()
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	if opts.DetectTimeout <= 0 {
		opts.DetectTimeout = DefaultDetectTimeout
	}

	detectCtx, cancel := context.WithTimeout(ctx, opts.DetectTimeout)
	defer cancel()

	stdout, stderr, err := opts.Runner.Run(detectCtx, path, []string{huekitplugin.InfoFlag}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin %s: %w%s", path, err, stderrSuffix(stderr))
	}

	result, err := protocol.Detect(stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to detect plugin protocol: %w", err)
	}

	logger := opts.Logger.Named(pluginLabel(result.PluginInfo, path))
	logger.Debug("detected plugin", "protocol", result.Type, "version", result.PluginInfo.Version)

	return &Executor{
		path:         path,
		info:         result.PluginInfo,
		protocolType: result.Type,
		runner:       opts.Runner,
		logger:       logger,
	}, nil
}

// Path returns the plugin binary path.
func (e *Executor) Path() string { return e.path }

// Info returns the metadata the plugin reported.
func (e *Executor) Info() huekitplugin.PluginInfo { return e.info }

// GetMetadata returns the metadata the plugin reported, satisfying
// huekitplugin.Exporter.
func (e *Executor) GetMetadata() huekitplugin.PluginInfo { return e.info }

// GetFlagHelp asks a go-plugin exporter for its argument help. json-stdio
// plugins have no way to report it.
func (e *Executor) GetFlagHelp() []huekitplugin.FlagHelp {
	if e.closed || e.protocolType != huekitplugin.PluginTypeGoPlugin {
		return []huekitplugin.FlagHelp{}
	}
	exporter, err := e.dispense()
	if err != nil {
		e.logger.Debug("failed to fetch flag help", "error", err)
		return []huekitplugin.FlagHelp{}
	}
	return exporter.GetFlagHelp()
}

// Protocol returns the detected protocol.
func (e *Executor) Protocol() huekitplugin.PluginType { return e.protocolType }

// Export sends the palette to the plugin and returns the files it produced.
func (e *Executor) Export(ctx context.Context, palette huekitplugin.PaletteData) (map[string][]byte, error) {
	if e.closed {
		return nil, ErrClosed
	}

	switch e.protocolType {
	case huekitplugin.PluginTypeGoPlugin:
		exporter, err := e.dispense()
		if err != nil {
			return nil, err
		}
		return exporter.Export(ctx, palette)
	case huekitplugin.PluginTypeJSON:
		return e.exportJSON(ctx, palette)
	default:
		return nil, fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
}

// Close kills the plugin process if one was started.
func (e *Executor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.exporter = nil
	}
	e.closed = true
}

func (e *Executor) dispense() (huekitplugin.Exporter, error) {
	if e.exporter != nil {
		return e.exporter, nil
	}

	e.client = plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  huekitplugin.Handshake,
		Plugins:          huekitplugin.PluginMap(nil),
		Cmd:              exec.Command(e.path),
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           e.logger,
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(huekitplugin.PluginName)
	if err != nil {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	exporter, ok := raw.(huekitplugin.Exporter)
	if !ok {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("plugin dispensed %T, not an exporter", raw)
	}
	e.exporter = exporter
	return exporter, nil
}

// jsonResponse is the optional structured reply of a json-stdio plugin.
type jsonResponse struct {
	Files map[string]string `json:"files"`
}

func (e *Executor) exportJSON(ctx context.Context, palette huekitplugin.PaletteData) (map[string][]byte, error) {
	payload, err := json.Marshal(palette)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal palette: %w", err)
	}

	e.logger.Debug("running json-stdio plugin", "path", e.path, "bytes", len(payload))
	stdout, stderr, err := e.runner.Run(ctx, e.path, nil, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("plugin execution failed: %w%s", err, stderrSuffix(stderr))
	}

	var resp jsonResponse
	if err := json.Unmarshal(stdout, &resp); err == nil && resp.Files != nil {
		files := make(map[string][]byte, len(resp.Files))
		for name, content := range resp.Files {
			files[name] = []byte(content)
		}
		return files, nil
	}

	files := make(map[string][]byte)
	if len(stdout) > 0 {
		files[DefaultOutputName] = stdout
	}
	return files, nil
}

func pluginLabel(info huekitplugin.PluginInfo, path string) string {
	if info.Name != "" {
		return info.Name
	}
	return path
}

func stderrSuffix(stderr []byte) string {
	stderr = bytes.TrimSpace(stderr)
	if len(stderr) == 0 {
		return ""
	}
	return "\nStderr: " + string(stderr)
}
