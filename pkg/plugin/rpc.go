package plugin

import (
	"context"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// ExporterRPC implements the go-plugin Plugin interface for exporters.
type ExporterRPC struct {
	plugin.Plugin
	Impl Exporter
}

// Server returns an RPC server for this plugin.
func (p *ExporterRPC) Server(*plugin.MuxBroker) (any, error) {
	return &ExporterRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *ExporterRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &ExporterRPCClient{client: c}, nil
}

// ExporterRPCServer is the RPC server implementation for exporters.
type ExporterRPCServer struct {
	Impl Exporter
}

// Export implements the RPC method for palette export.
func (s *ExporterRPCServer) Export(palette PaletteData, resp *map[string][]byte) error {
	result, err := s.Impl.Export(context.Background(), palette)
	if err != nil {
		return err
	}
	*resp = result
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *ExporterRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// GetFlagHelp implements the RPC method for fetching flag help.
func (s *ExporterRPCServer) GetFlagHelp(_ any, resp *[]FlagHelp) error {
	*resp = s.Impl.GetFlagHelp()
	return nil
}

// ExporterRPCClient is the RPC client implementation for exporters.
type ExporterRPCClient struct {
	client *rpc.Client
}

// Export calls the remote Export method.
func (c *ExporterRPCClient) Export(_ context.Context, palette PaletteData) (map[string][]byte, error) {
	var result map[string][]byte
	if err := c.client.Call("Plugin.Export", palette, &result); err != nil {
		return nil, &RPCError{Message: err.Error()}
	}
	return result, nil
}

// GetMetadata calls the remote GetMetadata method. A failed call yields
// the zero PluginInfo.
func (c *ExporterRPCClient) GetMetadata() PluginInfo {
	var info PluginInfo
	if err := c.client.Call("Plugin.GetMetadata", new(any), &info); err != nil {
		return PluginInfo{}
	}
	return info
}

// GetFlagHelp calls the remote GetFlagHelp method.
func (c *ExporterRPCClient) GetFlagHelp() []FlagHelp {
	var help []FlagHelp
	err := c.client.Call("Plugin.GetFlagHelp", new(any), &help)
	if err != nil {
		return []FlagHelp{}
	}
	return help
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}

// PluginMap returns the plugin set shared by hosts and plugins.
func PluginMap(impl Exporter) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginName: &ExporterRPC{Impl: impl},
	}
}

// Serve runs impl as a go-plugin exporter. It blocks until the host
// disconnects and is meant to be the last call in a plugin's main.
func Serve(impl Exporter) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins:         PluginMap(impl),
	})
}
