// Package plugin provides the public API for huekit exporter plugins.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	ProtocolVersion = "0.1.0"

	// MinCompatibleVersion is the oldest protocol version this huekit version can work with.
	MinCompatibleVersion = "0.1.0"

	// PluginName is the key exporters are dispensed under.
	PluginName = "exporter"

	// InfoFlag asks a plugin binary to print its PluginInfo as JSON and exit.
	InfoFlag = "--plugin-info"
)

// Handshake is the handshake configuration for go-plugin protocol.
// A mismatch makes the host refuse the plugin before any RPC is attempted.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  0,
	MagicCookieKey:   "HUEKIT_PLUGIN",
	MagicCookieValue: "huekit_palette_exporter",
}

// PluginType defines the type of plugin communication protocol.
type PluginType string

const (
	// PluginTypeGoPlugin indicates the plugin uses HashiCorp go-plugin RPC protocol.
	PluginTypeGoPlugin PluginType = "go-plugin"

	// PluginTypeJSON indicates the plugin uses simple JSON over stdin/stdout.
	PluginTypeJSON PluginType = "json-stdio"
)
