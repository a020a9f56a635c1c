package protocol

import (
	"encoding/json"
	"fmt"

	huekitplugin "github.com/jmylchreest/huekit/pkg/plugin"
)

// DetectorResult contains information about a detected plugin protocol.
type DetectorResult struct {
	// Type indicates which protocol the plugin uses.
	Type huekitplugin.PluginType

	// PluginInfo contains metadata from --plugin-info.
	PluginInfo huekitplugin.PluginInfo
}

// Detect parses the output of a plugin's --plugin-info query and checks
// that its protocol version is one the host speaks. A missing
// protocol_version is accepted; a missing plugin_protocol means json-stdio.
func Detect(output []byte) (*DetectorResult, error) {
	var info huekitplugin.PluginInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse plugin info: %w", err)
	}

	result := &DetectorResult{PluginInfo: info}

	switch huekitplugin.PluginType(info.PluginProtocol) {
	case huekitplugin.PluginTypeGoPlugin:
		result.Type = huekitplugin.PluginTypeGoPlugin
	case huekitplugin.PluginTypeJSON, "":
		result.Type = huekitplugin.PluginTypeJSON
	default:
		return nil, fmt.Errorf("unknown plugin_protocol: %s", info.PluginProtocol)
	}

	if info.ProtocolVersion != "" {
		if _, err := IsCompatible(info.ProtocolVersion); err != nil {
			return nil, err
		}
	}

	return result, nil
}
