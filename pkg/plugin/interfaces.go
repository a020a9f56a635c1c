package plugin

import (
	"context"
)

// Exporter is the interface exporter plugins implement for go-plugin RPC.
type Exporter interface {
	// Export renders the palette into one or more files, keyed by file name.
	Export(ctx context.Context, palette PaletteData) (map[string][]byte, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo

	// GetFlagHelp returns help information for plugin arguments.
	GetFlagHelp() []FlagHelp
}
