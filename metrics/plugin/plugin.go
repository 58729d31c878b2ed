// Package plugin loads external metric packs: compiled Go plugins
// (buildmode=plugin .so files) that register additional metrics into the
// shared registry when opened.
//
// A plugin module must export a function with the signature
// `func Register()` that calls metrics.Register for each metric it
// contributes. The stdlib plugin package is used in place of an
// out-of-process RPC framework because registration must mutate the
// same in-process registry the evaluation engine reads from; a plugin
// always runs inside the same process as robometrics, never as a
// separate subprocess.
package plugin

import (
	"fmt"
	"os"
	pluginpkg "plugin"
)

// Load opens each file in paths and calls its exported Register function.
// It fails clearly and stops at the first plugin that cannot be found,
// opened, or that does not export Register with the expected signature.
func Load(paths []string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("plugin not found: %s", path)
		}

		p, err := pluginpkg.Open(path)
		if err != nil {
			return fmt.Errorf("failed to load plugin %s: %w", path, err)
		}

		sym, err := p.Lookup("Register")
		if err != nil {
			return fmt.Errorf("plugin %s does not export Register: %w", path, err)
		}

		register, ok := sym.(func())
		if !ok {
			return fmt.Errorf("plugin %s Register has the wrong signature, want func()", path)
		}

		register()
	}
	return nil
}
