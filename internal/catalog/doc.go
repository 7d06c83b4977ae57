// Package catalog holds the unit definitions the calculator resolves names
// against.
//
// Default returns the built-in registry covering metric, imperial, nautical,
// land, apothecary and molecular units across all seven dimensions. A
// Registry never changes after construction; Extend returns a new one, so
// registries can be shared freely between interpreters.
//
// Definitions can also come from YAML, TOML or JSON documents:
//
//	units:
//	  - name: league
//	    symbol: lea
//	    dimension: length
//	    scale: 4828.032
//
// A Loader reads single files or whole directory trees, and a RemoteClient
// fetches a document over HTTP.
package catalog
