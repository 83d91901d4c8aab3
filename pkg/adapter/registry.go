package adapter

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Factory constructs an unconnected adapter instance from options.
type Factory func(opts Options) (Adapter, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes an engine factory available under the given name. Engine
// packages call this from init, mirroring the database/sql driver pattern;
// importing an engine package for side effects is enough to enable it.
//
// Register panics on duplicate names, which indicates two engine packages
// claiming the same identifier.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, dup := registry[name]; dup {
		panic("adapter: Register called twice for " + name)
	}
	registry[name] = factory
}

// Open constructs an adapter for the named engine. The returned adapter is
// not yet connected; callers must call Connect before use.
//
// Example usage:
//
//	import _ "github.com/pseudomuto/groundskeeper/pkg/adapter/sqlite"
//
//	db, err := adapter.Open("sqlite", adapter.Options{DSN: "app.db"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := db.Connect(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer db.Disconnect(ctx)
func Open(name string, opts Options) (Adapter, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, errors.Errorf(
			"unknown adapter %q (registered: %v); did you forget to import the engine package?",
			name, Registered(),
		)
	}

	return factory(opts.withDefaults())
}

// Registered returns the names of all registered engines in sorted order.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
