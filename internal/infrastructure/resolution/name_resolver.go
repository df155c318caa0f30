// Package resolution provides the NameResolver adapter consumed by
// pubsub.Publisher/Subscriber construction (§6, "Name resolver contract").
package resolution

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// defaultCacheTTL bounds how long a resolved name is reused before being
// recomputed; remapping rules are process-static in this core, so the TTL
// mainly exists to bound memory for long-running nodes with many
// short-lived handle names.
const defaultCacheTTL = 10 * time.Minute

// defaultCleanupInterval is how often expired cache entries are purged.
const defaultCleanupInterval = time.Minute

// Resolver resolves graph resource names against a static remapping table
// and the node's private namespace, caching results (§6).
type Resolver struct {
	namespace string
	remap     map[string]string
	cache     *cache.Cache
	initDone  func() bool
}

// New constructs a Resolver rooted at namespace (e.g. "/robot1"), with an
// optional static remap table applied before namespacing. initDone
// reports whether node initialization has completed; when nil, Resolve
// and ResolvePreInit behave identically.
func New(namespace string, remap map[string]string, initDone func() bool) *Resolver {
	if remap == nil {
		remap = map[string]string{}
	}
	if initDone == nil {
		initDone = func() bool { return true }
	}
	return &Resolver{
		namespace: namespace,
		remap:     remap,
		cache:     cache.New(defaultCacheTTL, defaultCleanupInterval),
		initDone:  initDone,
	}
}

// Resolve resolves name to its canonical graph form, applying remaps and
// private-namespace substitution, with results cached by input name.
func (r *Resolver) Resolve(name string) (string, error) {
	if cached, ok := r.cache.Get(name); ok {
		return cached.(string), nil
	}
	resolved := r.resolveUncached(name)
	r.cache.Set(name, resolved, cache.DefaultExpiration)
	return resolved, nil
}

// ResolvePreInit resolves name when the node has not yet completed
// initialization. Private ("~") names cannot be fully resolved before
// init assigns the node's name, so they are resolved relative to the
// namespace root instead of a node-specific sub-namespace.
func (r *Resolver) ResolvePreInit(name string) (string, error) {
	if r.initDone() {
		return r.Resolve(name)
	}
	if strings.HasPrefix(name, "~") {
		name = strings.TrimPrefix(name, "~")
	}
	return r.resolveUncached(name), nil
}

func (r *Resolver) resolveUncached(name string) string {
	if remapped, ok := r.remap[name]; ok {
		name = remapped
	}
	switch {
	case strings.HasPrefix(name, "~"):
		return joinNamespace(r.namespace, strings.TrimPrefix(name, "~"))
	case strings.HasPrefix(name, "/"):
		return name
	default:
		return joinNamespace(r.namespace, name)
	}
}

func joinNamespace(namespace, suffix string) string {
	namespace = strings.TrimSuffix(namespace, "/")
	suffix = strings.TrimPrefix(suffix, "/")
	if namespace == "" {
		return "/" + suffix
	}
	return namespace + "/" + suffix
}
