package resolution_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodflow/topiccore/internal/infrastructure/resolution"
)

// TestResolver_Resolve verifies global, private, and relative name
// resolution against a node namespace and a static remap table.
func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		namespace string
		remap     map[string]string
		input     string
		expected  string
	}{
		{
			name:      "already global name is unchanged",
			namespace: "/robot1",
			input:     "/chatter",
			expected:  "/chatter",
		},
		{
			name:      "relative name is namespaced",
			namespace: "/robot1",
			input:     "chatter",
			expected:  "/robot1/chatter",
		},
		{
			name:      "private name is namespaced",
			namespace: "/robot1",
			input:     "~status",
			expected:  "/robot1/status",
		},
		{
			name:      "relative name under root namespace",
			namespace: "",
			input:     "chatter",
			expected:  "/chatter",
		},
		{
			name:      "remap applies before namespacing",
			namespace: "/robot1",
			remap:     map[string]string{"chatter": "/remapped"},
			input:     "chatter",
			expected:  "/remapped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := resolution.New(tt.namespace, tt.remap, nil)
			got, err := r.Resolve(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestResolver_Resolve_CachesResult verifies a second resolution of the
// same name returns the cached value rather than recomputing it, by
// changing the remap table between calls and observing the first result is
// still returned.
func TestResolver_Resolve_CachesResult(t *testing.T) {
	t.Parallel()

	remap := map[string]string{}
	r := resolution.New("/robot1", remap, nil)

	first, err := r.Resolve("chatter")
	require.NoError(t, err)
	assert.Equal(t, "/robot1/chatter", first)

	remap["chatter"] = "/ignored-because-cached"
	second, err := r.Resolve("chatter")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestResolver_ResolvePreInit_PrivateNameResolvesToNamespaceRoot verifies a
// private ("~") name resolves relative to the namespace root, not a
// node-specific sub-namespace, before node init completes.
func TestResolver_ResolvePreInit_PrivateNameResolvesToNamespaceRoot(t *testing.T) {
	t.Parallel()

	r := resolution.New("/robot1", nil, func() bool { return false })

	got, err := r.ResolvePreInit("~status")
	require.NoError(t, err)
	assert.Equal(t, "/robot1/status", got)
}

// TestResolver_ResolvePreInit_DelegatesToResolveOnceInitDone verifies
// ResolvePreInit behaves exactly like Resolve once initDone reports true.
func TestResolver_ResolvePreInit_DelegatesToResolveOnceInitDone(t *testing.T) {
	t.Parallel()

	initDone := false
	r := resolution.New("/robot1", nil, func() bool { return initDone })

	preInit, err := r.ResolvePreInit("chatter")
	require.NoError(t, err)
	assert.Equal(t, "/robot1/chatter", preInit)

	initDone = true
	postInit, err := r.ResolvePreInit("chatter")
	require.NoError(t, err)
	assert.Equal(t, "/robot1/chatter", postInit)
}

// TestResolver_ResolvePreInit_NilInitDoneBehavesLikeResolve verifies the
// default (nil initDone) convention treats the node as always initialized.
func TestResolver_ResolvePreInit_NilInitDoneBehavesLikeResolve(t *testing.T) {
	t.Parallel()

	r := resolution.New("/robot1", nil, nil)
	got, err := r.ResolvePreInit("~status")
	require.NoError(t, err)
	assert.Equal(t, "/robot1/status", got)
}
