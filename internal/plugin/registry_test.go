package plugin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mockPluginForRegistry is a test plugin for registry tests.
type mockPluginForRegistry struct {
	BasePlugin
	metadata PluginMetadata
}

func (m *mockPluginForRegistry) Metadata() PluginMetadata {
	return m.metadata
}

func newMockPlugin(name, version string, pluginType PluginType) Plugin {
	return &mockPluginForRegistry{
		metadata: PluginMetadata{Name: name, Version: version, Type: pluginType},
	}
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()
	p := newMockPlugin("test-plugin", "v1.0.0", PluginTypeRoutes)

	require.NoError(t, registry.Register(p))
	require.True(t, registry.Has("test-plugin"))
	require.Error(t, registry.Register(p), "duplicate registration must fail")
	require.Error(t, registry.Register(nil))
	require.Error(t, registry.Register(&mockPluginForRegistry{metadata: PluginMetadata{Version: "v1", Type: PluginTypeRoutes}}))
}

func TestRegistryGet(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(newMockPlugin("test-plugin", "v1.0.0", PluginTypeRoutes)))

	got, err := registry.Get("test-plugin", "v1.0.0")
	require.NoError(t, err)
	require.Equal(t, "test-plugin", got.Metadata().Name)

	_, err = registry.Get("non-existent", "v1.0.0")
	require.Error(t, err)
	_, err = registry.Get("test-plugin", "v2.0.0")
	require.Error(t, err)
}

func TestRegistryOrderAndHooks(t *testing.T) {
	registry := NewRegistry()
	publisher := newMockPlugin("publish", "v1", PluginTypePublisher)
	routes := &hookPlugin{metadata: PluginMetadata{Name: "routes", Version: "v1", Type: PluginTypeRoutes}}

	require.NoError(t, registry.Register(routes))
	require.NoError(t, registry.Register(publisher))
	require.Equal(t, 2, registry.Count())

	list := registry.List()
	require.Equal(t, "routes", list[0].Metadata().Name)
	require.Equal(t, "publish", list[1].Metadata().Name)

	require.Len(t, registry.NodeCreators(), 1)
	require.Len(t, registry.PageCreators(), 1)
	require.Empty(t, registry.PostBuilders())
	require.Len(t, registry.ListByType(PluginTypePublisher), 1)
	require.Empty(t, NewRegistry().List())
}
