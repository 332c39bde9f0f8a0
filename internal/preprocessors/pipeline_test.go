package preprocessors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mailblocks/internal/core/ports/driven"
)

// mockRepair is a test repair that applies a fixed replacement.
type mockRepair struct {
	name     string
	from, to string
}

func (m *mockRepair) Name() string {
	return m.name
}

func (m *mockRepair) Apply(markup string) string {
	return strings.ReplaceAll(markup, m.from, m.to)
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline()
	require.NotNil(t, p)
	assert.Equal(t, 0, p.Len())
}

func TestPipeline_Add(t *testing.T) {
	p := NewPipeline()
	p.Add(&mockRepair{name: "test"})

	assert.Equal(t, 1, p.Len())
	assert.Equal(t, []string{"test"}, p.Names())
}

func TestPipeline_Run_Empty(t *testing.T) {
	assert.Equal(t, "<a>", NewPipeline().Run("<a>"))
}

func TestPipeline_Run_Order(t *testing.T) {
	p := NewPipeline(
		&mockRepair{name: "first", from: "a", to: "b"},
		&mockRepair{name: "second", from: "b", to: "c"},
	)

	assert.Equal(t, "ccc", p.Run("abc"))
}

func TestDefaultPipeline_Order(t *testing.T) {
	p := DefaultPipeline()
	assert.Equal(t, DefaultOrder, p.Names())
	assert.Equal(t, []string{
		NameVoidElements,
		NameNamedEntities,
		NameAttributeAmpersands,
		NameDuplicateAttributes,
	}, p.Names())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Names())

	r.Register("test", func() driven.Repair { return &mockRepair{name: "test"} })
	assert.Equal(t, []string{"test"}, r.Names())

	repair, err := r.Build("test")
	require.NoError(t, err)
	assert.Equal(t, "test", repair.Name())

	_, err = r.Build("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown repair: missing (known: test)")
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	assert.Len(t, r.Names(), 4)
	for _, name := range DefaultOrder {
		repair, err := r.Build(name)
		require.NoError(t, err)
		assert.Equal(t, name, repair.Name())
	}
}

func TestRegistry_Pipeline(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	p, err := r.Pipeline(DefaultOrder...)
	require.NoError(t, err)
	assert.Equal(t, DefaultOrder, p.Names())
	assert.Equal(t, Preprocess("<br>&nbsp;"), p.Run("<br>&nbsp;"))

	_, err = r.Pipeline("void-elements", "nope")
	assert.Error(t, err)
}
