package quovadis

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jermeyyy/quo-vadis/pkg/quovadis/navtree"
)

type dest string

func (d dest) DestinationID() string { return string(d) }

func TestReversedSwapsPairs(t *testing.T) {
	spec := DefaultStackSpec()
	reversed := spec.Reversed()

	assert.Equal(t, spec.PopEnter, reversed.Enter)
	assert.Equal(t, spec.PopExit, reversed.Exit)
	assert.Equal(t, spec.Enter, reversed.PopEnter)
	assert.Equal(t, spec.Exit, reversed.PopExit)

	// Reversing twice is the identity.
	assert.Equal(t, spec, reversed.Reversed())
}

func TestResolveKindDefaults(t *testing.T) {
	r := NewResolver()
	from := navtree.NewScreen("from", dest("from"))
	to := navtree.NewScreen("to", dest("to"))

	assert.Equal(t, DefaultStackSpec(), r.ResolveIn(navtree.KindStack, from, to, false))
	assert.Equal(t, DefaultTabSpec(), r.ResolveIn(navtree.KindTab, from, to, false))
	assert.Equal(t, DefaultPaneSpec(), r.ResolveIn(navtree.KindPane, from, to, false))
	assert.Equal(t, DefaultGlobalSpec(), r.ResolveIn(navtree.KindScreen, from, to, false))
}

func TestResolveOverrideWinsOverKindDefault(t *testing.T) {
	r := NewResolver()
	custom := Spec{
		Enter: Anim{Kind: AnimSlide, Edge: EdgeBottom, Duration: 150 * time.Millisecond},
		Exit:  Anim{Kind: AnimFade, Duration: 150 * time.Millisecond},
	}
	r.Override("detail", custom)

	to := navtree.NewScreen("to", dest("detail"))
	assert.Equal(t, custom, r.Resolve(nil, to, false))

	// isBack swaps the pop pair into the forward position.
	assert.Equal(t, custom.Reversed(), r.Resolve(nil, to, true))
}

func TestResolveIsIdempotent(t *testing.T) {
	r := NewResolver()
	r.Override("detail", Spec{Enter: Anim{Kind: AnimSlide, Edge: EdgeEnd, Duration: time.Second}})

	from := navtree.NewScreen("a", dest("list"))
	to := navtree.NewScreen("b", dest("detail"))

	for _, isBack := range []bool{false, true} {
		first := r.Resolve(from, to, isBack)
		second := r.Resolve(from, to, isBack)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("resolve not idempotent (isBack=%v):\n%s", isBack, diff)
		}
	}
}

func TestDestinationID(t *testing.T) {
	assert.Equal(t, "detail", DestinationID(dest("detail")))
	assert.Equal(t, "", DestinationID(nil))

	type plain struct{}
	assert.Equal(t, "quovadis.plain", DestinationID(plain{}))
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transitions.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[transition.detail]
duration_ms = 350

[transition.detail.enter]
kind = "slide"
edge = "bottom"

[transition.detail.exit]
kind = "fade"
`), 0o644))

	r := NewResolver()
	require.NoError(t, r.LoadOverrides(path))

	to := navtree.NewScreen("to", dest("detail"))
	spec := r.Resolve(nil, to, false)

	assert.Equal(t, AnimSlide, spec.Enter.Kind)
	assert.Equal(t, EdgeBottom, spec.Enter.Edge)
	assert.Equal(t, 350*time.Millisecond, spec.Enter.Duration)
	assert.Equal(t, AnimFade, spec.Exit.Kind)

	// Pop pair was not authored, so it derives by reversal.
	assert.Equal(t, spec.Exit, spec.PopEnter)
	assert.Equal(t, spec.Enter, spec.PopExit)
}

func TestLoadOverridesRejectsUnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transitions.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[transition.bad.enter]
kind = "wobble"
`), 0o644))

	r := NewResolver()
	err := r.LoadOverrides(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wobble")
}
