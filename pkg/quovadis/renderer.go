package quovadis

import (
	"github.com/jermeyyy/quo-vadis/pkg/quovadis/internal"
	"github.com/jermeyyy/quo-vadis/pkg/quovadis/navtree"
)

// Renderer walks a navigation tree and produces the surface tree that is
// currently on screen. It owns no cross-render state itself: everything
// that must survive a re-render lives in the subtree cache or the gesture
// coordinator, so rendering is re-entrant and cheap.
type Renderer struct {
	cache       *internal.SubtreeCache
	content     ContentResolver
	wrappers    WrapperResolver
	transitions *Resolver
	gesture     *GestureCoordinator
	nav         Navigator
	timelines   *timelineSet
}

// tabState is the per-Tab cache entry. Caching the whole Tab node as one
// unit is what keeps wrapper and content moving together through any
// animation or gesture; the remembered active child also supplies the
// switch direction.
type tabState struct {
	lastActive int
	lastKey    string
}

// paneState is the per-Pane cache entry, mirroring tabState for the
// focused role while the pane is not expanded.
type paneState struct {
	lastFocused navtree.Role
	lastKey     string
}

// pass carries per-render-pass state: the first resolution error seen.
// Resolution errors do not stop the walk; the affected subtree renders
// nothing and the error is reported once at the end.
type pass struct {
	r   *Renderer
	err error
}

func (p *pass) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Render produces the surface tree for the current snapshot. previous is
// the snapshot it replaced (nil on first render); back detection and
// transition resolution compare the two. A malformed tree is the only
// fatal outcome.
func (r *Renderer) Render(current, previous *navtree.Node) (*Surface, error) {
	if current == nil {
		return nil, nil
	}
	if err := navtree.Validate(current); err != nil {
		return nil, err
	}
	p := &pass{r: r}
	surface := p.renderNode(current, previous, true)
	return surface, p.err
}

// renderNode dispatches on the node kind. prev is the matching-key node in
// the previous snapshot, or nil; isRoot is true only for the tree root,
// the one place predictive back may take over.
func (p *pass) renderNode(node, prev *navtree.Node, isRoot bool) *Surface {
	if node == nil {
		return nil
	}
	if prev != nil && prev.Key != node.Key {
		prev = nil
	}
	switch node.Kind {
	case navtree.KindScreen:
		return p.renderScreen(node)
	case navtree.KindStack:
		return p.renderStack(node, prev, isRoot)
	case navtree.KindTab:
		return p.renderTab(node, prev)
	case navtree.KindPane:
		return p.renderPane(node, prev)
	}
	return nil
}

func (p *pass) renderScreen(node *navtree.Node) *Surface {
	r := p.r
	failed := false
	state := r.cache.GetOrCreate(node.Key, func() any {
		fn, err := r.content.Resolve(node.Destination)
		if err != nil {
			p.fail(&ResolutionError{Op: "resolve_content", Key: node.Key, Err: err})
			failed = true
			return nil
		}
		return fn(NodeContext{
			Key:         node.Key,
			Destination: node.Destination,
			Navigator:   r.nav,
			Logger:      internal.GetLogger(),
		})
	})
	if failed {
		// A failed build must not occupy a cache slot; the fault is
		// reported again every frame until the configuration is fixed.
		r.cache.Drop(node.Key)
	}
	if state == nil {
		return nil
	}
	surface := newSurface(node.Key)
	surface.Content = state
	return surface
}

func (p *pass) renderStack(node, prev *navtree.Node, isRoot bool) *Surface {
	r := p.r
	active := node.ActiveChild()
	if active == nil {
		// Empty stack: transient state, render nothing.
		return nil
	}

	// Only the root stack may run the predictive-back preview; nested
	// stacks always animate discretely.
	if isRoot && r.gesture != nil && r.gesture.Active() {
		return p.renderGesturePreview(node, prev)
	}

	isBack := navtree.IsBack(prev, node)
	prevActive := activeOf(prev)

	child := p.renderNode(active, navtree.Find(prev, active.Key), false)
	if child == nil {
		return nil
	}

	spec := r.transitions.ResolveIn(navtree.KindStack, prevActive, active, isBack)
	transition := r.timelines.observe(node.Key, keyOf(prevActive), active.Key, spec, isBack)

	surface := newSurface(node.Key)
	surface.Transition = transition
	surface.Children = []*Surface{child}
	return surface
}

// renderGesturePreview renders the two overlapping surfaces of an active
// predictive-back gesture: the speculative-previous subtree beneath with
// its parallax translate and opacity ramp, the exiting current subtree on
// top with translate and scale proportional to visual progress. Both go
// through cache entries the coordinator has locked for the gesture's
// duration.
func (p *pass) renderGesturePreview(node, prev *navtree.Node) *Surface {
	r := p.r
	g := r.gesture

	exitNode := node.ActiveChild()
	speculative := g.Speculative()
	enterNode := activeOf(speculative)

	progress := g.VisualProgress()

	surface := newSurface(node.Key)
	surface.GesturePreview = true

	if enterSurface := p.renderNode(enterNode, nil, false); enterSurface != nil {
		enterSurface.Transform = gestureEnterTransform(progress)
		surface.Children = append(surface.Children, enterSurface)
	}
	if exitSurface := p.renderNode(exitNode, navtree.Find(prev, keyOf(exitNode)), false); exitSurface != nil {
		exitSurface.Transform = gestureExitTransform(progress)
		surface.Children = append(surface.Children, exitSurface)
	}

	// Entries that only came into existence during the preview (a never
	// rendered speculative subtree) must be pinned like the rest.
	r.cache.Lock(g.ExitKey())
	r.cache.Lock(g.EnterKey())
	return surface
}

func (p *pass) renderTab(node, prev *navtree.Node) *Surface {
	r := p.r
	active := node.ActiveChild()
	if active == nil {
		// Index out of bounds: transient state, render nothing.
		return nil
	}

	state := r.cache.GetOrCreate(node.Key, func() any {
		return &tabState{lastActive: node.Active}
	}).(*tabState)
	fromIndex := state.lastActive
	fromKey := state.lastKey
	state.lastActive = node.Active
	state.lastKey = active.Key

	// Direction for the switch transition comes from the index delta;
	// a backward switch runs the spec's pop pair, which slides the
	// opposite way.
	isBack := node.Active < fromIndex

	content := p.renderNode(active, navtree.Find(prev, active.Key), false)

	var prevStack *navtree.Node
	if prev != nil && fromIndex >= 0 && fromIndex < len(prev.Children) {
		prevStack = prev.Children[fromIndex]
	}
	spec := r.transitions.ResolveIn(navtree.KindTab, prevStack, active, isBack)
	transition := r.timelines.observe(node.Key, fromKey, active.Key, spec, isBack)

	// The content slot performs the animated switch between stacks; the
	// wrapper receives the slot, never the raw stacks, so chrome and
	// content stay one unit.
	slot := newSurface(node.Key + "/content")
	slot.Transition = transition
	if content != nil {
		slot.Children = []*Surface{content}
	}

	if wrapperFn, ok := r.wrappers.TabWrapper(node.Key); ok {
		if wrapped := wrapperFn(WrapperContext{Key: node.Key, Content: slot}); wrapped != nil {
			if wrapped.Key == "" {
				wrapped.Key = node.Key
			}
			return wrapped
		}
	}

	// Unmapped tab: content directly, no chrome.
	surface := newSurface(node.Key)
	surface.Children = []*Surface{slot}
	return surface
}

func (p *pass) renderPane(node, prev *navtree.Node) *Surface {
	r := p.r

	state := r.cache.GetOrCreate(node.Key, func() any {
		return &paneState{lastFocused: node.Focused}
	}).(*paneState)

	wrapperFn, ok := r.wrappers.PaneWrapper(node.Key)
	if !ok {
		wrapperFn = defaultPaneWrapper
	}

	if node.Expanded {
		return p.renderExpandedPane(node, prev, state, wrapperFn)
	}

	active := node.ActiveChild()
	if active == nil {
		return nil
	}

	fromFocused := state.lastFocused
	fromKey := state.lastKey
	state.lastFocused = node.Focused
	state.lastKey = active.Key

	// Same back-detection rule as Stack, over the pane role order.
	isBack := node.Focused < fromFocused

	child := p.renderNode(active, navtree.Find(prev, active.Key), false)
	if child == nil {
		return nil
	}
	child.Role = node.Focused
	child.Focused = true

	var prevChild *navtree.Node
	if fromKey != "" {
		prevChild = navtree.Find(prev, fromKey)
	}
	spec := r.transitions.ResolveIn(navtree.KindPane, prevChild, active, isBack)
	transition := r.timelines.observe(node.Key, fromKey, active.Key, spec, isBack)

	slot := newSurface(node.Key + "/content")
	slot.Transition = transition
	slot.Children = []*Surface{child}

	surface := wrapperFn(WrapperContext{
		Key:      node.Key,
		Slots:    map[navtree.Role]*Surface{node.Focused: slot},
		Visible:  map[navtree.Role]bool{node.Focused: true},
		Focused:  node.Focused,
		Expanded: false,
	})
	if surface != nil && surface.Key == "" {
		surface.Key = node.Key
	}
	return surface
}

// renderExpandedPane renders the whole pane node as one cached unit: every
// role's content plus the wrapper, so panes never animate independently of
// one another.
func (p *pass) renderExpandedPane(node, prev *navtree.Node, state *paneState, wrapperFn WrapperFn) *Surface {
	slots := make(map[navtree.Role]*Surface, len(node.Children))
	visible := make(map[navtree.Role]bool, len(node.Children))

	for i, child := range node.Children {
		role := node.RoleOf(i)
		slot := p.renderNode(child, navtree.Find(prev, child.Key), false)
		if slot == nil {
			continue
		}
		slot.Role = role
		slot.Visible = true
		slot.Focused = role == node.Focused
		slots[role] = slot
		visible[role] = true
	}

	state.lastFocused = node.Focused
	if focusedSlot := slots[node.Focused]; focusedSlot != nil {
		state.lastKey = focusedSlot.Key
	}

	surface := wrapperFn(WrapperContext{
		Key:      node.Key,
		Slots:    slots,
		Visible:  visible,
		Focused:  node.Focused,
		Expanded: true,
	})
	if surface != nil && surface.Key == "" {
		surface.Key = node.Key
	}
	return surface
}

func activeOf(n *navtree.Node) *navtree.Node {
	if n == nil {
		return nil
	}
	return n.ActiveChild()
}

func keyOf(n *navtree.Node) string {
	if n == nil {
		return ""
	}
	return n.Key
}
