// Package quadtree is a static binary space partition over a fixed
// rectangle. The tree shape depends only on the minimum leaf size and the
// rectangle; objects are filed into leaves by their current position.
//
// Nodes live in an arena and refer to each other by index. Objects are
// referred to by the Handle returned from Add.
package quadtree

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/olivierh59500/ramp-sandbox-go/internal/geom"
)

var (
	// ErrOutOfBounds means no leaf claims the position.
	ErrOutOfBounds = errors.New("quadtree: position outside tree")
	// ErrNotFound means a known object could not be located in any leaf.
	ErrNotFound = errors.New("quadtree: object not found in any leaf")
	// ErrNoGrandparent means the located leaf is too close to the root for
	// a neighbourhood query.
	ErrNoGrandparent = errors.New("quadtree: leaf has no grandparent")
	// ErrUnknownHandle means the handle was never issued or was removed.
	ErrUnknownHandle = errors.New("quadtree: unknown handle")
)

// Handle identifies an object for as long as it is indexed. The zero
// Handle is never issued.
type Handle uint64

// Positioner is anything with a position in the tree's coordinate space.
type Positioner interface {
	Position() mgl64.Vec2
}

// Entry pairs an indexed object with its handle.
type Entry[T Positioner] struct {
	Handle Handle
	Value  T
}

const noNode = -1

type node struct {
	rect     geom.Rect
	depth    int
	parent   int
	children [2]int
	objects  []Handle
}

func (n *node) leaf() bool {
	return n.children[0] == noNode
}

// Tree indexes values of type T.
type Tree[T Positioner] struct {
	minLeafSize float64
	width       float64
	height      float64

	nodes  []node
	values map[Handle]T
	next   Handle
	logger *log.Logger
}

// New builds the full tree shape. Split axes alternate by depth, starting
// with x at the root, and a branch stops when the next split would give a
// side shorter than minLeafSize. A minLeafSize so large that the tree has
// no grandparent level leaves every neighbourhood query failing; this is
// logged, not corrected.
func New[T Positioner](minLeafSize, width, height float64, logger *log.Logger) *Tree[T] {
	if logger == nil {
		logger = log.Default()
	}
	t := &Tree[T]{
		minLeafSize: minLeafSize,
		width:       width,
		height:      height,
		values:      make(map[Handle]T),
		logger:      logger,
	}
	t.nodes = append(t.nodes, node{
		rect:     geom.Rect{Width: width, Height: height},
		parent:   noNode,
		children: [2]int{noNode, noNode},
	})
	t.split(0)

	if t.Depth() < 2 {
		t.logger.Printf("quadtree: %gx%g with min leaf size %g has depth %d, neighbourhood queries will be empty",
			width, height, minLeafSize, t.Depth())
	}
	return t
}

func (t *Tree[T]) split(i int) {
	n := t.nodes[i]
	w, h := n.rect.Width, n.rect.Height
	var second mgl64.Vec2
	if n.depth%2 == 0 {
		if w/2 < t.minLeafSize {
			return
		}
		w /= 2
		second = n.rect.Min.Add(mgl64.Vec2{w, 0})
	} else {
		if h/2 < t.minLeafSize {
			return
		}
		h /= 2
		second = n.rect.Min.Add(mgl64.Vec2{0, h})
	}

	for k, origin := range [2]mgl64.Vec2{n.rect.Min, second} {
		t.nodes = append(t.nodes, node{
			rect:     geom.Rect{Min: origin, Width: w, Height: h},
			depth:    n.depth + 1,
			parent:   i,
			children: [2]int{noNode, noNode},
		})
		t.nodes[i].children[k] = len(t.nodes) - 1
	}
	for _, c := range t.nodes[i].children {
		t.split(c)
	}
}

// Depth is the depth of the deepest leaf.
func (t *Tree[T]) Depth() int {
	d := 0
	for i := range t.nodes {
		if t.nodes[i].depth > d {
			d = t.nodes[i].depth
		}
	}
	return d
}

// Leaves counts leaf nodes.
func (t *Tree[T]) Leaves() int {
	c := 0
	for i := range t.nodes {
		if t.nodes[i].leaf() {
			c++
		}
	}
	return c
}

// Len is the number of indexed objects.
func (t *Tree[T]) Len() int {
	return len(t.values)
}

// Contains reports whether h is currently indexed.
func (t *Tree[T]) Contains(h Handle) bool {
	_, ok := t.values[h]
	return ok
}

// Get returns the value behind h.
func (t *Tree[T]) Get(h Handle) (T, bool) {
	v, ok := t.values[h]
	return v, ok
}

// leafFor descends from the root, choosing at each level the child whose
// rectangle contains p.
func (t *Tree[T]) leafFor(p mgl64.Vec2) (int, error) {
	i := 0
	if !t.nodes[i].rect.Contains(p) {
		return noNode, fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	for !t.nodes[i].leaf() {
		next := noNode
		for _, c := range t.nodes[i].children {
			if t.nodes[c].rect.Contains(p) {
				next = c
				break
			}
		}
		if next == noNode {
			return noNode, fmt.Errorf("%w: %v at depth %d", ErrOutOfBounds, p, t.nodes[i].depth)
		}
		i = next
	}
	return i, nil
}

// Add files v in the leaf containing its position.
func (t *Tree[T]) Add(v T) (Handle, error) {
	leaf, err := t.leafFor(v.Position())
	if err != nil {
		return 0, err
	}
	t.next++
	h := t.next
	t.values[h] = v
	t.nodes[leaf].objects = append(t.nodes[leaf].objects, h)
	return h, nil
}

// Remove drops h from the tree. When the object moved since it was filed,
// the leaf reached by its current position will not hold it, and the
// search backtracks through the ancestors' other subtrees.
func (t *Tree[T]) Remove(h Handle) error {
	if err := t.detach(h); err != nil {
		return err
	}
	delete(t.values, h)
	return nil
}

// Update refiles h under its current position. An object that moved
// outside the tree stays indexed: it is filed under its position clamped
// onto the tree's edge, and the overshoot is logged. Only Remove drops it.
func (t *Tree[T]) Update(h Handle) error {
	if err := t.detach(h); err != nil {
		return err
	}
	p := t.values[h].Position()
	if !t.nodes[0].rect.Contains(p) {
		t.logger.Printf("quadtree: object %d at %v is outside the tree, filed at %v", h, p, t.clamp(p))
	}
	leaf, err := t.leafFor(t.clamp(p))
	if err != nil {
		// Unreachable for a clamped position; keep the registry consistent.
		delete(t.values, h)
		return err
	}
	t.nodes[leaf].objects = append(t.nodes[leaf].objects, h)
	return nil
}

// clamp moves p onto the closest point of the root rectangle. The far
// edges are exclusive, so they clamp to the largest value below them. NaN
// coordinates go to zero.
func (t *Tree[T]) clamp(p mgl64.Vec2) mgl64.Vec2 {
	axis := func(v, size float64) float64 {
		if math.IsNaN(v) {
			return 0
		}
		return geom.Clamp(v, 0, math.Nextafter(size, 0))
	}
	return mgl64.Vec2{axis(p.X(), t.width), axis(p.Y(), t.height)}
}

func (t *Tree[T]) detach(h Handle) error {
	v, ok := t.values[h]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	leaf, err := t.leafFor(t.clamp(v.Position()))
	if err != nil {
		// Nothing to start from; search the whole tree.
		if t.removeInSubtree(0, h) {
			return nil
		}
		return fmt.Errorf("%w: %d", ErrNotFound, h)
	}
	if t.removeFromLeaf(leaf, h) || t.backtrack(leaf, h) {
		return nil
	}
	return fmt.Errorf("%w: %d", ErrNotFound, h)
}

func (t *Tree[T]) removeFromLeaf(i int, h Handle) bool {
	objs := t.nodes[i].objects
	for k, o := range objs {
		if o == h {
			last := len(objs) - 1
			objs[k] = objs[last]
			t.nodes[i].objects = objs[:last]
			return true
		}
	}
	return false
}

// backtrack walks up from a leaf that did not hold h. At every ancestor it
// searches the child subtrees it has not come from, then moves up again
// until the root is exhausted.
func (t *Tree[T]) backtrack(from int, h Handle) bool {
	visited := from
	for cur := t.nodes[from].parent; cur != noNode; cur = t.nodes[cur].parent {
		for _, c := range t.nodes[cur].children {
			if c == visited {
				continue
			}
			if t.removeInSubtree(c, h) {
				return true
			}
		}
		visited = cur
	}
	return false
}

func (t *Tree[T]) removeInSubtree(i int, h Handle) bool {
	if t.nodes[i].leaf() {
		return t.removeFromLeaf(i, h)
	}
	for _, c := range t.nodes[i].children {
		if t.removeInSubtree(c, h) {
			return true
		}
	}
	return false
}

func (t *Tree[T]) leafHolds(i int, h Handle) bool {
	for _, o := range t.nodes[i].objects {
		if o == h {
			return true
		}
	}
	return false
}

// Nearby returns every object in the subtree rooted two levels above the
// leaf containing h's current position, h included. A position outside the
// tree is clamped onto its edge, where Update files it. The neighbourhood
// is a fixed block of leaves, not a radius: callers must keep interacting
// features smaller than one leaf.
//
// With warnStale set, an object that moved since it was last filed is
// logged. Callers that push neighbours around mid-tick pass false.
func (t *Tree[T]) Nearby(h Handle, warnStale bool) ([]Entry[T], error) {
	v, ok := t.values[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	leaf, err := t.leafFor(t.clamp(v.Position()))
	if err != nil {
		return nil, err
	}
	if warnStale && !t.leafHolds(leaf, h) {
		t.logger.Printf("quadtree: object %d is not filed under its current position %v", h, v.Position())
	}
	return t.neighbourhood(leaf)
}

// NearbyPoint is Nearby for a position that is not itself indexed, such as
// a body querying terrain lines.
func (t *Tree[T]) NearbyPoint(p mgl64.Vec2) ([]Entry[T], error) {
	leaf, err := t.leafFor(p)
	if err != nil {
		return nil, err
	}
	return t.neighbourhood(leaf)
}

func (t *Tree[T]) neighbourhood(leaf int) ([]Entry[T], error) {
	parent := t.nodes[leaf].parent
	if parent == noNode || t.nodes[parent].parent == noNode {
		return nil, fmt.Errorf("%w: leaf at depth %d", ErrNoGrandparent, t.nodes[leaf].depth)
	}
	var out []Entry[T]
	t.walk(t.nodes[parent].parent, func(e Entry[T]) {
		out = append(out, e)
	})
	return out, nil
}

// ForEach visits every object in leaf traversal order.
func (t *Tree[T]) ForEach(f func(Entry[T])) {
	t.walk(0, f)
}

// Handles lists every handle in traversal order. The slice is a copy, so
// the tree may be modified while ranging over it.
func (t *Tree[T]) Handles() []Handle {
	out := make([]Handle, 0, len(t.values))
	t.walk(0, func(e Entry[T]) {
		out = append(out, e.Handle)
	})
	return out
}

func (t *Tree[T]) walk(i int, f func(Entry[T])) {
	n := &t.nodes[i]
	if n.leaf() {
		for _, h := range n.objects {
			f(Entry[T]{Handle: h, Value: t.values[h]})
		}
		return
	}
	for _, c := range n.children {
		t.walk(c, f)
	}
}
