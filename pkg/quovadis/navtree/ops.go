package navtree

import (
	"errors"
	"fmt"
)

// StructureError reports a malformed navigation tree: a duplicate key, a
// cycle, or a missing key. Structural faults are the only fatal error class
// in the engine; they are surfaced immediately and never tolerated.
type StructureError struct {
	Op  string // operation that detected the fault (e.g. "validate")
	Key string // offending node key, if any
	Err error  // underlying error
}

func (e *StructureError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("navtree: %s: key %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("navtree: %s: %v", e.Op, e.Err)
}

func (e *StructureError) Unwrap() error {
	return e.Err
}

// IsStructureError checks whether an error is a structural tree fault.
func IsStructureError(err error) bool {
	var structErr *StructureError
	return errors.As(err, &structErr)
}

var (
	errDuplicateKey = errors.New("duplicate key in tree")
	errCycle        = errors.New("node reachable through itself")
	errEmptyKey     = errors.New("empty key")
)

// Validate checks a tree for structural faults: duplicate keys within the
// tree, cycles, and empty keys. It must pass once per render pass before
// the renderer walks the tree.
func Validate(root *Node) error {
	if root == nil {
		return nil
	}
	seen := make(map[string]struct{})
	onPath := make(map[*Node]struct{})
	return validate(root, seen, onPath)
}

func validate(n *Node, seen map[string]struct{}, onPath map[*Node]struct{}) error {
	if _, ok := onPath[n]; ok {
		return &StructureError{Op: "validate", Key: n.Key, Err: errCycle}
	}
	if n.Key == "" {
		return &StructureError{Op: "validate", Err: errEmptyKey}
	}
	if _, ok := seen[n.Key]; ok {
		return &StructureError{Op: "validate", Key: n.Key, Err: errDuplicateKey}
	}
	seen[n.Key] = struct{}{}
	onPath[n] = struct{}{}
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		if err := validate(child, seen, onPath); err != nil {
			return err
		}
	}
	delete(onPath, n)
	return nil
}

// Find returns the node with the given key anywhere in the tree, or nil.
func Find(root *Node, key string) *Node {
	if root == nil {
		return nil
	}
	if root.Key == key {
		return root
	}
	for _, child := range root.Children {
		if found := Find(child, key); found != nil {
			return found
		}
	}
	return nil
}

// ChildIndex returns the position of the child with the given key in the
// node's child list, or -1.
func ChildIndex(n *Node, key string) int {
	if n == nil {
		return -1
	}
	for i, child := range n.Children {
		if child != nil && child.Key == key {
			return i
		}
	}
	return -1
}

// IsBack reports whether moving from previous to current represents back
// navigation for a stack-like node pair of matching key. It is true when
// the child list shrank, or when the new active child's key existed at an
// earlier position in the previous child list (multi-pop or jump back).
func IsBack(previous, current *Node) bool {
	if previous == nil || current == nil || previous.Key != current.Key {
		return false
	}
	if len(current.Children) < len(previous.Children) {
		return true
	}
	active := current.ActiveChild()
	if active == nil {
		return false
	}
	prevIdx := ChildIndex(previous, active.Key)
	return prevIdx >= 0 && prevIdx < len(previous.Children)-1
}
