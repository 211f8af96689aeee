package tomlcst

import "errors"

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(e *Element) error

// Walk performs a pre-order traversal starting at root.
func Walk(root *Element, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}
	if err := walkFunc(root); err != nil {
		return err
	}
	for _, child := range root.Children {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// Contains reports whether any descendant of root (root included) has one
// of the given kinds.
func Contains(root *Element, kinds ...Kind) bool {
	found := false
	_ = Walk(root, func(e *Element) error {
		for _, kind := range kinds {
			if e.Kind == kind {
				found = true
				return errStop
			}
		}
		return nil
	})
	return found
}

var errStop = errors.New("stop walk")
