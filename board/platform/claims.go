package platform

import "errors"

var errControllerInUse = errors.New("controller_in_use")

// claims tracks which hardware controllers already serve a bus. A
// controller is marked only once its open succeeded, so a failed open
// leaves it free for a later attempt.
type claims map[string]bool

func (c claims) open(id string, fn func() (any, error)) (any, error) {
	if c[id] {
		return nil, errControllerInUse
	}
	h, err := fn()
	if err != nil {
		return nil, err
	}
	c[id] = true
	return h, nil
}
