package produce

import "iter"

type handle struct{}

func (handle) close() {}

func open() (handle, error) {
	return handle{}, nil
}

// Values streams the given values from an open handle.
func Values(values []int) iter.Seq[int] {
	return func(yield func(int) bool) {
		f, err := open()
		if err != nil {
			return
		}
		defer f.close()

		for _, v := range values {
			if !yield(v) { // want `value produced while a defer is pending in iterator Values`
				return
			}
		}
	}
}

// Naturals yields without any pending cleanup.
func Naturals(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range n {
			if !yield(i) {
				return
			}
		}
	}
}
