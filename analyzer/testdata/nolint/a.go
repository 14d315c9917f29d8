package nolint

// Parse panics on empty input, suppressed on the declaration.
//
//nolint:panicflow
func Parse(data []byte) byte {
	if len(data) == 0 {
		panic("empty input")
	}

	return data[0]
}

func fetch() <-chan int {
	return nil
}

func consume() {
	fetch() //nolint:panicflow
}
