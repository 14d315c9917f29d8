package depth

// Direct panics immediately.
func Direct() { // want `panic may escape exported func Direct: string`
	panic("direct")
}

// Deep panics two hops down, beyond the configured traversal depth.
func Deep() {
	mid()
}

func mid() {
	low()
}

func low() {
	panic("deep")
}
