package fireforget

func fetch() <-chan int {
	ch := make(chan int, 1)
	ch <- 1
	close(ch)

	return ch
}

func consume() {
	fetch() // want `future-like result is never observed`

	_ = <-fetch()
}

func spawn() {
	go func() { // want `panic in detached goroutine is lost: string`
		panic("lost")
	}()

	go func() {
		defer func() { _ = recover() }()

		panic("contained")
	}()
}

type pool struct{}

func (pool) Go(f func()) {
	go f()
}

func dispatch() {
	var p pool

	p.Go(func() { // want `panic in detached task is lost: int`
		panic(42)
	})

	p.Go(func() {})
}
