package a

import "errors"

var errBad = errors.New("bad input")

// Parse panics on empty input.
func Parse(data []byte) byte { // want `panic may escape exported func Parse: string`
	if len(data) == 0 {
		panic("empty input")
	}

	return data[0]
}

// Validate panics through an unexported helper.
func Validate(data []byte) { // want `panic may escape exported func Validate: error`
	check(data)
}

func check(data []byte) {
	if len(data) == 0 {
		panic(errBad)
	}
}

// Safe contains everything it raises.
func Safe(data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errBad
		}
	}()

	check(data)

	return nil
}

type Decoder struct {
	strict bool
}

// Next panics in strict mode.
func (d *Decoder) Next() int { // want `panic may escape exported method Next: a\.decodeError`
	if d.strict {
		panic(decodeError{})
	}

	return 0
}

type decodeError struct{}

// helper is unexported, its panic surfaces through exported callers only.
func helper() {
	panic("internal")
}
