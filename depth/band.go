package depth

import "fmt"

// Band is the distance range, in millimetres, treated as solid
type Band struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Contains reports whether mm lies strictly between Min and Max
func (b Band) Contains(mm uint16) bool {
	v := int(mm)
	return b.Min < v && v < b.Max
}

// Valid holds when 0 < Min < Max
func (b Band) Valid() bool {
	return b.Min > 0 && b.Min < b.Max
}

// Shift moves both bounds by delta
func (b Band) Shift(delta int) Band {
	return Band{Min: b.Min + delta, Max: b.Max + delta}
}

func (b Band) String() string {
	return fmt.Sprintf("%d-%dmm", b.Min, b.Max)
}
