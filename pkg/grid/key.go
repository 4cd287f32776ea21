package grid

import (
	"strconv"
	"strings"

	"github.com/matzehuels/gridtext/pkg/errors"
)

// Key is a canvas coordinate. Y grows downward; both axes are unbounded.
type Key struct {
	X, Y int
}

// String formats k in the host's "x,y" form.
func (k Key) String() string {
	return strconv.Itoa(k.X) + "," + strconv.Itoa(k.Y)
}

// ParseKey parses an "x,y" key. Surrounding whitespace around either
// component is tolerated.
func ParseKey(s string) (Key, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Key{}, errors.New(errors.ErrCodeInvalidKey, "missing comma in key %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Key{}, errors.Wrap(errors.ErrCodeInvalidKey, err, "invalid x in key %q", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Key{}, errors.Wrap(errors.ErrCodeInvalidKey, err, "invalid y in key %q", s)
	}
	return Key{X: x, Y: y}, nil
}

// Less orders keys top to bottom, then left to right.
func (k Key) Less(o Key) bool {
	if k.Y != o.Y {
		return k.Y < o.Y
	}
	return k.X < o.X
}
