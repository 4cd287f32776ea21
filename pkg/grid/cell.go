package grid

// Cell is the content stored at one canvas position. It is a closed sum type:
// the only implementations are [Plain] and [Styled].
type Cell interface {
	isCell()
}

// Plain is a bare character with no styling.
type Plain string

// Styled is a character with optional foreground and background colors.
type Styled struct {
	Char       string `json:"char"`
	Color      string `json:"color,omitempty"`
	Background string `json:"background,omitempty"`
}

func (Plain) isCell()  {}
func (Styled) isCell() {}

// CharOf returns the character held by c, or "" for a nil cell.
func CharOf(c Cell) string {
	switch v := c.(type) {
	case Plain:
		return string(v)
	case Styled:
		return v.Char
	case *Styled:
		if v == nil {
			return ""
		}
		return v.Char
	default:
		return ""
	}
}

// StyleOf returns the styling of c. Plain cells report empty colors.
func StyleOf(c Cell) (color, background string) {
	if s, ok := c.(Styled); ok {
		return s.Color, s.Background
	}
	return "", ""
}
