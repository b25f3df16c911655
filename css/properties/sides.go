package properties

// Side identifies one of the four borders of a box.
type Side uint8

const (
	STop Side = iota
	SRight
	SBottom
	SLeft
)

func (s Side) String() string {
	switch s {
	case STop:
		return "top"
	case SRight:
		return "right"
	case SBottom:
		return "bottom"
	case SLeft:
		return "left"
	}
	return "<invalid side>"
}

// the border properties are declared by groups of 3,
// in the [top, right, bottom, left] order
func borderProp(base KnownProp, side Side) KnownProp { return base + 3*KnownProp(side) }

func (s Properties) GetBorderStyleSide(side Side) String {
	return s[borderProp(PBorderTopStyle, side)].(String)
}

func (s Properties) SetBorderStyleSide(side Side, v String) {
	s[borderProp(PBorderTopStyle, side)] = v
}

func (s Properties) GetBorderWidthSide(side Side) Float {
	return s[borderProp(PBorderTopWidth, side)].(Float)
}

func (s Properties) SetBorderWidthSide(side Side, v Float) {
	s[borderProp(PBorderTopWidth, side)] = v
}

func (s Properties) GetBorderColorSide(side Side) Color {
	return s[borderProp(PBorderTopColor, side)].(Color)
}

func (s Properties) SetBorderColorSide(side Side, v Color) {
	s[borderProp(PBorderTopColor, side)] = v
}
