package properties

// Fl is the numeric type used for resolved values, in CSS pixels.
type Fl = float32

// CssProperty is the value of one computed property.
type CssProperty interface{}

type (
	String string
	Int    int
	Float  Fl
)

// Display is the computed display keyword of an element.
type Display string

// BlockLevel reports whether the display generates a block-level box.
func (d Display) BlockLevel() bool {
	switch d {
	case "block", "list-item", "table":
		return true
	default:
		return false
	}
}

// Color is an already resolved RGBA color, with components in [0, 1].
type Color struct {
	R, G, B, A Fl
}

func NewColor(r, g, b, a Fl) Color { return Color{R: r, G: g, B: b, A: a} }

// IsNone reports whether the color is the zero value.
func (c Color) IsNone() bool { return c == Color{} }

// DimOrS is a pixel length or a keyword such as "auto".
type DimOrS struct {
	S     string
	Value Float
}

// FToPx builds a pixel length.
func FToPx(v Fl) DimOrS { return DimOrS{Value: Float(v)} }

// SToV builds a keyword value.
func SToV(s string) DimOrS { return DimOrS{S: s} }

// IntString is a (name, integer) pair, as used in counter-reset.
type IntString struct {
	String string
	Int    int
}

// SIntStrings is either a keyword ("none", "auto") or a list of
// (name, integer) pairs.
type SIntStrings struct {
	String string
	Values []IntString
}

// Quotes holds the open/close symbol pairs of the `quotes` property,
// outermost first.
type Quotes struct {
	Open, Close []string
}

// Quote is an open-quote or close-quote content token. `Insert` is false
// for the no-open-quote and no-close-quote variants, which adjust the
// nesting depth without inserting a symbol.
type Quote struct {
	Open, Insert bool
}

// CounterFunc is a counter() or counters() content token.
type CounterFunc struct {
	Name      string
	Separator string // only for counters()
	Style     string
}

// ContentProperty is one token of a content-list.
type ContentProperty struct {
	// Type is one of "string", "url", "attr", "counter", "counters", "quote".
	Type string

	String  string // for "string", "url" and "attr"
	Counter CounterFunc
	Quote   Quote
}

type ContentProperties []ContentProperty

// SContent is the computed value of the `content` property: a keyword
// ("normal" or "none") or a content-list.
type SContent struct {
	String   string
	Contents ContentProperties
}
