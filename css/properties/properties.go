package properties

// KnownProp identifies one supported CSS property.
type KnownProp uint8

const (
	_ KnownProp = iota

	PDisplay
	PContent
	PListStyleType
	PListStyleImage
	PListStylePosition
	PCounterReset
	PCounterIncrement
	PCounterSet
	PQuotes
	PDirection

	PBorderCollapse
	PCaptionSide

	// the four border sides are grouped by side, in the
	// [top, right, bottom, left] order
	PBorderTopStyle
	PBorderTopWidth
	PBorderTopColor
	PBorderRightStyle
	PBorderRightWidth
	PBorderRightColor
	PBorderBottomStyle
	PBorderBottomWidth
	PBorderBottomColor
	PBorderLeftStyle
	PBorderLeftWidth
	PBorderLeftColor

	PFloat
	PPosition
	PClear
	PVerticalAlign
	PZIndex
	POverflow
	PTop
	PRight
	PBottom
	PLeft
	PMarginTop
	PMarginRight
	PMarginBottom
	PMarginLeft
	PPaddingTop
	PPaddingRight
	PPaddingBottom
	PPaddingLeft
	PBreakBefore
	PBreakAfter
	PWidth

	NbProperties
)

// Properties is the computed style of one element (or one anonymous box):
// a mapping from supported property to computed value.
type Properties map[KnownProp]CssProperty

// Copy returns a shallow copy of the style, so that individual
// properties may be overridden without affecting the source.
func (s Properties) Copy() Properties {
	out := make(Properties, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func (s Properties) GetDisplay() Display  { return s[PDisplay].(Display) }
func (s Properties) SetDisplay(v Display) { s[PDisplay] = v }

func (s Properties) GetContent() SContent  { return s[PContent].(SContent) }
func (s Properties) SetContent(v SContent) { s[PContent] = v }

func (s Properties) GetListStyleType() String  { return s[PListStyleType].(String) }
func (s Properties) SetListStyleType(v String) { s[PListStyleType] = v }

func (s Properties) GetListStyleImage() String  { return s[PListStyleImage].(String) }
func (s Properties) SetListStyleImage(v String) { s[PListStyleImage] = v }

func (s Properties) GetListStylePosition() String  { return s[PListStylePosition].(String) }
func (s Properties) SetListStylePosition(v String) { s[PListStylePosition] = v }

func (s Properties) GetCounterReset() SIntStrings  { return s[PCounterReset].(SIntStrings) }
func (s Properties) SetCounterReset(v SIntStrings) { s[PCounterReset] = v }

func (s Properties) GetCounterIncrement() SIntStrings  { return s[PCounterIncrement].(SIntStrings) }
func (s Properties) SetCounterIncrement(v SIntStrings) { s[PCounterIncrement] = v }

func (s Properties) GetCounterSet() SIntStrings  { return s[PCounterSet].(SIntStrings) }
func (s Properties) SetCounterSet(v SIntStrings) { s[PCounterSet] = v }

func (s Properties) GetQuotes() Quotes  { return s[PQuotes].(Quotes) }
func (s Properties) SetQuotes(v Quotes) { s[PQuotes] = v }

func (s Properties) GetDirection() String  { return s[PDirection].(String) }
func (s Properties) SetDirection(v String) { s[PDirection] = v }

func (s Properties) GetBorderCollapse() String  { return s[PBorderCollapse].(String) }
func (s Properties) SetBorderCollapse(v String) { s[PBorderCollapse] = v }

func (s Properties) GetCaptionSide() String  { return s[PCaptionSide].(String) }
func (s Properties) SetCaptionSide(v String) { s[PCaptionSide] = v }

func (s Properties) GetFloat() String  { return s[PFloat].(String) }
func (s Properties) SetFloat(v String) { s[PFloat] = v }

func (s Properties) GetPosition() String  { return s[PPosition].(String) }
func (s Properties) SetPosition(v String) { s[PPosition] = v }

func (s Properties) GetMarginTop() DimOrS  { return s[PMarginTop].(DimOrS) }
func (s Properties) SetMarginTop(v DimOrS) { s[PMarginTop] = v }

func (s Properties) GetPaddingTop() DimOrS  { return s[PPaddingTop].(DimOrS) }
func (s Properties) SetPaddingTop(v DimOrS) { s[PPaddingTop] = v }

func (s Properties) GetWidth() DimOrS  { return s[PWidth].(DimOrS) }
func (s Properties) SetWidth(v DimOrS) { s[PWidth] = v }
