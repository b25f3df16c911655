package properties

// InitialValues contains the initial value of every supported property.
var InitialValues = Properties{
	PDisplay:           Display("inline"),
	PContent:           SContent{String: "normal"},
	PListStyleType:     String("disc"),
	PListStyleImage:    String(""),
	PListStylePosition: String("outside"),
	PCounterReset:      SIntStrings{String: "none"},
	PCounterIncrement:  SIntStrings{String: "auto"},
	PCounterSet:        SIntStrings{String: "none"},
	PQuotes:            Quotes{Open: []string{"“", "‘"}, Close: []string{"”", "’"}},
	PDirection:         String("ltr"),

	PBorderCollapse: String("separate"),
	PCaptionSide:    String("top"),

	PBorderTopStyle:    String("none"),
	PBorderRightStyle:  String("none"),
	PBorderBottomStyle: String("none"),
	PBorderLeftStyle:   String("none"),
	// 3px corresponds to the keyword "medium"
	PBorderTopWidth:    Float(3),
	PBorderRightWidth:  Float(3),
	PBorderBottomWidth: Float(3),
	PBorderLeftWidth:   Float(3),
	PBorderTopColor:    Color{A: 1},
	PBorderRightColor:  Color{A: 1},
	PBorderBottomColor: Color{A: 1},
	PBorderLeftColor:   Color{A: 1},

	PFloat:         String("none"),
	PPosition:      String("static"),
	PClear:         String("none"),
	PVerticalAlign: String("baseline"),
	PZIndex:        IntString{String: "auto"},
	POverflow:      String("visible"),
	PTop:           SToV("auto"),
	PRight:         SToV("auto"),
	PBottom:        SToV("auto"),
	PLeft:          SToV("auto"),
	PMarginTop:     FToPx(0),
	PMarginRight:   FToPx(0),
	PMarginBottom:  FToPx(0),
	PMarginLeft:    FToPx(0),
	PPaddingTop:    FToPx(0),
	PPaddingRight:  FToPx(0),
	PPaddingBottom: FToPx(0),
	PPaddingLeft:   FToPx(0),
	PBreakBefore:   String("auto"),
	PBreakAfter:    String("auto"),
	PWidth:         SToV("auto"),
}

// Inherited lists the supported properties whose computed value
// propagates from parent to child.
var Inherited = [...]KnownProp{
	PBorderCollapse,
	PCaptionSide,
	PDirection,
	PListStyleImage,
	PListStylePosition,
	PListStyleType,
	PQuotes,
}

// TableWrapperBoxProperties lists the non-inherited properties that apply
// to the anonymous table wrapper box instead of the table itself.
// See CSS 2.1 §17.4.
var TableWrapperBoxProperties = [...]KnownProp{
	PBottom,
	PBreakAfter,
	PBreakBefore,
	PClear,
	PCounterIncrement,
	PCounterReset,
	PFloat,
	PLeft,
	PMarginBottom,
	PMarginLeft,
	PMarginRight,
	PMarginTop,
	POverflow,
	PPosition,
	PRight,
	PTop,
	PVerticalAlign,
	PZIndex,
}

// Anonymous returns the computed style of an anonymous box with the given
// display, generated inside `parent`: inherited properties come from the
// parent style, every other property has its initial value.
func Anonymous(parent Properties, display Display) Properties {
	out := InitialValues.Copy()
	for _, p := range Inherited {
		if v, has := parent[p]; has {
			out[p] = v
		}
	}
	out[PDisplay] = display
	return out
}
