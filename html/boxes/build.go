package boxes

import (
	"strings"

	"github.com/lherbaut/boxtree/css/counters"
	pr "github.com/lherbaut/boxtree/css/properties"
	"github.com/lherbaut/boxtree/images"
	"github.com/lherbaut/boxtree/logger"
	"github.com/lherbaut/boxtree/utils"
	"golang.org/x/net/html"
)

// StyleResolver provides the computed style of an element or one of its
// pseudo-elements ("" for the element itself). A nil style means the
// element (or pseudo-element) has no style and generates no box.
type StyleResolver interface {
	Style(element *html.Node, pseudoType string) pr.Properties
}

// StyleResolverFunc adapts a function to the StyleResolver interface.
type StyleResolverFunc func(element *html.Node, pseudoType string) pr.Properties

func (f StyleResolverFunc) Style(element *html.Node, pseudoType string) pr.Properties {
	return f(element, pseudoType)
}

// URLResolver fetches the external resources referenced by replaced
// elements, `content: url(...)` and list marker images.
type URLResolver struct {
	// BaseURL resolves relative references found in attributes.
	BaseURL string
	// FetchImage returns nil for resources that cannot be loaded.
	FetchImage func(url string) images.Image
}

// buildState is the context threaded through the element tree walk:
// quote nesting and the stacks of open counters.
type buildState struct {
	counterValues map[string][]int
	counterScopes []utils.Set
	quoteDepth    int
}

func newBuildState() *buildState {
	return &buildState{
		counterValues: map[string][]int{},
		counterScopes: []utils.Set{{}},
	}
}

// counterValue returns the innermost value of the named counter, implying
// a value of 0 for counters with no open scope.
func (state *buildState) counterValue(name string) int {
	if values := state.counterValues[name]; len(values) != 0 {
		return values[len(values)-1]
	}
	return 0
}

// updateCounters applies the counter-reset, counter-set and
// counter-increment declarations of one style, in that order.
func updateCounters(state *buildState, style pr.Properties) {
	siblingScopes := state.counterScopes[len(state.counterScopes)-1]

	for _, pair := range style.GetCounterReset().Values {
		if siblingScopes.Has(pair.String) {
			// a sibling already opened this scope: replace it
			values := state.counterValues[pair.String]
			state.counterValues[pair.String] = values[:len(values)-1]
		} else {
			siblingScopes.Add(pair.String)
		}
		state.counterValues[pair.String] = append(state.counterValues[pair.String], pair.Int)
	}

	for _, pair := range style.GetCounterSet().Values {
		values := state.counterValues[pair.String]
		if len(values) == 0 {
			siblingScopes.Add(pair.String)
			values = append(values, 0)
		}
		values[len(values)-1] = pair.Int
		state.counterValues[pair.String] = values
	}

	counterIncrement := style.GetCounterIncrement()
	if counterIncrement.String == "auto" {
		// no declaration for this element; list items get the
		// implicit "list-item 1"
		counterIncrement = pr.SIntStrings{}
		if style.GetDisplay() == "list-item" {
			counterIncrement.Values = []pr.IntString{{String: "list-item", Int: 1}}
		}
	}
	for _, pair := range counterIncrement.Values {
		values := state.counterValues[pair.String]
		if len(values) == 0 {
			siblingScopes.Add(pair.String)
			values = append(values, 0)
		}
		values[len(values)-1] += pair.Int
		state.counterValues[pair.String] = values
	}
}

// BuildFormattingStructure builds and repairs the whole box tree for a
// styled element tree, returning its root box.
//
// If the root element generates no box (for instance with display: none),
// a root block is forced so that the returned tree is never empty.
func BuildFormattingStructure(root *html.Node, styleFor StyleResolver, resolver URLResolver) Box {
	boxList := elementToBox(root, styleFor, resolver, nil)
	var box Box
	if len(boxList) != 0 {
		box = boxList[0]
	} else {
		rootStyleFor := StyleResolverFunc(func(element *html.Node, pseudoType string) pr.Properties {
			style := styleFor.Style(element, pseudoType)
			if style != nil {
				style = style.Copy()
				if element == root {
					style.SetDisplay("block")
				} else {
					style.SetDisplay("none")
				}
			}
			return style
		})
		box = elementToBox(root, rootStyleFor, resolver, nil)[0]
	}
	box = AnonymousTableBoxes(box)
	box = InlineInBlock(box)
	box = BlockInInline(box)
	return box
}

// elementToBox converts one element and its subtree into boxes: zero boxes
// for undisplayed elements, usually one box, maybe more for elements with
// an out of flow marker.
//
// The returned boxes are not yet structurally correct: the repair passes
// (tables, then inline-in-block and block-in-inline) come after the whole
// tree is built.
func elementToBox(element *html.Node, styleFor StyleResolver, resolver URLResolver,
	state *buildState) []Box {
	if element.Type != html.ElementNode {
		return nil
	}

	style := styleFor.Style(element, "")
	if style == nil {
		return nil
	}
	display := style.GetDisplay()
	if display == "none" {
		return nil
	}

	box := makeBox(style, element, "", nil)

	if state == nil {
		// root element
		state = newBuildState()
	}
	updateCounters(state, style)

	var children []Box
	if display == "list-item" {
		children = append(children, markerToBox(element, state, style, resolver)...)
	}

	// the counters of children and siblings of children do not interact
	state.counterScopes = append(state.counterScopes, utils.Set{})

	children = append(children, pseudoToBox(element, "before", state, styleFor, resolver)...)
	for child := element.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			if child.Data != "" {
				if text, ok := lastChild(children).(*TextBox); ok && text.PseudoType == "" {
					children[len(children)-1] = text.CopyWithText(text.Text + child.Data)
				} else {
					tb := NewTextBox(style, element, "", child.Data)
					children = append(children, &tb)
				}
			}
		case html.ElementNode:
			children = append(children, elementToBox(child, styleFor, resolver, state)...)
		}
	}
	children = append(children, pseudoToBox(element, "after", state, styleFor, resolver)...)

	scope := state.counterScopes[len(state.counterScopes)-1]
	state.counterScopes = state.counterScopes[:len(state.counterScopes)-1]
	for name := range scope {
		values := state.counterValues[name]
		values = values[:len(values)-1]
		if len(values) == 0 {
			delete(state.counterValues, name)
		} else {
			state.counterValues[name] = values
		}
	}

	box.Box().Children = children
	return handleElement(element, box, resolver)
}

func lastChild(children []Box) Box {
	if len(children) == 0 {
		return nil
	}
	return children[len(children)-1]
}

// makeBox creates the box matching the display of `style`.
func makeBox(style pr.Properties, element *html.Node, pseudoType string, children []Box) Box {
	switch display := style.GetDisplay(); display {
	case "block", "list-item":
		return NewBlockBox(style, element, pseudoType, children)
	case "inline":
		return NewInlineBox(style, element, pseudoType, children)
	case "inline-block":
		return NewInlineBlockBox(style, element, pseudoType, children)
	case "table":
		return NewTableBox(style, element, pseudoType, children)
	case "inline-table":
		return NewInlineTableBox(style, element, pseudoType, children)
	case "table-row":
		return NewTableRowBox(style, element, pseudoType, children)
	case "table-row-group", "table-header-group", "table-footer-group":
		return NewTableRowGroupBox(style, element, pseudoType, children)
	case "table-column":
		return NewTableColumnBox(style, element, pseudoType, children)
	case "table-column-group":
		return NewTableColumnGroupBox(style, element, pseudoType, children)
	case "table-cell":
		return NewTableCellBox(style, element, pseudoType, children)
	case "table-caption":
		return NewTableCaptionBox(style, element, pseudoType, children)
	default:
		logger.WarningLogger.Printf("unsupported display %q for element <%s>, using block",
			display, utils.AsHTMLNode(element).ElementTag())
		return NewBlockBox(style, element, pseudoType, children)
	}
}

// markerToBox creates the marker of a list item: the list-style-image if
// it loads, else the formatted list-item counter. Inside markers are
// returned as regular children; outside markers are stored out of flow on
// the list item box and nothing is returned.
func markerToBox(element *html.Node, state *buildState, style pr.Properties,
	resolver URLResolver) []Box {
	markerStyle := pr.Anonymous(style, "inline")
	var marker Box
	if url := string(style.GetListStyleImage()); url != "" && resolver.FetchImage != nil {
		if image := resolver.FetchImage(url); image != nil {
			rb := NewInlineReplacedBox(markerStyle, element, "marker", image)
			marker = &rb
		} else {
			logger.WarningLogger.Printf("failed to load marker image %q", url)
		}
	}
	if marker == nil {
		text := counters.FormatMarker(state.counterValue("list-item"),
			string(style.GetListStyleType()))
		if text == "" {
			return nil
		}
		tb := NewTextBox(markerStyle, element, "marker", text)
		marker = &tb
	}
	marker.Box().IsAnonymous = true

	if style.GetListStylePosition() == "inside" {
		return []Box{marker}
	}
	// stored on the list item box itself, once it exists: the caller
	// prepends nothing and elementToBox moves it out of flow
	return []Box{&outsideMarker{content: marker}}
}

// outsideMarker is a transient wrapper signaling that the marker must be
// attached out of flow; it never survives handleElement.
type outsideMarker struct {
	content Box
}

func (m *outsideMarker) Box() *BoxFields { return m.content.Box() }
func (m *outsideMarker) Copy() Box       { return &outsideMarker{content: m.content.Copy()} }
func (m *outsideMarker) Type() BoxType   { return m.content.Type() }

// handleElement gives the element specific handlers (replaced elements,
// column spans) a chance to post-process or replace the box, and hoists
// outside list markers.
func handleElement(element *html.Node, box Box, resolver URLResolver) []Box {
	fields := box.Box()
	var kept []Box
	for _, child := range fields.Children {
		if m, ok := child.(*outsideMarker); ok {
			fields.OutsideListMarker = m.content
		} else {
			kept = append(kept, child)
		}
	}
	fields.Children = kept

	if handler, ok := htmlHandlers[utils.AsHTMLNode(element).ElementTag()]; ok {
		return handler(element, box, resolver)
	}
	return []Box{box}
}

// pseudoToBox realizes the ::before or ::after pseudo-element: an inline
// (or other, per its display) box containing the expansion of its
// `content` property.
func pseudoToBox(element *html.Node, pseudoType string, state *buildState,
	styleFor StyleResolver, resolver URLResolver) []Box {
	style := styleFor.Style(element, pseudoType)
	if style == nil {
		return nil
	}
	if style.GetDisplay() == "none" {
		return nil
	}
	if content := style.GetContent(); content.String == "none" || content.String == "normal" {
		return nil
	}

	box := makeBox(style, element, pseudoType, nil)
	updateCounters(state, style)
	box.Box().Children = contentToBoxes(style, box, state, element, resolver)
	return []Box{box}
}

// contentToBoxes expands a content-list into text and replaced boxes.
// Adjacent textual tokens are merged into a single text box; images split
// the accumulated text.
func contentToBoxes(style pr.Properties, parentBox Box, state *buildState,
	element *html.Node, resolver URLResolver) []Box {
	fields := parentBox.Box()
	quotes := style.GetQuotes()

	var out []Box
	var texts []string
	flushText := func() {
		if text := strings.Join(texts, ""); text != "" {
			tb := NewTextBox(style, element, fields.PseudoType, text)
			out = append(out, &tb)
		}
		texts = nil
	}

	for _, content := range style.GetContent().Contents {
		switch content.Type {
		case "string":
			texts = append(texts, content.String)
		case "attr":
			texts = append(texts, utils.AsHTMLNode(element).Get(content.String))
		case "url":
			if resolver.FetchImage == nil {
				continue
			}
			image := resolver.FetchImage(content.String)
			if image == nil {
				logger.WarningLogger.Printf("failed to load content image %q", content.String)
				continue
			}
			flushText()
			rb := NewInlineReplacedBox(style, element, fields.PseudoType, image)
			out = append(out, &rb)
		case "counter":
			texts = append(texts, counters.Format(
				state.counterValue(content.Counter.Name), content.Counter.Style))
		case "counters":
			values := state.counterValues[content.Counter.Name]
			if len(values) == 0 {
				values = []int{0}
			}
			formatted := make([]string, len(values))
			for i, v := range values {
				formatted[i] = counters.Format(v, content.Counter.Style)
			}
			texts = append(texts, strings.Join(formatted, content.Counter.Separator))
		case "quote":
			if content.Quote.Open {
				if content.Quote.Insert {
					texts = append(texts, openQuote(quotes, state.quoteDepth))
				}
				state.quoteDepth++
			} else {
				if state.quoteDepth > 0 {
					state.quoteDepth--
				}
				if content.Quote.Insert {
					texts = append(texts, closeQuote(quotes, state.quoteDepth))
				}
			}
		}
	}
	flushText()
	return out
}

// quote symbols past the innermost pair repeat the innermost pair
func openQuote(quotes pr.Quotes, depth int) string {
	if len(quotes.Open) == 0 {
		return ""
	}
	if depth >= len(quotes.Open) {
		depth = len(quotes.Open) - 1
	}
	return quotes.Open[depth]
}

func closeQuote(quotes pr.Quotes, depth int) string {
	if len(quotes.Close) == 0 {
		return ""
	}
	if depth >= len(quotes.Close) {
		depth = len(quotes.Close) - 1
	}
	return quotes.Close[depth]
}
