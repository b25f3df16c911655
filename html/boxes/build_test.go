package boxes

import (
	"strings"
	"testing"

	pr "github.com/lherbaut/boxtree/css/properties"
	"github.com/lherbaut/boxtree/images"
	tu "github.com/lherbaut/boxtree/utils/testutils"
	"golang.org/x/net/html"
)

// fakeImage stands in for fetched raster content.
type fakeImage struct{}

func (fakeImage) IntrinsicSize() (width, height pr.Fl) { return 4, 4 }

// testResolver loads every resource except those mentioning "no-such".
var testResolver = URLResolver{
	BaseURL: "https://example.com/",
	FetchImage: func(url string) images.Image {
		if strings.Contains(url, "no-such") {
			return nil
		}
		return fakeImage{}
	},
}

// ruleMap holds per test style overrides, keyed by tag name or
// "tag::pseudo". The values are partial styles merged over the defaults.
type ruleMap map[string]pr.Properties

// display of the elements used in the tests, in the spirit of the HTML
// user agent stylesheet; unknown elements default to inline.
var uaDisplay = map[string]pr.Display{
	"html": "block",
	"body": "block",
	"div":  "block",
	"p":    "block",
	"h1":   "block",
	"ul":   "block",
	"ol":   "block",
	"li":   "list-item",

	"table":    "table",
	"caption":  "table-caption",
	"thead":    "table-header-group",
	"tbody":    "table-row-group",
	"tfoot":    "table-footer-group",
	"tr":       "table-row",
	"td":       "table-cell",
	"th":       "table-cell",
	"col":      "table-column",
	"colgroup": "table-column-group",

	"head":   "none",
	"meta":   "none",
	"link":   "none",
	"title":  "none",
	"style":  "none",
	"script": "none",
}

func parentElement(element *html.Node) *html.Node {
	for parent := element.Parent; parent != nil; parent = parent.Parent {
		if parent.Type == html.ElementNode {
			return parent
		}
	}
	return nil
}

// newStyler resolves computed styles from the defaults, simple
// inheritance and the given rules; pseudo-elements only exist when a rule
// mentions them.
func newStyler(rules ruleMap) StyleResolver {
	var compute func(element *html.Node, pseudoType string) pr.Properties
	compute = func(element *html.Node, pseudoType string) pr.Properties {
		key := element.Data
		if pseudoType != "" {
			key += "::" + pseudoType
		}
		rule, hasRule := rules[key]
		if pseudoType != "" && !hasRule {
			return nil
		}

		style := pr.InitialValues.Copy()
		inheritFrom := parentElement(element)
		var parentStyle pr.Properties
		if pseudoType != "" {
			parentStyle = compute(element, "")
		} else if inheritFrom != nil {
			parentStyle = compute(inheritFrom, "")
		}
		if parentStyle != nil {
			for _, name := range pr.Inherited {
				style[name] = parentStyle[name]
			}
		}
		if pseudoType == "" {
			if display, ok := uaDisplay[element.Data]; ok {
				style.SetDisplay(display)
			}
		}
		for name, value := range rule {
			style[name] = value
		}
		return style
	}
	return StyleResolverFunc(compute)
}

func parseHTML(t *testing.T, input string) *html.Node {
	t.Helper()
	document, err := html.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	for node := document.FirstChild; node != nil; node = node.NextSibling {
		if node.Type == html.ElementNode {
			return node
		}
	}
	t.Fatal("no root element")
	return nil
}

func bodyBox(t *testing.T, root Box) Box {
	t.Helper()
	for _, box := range Descendants(root) {
		if box.Box().ElementTag() == "body" && !box.Box().IsAnonymous {
			return box
		}
	}
	t.Fatal("no body box")
	return nil
}

// parse builds the raw box tree, without any repair, and returns the box
// of the <body> element.
func parse(t *testing.T, input string, rules ruleMap) Box {
	t.Helper()
	root := parseHTML(t, input)
	boxList := elementToBox(root, newStyler(rules), testResolver, nil)
	if len(boxList) != 1 {
		t.Fatalf("expected one root box, got %d", len(boxList))
	}
	return bodyBox(t, boxList[0])
}

// parseAndBuild builds and repairs the whole tree, checks the structural
// invariants, and returns the box of the <body> element.
func parseAndBuild(t *testing.T, input string, rules ruleMap) Box {
	t.Helper()
	root := parseHTML(t, input)
	box := BuildFormattingStructure(root, newStyler(rules), testResolver)
	sanityChecks(t, box)
	return bodyBox(t, box)
}

// sanityChecks verifies the structural invariants of a repaired tree:
// a line box has no sibling and only inline-level in-flow content.
func sanityChecks(t *testing.T, box Box) {
	t.Helper()
	if !ParentT.IsInstance(box) {
		return
	}
	children := box.Box().Children
	if LineT.IsInstance(box) {
		for _, child := range children {
			if !InlineLevelT.IsInstance(child) && child.Box().IsInNormalFlow() {
				t.Fatalf("in-flow %s inside a line box", child.Box())
			}
		}
	} else {
		for _, child := range children {
			if LineT.IsInstance(child) && len(children) != 1 {
				t.Fatalf("line box with siblings in %s", box.Box())
			}
		}
	}
	for _, child := range children {
		sanityChecks(t, child)
	}
}

func assertTree(t *testing.T, box Box, expected []SerBox) {
	t.Helper()
	got := Serialize(box.Box().Children)
	if !SerializedBoxEquals(got, expected) {
		t.Fatalf("expected\n\t%v\ngot\n\t%v", expected, got)
	}
}

func contentList(tokens ...pr.ContentProperty) pr.SContent {
	return pr.SContent{Contents: tokens}
}

func contentString(s string) pr.ContentProperty {
	return pr.ContentProperty{Type: "string", String: s}
}

func TestBoxTree(t *testing.T) {
	cp := tu.CaptureLogs()
	defer cp.AssertNoLogs(t)

	assertTree(t, parse(t, "<p>Hello <em>World</em>!</p>", nil), []SerBox{
		{"p", BlockT, BC{C: []SerBox{
			{"p", TextT, BC{Text: "Hello "}},
			{"em", InlineT, BC{C: []SerBox{
				{"em", TextT, BC{Text: "World"}},
			}}},
			{"p", TextT, BC{Text: "!"}},
		}}},
	})

	// entities are decoded by the parser
	assertTree(t, parse(t, "<p>&lt;spam&gt;</p>", nil), []SerBox{
		{"p", BlockT, BC{C: []SerBox{
			{"p", TextT, BC{Text: "<spam>"}},
		}}},
	})
}

func TestDisplayNoneChild(t *testing.T) {
	cp := tu.CaptureLogs()
	defer cp.AssertNoLogs(t)

	// the text around an undisplayed element merges into one box
	rules := ruleMap{"span": {pr.PDisplay: pr.Display("none")}}
	assertTree(t, parse(t, "<p>Hello <span>dropped</span>World!</p>", rules), []SerBox{
		{"p", BlockT, BC{C: []SerBox{
			{"p", TextT, BC{Text: "Hello World!"}},
		}}},
	})
}

func TestDisplayNoneRoot(t *testing.T) {
	cp := tu.CaptureLogs()
	defer cp.AssertNoLogs(t)

	rules := ruleMap{"html": {pr.PDisplay: pr.Display("none")}}
	root := parseHTML(t, "<p>abc</p>")
	box := BuildFormattingStructure(root, newStyler(rules), testResolver)
	tu.AssertEqual(t, BlockT.IsInstance(box), true)
	tu.AssertEqual(t, box.Box().ElementTag(), "html")
	tu.AssertEqual(t, len(box.Box().Children), 0)
}

func TestBeforeAfter(t *testing.T) {
	cp := tu.CaptureLogs()
	defer cp.AssertNoLogs(t)

	rules := ruleMap{
		"p::before": {pr.PContent: contentList(contentString("pre "))},
		"p::after":  {pr.PContent: contentList(contentString(" post"))},
	}
	assertTree(t, parse(t, "<p>text</p>", rules), []SerBox{
		{"p", BlockT, BC{C: []SerBox{
			{"p::before", InlineT, BC{C: []SerBox{
				{"p::before", TextT, BC{Text: "pre "}},
			}}},
			{"p", TextT, BC{Text: "text"}},
			{"p::after", InlineT, BC{C: []SerBox{
				{"p::after", TextT, BC{Text: " post"}},
			}}},
		}}},
	})
}

func TestContentAttr(t *testing.T) {
	cp := tu.CaptureLogs()
	defer cp.AssertNoLogs(t)

	rules := ruleMap{
		"p::before": {pr.PContent: contentList(
			pr.ContentProperty{Type: "attr", String: "title"},
			contentString(": "),
		)},
	}
	assertTree(t, parse(t, `<p title="note">x</p>`, rules), []SerBox{
		{"p", BlockT, BC{C: []SerBox{
			{"p::before", InlineT, BC{C: []SerBox{
				{"p::before", TextT, BC{Text: "note: "}},
			}}},
			{"p", TextT, BC{Text: "x"}},
		}}},
	})
}

func TestContentImage(t *testing.T) {
	cp := tu.CaptureLogs()
	defer cp.AssertNoLogs(t)

	// an image splits the accumulated text
	rules := ruleMap{
		"p::before": {pr.PContent: contentList(
			contentString("a"),
			pr.ContentProperty{Type: "url", String: "https://example.com/icon.png"},
			contentString("b"),
		)},
	}
	assertTree(t, parse(t, "<p></p>", rules), []SerBox{
		{"p", BlockT, BC{C: []SerBox{
			{"p::before", InlineT, BC{C: []SerBox{
				{"p::before", TextT, BC{Text: "a"}},
				{"p::before", InlineReplacedT, BC{Text: "<replaced>"}},
				{"p::before", TextT, BC{Text: "b"}},
			}}},
		}}},
	})
}

func TestQuotes(t *testing.T) {
	cp := tu.CaptureLogs()
	defer cp.AssertNoLogs(t)

	rules := ruleMap{
		"q::before": {pr.PContent: contentList(
			pr.ContentProperty{Type: "quote", Quote: pr.Quote{Open: true, Insert: true}},
		)},
		"q::after": {pr.PContent: contentList(
			pr.ContentProperty{Type: "quote", Quote: pr.Quote{Open: false, Insert: true}},
		)},
	}
	// two levels of quote symbols; the third reuses the innermost pair
	box := parse(t, "<p><q>a<q>b<q>c</q></q></q></p>", rules)
	var quoteTexts []string
	for _, descendant := range Descendants(box) {
		if text, ok := descendant.(*TextBox); ok && text.PseudoType != "" {
			quoteTexts = append(quoteTexts, text.Text)
		}
	}
	tu.AssertEqual(t, quoteTexts, []string{"“", "‘", "‘", "’", "’", "”"})
}

func TestCounters(t *testing.T) {
	cp := tu.CaptureLogs()
	defer cp.AssertNoLogs(t)

	rules := ruleMap{
		"p": {pr.PCounterIncrement: pr.SIntStrings{
			Values: []pr.IntString{{String: "p", Int: 1}},
		}},
		"p::before": {pr.PContent: contentList(
			pr.ContentProperty{Type: "counter", Counter: pr.CounterFunc{Name: "p", Style: "decimal"}},
		)},
	}
	assertTree(t, parse(t, "<div><p></p><p></p><p></p></div>", rules), []SerBox{
		{"div", BlockT, BC{C: []SerBox{
			{"p", BlockT, BC{C: []SerBox{{"p::before", InlineT, BC{C: []SerBox{
				{"p::before", TextT, BC{Text: "1"}}}}}}}},
			{"p", BlockT, BC{C: []SerBox{{"p::before", InlineT, BC{C: []SerBox{
				{"p::before", TextT, BC{Text: "2"}}}}}}}},
			{"p", BlockT, BC{C: []SerBox{{"p::before", InlineT, BC{C: []SerBox{
				{"p::before", TextT, BC{Text: "3"}}}}}}}},
		}}},
	})
}

// counter-reset on an element re-scopes the counter for its following
// siblings, and increments inside its subtree are kept.
func TestCounterScopes(t *testing.T) {
	cp := tu.CaptureLogs()
	defer cp.AssertNoLogs(t)

	rules := ruleMap{
		"x-reset": {pr.PCounterReset: pr.SIntStrings{
			Values: []pr.IntString{{String: "c", Int: 5}},
		}},
		"x-inc": {pr.PCounterIncrement: pr.SIntStrings{
			Values: []pr.IntString{{String: "c", Int: 2}},
		}},
		"x-show::before": {pr.PContent: contentList(
			pr.ContentProperty{Type: "counter", Counter: pr.CounterFunc{Name: "c", Style: "decimal"}},
		)},
	}
	box := parse(t, "<div>"+
		"<x-show></x-show>"+ // no scope yet: 0
		"<x-reset></x-reset>"+
		"<x-show></x-show>"+ // 5
		"<x-reset><x-inc></x-inc><x-show></x-show></x-reset>"+ // re-scoped, incremented: 7
		"<x-show></x-show>"+ // still 7
		"</div>", rules)
	var shown []string
	for _, descendant := range Descendants(box) {
		if text, ok := descendant.(*TextBox); ok && text.PseudoType == "before" {
			shown = append(shown, text.Text)
		}
	}
	tu.AssertEqual(t, shown, []string{"0", "5", "7", "7"})
}

// counter-set overwrites the innermost value, creating the scope when
// none is open
func TestCounterSet(t *testing.T) {
	cp := tu.CaptureLogs()
	defer cp.AssertNoLogs(t)

	rules := ruleMap{
		"x-reset": {pr.PCounterReset: pr.SIntStrings{
			Values: []pr.IntString{{String: "c", Int: 5}},
		}},
		"x-set": {pr.PCounterSet: pr.SIntStrings{
			Values: []pr.IntString{{String: "c", Int: 9}},
		}},
		"x-show::before": {pr.PContent: contentList(
			pr.ContentProperty{Type: "counter", Counter: pr.CounterFunc{Name: "c", Style: "decimal"}},
		)},
	}
	box := parse(t, "<div>"+
		"<x-set></x-set>"+ // no scope yet: created at 0, set to 9
		"<x-show></x-show>"+
		"<x-reset></x-reset>"+ // re-scoped to 5
		"<x-show></x-show>"+
		"<x-set></x-set>"+ // existing scope set back to 9
		"<x-show></x-show>"+
		"</div>", rules)
	var shown []string
	for _, descendant := range Descendants(box) {
		if text, ok := descendant.(*TextBox); ok && text.PseudoType == "before" {
			shown = append(shown, text.Text)
		}
	}
	tu.AssertEqual(t, shown, []string{"9", "5", "9"})
}

func TestCountersNested(t *testing.T) {
	cp := tu.CaptureLogs()
	defer cp.AssertNoLogs(t)

	rules := ruleMap{
		"x-ol": {pr.PCounterReset: pr.SIntStrings{
			Values: []pr.IntString{{String: "c", Int: 0}},
		}},
		"x-li": {pr.PCounterIncrement: pr.SIntStrings{
			Values: []pr.IntString{{String: "c", Int: 1}},
		}},
		"x-li::before": {pr.PContent: contentList(
			pr.ContentProperty{Type: "counters", Counter: pr.CounterFunc{
				Name: "c", Separator: ".", Style: "decimal"}},
		)},
	}
	box := parse(t, "<x-ol>"+
		"<x-li></x-li>"+
		"<x-li><x-ol><x-li></x-li></x-ol></x-li>"+
		"</x-ol>", rules)
	var shown []string
	for _, descendant := range Descendants(box) {
		if text, ok := descendant.(*TextBox); ok && text.PseudoType == "before" {
			shown = append(shown, text.Text)
		}
	}
	tu.AssertEqual(t, shown, []string{"1", "2", "2.1"})
}

func TestListMarkerInside(t *testing.T) {
	cp := tu.CaptureLogs()
	defer cp.AssertNoLogs(t)

	rules := ruleMap{"li": {
		pr.PListStylePosition: pr.String("inside"),
		pr.PListStyleType:     pr.String("decimal"),
	}}
	assertTree(t, parse(t, "<ol><li>a</li><li>b</li></ol>", rules), []SerBox{
		{"ol", BlockT, BC{C: []SerBox{
			{"li", BlockT, BC{C: []SerBox{
				{"li::marker", TextT, BC{Text: "1. "}},
				{"li", TextT, BC{Text: "a"}},
			}}},
			{"li", BlockT, BC{C: []SerBox{
				{"li::marker", TextT, BC{Text: "2. "}},
				{"li", TextT, BC{Text: "b"}},
			}}},
		}}},
	})
}

func TestListMarkerOutside(t *testing.T) {
	cp := tu.CaptureLogs()
	defer cp.AssertNoLogs(t)

	rules := ruleMap{"li": {pr.PListStyleType: pr.String("disc")}}
	box := parse(t, "<ol><li>a</li></ol>", rules)
	li := box.Box().Children[0].Box().Children[0]
	assertTree(t, li, []SerBox{
		{"li", TextT, BC{Text: "a"}},
	})
	marker, ok := li.Box().OutsideListMarker.(*TextBox)
	tu.AssertEqual(t, ok, true)
	tu.AssertEqual(t, marker.Text, "• ")
}

func TestListMarkerImage(t *testing.T) {
	cp := tu.CaptureLogs()
	defer cp.AssertNoLogs(t)

	rules := ruleMap{"li": {
		pr.PListStyleImage:    pr.String("https://example.com/bullet.png"),
		pr.PListStylePosition: pr.String("inside"),
	}}
	box := parse(t, "<ol><li>a</li></ol>", rules)
	li := box.Box().Children[0].Box().Children[0]
	assertTree(t, li, []SerBox{
		{"li::marker", InlineReplacedT, BC{Text: "<replaced>"}},
		{"li", TextT, BC{Text: "a"}},
	})
}

func TestReplacedImg(t *testing.T) {
	cp := tu.CaptureLogs()

	box := parse(t, `<p><img src=ok.png alt="Image"><img src=no-such.png alt="Fallback">`+
		`<img src=no-such.png></p>`, nil)
	assertTree(t, box, []SerBox{
		{"p", BlockT, BC{C: []SerBox{
			{"img", InlineReplacedT, BC{Text: "<replaced>"}},
			{"img", InlineT, BC{C: []SerBox{
				{"img", TextT, BC{Text: "Fallback"}},
			}}},
		}}},
	})
	// one warning per failed fetch
	tu.AssertEqual(t, len(cp.Logs()), 2)
}

func TestReplacedBlockImg(t *testing.T) {
	cp := tu.CaptureLogs()
	defer cp.AssertNoLogs(t)

	rules := ruleMap{"img": {pr.PDisplay: pr.Display("block")}}
	assertTree(t, parse(t, `<div><img src=ok.png></div>`, rules), []SerBox{
		{"div", BlockT, BC{C: []SerBox{
			{"img", BlockReplacedT, BC{Text: "<replaced>"}},
		}}},
	})
}

func TestReplacedObject(t *testing.T) {
	cp := tu.CaptureLogs()

	box := parse(t, `<p><object data=ok.png>ignored</object>`+
		`<object data=no-such.png>fallback</object></p>`, nil)
	assertTree(t, box, []SerBox{
		{"p", BlockT, BC{C: []SerBox{
			{"object", InlineReplacedT, BC{Text: "<replaced>"}},
			{"object", InlineT, BC{C: []SerBox{
				{"object", TextT, BC{Text: "fallback"}},
			}}},
		}}},
	})
	tu.AssertEqual(t, len(cp.Logs()), 1)
}

func TestDescendants(t *testing.T) {
	cp := tu.CaptureLogs()
	defer cp.AssertNoLogs(t)

	box := parse(t, "<p>a<span>b</span></p>", nil)
	descendants := Descendants(box)
	tu.AssertEqual(t, len(descendants), 5) // body, p, text, span, text
	tu.AssertEqual(t, descendants[0].Box().ElementTag(), "body")
}
