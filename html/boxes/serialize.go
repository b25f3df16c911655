package boxes

import (
	"fmt"
	"strings"
)

// BC is the content of a serialized box: either text (for text and
// replaced boxes) or children.
type BC struct {
	Text string
	C    []SerBox
}

// SerBox is the comparable, tree shaped summary of a box, used in tests
// and debug dumps.
type SerBox struct {
	Tag     string
	Type    BoxType
	Content BC
}

func (s SerBox) equals(other SerBox) bool {
	if s.Tag != other.Tag || s.Type != other.Type || s.Content.Text != other.Content.Text {
		return false
	}
	return SerializedBoxEquals(s.Content.C, other.Content.C)
}

// SerializedBoxEquals compares two serialized trees, treating empty and
// missing children lists as equal.
func SerializedBoxEquals(l1, l2 []SerBox) bool {
	if len(l1) != len(l2) {
		return false
	}
	for i := range l1 {
		if !l1[i].equals(l2[i]) {
			return false
		}
	}
	return true
}

// Serialize returns a summary of the tree, with the tag of the source
// element, the box kind, and the text or serialized children of each box.
func Serialize(boxList []Box) []SerBox {
	out := make([]SerBox, len(boxList))
	for i, box := range boxList {
		out[i].Tag = box.Box().ElementTag()
		out[i].Type = box.Type()
		switch box := box.(type) {
		case *TextBox:
			out[i].Content.Text = box.Text
		case *BlockReplacedBox, *InlineReplacedBox:
			out[i].Content.Text = "<replaced>"
		default:
			out[i].Content.C = Serialize(box.Box().Children)
		}
	}
	return out
}

func (s SerBox) String() string {
	if s.Content.C == nil && s.Content.Text != "" {
		return fmt.Sprintf("%s<%s>{%q}", s.Tag, s.Type, s.Content.Text)
	}
	chunks := make([]string, len(s.Content.C))
	for i, c := range s.Content.C {
		chunks[i] = c.String()
	}
	return fmt.Sprintf("%s<%s>[%s]", s.Tag, s.Type, strings.Join(chunks, ", "))
}
