package boxes

import (
	"github.com/lherbaut/boxtree/images"
	"github.com/lherbaut/boxtree/logger"
	"github.com/lherbaut/boxtree/utils"
	"golang.org/x/net/html"
)

// handlerFunc post-processes the box generated for one element: it may
// replace it (replaced elements), expand it (column spans) or drop it.
type handlerFunc = func(element *html.Node, box Box, resolver URLResolver) []Box

var htmlHandlers = map[string]handlerFunc{
	"img":      handleImg,
	"embed":    handleEmbed,
	"object":   handleObject,
	"colgroup": handleColgroup,
	"col":      handleCol,
}

func fetchURLAttribute(element *html.Node, name string, resolver URLResolver) images.Image {
	node := utils.AsHTMLNode(element)
	src, err := node.GetURLAttribute(name, resolver.BaseURL)
	if err != nil {
		logger.WarningLogger.Printf("invalid url in attribute %s of <%s>: %s",
			name, node.ElementTag(), err)
		return nil
	}
	if src == "" || resolver.FetchImage == nil {
		return nil
	}
	image := resolver.FetchImage(src)
	if image == nil {
		logger.WarningLogger.Printf("failed to load image at %s", src)
	}
	return image
}

// makeReplacedBox swaps the element box for a replaced box of the proper
// level, keeping the style and the out of flow marker.
func makeReplacedBox(element *html.Node, box Box, image images.Image) Box {
	fields := box.Box()
	var newBox Box
	if fields.Style.GetDisplay().BlockLevel() {
		b := NewBlockReplacedBox(fields.Style, element, fields.PseudoType, image)
		newBox = &b
	} else {
		b := NewInlineReplacedBox(fields.Style, element, fields.PseudoType, image)
		newBox = &b
	}
	newBox.Box().OutsideListMarker = fields.OutsideListMarker
	return newBox
}

// <img>: the loaded image, or the alt text, or nothing.
func handleImg(element *html.Node, box Box, resolver URLResolver) []Box {
	if image := fetchURLAttribute(element, "src", resolver); image != nil {
		return []Box{makeReplacedBox(element, box, image)}
	}
	if alt := utils.AsHTMLNode(element).Get("alt"); alt != "" {
		box.Box().Children = []Box{TextBoxAnonymousFrom(box, alt)}
		return []Box{box}
	}
	return nil
}

// <embed>: the loaded resource, no fallback.
func handleEmbed(element *html.Node, box Box, resolver URLResolver) []Box {
	if image := fetchURLAttribute(element, "src", resolver); image != nil {
		return []Box{makeReplacedBox(element, box, image)}
	}
	return nil
}

// <object>: the loaded data, with the element children as fallback.
func handleObject(element *html.Node, box Box, resolver URLResolver) []Box {
	if image := fetchURLAttribute(element, "data", resolver); image != nil {
		return []Box{makeReplacedBox(element, box, image)}
	}
	return []Box{box}
}

// <colgroup span=N> without <col> children generates N anonymous columns.
func handleColgroup(element *html.Node, box Box, _ URLResolver) []Box {
	if group, ok := box.(*TableColumnGroupBox); ok {
		hasCol := false
		for child := element.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.ElementNode && child.Data == "col" {
				hasCol = true
				break
			}
		}
		if !hasCol {
			group.Span = integerAttribute(utils.AsHTMLNode(element).Get("span"), 1)
			children := make([]Box, group.Span)
			for i := range children {
				children[i] = AnonymousFrom(group, TableColumnT, nil)
			}
			group.Children = children
		}
	}
	return []Box{box}
}

// <col span=N> generates N columns.
func handleCol(element *html.Node, box Box, _ URLResolver) []Box {
	if column, ok := box.(*TableColumnBox); ok {
		column.Span = integerAttribute(utils.AsHTMLNode(element).Get("span"), 1)
		if column.Span > 1 {
			out := make([]Box, column.Span)
			for i := range out {
				out[i] = column.Copy()
			}
			return out
		}
	}
	return []Box{box}
}
