package boxes

import "github.com/lherbaut/boxtree/utils"

// InlineInBlock rewrites the tree so that the children of a block
// container are either all block-level or all line boxes: consecutive
// inline-level children are gathered in an (anonymous) line box, itself
// wrapped in an anonymous block when block-level siblings exist.
//
// Out of flow children do not break a line: an absolute or floated box
// stays in the line being built, but never starts one.
func InlineInBlock(box Box) Box {
	if !ParentT.IsInstance(box) {
		return box
	}
	children := make([]Box, 0, len(box.Box().Children))
	for _, child := range box.Box().Children {
		children = append(children, InlineInBlock(child))
	}
	if !BlockContainerT.IsInstance(box) {
		return CopyWithChildren(box, children)
	}

	var newLineChildren, newChildren []Box
	for _, child := range children {
		if LineT.IsInstance(child) {
			panic("line boxes can only be created here")
		}
		if len(newLineChildren) != 0 && child.Box().IsAbsolutelyPositioned() {
			newLineChildren = append(newLineChildren, child)
		} else if InlineLevelT.IsInstance(child) ||
			(len(newLineChildren) != 0 && child.Box().IsFloated()) {
			if text, ok := child.(*TextBox); ok &&
				len(newLineChildren) == 0 && utils.IsWhitespace(text.Text) {
				// white space at the start of a line is removed during
				// layout anyway
				continue
			}
			newLineChildren = append(newLineChildren, child)
		} else {
			if len(newLineChildren) != 0 {
				line := AnonymousFrom(box, LineT, newLineChildren)
				newChildren = append(newChildren, AnonymousFrom(box, BlockT, []Box{line}))
				newLineChildren = nil
			}
			newChildren = append(newChildren, child)
		}
	}
	if len(newLineChildren) != 0 {
		line := AnonymousFrom(box, LineT, newLineChildren)
		if len(newChildren) != 0 {
			newChildren = append(newChildren, AnonymousFrom(box, BlockT, []Box{line}))
		} else {
			// only inline-level content: one line box, no anonymous block
			newChildren = []Box{line}
		}
	}
	return CopyWithChildren(box, newChildren)
}

// skipStack records where innerBlockInInline stopped in a nested line:
// the index of the next child at this level, and the position inside it.
type skipStack struct {
	skip int
	sub  *skipStack
}

// BlockInInline rewrites the tree so that no block-level box remains
// inside a line box: each line is cut around its in-flow block-level
// descendants, the pieces are wrapped in anonymous blocks, and the
// blocks are hoisted between them.
func BlockInInline(box Box) Box {
	if !ParentT.IsInstance(box) {
		return box
	}
	var newChildren []Box
	changed := false
	for _, child := range box.Box().Children {
		if LineT.IsInstance(child) {
			if len(box.Box().Children) != 1 {
				panic("line boxes should have no siblings at this stage")
			}
			var stack *skipStack
			var newLine, blockLevelBox Box
			for {
				newLine, blockLevelBox, stack = innerBlockInInline(child, stack)
				if blockLevelBox == nil {
					break
				}
				newChildren = append(newChildren,
					AnonymousFrom(box, BlockT, []Box{newLine}),
					BlockInInline(blockLevelBox))
			}
			if len(newChildren) != 0 {
				newChildren = append(newChildren, AnonymousFrom(box, BlockT, []Box{newLine}))
				changed = true
			} else {
				newChildren = append(newChildren, newLine)
				changed = newLine != child
			}
		} else {
			newChild := BlockInInline(child)
			if newChild != child {
				changed = true
			}
			newChildren = append(newChildren, newChild)
		}
	}
	if changed {
		return CopyWithChildren(box, newChildren)
	}
	return box
}

// innerBlockInInline finds the first in-flow block-level box in the
// subtree, starting after `skipStack_`. It returns the content up to that
// block (with the enclosing inline boxes re-created around each piece),
// the block itself (nil when the search is exhausted), and the position
// to resume after it.
func innerBlockInInline(box Box, skipStack_ *skipStack) (Box, Box, *skipStack) {
	var newChildren []Box
	var blockLevelBox Box
	var resumeAt *skipStack
	changed := false

	skip := 0
	if skipStack_ != nil {
		skip, skipStack_ = skipStack_.skip, skipStack_.sub
	}
	children := box.Box().Children
	for index := skip; index < len(children); index++ {
		child := children[index]
		if BlockLevelT.IsInstance(child) && child.Box().IsInNormalFlow() {
			if skipStack_ != nil {
				panic("resuming inside an in-flow block")
			}
			blockLevelBox = child
			// resume after the block itself
			resumeAt = &skipStack{skip: index + 1}
			return CopyWithChildren(box, newChildren), blockLevelBox, resumeAt
		}
		if InlineT.IsInstance(child) {
			var newChild Box
			newChild, blockLevelBox, resumeAt = innerBlockInInline(child, skipStack_)
			skipStack_ = nil
			if newChild != child {
				changed = true
			}
			newChildren = append(newChildren, newChild)
		} else {
			if skipStack_ != nil {
				panic("resuming inside a leaf box")
			}
			newChild := BlockInInline(child)
			if newChild != child {
				changed = true
			}
			newChildren = append(newChildren, newChild)
		}
		if blockLevelBox != nil {
			resumeAt = &skipStack{skip: index, sub: resumeAt}
			return CopyWithChildren(box, newChildren), blockLevelBox, resumeAt
		}
	}
	if changed || skip != 0 {
		box = CopyWithChildren(box, newChildren)
	}
	return box, nil, nil
}
