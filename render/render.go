package render

import (
	"fmt"

	"github.com/synless/synless/forest"
	"github.com/synless/synless/geom"
	"github.com/synless/synless/layout"
	"github.com/synless/synless/style"
)

// Document is what a Renderer needs from one document to paint its Doc
// panes: the forest holding the text payloads a Text layout node
// refers to, a precomputed layout tree, and the cursor's current
// absolute position within that layout (found by re-walking the
// layout along the cursor's node path, per spec.md §4.I), if the
// cursor is currently visible at all.
type Document struct {
	Forest    *forest.Forest
	Layout    *layout.Layout
	CursorPos geom.Pos
	HasCursor bool
}

// DocProvider resolves a Doc pane's label to the document it shows.
type DocProvider interface {
	Document(label string) (Document, error)
}

// Renderer paints a PaneNotation tree into a Buffer.
type Renderer struct {
	Theme style.Theme
	Docs  DocProvider
}

// New creates a Renderer using theme for the cursor highlight and docs
// to resolve Doc pane labels. The renderer does not read the theme's
// OverflowMarker.
func New(theme style.Theme, docs DocProvider) *Renderer {
	return &Renderer{Theme: theme, Docs: docs}
}

// Paint renders pn into region of buf.
func (r *Renderer) Paint(buf *Buffer, region geom.Rect, pn PaneNotation) error {
	switch pn.Kind {
	case PaneEmpty:
		return nil
	case PaneFill:
		buf.Fill(region, pn.FillChar, pn.FillStyle)
		return nil
	case PaneDoc:
		return r.paintDoc(buf, region, pn)
	case PaneHorz:
		return r.paintComposite(buf, region, pn, true)
	case PaneVert:
		return r.paintComposite(buf, region, pn, false)
	}
	return fmt.Errorf("render: unknown pane kind %d", pn.Kind)
}

func (r *Renderer) paintDoc(buf *Buffer, region geom.Rect, pn PaneNotation) error {
	doc, err := r.Docs.Document(pn.DocLabel)
	if err != nil {
		return err
	}
	offset := 0
	if pn.CursorVisibility == CursorShow && doc.HasCursor {
		offset = pn.ScrollStrategy.Offset(int(region.Height), int(doc.CursorPos.Row))
	}
	paintLayout(buf, doc.Forest, doc.Layout, region, uint32(offset))
	if pn.CursorVisibility == CursorShow && doc.HasCursor {
		row := doc.CursorPos.Row
		if row >= uint32(offset) && row-uint32(offset) < region.Height {
			x := int(region.Pos.Col + doc.CursorPos.Col)
			y := int(region.Pos.Row + row - uint32(offset))
			c := buf.Get(x, y)
			c.Style = r.Theme.CursorHighlight
			buf.Set(x, y, c)
		}
	}
	return nil
}

// paintLayout walks l (spec.md §4.I's recursive-descent paint rules)
// and writes into buf, shifting every row up by rowOffset (the Doc
// pane's current scroll position) and clipping to region.
func paintLayout(buf *Buffer, f *forest.Forest, l *layout.Layout, region geom.Rect, rowOffset uint32) {
	if l == nil {
		return
	}
	switch l.Kind {
	case layout.KindLiteral:
		paintRow(buf, l.Literal, l.Style, l.Region, region, rowOffset)
	case layout.KindText:
		text, err := f.Text(l.Node)
		if err != nil {
			return
		}
		paintRow(buf, string(text), l.Style, l.Region, region, rowOffset)
	case layout.KindChild:
		paintLayout(buf, f, l.Child, region, rowOffset)
	case layout.KindConcat:
		paintLayout(buf, f, l.Left, region, rowOffset)
		paintLayout(buf, f, l.Right, region, rowOffset)
	case layout.KindFlush:
		paintLayout(buf, f, l.Inner, region, rowOffset)
	}
}

func paintRow(buf *Buffer, s string, st style.Style, src geom.Rect, region geom.Rect, rowOffset uint32) {
	if src.Pos.Row < rowOffset {
		return
	}
	row := src.Pos.Row - rowOffset
	if row >= region.Height {
		return
	}
	x := int(region.Pos.Col + src.Pos.Col)
	y := int(region.Pos.Row + row)
	maxWidth := int(region.Width) - int(src.Pos.Col)
	if maxWidth <= 0 {
		return
	}
	buf.WriteString(x, y, s, st, maxWidth)
}

// paintComposite allocates sub-rectangles for Horz/Vert and recurses,
// implementing the sizing algorithm of spec.md §4.I: subtract Fixed
// sizes, divide the remainder among Proportional entries by weight,
// and let a DynHeight entry (Vert only) claim the height of the layout
// its DocProvider returns (1 row when it returns no layout).
func (r *Renderer) paintComposite(buf *Buffer, region geom.Rect, pn PaneNotation, horizontal bool) error {
	total := region.Width
	if !horizontal {
		total = region.Height
	}
	sizes, err := r.resolveSizes(pn.Entries, total, horizontal, region)
	if err != nil {
		return err
	}
	offset := uint32(0)
	for i, e := range pn.Entries {
		var sub geom.Rect
		if horizontal {
			sub = geom.Rect{Pos: geom.Pos{Row: region.Pos.Row, Col: region.Pos.Col + offset}, Width: sizes[i], Height: region.Height}
		} else {
			sub = geom.Rect{Pos: geom.Pos{Row: region.Pos.Row + offset, Col: region.Pos.Col}, Width: region.Width, Height: sizes[i]}
		}
		if err := r.Paint(buf, sub, e.Pane); err != nil {
			return err
		}
		offset += sizes[i]
	}
	return nil
}

func (r *Renderer) resolveSizes(entries []Entry, total uint32, horizontal bool, region geom.Rect) ([]uint32, error) {
	sizes := make([]uint32, len(entries))
	var fixedSum, weightSum uint32
	for i, e := range entries {
		switch e.Size.Kind {
		case SizeFixed:
			sizes[i] = e.Size.N
			fixedSum += e.Size.N
		case SizeProportional:
			weightSum += e.Size.Weight
		case SizeDynHeight:
			if horizontal {
				return nil, fmt.Errorf("render: DynHeight is only valid inside Vert")
			}
			doc, err := r.Docs.Document(e.Pane.DocLabel)
			if err != nil {
				return nil, err
			}
			h := uint32(1)
			if doc.Layout != nil {
				h = doc.Layout.Region.Height
			}
			sizes[i] = h
			fixedSum += h
		}
	}
	if total <= fixedSum {
		return sizes, nil
	}
	remaining := total - fixedSum
	var distributed uint32
	for i, e := range entries {
		if e.Size.Kind != SizeProportional || weightSum == 0 {
			continue
		}
		share := remaining * e.Size.Weight / weightSum
		sizes[i] = share
		distributed += share
	}
	// Any remainder from integer division goes to the last
	// Proportional entry so the total exactly fills the budget.
	if leftover := remaining - distributed; leftover > 0 {
		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i].Size.Kind == SizeProportional {
				sizes[i] += leftover
				break
			}
		}
	}
	return sizes, nil
}
