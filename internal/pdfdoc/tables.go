package pdfdoc

import (
	"sort"
	"strings"

	"github.com/tsawler/tabula/graphicsstate"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/tables"
	"github.com/tsawler/tabula/text"

	"github.com/jackzampolin/timetable/internal/extract"
)

// rectEdges splits stroked or filled rectangles into their four edges so
// tables drawn as cell boxes are detected like tables drawn with lines.
func rectEdges(rects []graphicsstate.ExtractedRectangle) (h, v []graphicsstate.ExtractedLine) {
	for _, r := range rects {
		b := r.BBox
		bl := model.Point{X: b.Left(), Y: b.Bottom()}
		br := model.Point{X: b.Right(), Y: b.Bottom()}
		tl := model.Point{X: b.Left(), Y: b.Top()}
		tr := model.Point{X: b.Right(), Y: b.Top()}
		h = append(h,
			graphicsstate.ExtractedLine{Start: bl, End: br, IsHorizontal: true, BBox: model.NewBBoxFromPoints(bl, br)},
			graphicsstate.ExtractedLine{Start: tl, End: tr, IsHorizontal: true, BBox: model.NewBBoxFromPoints(tl, tr)},
		)
		v = append(v,
			graphicsstate.ExtractedLine{Start: bl, End: tl, IsVertical: true, BBox: model.NewBBoxFromPoints(bl, tl)},
			graphicsstate.ExtractedLine{Start: br, End: tr, IsVertical: true, BBox: model.NewBBoxFromPoints(br, tr)},
		)
	}
	return h, v
}

// detectGrids finds ruled grids from the page's lines and rectangle edges.
func detectGrids(gd *tables.GridDetector, ge *graphicsstate.GraphicsExtractor) []*tables.GridHypothesis {
	lines := ge.GetGridLines()
	rh, rv := rectEdges(ge.GetFilteredRectangles())
	grids := gd.DetectFromLines(append(lines.Horizontals, rh...), append(lines.Verticals, rv...))
	return dedupeGrids(grids)
}

// dedupeGrids drops hypotheses contained in a more confident one and returns
// the rest in reading order: top to bottom, then left to right.
func dedupeGrids(grids []*tables.GridHypothesis) []*tables.GridHypothesis {
	sorted := make([]*tables.GridHypothesis, len(grids))
	copy(sorted, grids)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	var kept []*tables.GridHypothesis
	for _, g := range sorted {
		if len(g.HorizontalLines) < 2 || len(g.VerticalLines) < 2 {
			continue
		}
		inside := false
		for _, k := range kept {
			if containsBox(k.BBox, g.BBox) {
				inside = true
				break
			}
		}
		if !inside {
			kept = append(kept, g)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		ti, tj := kept[i].BBox.Top(), kept[j].BBox.Top()
		if ti != tj {
			return ti > tj
		}
		return kept[i].BBox.Left() < kept[j].BBox.Left()
	})
	return kept
}

const boxSlack = 1.0

func containsBox(outer, inner model.BBox) bool {
	return inner.Left() >= outer.Left()-boxSlack &&
		inner.Right() <= outer.Right()+boxSlack &&
		inner.Bottom() >= outer.Bottom()-boxSlack &&
		inner.Top() <= outer.Top()+boxSlack
}

// fillGrid assigns each text fragment to the cell containing its center.
// Rows follow the grid's horizontal lines top to bottom; fragments outside
// the grid are ignored.
func fillGrid(g *tables.GridHypothesis, frags []text.TextFragment) extract.Table {
	rows := len(g.HorizontalLines) - 1
	cols := len(g.VerticalLines) - 1
	if rows < 1 || cols < 1 {
		return nil
	}

	parts := make([][][]text.TextFragment, rows)
	for i := range parts {
		parts[i] = make([][]text.TextFragment, cols)
	}

	for _, f := range frags {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		cx := f.X + f.Width/2
		cy := f.Y + f.Height/2
		row := findRow(g.HorizontalLines, cy)
		col := findCol(g.VerticalLines, cx)
		if row < 0 || col < 0 {
			continue
		}
		parts[row][col] = append(parts[row][col], f)
	}

	table := make(extract.Table, rows)
	for i := range parts {
		table[i] = make([]string, cols)
		for j, cell := range parts[i] {
			table[i][j] = joinFragments(cell)
		}
	}
	return table
}

// findRow locates y between consecutive descending horizontal lines.
func findRow(lines []float64, y float64) int {
	for i := 0; i < len(lines)-1; i++ {
		if y <= lines[i] && y >= lines[i+1] {
			return i
		}
	}
	return -1
}

// findCol locates x between consecutive ascending vertical lines.
func findCol(lines []float64, x float64) int {
	for j := 0; j < len(lines)-1; j++ {
		if x >= lines[j] && x <= lines[j+1] {
			return j
		}
	}
	return -1
}

// lineTolerance groups fragments whose baselines differ by less than this
// into one visual line.
const lineTolerance = 2.0

func joinFragments(frags []text.TextFragment) string {
	if len(frags) == 0 {
		return ""
	}
	sort.SliceStable(frags, func(i, j int) bool {
		dy := frags[i].Y - frags[j].Y
		if dy > lineTolerance || dy < -lineTolerance {
			return frags[i].Y > frags[j].Y
		}
		return frags[i].X < frags[j].X
	})

	var b strings.Builder
	for i, f := range frags {
		if i > 0 {
			prev := frags[i-1]
			if dy := prev.Y - f.Y; dy > lineTolerance || dy < -lineTolerance {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(strings.TrimSpace(f.Text))
	}
	return b.String()
}
