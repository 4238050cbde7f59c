package meander

// Contours sampled over an area larger than the view tend to close outside
// of it. A line which is still open at that point has both terminals off view;
// pushing them one view size further out lets a renderer fill it as a polygon
// without the closing edge cutting across the visible area.

// terminalsInView reports whether both ends of the line are inside the view.
func terminalsInView(front, back Point2, view Rect) bool {
	return view.Contains(front) && view.Contains(back)
}

// terminalsOutOfView reports whether both ends of the line are outside the view.
func terminalsOutOfView(front, back Point2, view Rect) bool {
	return view.Outside(front) && view.Outside(back)
}

// terminalsOnSides reports whether the ends sit beyond opposite vertical borders.
func terminalsOnSides(front, back Point2, view Rect) bool {
	return (front.X < view.Min.X && back.X > view.Max.X) ||
		(back.X < view.Min.X && front.X > view.Max.X)
}

// Visible reports whether the line can be drawn as a polygon: its ends are
// either both strictly inside or both strictly outside the view. A line with
// an end on the border is neither.
func (l Polyline) Visible(view Rect) bool {
	if len(l) == 0 {
		return false
	}
	front, back := l[0], l[len(l)-1]
	return terminalsInView(front, back, view) || terminalsOutOfView(front, back, view)
}

// ExtendTerminals returns the line with an extra point before its start and
// after its end, both moved one view size away from the view. Closed lines
// and lines with an end inside the view are returned unchanged.
//
// Ends lying on opposite sides of the view move up or down, the others left
// or right, toward the nearest border of the view.
func (l Polyline) ExtendTerminals(view Rect, eps float64) Polyline {
	if len(l) < 2 || l.Closed(eps) {
		return l
	}
	front, back := l[0], l[len(l)-1]
	if !terminalsOutOfView(front, back, view) {
		return l
	}

	cx, cy := (view.Min.X+view.Max.X)/2, (view.Min.Y+view.Max.Y)/2
	var dx, dy float64
	switch {
	case terminalsOnSides(front, back, view):
		dy = view.Dy()
		if (front.Y+back.Y)/2 < cy {
			dy = -dy
		}
	case (front.X+back.X)/2 < cx:
		dx = -view.Dx()
	default:
		dx = view.Dx()
	}

	out := make(Polyline, 0, len(l)+2)
	out = append(out, Point2{X: front.X + dx, Y: front.Y + dy})
	out = append(out, l...)
	out = append(out, Point2{X: back.X + dx, Y: back.Y + dy})
	return out
}
