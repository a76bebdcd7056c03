package layout

import (
	"image"
	"time"

	"weatherpaper/pkg/canvas"
	"weatherpaper/pkg/tricolor"
)

// Title writes today's date centered above the sections.
func (e *Engine) Title(t canvas.Target, today time.Time) error {
	return canvas.Fault(t.DrawText(canvas.Text{
		Value: today.Format(titleLayout),
		At:    image.Pt(e.geo.Width/2, e.geo.TitleY),
		Font:  e.heading,
		Color: tricolor.Black,
		H:     canvas.Center,
	}), "title")
}

// Banner writes msg in the middle of the canvas. It is what the panel shows
// when no forecast could be had.
func (e *Engine) Banner(t canvas.Target, msg string) error {
	return canvas.Fault(t.DrawText(canvas.Text{
		Value: msg,
		At:    image.Pt(e.geo.Width/2, e.geo.Height/2),
		Font:  e.heading,
		Color: tricolor.Black,
		H:     canvas.Center,
	}), "banner")
}
