package sparkline

import (
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
)

// SVGOptions controls the outer element of a rendered sparkline.
type SVGOptions struct {
	// Width and Height are the rendered size attributes, e.g. "100%" or "200".
	// Empty values leave sizing to the viewBox.
	Width  string
	Height string
	// Title becomes an accessible <title> element when set.
	Title string
	// ID prefixes element ids. A random id is used when empty so several
	// sparklines can share one document.
	ID string
}

// RenderSVG renders l as a standalone SVG document. hovered is the hovered
// index or -1.
func RenderSVG(l Layout, hovered int, opts SVGOptions) string {
	id := opts.ID
	if id == "" {
		id = "spark-" + uuid.NewString()
	}
	gradID := id + "-fill"
	pal := l.Palette()

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	fmt.Fprintf(&b, ` viewBox="0 0 %s %s" preserveAspectRatio="none"`, coord(Width), coord(Height))
	if opts.Width != "" {
		fmt.Fprintf(&b, ` width="%s"`, html.EscapeString(opts.Width))
	}
	if opts.Height != "" {
		fmt.Fprintf(&b, ` height="%s"`, html.EscapeString(opts.Height))
	}
	b.WriteString(">\n")

	if opts.Title != "" {
		fmt.Fprintf(&b, "  <title>%s</title>\n", html.EscapeString(opts.Title))
	}

	fmt.Fprintf(&b, "  <defs>\n    <linearGradient id=%q x1=\"0\" y1=\"0\" x2=\"0\" y2=\"1\">\n", gradID)
	fmt.Fprintf(&b, "      <stop offset=\"0%%\" stop-color=%q/>\n", pal.Fill)
	fmt.Fprintf(&b, "      <stop offset=\"100%%\" stop-color=%q stop-opacity=\"0\"/>\n", pal.Fill)
	b.WriteString("    </linearGradient>\n  </defs>\n")

	if len(l.Points) == 0 {
		b.WriteString("</svg>\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  <path d=%q fill=\"url(#%s)\" stroke=\"none\"/>\n", l.AreaPath, gradID)
	fmt.Fprintf(&b, "  <path d=%q fill=\"none\" stroke=%q stroke-width=\"1.5\" stroke-linejoin=\"round\" stroke-linecap=\"round\"/>\n",
		l.LinePath, pal.Stroke)

	if hovered >= 0 && hovered < len(l.Points) {
		g := GuideAt(hovered)
		fmt.Fprintf(&b, "  <line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\" stroke=%q stroke-width=\"0.5\" stroke-dasharray=\"2,2\"/>\n",
			coord(g.X), coord(g.Top), coord(g.X), coord(g.Bottom), pal.Stroke)
	}

	for _, p := range l.Points {
		m := MarkerFor(p, hovered)
		fmt.Fprintf(&b, "  <circle cx=\"%s\" cy=\"%s\" r=\"%s\" fill=%q fill-opacity=\"%s\"/>\n",
			coord(p.X), coord(p.Y), coord(m.Radius), pal.Stroke, coord(m.Opacity))
	}

	b.WriteString("</svg>\n")
	return b.String()
}
