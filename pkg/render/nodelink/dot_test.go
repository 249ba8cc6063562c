package nodelink

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/matzehuels/gdlkit/pkg/gdl"
)

func mustDOT(t *testing.T, g *gdl.Graph, opts Options) string {
	t.Helper()
	dot, err := ToDOT(g, opts)
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}
	return dot
}

func TestToDOT_Basic(t *testing.T) {
	g := gdl.NewBuilder().NewGraph("g")
	g.NewNode("a")
	g.NewNode("b")
	g.NewEdge("a", "b")

	dot := mustDOT(t, g, Options{})

	for _, want := range []string{"digraph G", `"a" [label="a"]`, `"b" [label="b"]`, `"a" -> "b";`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_GraphAttributes(t *testing.T) {
	g := gdl.NewBuilder().NewGraph("g")
	g.SetLabel("CFG of main")
	g.SetOrientation(gdl.OrientationLeftToRight)
	g.SetNodeShape(gdl.ShapeRhomb)
	g.SetEdgeThickness(2)

	dot := mustDOT(t, g, Options{})

	for _, want := range []string{`label="CFG of main";`, "rankdir=LR;", "node [shape=diamond];", "edge [penwidth=2];"} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_ColorTable(t *testing.T) {
	g := gdl.NewBuilder().NewGraph("g")
	g.SetColorEntry(32, 255, 128, 0)
	sub := g.NewSubgraph("inner")
	sub.NewNode("warm").SetColor("32")
	sub.NewNode("cold").SetColor(gdl.ColorLightBlue)
	sub.NewNode("undefined").SetColor("33")

	dot := mustDOT(t, g, Options{})

	for _, want := range []string{`"warm" [label="warm", fillcolor="#ff8000"]`, `fillcolor="lightblue"`, `fillcolor="33"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_EdgeKinds(t *testing.T) {
	tests := []struct {
		kind gdl.EdgeKind
		want string
	}{
		{gdl.KindEdge, `"a" -> "b";`},
		{gdl.KindBackEdge, `[dir=back, style=dashed]`},
		{gdl.KindNearEdge, `[constraint=false]`},
		{gdl.KindRightBentNearEdge, `[constraint=false, arrowhead=open]`},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			g := gdl.NewBuilder().NewGraph("g")
			g.NewEdge("a", "b").SetKind(tt.kind)
			if dot := mustDOT(t, g, Options{}); !strings.Contains(dot, tt.want) {
				t.Errorf("missing %q:\n%s", tt.want, dot)
			}
		})
	}
}

func TestToDOT_LineStyleOverridesKind(t *testing.T) {
	g := gdl.NewBuilder().NewGraph("g")
	e := g.NewEdge("a", "b")
	e.SetKind(gdl.KindBackEdge)
	e.SetLineStyle(gdl.LineDotted)
	e.SetLabel("loop")
	e.SetThickness(3)

	want := `"a" -> "b" [label="loop", dir=back, style=dotted, penwidth=3];`
	if dot := mustDOT(t, g, Options{}); !strings.Contains(dot, want) {
		t.Errorf("missing %q:\n%s", want, dot)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	g := gdl.NewBuilder().NewGraph("g")
	g.NewNode("bb0").SetLabel("entry")

	if dot := mustDOT(t, g, Options{}); !strings.Contains(dot, `[label="entry"]`) {
		t.Errorf("plain label missing:\n%s", dot)
	}
	if dot := mustDOT(t, g, Options{Detailed: true}); !strings.Contains(dot, `[label="entry\nbb0"]`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOT_AnchorOnlyWhenTargeted(t *testing.T) {
	g := gdl.NewBuilder().NewGraph("g")
	g.NewSubgraph("lonely").NewNode("x")

	if dot := mustDOT(t, g, Options{}); strings.Contains(dot, "shape=point") {
		t.Errorf("untargeted subgraph got an anchor:\n%s", dot)
	}
}

func TestToDOT_Cycle(t *testing.T) {
	b := gdl.NewBuilder()
	root := b.NewGraph("root")
	root.NewSubgraph("child").AddSubgraph(root)

	if _, err := ToDOT(root, Options{}); !errors.Is(err, gdl.ErrSubgraphCycle) {
		t.Errorf("ToDOT error = %v, want ErrSubgraphCycle", err)
	}
}

func TestResolveColor(t *testing.T) {
	outer := gdl.NewBuilder().NewGraph("outer")
	outer.SetColorEntry(1, 1, 2, 3)
	inner := outer.NewSubgraph("inner")
	inner.SetColorEntry(1, 300, -5, 16)

	scope := []*gdl.Graph{inner, outer}
	if got := resolveColor("1", scope); got != "#ff0010" {
		t.Errorf("innermost table should win and clamp: got %q", got)
	}
	if got := resolveColor("1", []*gdl.Graph{outer}); got != "#010203" {
		t.Errorf("got %q, want #010203", got)
	}
	if got := resolveColor("red", scope); got != "red" {
		t.Errorf("names should pass through: got %q", got)
	}
	if got := resolveColor("999", scope); got != "999" {
		t.Errorf("out-of-range numbers should pass through: got %q", got)
	}
}

func TestRenderSVG(t *testing.T) {
	g := gdl.NewBuilder().NewGraph("g")
	g.NewNode("a")
	g.NewNode("b")
	g.NewEdge("a", "b")

	svg, err := RenderSVG(context.Background(), mustDOT(t, g, Options{}), Options{})
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
	if !strings.Contains(string(svg), `viewBox="0 0 `) {
		t.Error("viewBox was not normalized")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 62.00 116.00" width="62" height="116"`) {
		t.Errorf("unexpected header: %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Error("svg without viewBox should pass through")
	}
}

func TestDotQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "bb0", `"bb0"`},
		{"quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "entry\nbb0", `"entry\nbb0"`},
		{"control byte", "n\x01", "\"n\x01\""},
		{"tab", "tab\there", "\"tab\there\""},
		{"non-ascii", "é\u00a0nbsp", "\"é\u00a0nbsp\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dotQuote(tt.in); got != tt.want {
				t.Errorf("dotQuote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestToDOT_RawRunesInLabels(t *testing.T) {
	g := gdl.NewBuilder().NewGraph("g")
	g.NewNode("n\x01é").SetLabel("tab\there \u00a0nbsp")

	dot := mustDOT(t, g, Options{})
	want := "\"n\x01é\" [label=\"tab\there \u00a0nbsp\"]"
	if !strings.Contains(dot, want) {
		t.Errorf("missing %q:\n%s", want, dot)
	}
	if strings.Contains(dot, `\x01`) || strings.Contains(dot, `\u00a0`) || strings.Contains(dot, `\t`) {
		t.Errorf("DOT contains Go escapes:\n%s", dot)
	}
}

// fakeConverter puts an rsvg-convert on PATH that ignores its input and
// prints its arguments.
func fakeConverter(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script converter")
	}
	dir := t.TempDir()
	script := "#!/bin/sh\ncat >/dev/null\necho \"converted $*\"\n"
	if err := os.WriteFile(filepath.Join(dir, "rsvg-convert"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestRenderPDFAndPNG(t *testing.T) {
	fakeConverter(t)

	g := gdl.NewBuilder().NewGraph("g")
	g.NewNode("a")
	g.NewNode("b")
	g.NewEdge("a", "b")
	dot := mustDOT(t, g, Options{})
	ctx := context.Background()

	pdf, err := RenderPDF(ctx, dot, Options{})
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if got := strings.TrimSpace(string(pdf)); got != "converted -f pdf" {
		t.Errorf("RenderPDF output = %q", got)
	}

	png, err := RenderPNG(ctx, dot, Options{}, 2)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if got := strings.TrimSpace(string(png)); got != "converted -f png -z 2.00" {
		t.Errorf("RenderPNG output = %q", got)
	}
}
