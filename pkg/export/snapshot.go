// Package export renders static snapshots and database exports of a dataset
// window. Snapshots use an icicle partition layout: one row per depth level,
// horizontal extent proportional to subtree weight.
package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/canopy/pkg/analysis"
	"github.com/vanderheijden86/canopy/pkg/model"
)

// SnapshotOptions controls snapshot export behaviour.
type SnapshotOptions struct {
	Path     string      // Output path; format inferred from extension when Format empty
	Format   string      // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Title    string      // Optional title rendered in the summary block
	Root     *model.Node // Subtree to render (usually the current focus)
	MaxDepth int         // Rows below the root; <= 0 uses the full subtree depth capped at 6
}

// SaveSnapshot renders a static icicle snapshot (SVG or PNG) of the subtree
// with a summary block. The visual language is deliberately minimal so the
// output is parseable without auxiliary docs.
func SaveSnapshot(opts SnapshotOptions) error {
	if opts.Root == nil {
		return fmt.Errorf("no subtree to export")
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg" // safe default
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path = opts.Path + ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create parent dir: %w", err)
		}
	}

	layout := buildLayout(opts)

	switch format {
	case "svg":
		return renderSVG(opts.Path, layout)
	case "png":
		return renderPNG(opts.Path, layout)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

// --- layout computation ----------------------------------------------------

type layoutCell struct {
	Name   string
	Weight float64
	Depth  int
	Leaf   bool
	X, Y   float64
	W, H   float64
}

type layoutResult struct {
	Cells  []layoutCell
	Width  int
	Height int
	Header float64
	Sum    summaryInfo
}

type summaryInfo struct {
	Title     string
	RootName  string
	SumWeight float64
	Leaves    int
	Nodes     int
	Depth     int
}

func buildLayout(opts SnapshotOptions) layoutResult {
	const (
		canvasW      = 960.0
		rowH         = 56.0
		rowGap       = 4.0
		padding      = 36.0
		headerHeight = 110.0
	)

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = analysis.MaxDepth(opts.Root)
		if maxDepth > 6 {
			maxDepth = 6
		}
	}

	total := analysis.SumWeights(opts.Root)

	// Partition recursively using an explicit stack. Each cell spans a
	// horizontal extent proportional to its subtree weight within its
	// parent's extent. Zero-weight subtrees get a minimal sliver so they
	// stay visible.
	innerW := canvasW - padding*2

	type frame struct {
		node  *model.Node
		depth int
		x0    float64
		x1    float64
	}

	var cells []layoutCell
	stack := []frame{{node: opts.Root, depth: 0, x0: padding, x1: padding + innerW}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		w := f.x1 - f.x0
		if w < 1 {
			w = 1
		}
		cells = append(cells, layoutCell{
			Name:   f.node.Name,
			Weight: analysis.SumWeights(f.node),
			Depth:  f.depth,
			Leaf:   f.node.IsLeaf(),
			X:      f.x0,
			Y:      padding + headerHeight + float64(f.depth)*(rowH+rowGap),
			W:      w,
			H:      rowH,
		})

		if f.depth >= maxDepth || len(f.node.Children) == 0 {
			continue
		}

		parentSum := analysis.SumWeights(f.node)
		x := f.x0
		for _, child := range f.node.Children {
			childW := w / float64(len(f.node.Children))
			if parentSum > 0 {
				childW = w * analysis.SumWeights(child) / parentSum
			}
			if childW < 2 {
				childW = 2
			}
			stack = append(stack, frame{node: child, depth: f.depth + 1, x0: x, x1: x + childW})
			x += childW
		}
	}

	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = "Canopy Snapshot"
	}

	height := int(padding*2 + headerHeight + float64(maxDepth+1)*(rowH+rowGap))
	if height < 360 {
		height = 360
	}

	return layoutResult{
		Cells:  cells,
		Width:  int(canvasW),
		Height: height,
		Header: headerHeight,
		Sum: summaryInfo{
			Title:     title,
			RootName:  opts.Root.Name,
			SumWeight: total,
			Leaves:    analysis.CountLeaves(opts.Root),
			Nodes:     analysis.NodeCount(opts.Root),
			Depth:     maxDepth,
		},
	}
}

// --- rendering -------------------------------------------------------------

var (
	depthPalette = []color.RGBA{
		{0x4c, 0x78, 0xa8, 0xff},
		{0x72, 0x9e, 0xcb, 0xff},
		{0x9e, 0xc3, 0xe2, 0xff},
		{0xc6, 0xdb, 0xef, 0xff},
		{0xde, 0xeb, 0xf7, 0xff},
	}
	colorLeaf     = color.RGBA{0xf2, 0xa9, 0x5c, 0xff}
	colorStroke   = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorText     = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorCellText = color.RGBA{0x1a, 0x1a, 0x1a, 0xff}
	colorSubtle   = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorHeaderBG = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
)

func cellColor(c layoutCell) color.RGBA {
	if c.Leaf {
		return colorLeaf
	}
	return depthPalette[c.Depth%len(depthPalette)]
}

func renderPNG(path string, layout layoutResult) error {
	dc := gg.NewContext(layout.Width, layout.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(16, 16, float64(layout.Width)-32, layout.Header-24, 10)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	drawSummaryBlock(dc, layout)

	for _, c := range layout.Cells {
		dc.SetColor(cellColor(c))
		dc.DrawRectangle(c.X, c.Y, c.W, c.H)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1)
		dc.DrawRectangle(c.X, c.Y, c.W, c.H)
		dc.Stroke()

		if c.W >= 60 {
			dc.SetColor(colorCellText)
			dc.DrawStringAnchored(truncate(c.Name, int(c.W/8)), c.X+6, c.Y+18, 0, 0.5)
			dc.SetColor(colorSubtle)
			dc.DrawStringAnchored(formatWeight(c.Weight), c.X+6, c.Y+36, 0, 0.5)
		}
	}

	return dc.SavePNG(path)
}

func renderSVG(path string, layout layoutResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return renderSVGToWriter(file, layout)
}

func renderSVGToWriter(w io.Writer, layout layoutResult) error {
	canvas := svg.New(w)
	canvas.Start(layout.Width, layout.Height)
	canvas.Rect(0, 0, layout.Width, layout.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 16, layout.Width-32, int(layout.Header-24), 10, 10, fmt.Sprintf("fill:%s", css(colorHeaderBG)))

	drawSummaryBlockSVG(canvas, layout)

	for _, c := range layout.Cells {
		canvas.Rect(int(c.X), int(c.Y), int(c.W), int(c.H),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(cellColor(c)), css(colorStroke)))
		if c.W >= 60 {
			canvas.Text(int(c.X)+6, int(c.Y)+20, truncate(c.Name, int(c.W/8)),
				fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorCellText)))
			canvas.Text(int(c.X)+6, int(c.Y)+38, formatWeight(c.Weight),
				fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace", css(colorSubtle)))
		}
	}

	canvas.End()
	return nil
}

func drawSummaryBlock(dc *gg.Context, layout layoutResult) {
	dc.SetColor(colorText)
	dc.DrawStringAnchored(layout.Sum.Title, 32, 40, 0, 0.5)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(fmt.Sprintf("root: %s", layout.Sum.RootName), 32, 58, 0, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("weight: %s  leaves: %d  nodes: %d",
		formatWeight(layout.Sum.SumWeight), layout.Sum.Leaves, layout.Sum.Nodes), 32, 76, 0, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("depth shown: %d", layout.Sum.Depth), 32, 94, 0, 0.5)
}

func drawSummaryBlockSVG(canvas *svg.SVG, layout layoutResult) {
	canvas.Text(32, 44, layout.Sum.Title,
		fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(32, 62, fmt.Sprintf("root: %s", layout.Sum.RootName),
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))
	canvas.Text(32, 80, fmt.Sprintf("weight: %s  leaves: %d  nodes: %d",
		formatWeight(layout.Sum.SumWeight), layout.Sum.Leaves, layout.Sum.Nodes),
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))
	canvas.Text(32, 98, fmt.Sprintf("depth shown: %d", layout.Sum.Depth),
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))
}

// --- helpers ---------------------------------------------------------------

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func formatWeight(w float64) string {
	if w == math.Trunc(w) {
		return fmt.Sprintf("%.0f", w)
	}
	return fmt.Sprintf("%.2f", w)
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
