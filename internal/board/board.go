// Package board runs the interactive drawing window: a shiny event loop
// feeding the pointer normalizer, with keyboard shortcuts for tools,
// undo, save and export.
package board

import (
	"context"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/clipboard"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/config"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/export"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/history"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/ink"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/input"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/notify"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/render"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/session"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/tool"
)

const (
	defaultWidth  = 1024
	defaultHeight = 768
)

// palette maps digit keys to stroke colors.
var palette = map[rune]string{
	'1': "#000000",
	'2': "#CC0000",
	'3': "#00AA44",
	'4': "#2255CC",
	'5': "#FF8800",
}

// Board owns one interactive drawing window over one document file.
type Board struct {
	cfg      *config.Config
	notifier *notify.Notifier
	path     string
}

// New creates a Board for the document at path. An empty path starts a
// scratch board saved under the configured save directory.
func New(cfg *config.Config, notifier *notify.Notifier, path string) *Board {
	return &Board{cfg: cfg, notifier: notifier, path: path}
}

// Run executes the UI loop using shiny's driver.
func (b *Board) Run() { driver.Main(b.main) }

// DocumentID derives the session id from the document path.
func (b *Board) DocumentID() string {
	if b.path == "" {
		return "board"
	}
	base := filepath.Base(b.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (b *Board) documentDir() string {
	if b.path != "" {
		return filepath.Dir(b.path)
	}
	if b.cfg.SaveDir != "" {
		return b.cfg.SaveDir
	}
	return "."
}

// fileStore persists encoded documents as JSON files in a directory. It
// fills the session's document store collaborator for local use.
type fileStore struct {
	dir string
}

func (f fileStore) SaveDocument(_ context.Context, id string, data []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(f.dir, id+".json"), data, 0o644)
}

func (b *Board) main(s screen.Screen) {
	width, height := defaultWidth, defaultHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Stillmove Ink"})
	if err != nil {
		ink.Logger().Error("new window failed", "error", err)
		return
	}
	defer w.Release()

	surface, err := render.NewRaster(width, height)
	if err != nil {
		ink.Logger().Error("new surface failed", "error", err)
		return
	}

	tools := tool.New(
		tool.WithMode(modeFor(b.cfg.Style.Tool)),
		tool.WithColor(b.cfg.Style.Color),
		tool.WithWidth(b.cfg.Style.Width),
	)
	sess := session.New(b.DocumentID(),
		session.WithSurface(surface),
		session.WithTools(tools),
		session.WithHistory(history.New(history.WithCapacity(b.cfg.History.Max))),
		session.WithDocumentStore(fileStore{dir: b.documentDir()}),
	)
	b.loadDocument(sess)

	norm := input.New(
		input.WithBounds(image.Rect(0, 0, width, height)),
		input.WithPalmWindow(b.cfg.Input.PalmWindow()),
		input.WithSmoothing(b.cfg.Input.Smoothing),
		input.WithCallbacks(sess.Callbacks()),
	)
	norm.Attach()
	defer norm.Detach()

	var adapter input.MouseAdapter
	clearArmed := false

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			if e.WidthPx == width && e.HeightPx == height {
				continue
			}
			width, height = e.WidthPx, e.HeightPx
			if resized, rErr := render.NewRaster(width, height); rErr != nil {
				ink.Logger().Warn("resize surface failed", "error", rErr)
			} else {
				surface = resized
				sess.SetSurface(surface)
				norm.SetBounds(image.Rect(0, 0, width, height))
			}
			w.Send(paint.Event{})
		case paint.Event:
			drawFrame(s, w, surface.Image())
		case mouse.Event:
			if sample, ok := adapter.Sample(e, time.Now()); ok {
				norm.HandleSample(sample)
				w.Send(paint.Event{})
			}
		case touch.Event:
			if sample, ok := input.TouchSample(e, time.Now()); ok {
				norm.HandleSample(sample)
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if e.Code == key.CodeEscape {
				if sample, ok := adapter.Cancel(time.Now()); ok {
					norm.HandleSample(sample)
					w.Send(paint.Event{})
				}
				clearArmed = false
				continue
			}
			if e.Rune != 'c' && e.Rune != 'C' {
				clearArmed = false
			}
			switch e.Rune {
			case 'p', 'P':
				tools.SetMode(tool.ModePen)
			case 'h', 'H':
				tools.SetMode(tool.ModeHighlighter)
			case 'e', 'E':
				tools.SetMode(tool.ModeEraser)
			case 'z', 'Z':
				sess.Undo()
				w.Send(paint.Event{})
			case 'y', 'Y':
				sess.Redo()
				w.Send(paint.Event{})
			case '[':
				tools.SetWidth(tools.Width() - 1)
			case ']':
				tools.SetWidth(tools.Width() + 1)
			case 'c', 'C':
				if !clearArmed {
					clearArmed = true
					ink.Logger().Info("press c again to clear the board")
					continue
				}
				clearArmed = false
				sess.ClearBoard()
				w.Send(paint.Event{})
			case 's', 'S':
				b.save(sess)
			case 'x', 'X':
				b.exportPNG(sess, surface)
			case 'd', 'D':
				b.copyToClipboard(surface)
			default:
				if hex, ok := palette[e.Rune]; ok {
					if cErr := tools.SetColor(hex); cErr != nil {
						ink.Logger().Warn("palette color rejected", "color", hex, "error", cErr)
					}
				}
			}
		}
	}
}

func (b *Board) loadDocument(sess *session.Session) {
	if b.path == "" {
		return
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		if !os.IsNotExist(err) {
			ink.Logger().Warn("read document failed", "path", b.path, "error", err)
		}
		return
	}
	if err := sess.Store().Load(data); err != nil {
		ink.Logger().Warn("load document failed", "path", b.path, "error", err)
	}
}

func (b *Board) save(sess *session.Session) {
	if err := sess.SaveAsync(context.Background()); err != nil {
		ink.Logger().Warn("save failed", "document", sess.ID(), "error", err)
		return
	}
	b.notifier.Save(sess.ID())
}

func (b *Board) exportPNG(sess *session.Session, surface *render.Raster) {
	path := filepath.Join(b.documentDir(), sess.ID()+".png")
	doc := ink.Document{Version: ink.Version, Strokes: sess.Store().Strokes()}
	w, h := surface.Size()
	if err := export.PNGFile(path, doc, w, h); err != nil {
		ink.Logger().Warn("export failed", "path", path, "error", err)
		return
	}
	b.notifier.Export(path, surface.Image())
}

func (b *Board) copyToClipboard(surface *render.Raster) {
	if err := clipboard.WriteImage(surface.Image()); err != nil {
		ink.Logger().Warn("clipboard copy failed", "error", err)
		return
	}
	b.notifier.Copy("board image")
}

func modeFor(name string) tool.Mode {
	switch name {
	case "highlighter":
		return tool.ModeHighlighter
	default:
		return tool.ModePen
	}
}

func drawFrame(s screen.Screen, w screen.Window, img image.Image) {
	bounds := img.Bounds()
	buf, err := s.NewBuffer(image.Point{bounds.Dx(), bounds.Dy()})
	if err != nil {
		ink.Logger().Warn("new buffer failed", "error", err)
		return
	}
	defer buf.Release()

	draw.Draw(buf.RGBA(), buf.Bounds(), img, bounds.Min, draw.Src)
	w.Upload(image.Point{}, buf, buf.Bounds())
	w.Publish()
}
