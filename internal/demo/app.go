package demo

import (
	"io"
	"log/slog"

	"github.com/kyu49/euonymus/internal/config"
	"github.com/kyu49/euonymus/pkg/binding"
	"github.com/kyu49/euonymus/pkg/component"
	"github.com/kyu49/euonymus/pkg/dom"
	"github.com/kyu49/euonymus/pkg/instrument"
)

// DefaultTodos seed a fresh app.
var DefaultTodos = []string{
	"Read the binding docs",
	"Wire the live session",
	"Publish a snapshot",
}

const stylesheet = `.hidden{display:none}` +
	`.todos li{cursor:pointer}` +
	`.done{text-decoration:line-through}` +
	`.muted{opacity:.5}` +
	`mark{background:#fe6}`

// App ties the model, controller and view together.
type App struct {
	Doc        *dom.Document
	// Page is the <main> element holding the whole view.
	Page       *dom.Element
	Model      *Model
	Controller *Controller
	View       *View

	logger *slog.Logger
}

// New builds the app in doc, under its body. A nil logger uses
// slog.Default and a nil recorder records nothing.
func New(doc *dom.Document, cfg *config.Config, logger *slog.Logger, recorder instrument.Recorder) (*App, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("app", cfg.Name)
	recorder = instrument.OrNop(recorder)

	style := doc.Create("style")
	doc.Head().AppendChild(style)
	if err := style.SetInnerHTML(stylesheet); err != nil {
		return nil, err
	}

	bc := cfg.BindingConfig()
	bc.Recorder = recorder
	model := NewModel(binding.WithConfig(bc))
	controller := NewController(model, logger)

	page := doc.Create("main")
	doc.Body().AppendChild(page)
	view, err := NewView(doc, page, cfg.Name, model, controller,
		component.WithLogger(logger),
		component.WithRecorder(recorder))
	if err != nil {
		return nil, err
	}

	a := &App{
		Doc:        doc,
		Page:       page,
		Model:      model,
		Controller: controller,
		View:       view,
		logger:     logger,
	}
	if err := controller.OnLoad(DefaultTodos...); err != nil {
		return nil, err
	}
	logger.Debug("demo app ready", "todos", len(model.Todos.Peek()))
	return a, nil
}

// Render writes the page.
func (a *App) Render(w io.Writer) error {
	return a.Doc.Render(w)
}

// Close disposes the view's computations.
func (a *App) Close() {
	a.View.Dispose()
	a.Model.Clear()
	a.Controller.Clear()
}
