package app

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/PrahoLama/vine-annotate/config"
	"github.com/PrahoLama/vine-annotate/domain/editor"
	"github.com/PrahoLama/vine-annotate/domain/shape"
	"github.com/PrahoLama/vine-annotate/raster"
	"github.com/PrahoLama/vine-annotate/render"
	"github.com/PrahoLama/vine-annotate/ui/model"
	"github.com/PrahoLama/vine-annotate/ui/presenter"
	"github.com/PrahoLama/vine-annotate/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	Logger     *slog.Logger
	CanvasMdl  *model.CanvasModel
	Stats      *model.StatsModel
	Session    *model.SessionModel
	Editor     *editor.Editor
	Compositor *render.Compositor
	Loads      *raster.Service
	RootView   *view.RootView
	UI         view.UI

	// Presenters
	SessionPresenter *presenter.SessionPresenter
	FSMPresenter     *presenter.FSMPresenter
	StatsPresenter   *presenter.StatsPresenter
	CanvasPresenter  *presenter.CanvasPresenter
	Loop             *presenter.Loop
}

// BuildContainer constructs all components. The Tk layout itself is built
// later by the app wrapper, after styles are initialized.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string) *AppContainer {
	c := &AppContainer{Config: cfg, Logger: logger}
	c.CanvasMdl = model.NewCanvasModel()
	c.Stats = model.NewStatsModel()
	c.Session = model.NewSessionModel()
	c.Editor = editor.NewEditor(cfg, logger)
	c.Compositor = render.New(cfg)
	c.Loads = raster.NewService(logger)
	// View
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView
	// Presenters
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.RootView)
	c.FSMPresenter = presenter.NewFSMPresenter(c.Editor, c.RootView)
	c.StatsPresenter = presenter.NewStatsPresenter(c.Editor, c.Stats, c.RootView)
	c.CanvasPresenter = presenter.NewCanvasPresenter(c.Editor, c.Compositor, c.CanvasMdl, c.Loads, c.RootView, logger)
	c.CanvasPresenter.SetRasterLoadedListener(c.SessionPresenter.OnRasterLoaded)
	c.Editor.AddStateListener(func(prev, next editor.State) {
		c.FSMPresenter.OnState(next)
	})
	c.Editor.SetCommitListeners(editor.CommitListeners{
		DetectionCreated: func(d shape.Detection) {
			logger.Info("detection committed", "id", d.ID, "label", d.Label)
		},
		RowFinished: func(r shape.Row) {
			logger.Info("row committed", "id", r.ID, "number", r.Number, "points", len(r.Points))
		},
		ShapeDeleted: func(id uuid.UUID) {
			logger.Info("shape deleted", "id", id)
		},
	})
	return c
}
