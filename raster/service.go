package raster

import (
	"log/slog"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/PrahoLama/vine-annotate/domain/shape"
)

// Decoded orthophotos are large; keep only a few around for quick
// back-and-forth between frames.
const cacheSize = 4

// Snapshot is the result of one asynchronous load: a decoded raster plus its
// initial detections, or the error that prevented either.
type Snapshot struct {
	Raster  *Raster
	Set     *shape.AnnotationSet
	Elapsed time.Duration
	Err     error
}

// Service decodes rasters off the UI thread and hands finished snapshots
// back through Results. The host drains the channel from its own loop, so
// everything downstream of a snapshot stays single-threaded.
type Service struct {
	logger  *slog.Logger
	cache   *lru.Cache[string, *Raster]
	results chan Snapshot
	loads   atomic.Uint64
	hits    atomic.Uint64
}

// NewService constructs a load service with a small decoded-raster cache.
func NewService(logger *slog.Logger) *Service {
	cache, _ := lru.New[string, *Raster](cacheSize)
	return &Service{
		logger:  logger,
		cache:   cache,
		results: make(chan Snapshot, 4),
	}
}

// Results delivers finished load snapshots.
func (s *Service) Results() <-chan Snapshot { return s.results }

// Stats reports load and cache-hit counters.
func (s *Service) Stats() (loads, hits uint64) {
	return s.loads.Load(), s.hits.Load()
}

// Load decodes imagePath (and, when non-empty, the detector output at
// detectionsPath) in a goroutine and queues the snapshot.
func (s *Service) Load(imagePath, detectionsPath string) {
	go func() {
		start := time.Now()
		snap := s.load(imagePath, detectionsPath)
		snap.Elapsed = time.Since(start)
		if s.logger != nil {
			if snap.Err != nil {
				s.logger.Error("raster load failed", "path", imagePath, "error", snap.Err)
			} else {
				s.logger.Info("raster loaded",
					"path", imagePath,
					"width", snap.Raster.View.PixelWidth,
					"height", snap.Raster.View.PixelHeight,
					"detections", len(snap.Set.Detections),
					"elapsed", snap.Elapsed)
			}
		}
		s.results <- snap
	}()
}

func (s *Service) load(imagePath, detectionsPath string) Snapshot {
	s.loads.Add(1)
	r, ok := s.cache.Get(imagePath)
	if ok {
		s.hits.Add(1)
	} else {
		var err error
		r, err = Open(imagePath)
		if err != nil {
			return Snapshot{Err: err}
		}
		s.cache.Add(imagePath, r)
	}

	set := shape.NewAnnotationSet()
	if detectionsPath != "" {
		loaded, err := LoadDetections(detectionsPath, r.View)
		if err != nil {
			// A bad detections file should not block viewing the raster.
			if s.logger != nil {
				s.logger.Warn("detections skipped", "path", detectionsPath, "error", err)
			}
		} else {
			set = loaded
		}
	}
	return Snapshot{Raster: r, Set: set}
}
