package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gdlkit/pkg/cache"
	"github.com/matzehuels/gdlkit/pkg/errors"
	gdlio "github.com/matzehuels/gdlkit/pkg/io"
	"github.com/matzehuels/gdlkit/pkg/observability"
	"github.com/matzehuels/gdlkit/pkg/store"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for its cache, store and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store // optional; required for Options.Save
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, s store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  s,
		Logger: logger,
		TTL:    DefaultTTL,
	}
}

// Dump builds and serializes desc, reusing the cached text of an identical
// description. With opts.Save the document is also stored.
func (r *Runner) Dump(ctx context.Context, desc *gdlio.Description, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "description is required")
	}

	start := time.Now()
	res := &Result{
		Title:     desc.TitleOrAnonymous(),
		Artifacts: make(map[string][]byte),
	}
	res.Stats.GraphCount, res.Stats.NodeCount, res.Stats.EdgeCount = desc.Count()

	descHash, err := DescriptionHash(desc)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.DocumentKey(descHash)
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, FormatGDL)
			res.GDL = data
			res.CacheInfo.DumpHit = true
		} else if err != nil {
			opts.Logger.Warn("cache lookup failed", "key", key, "err", err)
		}
	}

	if res.GDL == nil {
		hooks.OnCacheMiss(ctx, FormatGDL)
		text, err := r.dump(ctx, desc)
		if err != nil {
			return nil, err
		}
		res.GDL = text
		if err := r.Cache.Set(ctx, key, text, r.TTL); err != nil {
			opts.Logger.Warn("cache store failed", "key", key, "err", err)
		} else {
			hooks.OnCacheSet(ctx, FormatGDL, len(text))
		}
	}
	res.Hash = cache.Hash(res.GDL)
	res.Stats.DumpTime = time.Since(start)

	if opts.Save {
		if err := r.save(ctx, res); err != nil {
			return nil, err
		}
	}

	opts.Logger.Info("dumped document",
		"title", res.Title,
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"cached", res.CacheInfo.DumpHit,
		"duration", res.Stats.DumpTime)

	return res, nil
}

// dump runs the uncached build and serialize stages.
func (r *Runner) dump(ctx context.Context, desc *gdlio.Description) ([]byte, error) {
	hooks := observability.Pipeline()
	title := desc.TitleOrAnonymous()

	hooks.OnBuildStart(ctx, title)
	start := time.Now()
	g, err := Build(desc)
	_, nodes, _ := desc.Count()
	hooks.OnBuildComplete(ctx, title, nodes, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	defer g.Free()

	start = time.Now()
	text, err := Serialize(g)
	hooks.OnDumpComplete(ctx, title, len(text), time.Since(start), err)
	return text, err
}

func (r *Runner) save(ctx context.Context, res *Result) error {
	if r.Store == nil {
		return errors.New(errors.ErrCodeStorage, "no document store configured")
	}
	rec := store.NewRecord(res.Title, string(res.GDL))
	if err := r.Store.Save(ctx, rec); err != nil {
		return err
	}
	res.DocumentID = rec.ID
	return nil
}

// Render dumps desc and produces every format in opts.Formats, reusing
// cached previews of an identical document.
func (r *Runner) Render(ctx context.Context, desc *gdlio.Description, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	res, err := r.Dump(ctx, desc, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Cache()
	var missing []string
	for _, format := range opts.Formats {
		if format == FormatGDL {
			res.Artifacts[format] = res.GDL
			continue
		}
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(res.Hash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				hooks.OnCacheHit(ctx, format)
				res.Artifacts[format] = data
				continue
			}
		}
		hooks.OnCacheMiss(ctx, format)
		missing = append(missing, format)
	}

	if len(missing) > 0 {
		formats := strings.Join(missing, ",")
		observability.Pipeline().OnRenderStart(ctx, formats)
		rendered, err := Render(ctx, desc, res.GDL, missing, opts)
		observability.Pipeline().OnRenderComplete(ctx, formats, time.Since(start), err)
		if err != nil {
			return nil, err
		}
		for format, data := range rendered {
			res.Artifacts[format] = data
			key := r.Keyer.ArtifactKey(res.Hash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
				opts.Logger.Warn("cache store failed", "key", key, "err", err)
				continue
			}
			hooks.OnCacheSet(ctx, format, len(data))
		}
	}
	res.CacheInfo.RenderHit = len(missing) == 0
	res.Stats.RenderTime = time.Since(start)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", res.CacheInfo.RenderHit,
		"duration", res.Stats.RenderTime)

	return res, nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var err error
	if r.Cache != nil {
		err = r.Cache.Close()
	}
	if r.Store != nil {
		if serr := r.Store.Close(); err == nil {
			err = serr
		}
	}
	return err
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
