package plugins

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/randalmurphal/hookcalc/pkg/hookcalc"
	"github.com/randalmurphal/hookcalc/pkg/hookcalc/config"
	"github.com/randalmurphal/hookcalc/pkg/hookcalc/registry"
	"github.com/randalmurphal/hookcalc/pkg/hookcalc/tape"
)

// ErrUnknownPlugin indicates a plugin name with no registered factory.
var ErrUnknownPlugin = errors.New("unknown plugin")

// Factory builds a plugin from its options.
type Factory func(opts config.Options) (hookcalc.Plugin, error)

// Catalog maps plugin names to factories.
type Catalog struct {
	factories *registry.Registry[string, Factory]
	logger    *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithLogger sets the logger handed to plugins that log.
func WithLogger(logger *slog.Logger) CatalogOption {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCatalog creates a catalog holding the built-in plugins:
// log, limit, operators, squared and tape.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{
		factories: registry.New[string, Factory](),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.factories.Register("log", c.newLog)
	c.factories.Register("limit", c.newLimit)
	c.factories.Register("operators", func(config.Options) (hookcalc.Plugin, error) { return Operators{}, nil })
	c.factories.Register("squared", func(config.Options) (hookcalc.Plugin, error) { return Squared{}, nil })
	c.factories.Register("tape", c.newTape)
	return c
}

// Register adds a factory under name. Names must be unique.
func (c *Catalog) Register(name string, f Factory) error {
	return c.factories.Add(name, f)
}

// Names returns the registered plugin names in sorted order.
func (c *Catalog) Names() []string {
	return c.factories.Keys()
}

// Build creates plugins for specs, in order. Plugins built before a failure
// that hold resources are closed.
func (c *Catalog) Build(specs []config.PluginSpec) ([]hookcalc.Plugin, error) {
	out := make([]hookcalc.Plugin, 0, len(specs))
	for i, spec := range specs {
		f, ok := c.factories.Get(spec.Name)
		if !ok {
			closeAll(out)
			return nil, fmt.Errorf("plugins[%d]: %w: %q", i, ErrUnknownPlugin, spec.Name)
		}
		p, err := f(spec.Config())
		if err != nil {
			closeAll(out)
			return nil, fmt.Errorf("plugins[%d] (%s): %w", i, spec.Name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (c *Catalog) newLog(opts config.Options) (hookcalc.Plugin, error) {
	return Log{Logger: c.logger, Digits: opts.Int("digits", 0)}, nil
}

func (c *Catalog) newLimit(opts config.Options) (hookcalc.Plugin, error) {
	l := Limit{
		Max:    opts.Float("max", DefaultLimit),
		Logger: c.logger,
	}
	if opts.Has("min") {
		l.Min = opts.Float("min", 0)
		l.HasMin = true
	}
	if l.HasMin && l.Min > l.Max {
		return nil, fmt.Errorf("limit: min %g is greater than max %g", l.Min, l.Max)
	}
	return l, nil
}

func (c *Catalog) newTape(opts config.Options) (hookcalc.Plugin, error) {
	driver := opts.String("store", tape.DriverMemory)

	var path string
	if driver == tape.DriverSQLite {
		var err error
		if path, err = opts.RequireString("path"); err != nil {
			return nil, fmt.Errorf("tape: %w", err)
		}
	}

	store, err := tape.OpenStore(driver, path)
	if err != nil {
		return nil, fmt.Errorf("tape: %w", err)
	}

	if opts.Bool("reset", false) {
		if err := store.Reset(context.Background()); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("tape: %w", err)
		}
	}
	return tape.New(store, tape.WithLogger(c.logger)), nil
}

func closeAll(ps []hookcalc.Plugin) {
	for _, p := range ps {
		if cl, ok := p.(io.Closer); ok {
			_ = cl.Close()
		}
	}
}
