// Package menus assembles the launcher menu: the builtin skeleton plus
// fragment contributions, merged through the registry and frozen into
// immutable snapshots.
package menus

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/espalier/internal/fragments"
	"github.com/zjrosen/espalier/internal/log"
	"github.com/zjrosen/espalier/internal/ordering"
	"github.com/zjrosen/espalier/internal/pubsub"
	"github.com/zjrosen/espalier/internal/registry"
	"github.com/zjrosen/espalier/internal/tracing"
)

// Config configures the assembly service.
type Config struct {
	// Loader reads fragment files. Required.
	Loader *fragments.Loader

	// Top is the authored skeleton fragments merge into. Nil means
	// DefaultTree().
	Top registry.Item

	// Builtins are registered contributions applied after the fragment
	// registrations.
	Builtins []registry.RegisteredItem

	// Store persists first-seen ordering. Nil disables persistence.
	Store registry.OrderingStore

	// RootKey namespaces store entries. Empty means RootKey.
	RootKey string

	// Backend labels the store backend in traces ("memory", "file",
	// "sqlite").
	Backend string

	// Tracer creates assemble spans. Nil means a no-op tracer.
	Tracer trace.Tracer
}

// Service assembles menu snapshots on demand. Safe for concurrent use: a
// mutex serializes assembly, since watcher-triggered and key-triggered
// reloads may race.
type Service struct {
	mu       sync.Mutex
	loader   *fragments.Loader
	top      registry.Item
	builtins []registry.RegisteredItem
	merger   *registry.Merger
	store    registry.OrderingStore
	rootKey  string
	backend  string
	tracer   trace.Tracer
	broker   *pubsub.Broker[*Snapshot]
}

// NewService creates the assembly service.
func NewService(cfg Config) *Service {
	rootKey := cfg.RootKey
	if rootKey == "" {
		rootKey = RootKey
	}
	top := cfg.Top
	if top == nil {
		top = DefaultTree()
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("menus")
	}

	s := &Service{
		loader:   cfg.Loader,
		top:      top,
		builtins: cfg.Builtins,
		store:    cfg.Store,
		rootKey:  rootKey,
		backend:  cfg.Backend,
		tracer:   tracer,
		broker:   pubsub.NewBroker[*Snapshot](),
	}
	s.merger = registry.NewMerger(registry.MergerConfig{
		Store:   cfg.Store,
		RootKey: rootKey,
		OnDiagnostic: func(d registry.Diagnostic) {
			log.Warn(log.CatMerge, "merge diagnostic",
				"kind", d.Kind.String(), "path", d.Path, "name", d.Name, "detail", d.Detail)
		},
	})
	return s
}

// Assemble loads fragments, registers them together with the builtins,
// merges the result into the skeleton, and freezes the traversal as a
// snapshot. Each successful assemble is published to subscribers.
//
// Best-effort like the layers below it: the returned snapshot is always
// usable. The error joins fragment load problems; path conflicts and merge
// conflicts ride along as snapshot diagnostics.
func (s *Service) Assemble(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, tracing.SpanAssemble, trace.WithAttributes(
		attribute.String(tracing.AttrRootKey, s.rootKey),
		attribute.String(tracing.AttrStoreBackend, s.backend),
	))
	defer span.End()

	start := time.Now()

	loadCtx, loadSpan := s.tracer.Start(ctx, tracing.SpanLoad)
	files, loadErr := s.loader.Load(loadCtx)
	loadSpan.SetAttributes(attribute.Int(tracing.AttrFragmentCount, len(files)))
	if loadErr != nil {
		loadSpan.SetAttributes(attribute.String(tracing.AttrErrorMessage, loadErr.Error()))
	}
	loadSpan.End()

	reg := registry.NewGroup("registered", registry.OrderingWeak)
	regDiags, regErr := register(reg, append(Registrations(files), s.builtins...))

	_, mergeSpan := s.tracer.Start(ctx, tracing.SpanMerge)
	builder := newSnapshotBuilder()
	diags := s.merger.Visit(builder, s.top, reg)
	mergeSpan.SetAttributes(attribute.Int(tracing.AttrDiagnosticCount, len(regDiags)+len(diags)))
	mergeSpan.End()

	snap := builder.finish(len(files), append(regDiags, diags...))
	span.SetAttributes(
		attribute.String(tracing.AttrSnapshotID, snap.ID),
		attribute.Int(tracing.AttrItemCount, snap.Actions()),
		attribute.Int(tracing.AttrGroupCount, snap.Groups()),
	)

	if err := s.flush(ctx); err != nil {
		log.ErrorErr(log.CatOrdering, "failed to flush ordering store", err)
		snap.Diagnostics = append(snap.Diagnostics, registry.Diagnostic{
			Kind:   registry.DiagOrderingPersist,
			Detail: "flush failed: " + err.Error(),
		})
	}

	s.broker.Publish(pubsub.ReloadedEvent, snap)
	log.Info(log.CatMerge, "menu assembled",
		"snapshot", snap.ID,
		"fragments", len(files),
		"actions", snap.Actions(),
		"diagnostics", len(snap.Diagnostics),
		"took", time.Since(start).Round(time.Millisecond).String())

	return snap, errors.Join(loadErr, regErr)
}

// register applies the contributions in order. A path conflict is the
// registration-time analog of a merge conflict, so it comes back as a
// DiagPathConflict next to the other snapshot diagnostics instead of an
// error; the offending contribution is dropped and the rest register.
// Anything else stays in the joined error.
func register(root *registry.GroupItem, regs []registry.RegisteredItem) ([]registry.Diagnostic, error) {
	var diags []registry.Diagnostic
	var errs []error
	for _, r := range regs {
		err := r.RegisterTo(root)
		if err == nil {
			continue
		}
		if errors.Is(err, registry.ErrPathConflict) {
			d := registry.Diagnostic{
				Kind:   registry.DiagPathConflict,
				Path:   r.Placement().Path(),
				Name:   r.Item().Name(),
				Detail: err.Error(),
			}
			log.Warn(log.CatMerge, "merge diagnostic",
				"kind", d.Kind.String(), "path", d.Path, "name", d.Name, "detail", d.Detail)
			diags = append(diags, d)
			continue
		}
		errs = append(errs, err)
	}
	return diags, errors.Join(errs...)
}

// flush pushes buffered store writes to disk when the backend buffers them.
func (s *Service) flush(ctx context.Context) error {
	f, ok := s.store.(ordering.Flusher)
	if !ok {
		return nil
	}
	_, span := s.tracer.Start(ctx, tracing.SpanFlush)
	defer span.End()
	if err := f.Flush(); err != nil {
		span.SetAttributes(attribute.String(tracing.AttrErrorMessage, err.Error()))
		return err
	}
	return nil
}

// Subscribe returns a channel of snapshot events. Every assemble publishes a
// ReloadedEvent carrying the new snapshot. The channel closes when ctx is
// cancelled.
func (s *Service) Subscribe(ctx context.Context) <-chan pubsub.Event[*Snapshot] {
	return s.broker.Subscribe(ctx)
}

// Close shuts down the snapshot broker.
func (s *Service) Close() {
	s.broker.Close()
}
