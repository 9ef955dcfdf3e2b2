package category

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

const DefaultWorkers = 4

type Store interface {
	ListNodes(ctx context.Context) ([]Node, error)
	SetLevel(ctx context.Context, id uuid.UUID, level int) error
}

type LevelReport struct {
	Scanned int         `json:"scanned"`
	Updated int         `json:"updated"`
	Cyclic  []uuid.UUID `json:"cyclic,omitempty"`
}

type Resolver struct {
	Store   Store
	Workers int
}

// RecomputeAllLevels rewrites the stored level of every category whose derived
// level differs. Categories on or below a cycle keep their stored level and
// are listed in the report; the returned error then wraps ErrCycleDetected.
func (r *Resolver) RecomputeAllLevels(ctx context.Context) (LevelReport, error) {
	l := logging.FromContext(ctx).With("svc", "category.recompute_levels")

	nodes, err := r.Store.ListNodes(ctx)
	if err != nil {
		return LevelReport{}, fmt.Errorf("list categories: %w", err)
	}

	snap := NewSnapshot(nodes)
	report := LevelReport{Scanned: len(nodes)}

	type change struct {
		id    uuid.UUID
		level int
	}
	var changes []change
	for _, n := range nodes {
		lvl, err := ComputeLevel(n.ID, snap)
		if errors.Is(err, ErrCycleDetected) {
			report.Cyclic = append(report.Cyclic, n.ID)
			continue
		}
		if err != nil {
			return report, err
		}
		if lvl != n.Level {
			changes = append(changes, change{id: n.ID, level: lvl})
		}
	}

	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, ch := range changes {
		g.Go(func() error {
			if err := r.Store.SetLevel(gCtx, ch.id, ch.level); err != nil {
				return fmt.Errorf("set level of %s: %w", ch.id, err)
			}
			mu.Lock()
			report.Updated++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		l.Error("recompute_levels_error", "updated", report.Updated, "error", err)
		return report, err
	}

	if len(report.Cyclic) > 0 {
		l.Warn("recompute_levels_cycles", "scanned", report.Scanned, "updated", report.Updated, "cyclic", len(report.Cyclic))
		return report, fmt.Errorf("%w: %d categories", ErrCycleDetected, len(report.Cyclic))
	}

	l.Info("recompute_levels_success", "scanned", report.Scanned, "updated", report.Updated)
	return report, nil
}
