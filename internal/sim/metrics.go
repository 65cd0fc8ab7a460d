package sim

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"hostile-sim/internal/hostile"
)

const instrumentationName = "hostile-sim/internal/sim"

// metrics counts AI activity through the global OTel meter provider, which
// is a no-op unless the process installs one.
type metrics struct {
	spawned   metric.Int64Counter
	destroyed metric.Int64Counter
	shots     metric.Int64Counter
	hits      metric.Int64Counter
	roles     metric.Int64Counter
	active    metric.Int64ObservableGauge
}

func newMetrics(activeFn func() int64) (*metrics, error) {
	m := otel.Meter(instrumentationName)
	mt := &metrics{}
	var err error

	if mt.spawned, err = m.Int64Counter("hostile.drones.spawned",
		metric.WithDescription("Drones spawned")); err != nil {
		return nil, fmt.Errorf("creating spawned counter: %w", err)
	}
	if mt.destroyed, err = m.Int64Counter("hostile.drones.destroyed",
		metric.WithDescription("Drones destroyed by the player")); err != nil {
		return nil, fmt.Errorf("creating destroyed counter: %w", err)
	}
	if mt.shots, err = m.Int64Counter("hostile.shots.fired",
		metric.WithDescription("Shots fired at the player")); err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}
	if mt.hits, err = m.Int64Counter("hostile.shots.hit",
		metric.WithDescription("Shots that hit the player")); err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}
	if mt.roles, err = m.Int64Counter("hostile.squad.role_changes",
		metric.WithDescription("Squad role assignments")); err != nil {
		return nil, fmt.Errorf("creating role counter: %w", err)
	}
	if mt.active, err = m.Int64ObservableGauge("hostile.drones.active",
		metric.WithDescription("Drones currently alive")); err != nil {
		return nil, fmt.Errorf("creating active gauge: %w", err)
	}
	if _, err = m.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(mt.active, activeFn())
		return nil
	}, mt.active); err != nil {
		return nil, fmt.Errorf("registering active callback: %w", err)
	}
	return mt, nil
}

func (mt *metrics) record(ctx context.Context, e hostile.Event) {
	if mt == nil {
		return
	}
	pers := metric.WithAttributes(attribute.String("personality", e.Personality))
	switch e.Type {
	case hostile.EventSpawned:
		mt.spawned.Add(ctx, 1, pers)
	case hostile.EventDestroyed:
		mt.destroyed.Add(ctx, 1, pers)
	case hostile.EventShot:
		w := metric.WithAttributes(attribute.String("weapon", e.Weapon))
		mt.shots.Add(ctx, 1, w)
		if e.Hit {
			mt.hits.Add(ctx, 1, w)
		}
	case hostile.EventRoleChanged:
		mt.roles.Add(ctx, 1, metric.WithAttributes(attribute.String("role", e.Role.String())))
	}
}
