// Package refresh keeps the local view state current by polling the API.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"frontdesk/internal/domain"
	"frontdesk/internal/repository"
)

// Source часть API, которую опрашивают поллеры
type Source interface {
	ListTables(ctx context.Context) ([]domain.Table, error)
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	ListOrders(ctx context.Context, q domain.OrderQuery) ([]domain.Order, error)
	ListOrderItems(ctx context.Context, statuses ...domain.OrderItemStatus) ([]domain.OrderItem, error)
}

// Intervals периоды опроса по ресурсам. Нулевой период отключает поллер.
type Intervals struct {
	Tables     time.Duration
	Menu       time.Duration
	Orders     time.Duration
	OrderItems time.Duration
}

type job struct {
	name     string
	interval time.Duration
	fetch    func(ctx context.Context) error
}

// Poller periodically copies remote snapshots into the store. A failed
// poll is logged and the previous state stays in place.
type Poller struct {
	store *repository.Store
	log   *slog.Logger
	jobs  []job
}

func New(src Source, store *repository.Store, iv Intervals, log *slog.Logger) *Poller {
	if log == nil {
		log = slog.Default()
	}
	p := &Poller{store: store, log: log.With("component", "poller")}
	p.jobs = []job{
		{name: "tables", interval: iv.Tables, fetch: func(ctx context.Context) error {
			tables, err := src.ListTables(ctx)
			if err != nil {
				return err
			}
			store.ReplaceTables(tables)
			return nil
		}},
		{name: "menu", interval: iv.Menu, fetch: func(ctx context.Context) error {
			items, err := src.ListMenuItems(ctx)
			if err != nil {
				return err
			}
			store.ReplaceMenu(items)
			return nil
		}},
		{name: "orders", interval: iv.Orders, fetch: func(ctx context.Context) error {
			orders, err := src.ListOrders(ctx, domain.OrderQuery{})
			if err != nil {
				return err
			}
			store.ReplaceOrders(orders)
			return nil
		}},
		{name: "order-items", interval: iv.OrderItems, fetch: func(ctx context.Context) error {
			items, err := src.ListOrderItems(ctx, domain.ItemPending, domain.ItemPreparing)
			if err != nil {
				return err
			}
			store.MergeOrderItems(items)
			return nil
		}},
	}
	return p
}

// Refresh fetches every resource once, concurrently. Order snapshots are
// applied before the kitchen item merge so that the merge is not wiped.
func (p *Poller) Refresh(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, j := range p.jobs[:2] {
		j := j
		g.Go(func() error { return p.runJob(gctx, j) })
	}
	g.Go(func() error {
		if err := p.runJob(gctx, p.jobs[2]); err != nil {
			return err
		}
		return p.runJob(gctx, p.jobs[3])
	})
	return g.Wait()
}

func (p *Poller) runJob(ctx context.Context, j job) error {
	if err := j.fetch(ctx); err != nil {
		return fmt.Errorf("refresh %s: %w", j.name, err)
	}
	return nil
}

// Run polls until ctx is done. Every job runs on its own ticker.
func (p *Poller) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, j := range p.jobs {
		if j.interval <= 0 {
			continue
		}
		j := j
		g.Go(func() error {
			p.loop(gctx, j)
			return nil
		})
	}
	return g.Wait()
}

func (p *Poller) loop(ctx context.Context, j job) {
	t := time.NewTicker(j.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			start := time.Now()
			if err := p.runJob(ctx, j); err != nil {
				if ctx.Err() != nil {
					return
				}
				p.log.Warn("poll failed", "resource", j.name, "error", err)
				continue
			}
			p.log.Debug("polled", "resource", j.name, "took", time.Since(start))
		}
	}
}
