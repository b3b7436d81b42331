package inventory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodkeeper/pkg/catalog"
)

const defaultQueueTimeout = 2 * time.Second

type action int

const (
	actionAdd action = iota
	actionGet
	actionList
	actionUpdate
	actionEat
	actionDitch
	actionDitchExpired
	actionDelete
	actionRestock
	actionHistory
)

// command is a unit of work for the service goroutine.
type command struct {
	action action
	items  []Item
	ids    []string
	amount int
	at     time.Time
	reply  chan result
}

// result carries the outcome of a command back to the caller.
type result struct {
	items  []Item
	events []Event
	err    error
}

// Service owns the in-memory inventory. A single goroutine applies every
// command in arrival order so the item list is never shared between
// goroutines.
type Service struct {
	commands chan command
	quit     chan struct{}
	once     sync.Once
	timeout  time.Duration
	clock    func() time.Time
	logger   *zap.Logger

	// owned by loop
	items   []Item
	history []Event
}

// Option adjusts a Service before its goroutine starts.
type Option func(*Service)

// WithClock replaces the wall clock used for creation and history stamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithTimeout bounds how long a caller waits for the queue and for a reply.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewService seeds the inventory and starts the owning goroutine. Seed items
// that fail validation are logged and skipped.
func NewService(seed []Item, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &Service{
		commands: make(chan command),
		quit:     make(chan struct{}),
		timeout:  defaultQueueTimeout,
		clock:    time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(svc)
	}
	for _, item := range seed {
		stored, err := svc.insert([]Item{item})
		if err != nil {
			logger.Warn("skipping seed item", zap.String("id", item.ID), zap.Error(err))
			continue
		}
		logger.Debug("seeded item", zap.String("id", stored[0].ID))
	}
	go svc.loop()
	return svc
}

// loop applies commands one at a time until Close.
func (s *Service) loop() {
	for {
		select {
		case cmd := <-s.commands:
			cmd.reply <- s.apply(cmd)
		case <-s.quit:
			return
		}
	}
}

// apply runs one command against the item list. Only loop calls it.
func (s *Service) apply(cmd command) result {
	switch cmd.action {
	case actionAdd:
		stored, err := s.insert(cmd.items)
		return result{items: stored, err: err}
	case actionGet:
		idx := s.indexOf(cmd.ids[0])
		if idx < 0 {
			return result{err: ErrNotFound}
		}
		return result{items: []Item{s.items[idx]}}
	case actionList:
		return result{items: slices.Clone(s.items)}
	case actionUpdate:
		updated, err := s.update(cmd.items[0])
		return result{items: []Item{updated}, err: err}
	case actionEat:
		left, err := s.eat(cmd.ids[0], cmd.amount)
		return result{items: []Item{left}, err: err}
	case actionDitch:
		idx := s.indexOf(cmd.ids[0])
		if idx < 0 {
			return result{err: ErrNotFound}
		}
		removed := s.removeAt(idx)
		s.record(removed, Ditched, removed.Amount)
		return result{items: []Item{removed}}
	case actionDitchExpired:
		return result{items: s.ditchExpired(cmd.at)}
	case actionDelete:
		removed, err := s.delete(cmd.ids)
		return result{items: removed, err: err}
	case actionRestock:
		restocked, err := s.restock(cmd.ids[0], cmd.amount, cmd.at)
		return result{items: []Item{restocked}, err: err}
	case actionHistory:
		return result{events: slices.Clone(s.history)}
	default:
		return result{err: fmt.Errorf("unknown inventory action %d", cmd.action)}
	}
}

// insert validates the whole batch before storing any of it.
func (s *Service) insert(batch []Item) ([]Item, error) {
	seen := make(map[string]bool, len(batch))
	prepared := make([]Item, 0, len(batch))
	for _, item := range batch {
		if err := validate(item); err != nil {
			return nil, err
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if seen[item.ID] || s.indexOf(item.ID) >= 0 {
			return nil, newValidationError(fmt.Sprintf("duplicate item id %q", item.ID))
		}
		seen[item.ID] = true
		if item.CreatedAt.IsZero() {
			item.CreatedAt = s.clock().UTC()
		}
		prepared = append(prepared, item)
	}
	s.items = append(s.items, prepared...)
	return slices.Clone(prepared), nil
}

// update replaces an item in place, keeping its CreatedAt.
func (s *Service) update(item Item) (Item, error) {
	idx := s.indexOf(item.ID)
	if idx < 0 {
		return Item{}, ErrNotFound
	}
	if err := validate(item); err != nil {
		return Item{}, err
	}
	item.CreatedAt = s.items[idx].CreatedAt
	s.items[idx] = item
	return item, nil
}

// eat consumes qty units; qty <= 0 or anything above the stock eats it all.
func (s *Service) eat(id string, qty int) (Item, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Item{}, ErrNotFound
	}
	item := s.items[idx]
	if qty <= 0 || qty >= item.Amount {
		s.removeAt(idx)
		s.record(item, Eaten, item.Amount)
		item.Amount = 0
		return item, nil
	}
	s.items[idx].Amount -= qty
	s.record(item, Eaten, qty)
	return s.items[idx], nil
}

// ditchExpired moves every item expired at now into the history.
func (s *Service) ditchExpired(now time.Time) []Item {
	var removed []Item
	kept := s.items[:0]
	for _, item := range s.items {
		if item.DaysLeft(now) < 0 {
			removed = append(removed, item)
			s.record(item, Ditched, item.Amount)
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	return removed
}

// delete drops every id or none of them.
func (s *Service) delete(ids []string) ([]Item, error) {
	for _, id := range ids {
		if s.indexOf(id) < 0 {
			return nil, fmt.Errorf("delete %q: %w", id, ErrNotFound)
		}
	}
	removed := make([]Item, 0, len(ids))
	for _, id := range ids {
		if idx := s.indexOf(id); idx >= 0 {
			removed = append(removed, s.removeAt(idx))
		}
	}
	return removed, nil
}

// restock re-adds the last history entry for id under a fresh id.
func (s *Service) restock(id string, amount int, expireDate time.Time) (Item, error) {
	if amount <= 0 {
		return Item{}, newValidationError("restock amount must be positive")
	}
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].Item.ID != id {
			continue
		}
		item := s.history[i].Item
		item.ID = ""
		item.Amount = amount
		item.ExpireDate = expireDate
		item.CreatedAt = time.Time{}
		stored, err := s.insert([]Item{item})
		if err != nil {
			return Item{}, err
		}
		return stored[0], nil
	}
	return Item{}, ErrNotFound
}

// record appends an eaten or ditched event.
func (s *Service) record(item Item, outcome Outcome, amount int) {
	s.history = append(s.history, Event{Item: item, Outcome: outcome, Amount: amount, At: s.clock().UTC()})
}

// indexOf returns the position of id, or -1.
func (s *Service) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(it Item) bool { return it.ID == id })
}

// removeAt cuts the item at idx out of the list and returns it.
func (s *Service) removeAt(idx int) Item {
	removed := s.items[idx]
	s.items = slices.Delete(s.items, idx, idx+1)
	return removed
}

// validate checks labels against the catalog and the amount and date rules.
func validate(item Item) error {
	if err := catalog.Validate(item.MainCategory, item.SubCategory, item.Tag); err != nil {
		return wrapValidation(err)
	}
	if item.Amount < 0 {
		return newValidationError("amount must not be negative")
	}
	if item.ExpireDate.IsZero() {
		return newValidationError("expire date is required")
	}
	return nil
}

// send delivers cmd to the loop and waits for its reply.
func (s *Service) send(ctx context.Context, cmd command) (result, error) {
	cmd.reply = make(chan result, 1)

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case s.commands <- cmd:
	case <-ctx.Done():
		return result{}, ctx.Err()
	case <-s.quit:
		return result{}, errClosed
	case <-timer.C:
		return result{}, errQueueBusy
	}

	select {
	case res := <-cmd.reply:
		return res, res.err
	case <-ctx.Done():
		return result{}, ctx.Err()
	case <-timer.C:
		return result{}, errors.New("inventory request timed out")
	}
}

// Add stores a new item and returns it with its assigned identifier.
func (s *Service) Add(ctx context.Context, item Item) (Item, error) {
	res, err := s.send(ctx, command{action: actionAdd, items: []Item{item}})
	if err != nil {
		return Item{}, err
	}
	s.logger.Info("item added", zap.String("id", res.items[0].ID), zap.String("sub_category", item.SubCategory))
	return res.items[0], nil
}

// AddBatch stores all items or, when any of them is invalid, none.
func (s *Service) AddBatch(ctx context.Context, items []Item) ([]Item, error) {
	res, err := s.send(ctx, command{action: actionAdd, items: items})
	if err != nil {
		return nil, err
	}
	s.logger.Info("items added", zap.Int("count", len(res.items)))
	return res.items, nil
}

// Get returns a single item.
func (s *Service) Get(ctx context.Context, id string) (Item, error) {
	res, err := s.send(ctx, command{action: actionGet, ids: []string{id}})
	if err != nil {
		return Item{}, err
	}
	return res.items[0], nil
}

// List returns every item in insertion order.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	res, err := s.send(ctx, command{action: actionList})
	return res.items, err
}

// Update replaces the fields of an existing item. CreatedAt is preserved.
func (s *Service) Update(ctx context.Context, item Item) (Item, error) {
	res, err := s.send(ctx, command{action: actionUpdate, items: []Item{item}})
	if err != nil {
		return Item{}, err
	}
	s.logger.Info("item updated", zap.String("id", item.ID))
	return res.items[0], nil
}

// Eat consumes qty units of an item and returns what is left of it. When the
// stock reaches zero the item leaves the inventory and the returned item has
// Amount 0. A qty of zero or less eats everything.
func (s *Service) Eat(ctx context.Context, id string, qty int) (Item, error) {
	res, err := s.send(ctx, command{action: actionEat, ids: []string{id}, amount: qty})
	if err != nil {
		return Item{}, err
	}
	s.logger.Info("item eaten", zap.String("id", id), zap.Int("remaining", res.items[0].Amount))
	return res.items[0], nil
}

// Ditch discards an item entirely.
func (s *Service) Ditch(ctx context.Context, id string) (Item, error) {
	res, err := s.send(ctx, command{action: actionDitch, ids: []string{id}})
	if err != nil {
		return Item{}, err
	}
	s.logger.Info("item ditched", zap.String("id", id))
	return res.items[0], nil
}

// DitchExpired discards every item already expired at now.
func (s *Service) DitchExpired(ctx context.Context, now time.Time) ([]Item, error) {
	res, err := s.send(ctx, command{action: actionDitchExpired, at: now})
	if err != nil {
		return nil, err
	}
	s.logger.Info("expired items ditched", zap.Int("count", len(res.items)))
	return res.items, nil
}

// Delete removes items without recording them in the history.
func (s *Service) Delete(ctx context.Context, ids ...string) ([]Item, error) {
	res, err := s.send(ctx, command{action: actionDelete, ids: ids})
	if err != nil {
		return nil, err
	}
	s.logger.Info("items deleted", zap.Strings("ids", ids))
	return res.items, nil
}

// Restock brings back an item that was eaten or ditched, under a new id.
func (s *Service) Restock(ctx context.Context, id string, amount int, expireDate time.Time) (Item, error) {
	res, err := s.send(ctx, command{action: actionRestock, ids: []string{id}, amount: amount, at: expireDate})
	if err != nil {
		return Item{}, err
	}
	s.logger.Info("item restocked", zap.String("from", id), zap.String("id", res.items[0].ID))
	return res.items[0], nil
}

// History lists eaten and ditched events, oldest first.
func (s *Service) History(ctx context.Context) ([]Event, error) {
	res, err := s.send(ctx, command{action: actionHistory})
	return res.events, err
}

// Close stops the goroutine. Calls after Close fail with an error.
func (s *Service) Close() {
	s.once.Do(func() { close(s.quit) })
}
