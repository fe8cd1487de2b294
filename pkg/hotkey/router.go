package hotkey

import (
	"sync"

	"go.uber.org/zap"

	"tableflip.dev/deck/pkg/logging"
	"tableflip.dev/deck/pkg/profile"
	"tableflip.dev/deck/pkg/tile"
)

// Trigger asks for a tile to be dispatched.
type Trigger struct {
	TileID string
	Combo  string
}

// Binding is one registered tile hotkey.
type Binding struct {
	Combo  string
	TileID string
	Name   string
}

// Router keeps a Registrar in step with the hotkeys of a profile.
type Router struct {
	registrar Registrar
	handler   func(Trigger)
	logger    *zap.Logger

	mu       sync.Mutex
	bindings []Binding
}

// NewRouter returns a Router emitting triggers to handler.
func NewRouter(r Registrar, handler func(Trigger), logger *zap.Logger) *Router {
	return &Router{registrar: r, handler: handler, logger: logging.OrNop(logger)}
}

// Register drops every binding and binds each tile of p that declares a
// hotkey, walking the whole tree. A binding that fails is logged and the
// walk continues. It returns the number of bindings made.
func (r *Router) Register(p *profile.Profile) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.registrar.UnregisterAll()
	r.bindings = nil
	if p == nil {
		return 0
	}
	tile.Walk(p.Tiles, func(t *tile.Tile, _ *tile.Tile) bool {
		if t.Hotkey == "" {
			return true
		}
		combo, err := Normalize(t.Hotkey)
		if err != nil {
			r.logger.Warn("hotkey not bound", zap.String("tile", t.ID), zap.String("hotkey", t.Hotkey), zap.Error(err))
			return true
		}
		id := t.ID
		fire := func() {
			if r.handler != nil {
				r.handler(Trigger{TileID: id, Combo: combo})
			}
		}
		if err := r.registrar.Register(combo, fire); err != nil {
			r.logger.Warn("hotkey not bound", zap.String("tile", id), zap.String("hotkey", combo), zap.Error(err))
			return true
		}
		r.bindings = append(r.bindings, Binding{Combo: combo, TileID: id, Name: t.Name})
		return true
	})
	return len(r.bindings)
}

// Bindings returns what the last Register bound, in walk order.
func (r *Router) Bindings() []Binding {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Binding(nil), r.bindings...)
}
