package room

import "github.com/numguess/numguess/internal/model"

// registry is the set of live connections. It has no lock of its own: the
// Controller's single lock guards every call.
type registry struct {
	conns map[model.Conn]struct{}
}

func newRegistry() *registry {
	return &registry{conns: make(map[model.Conn]struct{})}
}

func (r *registry) add(conn model.Conn) {
	r.conns[conn] = struct{}{}
}

func (r *registry) remove(conn model.Conn) {
	delete(r.conns, conn)
}

// snapshot copies the current membership, minus excluding when non-nil,
// so callers can send outside the lock
func (r *registry) snapshot(excluding model.Conn) []model.Conn {
	out := make([]model.Conn, 0, len(r.conns))
	for conn := range r.conns {
		if conn == excluding {
			continue
		}
		out = append(out, conn)
	}
	return out
}

func (r *registry) len() int {
	return len(r.conns)
}
