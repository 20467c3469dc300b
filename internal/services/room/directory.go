package room

import (
	"sort"

	"github.com/numguess/numguess/internal/model"
)

// directory maps player names to live players. Like the registry it is
// guarded by the Controller's single lock.
type directory struct {
	players map[string]*model.Player
}

func newDirectory() *directory {
	return &directory{players: make(map[string]*model.Player)}
}

// add enforces the two uniqueness rules: one player per name, one player
// per connection
func (d *directory) add(p *model.Player) error {
	if _, ok := d.players[p.Name]; ok {
		return model.ErrNameTaken
	}
	for _, existing := range d.players {
		if existing.Conn == p.Conn {
			return model.ErrAlreadyJoined
		}
	}
	d.players[p.Name] = p
	return nil
}

func (d *directory) get(name string) *model.Player {
	return d.players[name]
}

func (d *directory) byConn(conn model.Conn) *model.Player {
	for _, p := range d.players {
		if p.Conn == conn {
			return p
		}
	}
	return nil
}

func (d *directory) remove(name string) {
	delete(d.players, name)
}

// leaderboard sorts by score descending, name ascending on ties
func (d *directory) leaderboard() []model.ScoreEntry {
	entries := make([]model.ScoreEntry, 0, len(d.players))
	for _, p := range d.players {
		entries = append(entries, model.ScoreEntry{Name: p.Name, Score: p.Score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

func (d *directory) resetGuesses() {
	for _, p := range d.players {
		p.Guesses = 0
	}
}

func (d *directory) len() int {
	return len(d.players)
}
