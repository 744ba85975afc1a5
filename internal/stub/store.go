package stub

import (
	"sync"

	"github.com/mcoot/gameapi-e2e/internal/model"
)

// Store holds the stub backend's state in memory.
// Callers needing check-then-act atomicity hold Service.mu; Store only
// guarantees each method is individually safe.
type Store struct {
	mu sync.RWMutex

	players     map[model.PlayerID]*model.Player
	sessions    map[model.SessionID]*model.Session
	tournaments map[model.TournamentID]*model.Tournament

	// leaderboardGeneration counts deleteLeaderboards calls
	leaderboardGeneration int
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		players:     make(map[model.PlayerID]*model.Player),
		sessions:    make(map[model.SessionID]*model.Session),
		tournaments: make(map[model.TournamentID]*model.Tournament),
	}
}

func (s *Store) SavePlayer(p *model.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *p
	s.players[p.ID] = &stored
}

func (s *Store) GetPlayer(id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	out := *p
	return &out, nil
}

// DeletePlayer removes the player and every session it owns
func (s *Store) DeletePlayer(id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[id]; !ok {
		return model.ErrPlayerNotFound
	}
	delete(s.players, id)
	for sid, sess := range s.sessions {
		if sess.PlayerID == id {
			delete(s.sessions, sid)
		}
	}
	return nil
}

// PlayerCount returns the number of live players
func (s *Store) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

func (s *Store) SaveSession(sess *model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *sess
	s.sessions[sess.ID] = &stored
}

func (s *Store) GetSession(id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	out := *sess
	return &out, nil
}

func (s *Store) SaveTournament(t *model.Tournament) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *t
	s.tournaments[t.ID] = &stored
}

func (s *Store) GetTournament(id model.TournamentID) (*model.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tournaments[id]
	if !ok {
		return nil, model.ErrTournamentNotFound
	}
	out := *t
	return &out, nil
}

func (s *Store) DeleteTournament(id model.TournamentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tournaments[id]; !ok {
		return model.ErrTournamentNotFound
	}
	delete(s.tournaments, id)
	return nil
}

// TournamentCount returns the number of active tournaments
func (s *Store) TournamentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tournaments)
}

// ResetLeaderboards drops every leaderboard and returns the new generation
func (s *Store) ResetLeaderboards() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaderboardGeneration++
	return s.leaderboardGeneration
}
