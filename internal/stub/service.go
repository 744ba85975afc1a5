// Package stub is an in-process double of the remote game backend. It
// implements the response contract the suite asserts on and nothing more:
// it is what the suite runs against when no live backend is configured.
package stub

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/gameapi-e2e/internal/dependencies/clock"
	"github.com/mcoot/gameapi-e2e/internal/dependencies/random"
	"github.com/mcoot/gameapi-e2e/internal/model"
)

// Config holds stub backend settings
type Config struct {
	// Platforms are the registered platform ids; anything else is rejected
	Platforms   []int
	TokenLength int
}

// DefaultConfig returns the stub's default settings
func DefaultConfig() Config {
	return Config{
		Platforms:   []int{1, 2, 3},
		TokenLength: 32,
	}
}

// Service applies the backend rules on top of a Store
type Service struct {
	store  *Store
	clock  clock.Clock
	random random.Random
	logger *slog.Logger

	platforms   map[int]bool
	tokenLength int

	// serialises check-then-act sequences across store calls
	mu sync.Mutex
}

// NewService creates a new stub Service
func NewService(store *Store, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if len(cfg.Platforms) == 0 {
		cfg.Platforms = DefaultConfig().Platforms
	}
	if cfg.TokenLength <= 0 {
		cfg.TokenLength = DefaultConfig().TokenLength
	}

	platforms := make(map[int]bool, len(cfg.Platforms))
	for _, p := range cfg.Platforms {
		platforms[p] = true
	}

	return &Service{
		store:       store,
		clock:       clk,
		random:      rnd,
		logger:      logger,
		platforms:   platforms,
		tokenLength: cfg.TokenLength,
	}
}

// Store exposes the underlying state for inspection in tests
func (s *Service) Store() *Store {
	return s.store
}

// OpenSession creates a player and its first session for a device
func (s *Service) OpenSession(ctx context.Context, device string, platform int, version, region string) (*model.Player, *model.Session, error) {
	if !s.platforms[platform] {
		return nil, nil, model.ErrInvalidPlatform
	}

	now := s.clock.Now()
	player := &model.Player{
		ID:        model.PlayerID(uuid.NewString()),
		Device:    device,
		Nickname:  device,
		Token:     s.newToken(),
		Platform:  platform,
		CreatedAt: now,
		UpdatedAt: now,
	}
	session := &model.Session{
		ID:       model.SessionID(uuid.NewString()),
		PlayerID: player.ID,
		Device:   device,
		Platform: platform,
		Version:  version,
		Region:   region,
		OpenedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.SavePlayer(player)
	s.store.SaveSession(session)

	s.logger.Info("session opened",
		slog.String("player_id", string(player.ID)),
		slog.String("session_id", string(session.ID)),
		slog.Int("platform", platform),
	)
	return player, session, nil
}

// SetNick changes a player's nickname. Setting the current nickname again
// succeeds and changes nothing.
func (s *Service) SetNick(ctx context.Context, playerID model.PlayerID, nickname string) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.store.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}
	if player.Nickname != nickname {
		player.Nickname = nickname
		player.UpdatedAt = s.clock.Now()
		s.store.SavePlayer(player)
	}
	return player, nil
}

// StartTournament enters a player, via one of its open sessions, into a new tournament
func (s *Service) StartTournament(ctx context.Context, playerID model.PlayerID, sessionID model.SessionID, tournamentID model.TournamentID) (*model.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetPlayer(playerID); err != nil {
		return nil, err
	}
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.PlayerID != playerID {
		return nil, model.ErrSessionNotFound
	}
	if !session.Open() {
		return nil, model.ErrSessionClosed
	}
	if _, err := s.store.GetTournament(tournamentID); err == nil {
		return nil, model.ErrTournamentActive
	}

	tournament := &model.Tournament{
		ID:        tournamentID,
		PlayerID:  playerID,
		SessionID: sessionID,
		StartedAt: s.clock.Now(),
	}
	s.store.SaveTournament(tournament)

	s.logger.Info("tournament started",
		slog.String("tournament_id", string(tournamentID)),
		slog.String("player_id", string(playerID)),
	)
	return tournament, nil
}

// EndTournament ends an active tournament
func (s *Service) EndTournament(ctx context.Context, tournamentID model.TournamentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteTournament(tournamentID); err != nil {
		return err
	}
	s.logger.Info("tournament ended", slog.String("tournament_id", string(tournamentID)))
	return nil
}

// DeleteLeaderboards drops every leaderboard. It always succeeds, including
// while tournaments are running.
func (s *Service) DeleteLeaderboards(ctx context.Context) int {
	generation := s.store.ResetLeaderboards()
	s.logger.Info("leaderboards deleted", slog.Int("generation", generation))
	return generation
}

// RefreshPlayer issues the player a new token
func (s *Service) RefreshPlayer(ctx context.Context, playerID model.PlayerID) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.store.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}
	player.Token = s.newToken()
	player.UpdatedAt = s.clock.Now()
	s.store.SavePlayer(player)
	return player, nil
}

// CloseSession closes an open session and returns its owner with their token
func (s *Service) CloseSession(ctx context.Context, sessionID model.SessionID) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Open() {
		return nil, model.ErrSessionClosed
	}
	player, err := s.store.GetPlayer(session.PlayerID)
	if err != nil {
		return nil, err
	}

	closedAt := s.clock.Now()
	session.ClosedAt = &closedAt
	s.store.SaveSession(session)
	return player, nil
}

// DeletePlayer removes a player and its sessions
func (s *Service) DeletePlayer(ctx context.Context, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeletePlayer(playerID); err != nil {
		return err
	}
	s.logger.Info("player deleted", slog.String("player_id", string(playerID)))
	return nil
}

func (s *Service) newToken() string {
	return random.Characters(s.random, s.tokenLength)
}
