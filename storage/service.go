package storage

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"placar-backend/models"
)

const (
	// DefaultCapacity caps the serialized blob. Override per service
	// with MAX_STORAGE_BYTES.
	DefaultCapacity = 4 * 1024 * 1024

	dataKey  = "placar_data"
	usersKey = "placar_users"
)

// Service is the persistence gateway. All league state is read and
// written as one AppData blob; mutating helpers follow the same
// load-mutate-save shape throughout, and every one of them reports
// success as a boolean instead of propagating errors to callers.
//
// The store handle is injected, never a package global, so tests run
// against MemoryStore and deployments pick file or Postgres backends.
type Service struct {
	store    BlobStore
	capacity int

	mu sync.Mutex

	shrinkMu   sync.Mutex
	shrinkDone chan struct{}
}

func NewService(store BlobStore, capacity int) *Service {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Service{store: store, capacity: capacity}
}

// Load returns the last saved AppData. A missing or unparseable blob is
// treated as absence, not an error.
func (s *Service) Load() models.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Service) load() models.AppData {
	raw, ok, err := s.store.Get(dataKey)
	if err != nil {
		logrus.WithError(err).Warn("failed to read stored data, using defaults")
		return models.DefaultAppData()
	}
	if !ok {
		return models.DefaultAppData()
	}

	var data models.AppData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		logrus.WithError(err).Warn("stored data is corrupt, using defaults")
		return models.DefaultAppData()
	}
	normalize(&data)
	return data
}

// Save serializes data and replaces the stored blob. If the payload is
// over capacity it first truncates the match log (synchronously) and
// schedules the shield thumbnailing task (asynchronously, see shrink.go);
// if the payload still does not fit after the synchronous step the save
// fails and the previous blob is left untouched.
func (s *Service) Save(data models.AppData) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(&data)
}

func (s *Service) save(data *models.AppData) bool {
	normalize(data)

	raw, err := json.Marshal(data)
	if err != nil {
		logrus.WithError(err).Error("failed to serialize data")
		return false
	}

	if len(raw) > s.capacity {
		s.shrinkMatchLog(data)
		s.scheduleShieldShrink(*data)

		raw, err = json.Marshal(data)
		if err != nil {
			logrus.WithError(err).Error("failed to serialize shrunk data")
			return false
		}
		if len(raw) > s.capacity {
			logrus.WithFields(logrus.Fields{
				"size":     len(raw),
				"capacity": s.capacity,
			}).Warn("data exceeds storage capacity even after cleanup")
			return false
		}
	}

	if err := s.store.Set(dataKey, string(raw)); err != nil {
		logrus.WithError(err).Error("failed to write data")
		return false
	}
	return true
}

// GetTeams returns the stored teams. Their win/loss records may be stale;
// league.Rank recomputes them from the match log.
func (s *Service) GetTeams() []models.Team {
	return s.Load().Teams
}

// SaveTeam inserts or replaces a team by id.
func (s *Service) SaveTeam(team models.Team) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	replaced := false
	for i := range data.Teams {
		if data.Teams[i].ID == team.ID {
			data.Teams[i] = team
			replaced = true
			break
		}
	}
	if !replaced {
		data.Teams = append(data.Teams, team)
	}
	return s.save(&data)
}

// DeleteTeam removes a team and cascades to every match it appears in,
// home or away, so the match log never keeps dangling references.
func (s *Service) DeleteTeam(teamID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	teams := data.Teams[:0]
	found := false
	for _, t := range data.Teams {
		if t.ID == teamID {
			found = true
			continue
		}
		teams = append(teams, t)
	}
	if !found {
		return false
	}
	data.Teams = teams

	matches := data.Matches[:0]
	for _, m := range data.Matches {
		if m.HomeTeamID == teamID || m.AwayTeamID == teamID {
			continue
		}
		matches = append(matches, m)
	}
	data.Matches = matches

	return s.save(&data)
}

func (s *Service) AddPlayer(teamID string, player models.Player) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	for i := range data.Teams {
		if data.Teams[i].ID == teamID {
			data.Teams[i].Players = append(data.Teams[i].Players, player)
			return s.save(&data)
		}
	}
	return false
}

func (s *Service) UpdatePlayer(teamID string, player models.Player) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	for i := range data.Teams {
		if data.Teams[i].ID != teamID {
			continue
		}
		for j := range data.Teams[i].Players {
			if data.Teams[i].Players[j].ID == player.ID {
				data.Teams[i].Players[j] = player
				return s.save(&data)
			}
		}
		return false
	}
	return false
}

func (s *Service) DeletePlayer(teamID, playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	for i := range data.Teams {
		if data.Teams[i].ID != teamID {
			continue
		}
		players := data.Teams[i].Players[:0]
		found := false
		for _, p := range data.Teams[i].Players {
			if p.ID == playerID {
				found = true
				continue
			}
			players = append(players, p)
		}
		if !found {
			return false
		}
		data.Teams[i].Players = players
		return s.save(&data)
	}
	return false
}

func (s *Service) GetMatches() []models.Match {
	return s.Load().Matches
}

// SaveMatch inserts or replaces a match by id.
func (s *Service) SaveMatch(match models.Match) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	replaced := false
	for i := range data.Matches {
		if data.Matches[i].ID == match.ID {
			data.Matches[i] = match
			replaced = true
			break
		}
	}
	if !replaced {
		data.Matches = append(data.Matches, match)
	}
	return s.save(&data)
}

func (s *Service) AdminAuth() models.AdminAuth {
	return s.Load().AdminAuth
}

func (s *Service) SetAdminAuth(auth models.AdminAuth) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	data.AdminAuth = auth
	return s.save(&data)
}

// ExportSnapshot returns the full current state, pretty-printed.
func (s *Service) ExportSnapshot() (string, error) {
	raw, err := json.MarshalIndent(s.Load(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ImportSnapshot parses raw and, if it parses, replaces the entire stored
// state through the normal save path. A parse failure leaves the stored
// state untouched and returns false.
func (s *Service) ImportSnapshot(raw string) bool {
	var data models.AppData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		logrus.WithError(err).Warn("import rejected: not valid JSON")
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(&data)
}

// Reset deletes the stored blob; the next Load returns defaults.
func (s *Service) Reset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(dataKey); err != nil {
		logrus.WithError(err).Error("failed to reset data")
		return false
	}
	return true
}

type UsageInfo struct {
	UsedBytes     int     `json:"usedBytes"`
	CapacityBytes int     `json:"capacityBytes"`
	Percentage    float64 `json:"percentage"`
}

// UsageInfo reports the serialized size of the current data against the
// configured capacity. It is recomputed on every call, never cached.
func (s *Service) UsageInfo() UsageInfo {
	raw, err := json.Marshal(s.Load())
	if err != nil {
		return UsageInfo{CapacityBytes: s.capacity}
	}
	return UsageInfo{
		UsedBytes:     len(raw),
		CapacityBytes: s.capacity,
		Percentage:    float64(len(raw)) / float64(s.capacity) * 100,
	}
}

// normalize replaces nil collections with empty ones so serialized blobs
// always carry arrays, matching the exported snapshot format.
func normalize(data *models.AppData) {
	if data.Teams == nil {
		data.Teams = []models.Team{}
	}
	for i := range data.Teams {
		if data.Teams[i].Players == nil {
			data.Teams[i].Players = []models.Player{}
		}
	}
	if data.Matches == nil {
		data.Matches = []models.Match{}
	}
	for i := range data.Matches {
		if data.Matches[i].Events == nil {
			data.Matches[i].Events = []models.MatchEvent{}
		}
	}
}
