package storage

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"placar-backend/images"
	"placar-backend/models"
)

const (
	// With more than shrinkTeamThreshold teams, only the most recent
	// shrinkMatchKeep matches survive a cleanup; shields above
	// shieldSizeThreshold encoded bytes get thumbnailed.
	shrinkTeamThreshold = 10
	shrinkMatchKeep     = 50

	shieldSizeThreshold = 50_000
	thumbnailSize       = 100
	thumbnailQuality    = 50
)

// shrinkMatchLog is the synchronous half of the cleanup policy: when the
// league carries many teams, the match log is truncated to the most
// recently appended matches.
func (s *Service) shrinkMatchLog(data *models.AppData) {
	if len(data.Teams) <= shrinkTeamThreshold || len(data.Matches) <= shrinkMatchKeep {
		return
	}
	kept := make([]models.Match, shrinkMatchKeep)
	copy(kept, data.Matches[len(data.Matches)-shrinkMatchKeep:])
	data.Matches = kept
	logrus.WithField("kept", shrinkMatchKeep).Info("truncated match log to fit storage")
}

// scheduleShieldShrink is the asynchronous half: oversized shield images
// are re-encoded as small JPEG thumbnails in the background. The save
// that triggered it never waits for the result, so that save may still
// fail on capacity; the compacted snapshot is written once the task
// finishes and benefits later reads. Callers that care about completion
// watch ShrinkDone.
func (s *Service) scheduleShieldShrink(snapshot models.AppData) {
	oversized := 0
	for _, t := range snapshot.Teams {
		if len(t.Shield) > shieldSizeThreshold {
			oversized++
		}
	}
	if oversized == 0 {
		return
	}

	done := make(chan struct{})
	s.shrinkMu.Lock()
	s.shrinkDone = done
	s.shrinkMu.Unlock()

	go func() {
		defer close(done)
		s.compactShields(snapshot)
	}()
}

// ShrinkDone returns a channel that closes when the most recently
// scheduled shield compaction finishes. If none is pending the returned
// channel is already closed.
func (s *Service) ShrinkDone() <-chan struct{} {
	s.shrinkMu.Lock()
	defer s.shrinkMu.Unlock()
	if s.shrinkDone == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return s.shrinkDone
}

func (s *Service) compactShields(data models.AppData) {
	changed := false
	for i := range data.Teams {
		if len(data.Teams[i].Shield) <= shieldSizeThreshold {
			continue
		}
		thumb, err := images.CompressDataURI(data.Teams[i].Shield, thumbnailSize, thumbnailSize, thumbnailQuality)
		if err != nil {
			logrus.WithError(err).WithField("team", data.Teams[i].ID).Warn("could not compress shield")
			continue
		}
		data.Teams[i].Shield = thumb
		changed = true
	}
	if !changed {
		return
	}

	raw, err := json.Marshal(&data)
	if err != nil || len(raw) > s.capacity {
		logrus.Warn("compacted data still does not fit, dropping result")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(dataKey, string(raw)); err != nil {
		logrus.WithError(err).Error("failed to write compacted data")
		return
	}
	logrus.WithField("size", len(raw)).Info("shield compaction saved")
}
