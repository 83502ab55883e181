package state

import (
	"encoding/json"

	"github.com/magcp/community/internal/models"
	"github.com/magcp/community/internal/store"
)

// Persistence glue. Each store serializes as one JSON snapshot under its own
// key; the route is a plain string. Write failures are logged and otherwise
// ignored so a full disk or broken store never takes the app down, and load
// failures fall back to the defaults.

func (s *State) persistUsersLocked() {
	s.persistJSON(store.KeyUsers, s.users)
}

func (s *State) persistMessagesLocked() {
	s.persistJSON(store.KeyMessages, s.messages)
}

func (s *State) persistSessionLocked() {
	s.persistJSON(store.KeyAuth, s.session)
}

func (s *State) persistRouteLocked() {
	if err := s.kv.Set(store.KeyRoute, s.route); err != nil {
		s.log.Error().Err(err).Str("key", store.KeyRoute).Msg("persist failed")
	}
}

func (s *State) persistJSON(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("encode snapshot failed")
		return
	}
	if err := s.kv.Set(key, string(raw)); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("persist failed")
	}
}

func (s *State) loadUsers() []models.User {
	raw, ok, err := s.kv.Get(store.KeyUsers)
	if err != nil || !ok {
		s.warnLoad(store.KeyUsers, err)
		return seedUsers()
	}
	var users []models.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		s.log.Warn().Err(err).Str("key", store.KeyUsers).Msg("corrupt snapshot, reseeding")
		return seedUsers()
	}
	return users
}

func (s *State) loadMessages() []models.Message {
	raw, ok, err := s.kv.Get(store.KeyMessages)
	if err != nil || !ok {
		s.warnLoad(store.KeyMessages, err)
		return nil
	}
	var messages []models.Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		s.log.Warn().Err(err).Str("key", store.KeyMessages).Msg("corrupt snapshot, starting empty")
		return nil
	}
	return messages
}

func (s *State) loadSession() *models.User {
	raw, ok, err := s.kv.Get(store.KeyAuth)
	if err != nil || !ok {
		s.warnLoad(store.KeyAuth, err)
		return nil
	}
	var session *models.User
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.log.Warn().Err(err).Str("key", store.KeyAuth).Msg("corrupt snapshot, signing out")
		return nil
	}
	return session
}

func (s *State) loadRoute() string {
	raw, ok, err := s.kv.Get(store.KeyRoute)
	if err != nil || !ok || raw == "" {
		s.warnLoad(store.KeyRoute, err)
		return models.RouteAuth
	}
	return raw
}

func (s *State) warnLoad(key string, err error) {
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("load failed, using default")
	}
}
