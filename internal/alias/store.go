package alias

import (
	"sync"
	"time"
)

// NameRecord is one historical username or nickname.
type NameRecord struct {
	Value string
	At    time.Time
}

// AvatarRecord points at an archived avatar in the storage backend.
type AvatarRecord struct {
	Path string
	At   time.Time
}

// History is everything recorded about one member in one guild.
type History struct {
	Usernames []NameRecord
	Nicknames []NameRecord
	Avatars   []AvatarRecord
	Alts      []string
}

type memberKey struct {
	guildID string
	userID  string
}

// MemoryStore keeps alias history in memory. The durable variant lives
// behind the same methods in the persistence layer; the journal core never
// touches either directly.
type MemoryStore struct {
	mu      sync.RWMutex
	members map[memberKey]*History
	alts    map[string]map[string]map[string]struct{} // guildID -> userID -> alt set
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		members: make(map[memberKey]*History),
		alts:    make(map[string]map[string]map[string]struct{}),
	}
}

func (s *MemoryStore) history(guildID, userID string) *History {
	key := memberKey{guildID: guildID, userID: userID}
	h, ok := s.members[key]
	if !ok {
		h = &History{}
		s.members[key] = h
	}
	return h
}

// AddUsername records a past username.
func (s *MemoryStore) AddUsername(guildID, userID, name string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.history(guildID, userID)
	h.Usernames = append(h.Usernames, NameRecord{Value: name, At: at})
}

// AddNickname records a past nickname.
func (s *MemoryStore) AddNickname(guildID, userID, nick string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.history(guildID, userID)
	h.Nicknames = append(h.Nicknames, NameRecord{Value: nick, At: at})
}

// AddAvatar records an archived avatar location.
func (s *MemoryStore) AddAvatar(guildID, userID, path string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.history(guildID, userID)
	h.Avatars = append(h.Avatars, AvatarRecord{Path: path, At: at})
}

// AddAlt marks two users as suspected alternate accounts of each other.
func (s *MemoryStore) AddAlt(guildID, first, second string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guild, ok := s.alts[guildID]
	if !ok {
		guild = make(map[string]map[string]struct{})
		s.alts[guildID] = guild
	}
	link := func(a, b string) {
		set, ok := guild[a]
		if !ok {
			set = make(map[string]struct{})
			guild[a] = set
		}
		set[b] = struct{}{}
	}
	link(first, second)
	link(second, first)
}

// ClearAlts removes every alt association involving the user.
func (s *MemoryStore) ClearAlts(guildID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guild, ok := s.alts[guildID]
	if !ok {
		return
	}
	for other := range guild[userID] {
		delete(guild[other], userID)
	}
	delete(guild, userID)
}

// Aliases returns a copy of the recorded history for a member.
func (s *MemoryStore) Aliases(guildID, userID string) History {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := History{}
	if h, ok := s.members[memberKey{guildID: guildID, userID: userID}]; ok {
		out.Usernames = append(out.Usernames, h.Usernames...)
		out.Nicknames = append(out.Nicknames, h.Nicknames...)
		out.Avatars = append(out.Avatars, h.Avatars...)
	}
	if guild, ok := s.alts[guildID]; ok {
		for alt := range guild[userID] {
			out.Alts = append(out.Alts, alt)
		}
	}
	return out
}
