// Package alias tracks member identity changes (usernames, nicknames,
// avatars) and suspected alternate accounts, journaling each change so the
// configured sinks see it. It is a journal producer: it only ever talks to
// the router through a broadcaster bound to its own path prefix.
package alias

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wardenbot/warden/internal/journal"
	"github.com/wardenbot/warden/internal/platform"
	"github.com/wardenbot/warden/internal/storage"
)

// Fetcher downloads the bytes behind a URL. Injected so the tracker stays
// independent of the HTTP client; a nil fetcher skips avatar archiving.
type Fetcher func(ctx context.Context, url string) ([]byte, error)

// Tracker records member identity changes and emits journal events for them.
type Tracker struct {
	journal *journal.Broadcaster
	store   *MemoryStore
	avatars storage.Store
	fetch   Fetcher
	logger  *slog.Logger
}

// NewTracker wires a tracker to its broadcaster (conventionally bound to
// /alias), history store and avatar archive.
func NewTracker(b *journal.Broadcaster, store *MemoryStore, avatars storage.Store, fetch Fetcher) *Tracker {
	return &Tracker{
		journal: b,
		store:   store,
		avatars: avatars,
		fetch:   fetch,
		logger:  slog.Default(),
	}
}

// MemberUpdate compares two snapshots of a member, records whatever changed,
// and journals a member/update event. A snapshot pair with no changes is a
// no-op. The avatar download happens before any history is written, so a
// failed fetch leaves no partial record and no journal event.
func (t *Tracker) MemberUpdate(ctx context.Context, before, after platform.Member) error {
	now := time.Now()
	guild := after.Guild

	usernameChanged := before.Username != after.Username
	nicknameChanged := before.Nickname != after.Nickname && after.Nickname != ""
	avatarChanged := before.AvatarURL != after.AvatarURL

	var avatarPath string
	if avatarChanged {
		path, err := t.archiveAvatar(ctx, guild.ID(), after.UserID, after.AvatarURL, now)
		if err != nil {
			return fmt.Errorf("archiving avatar for %s: %w", after.UserID, err)
		}
		avatarPath = path
	}

	var changed []string
	if usernameChanged {
		t.logger.Info("member changed username",
			"user_id", after.UserID, "from", before.Username, "to", after.Username)
		t.store.AddUsername(guild.ID(), after.UserID, after.Username, now)
		changed = append(changed, fmt.Sprintf("name: %s", after.Username))
	}

	if nicknameChanged {
		t.logger.Info("member changed nickname",
			"user_id", after.UserID, "from", before.Nickname, "to", after.Nickname)
		t.store.AddNickname(guild.ID(), after.UserID, after.Nickname, now)
		changed = append(changed, fmt.Sprintf("nick: %s", after.Nickname))
	}

	if avatarChanged {
		t.logger.Info("member changed avatar",
			"user_id", after.UserID, "url", after.AvatarURL)
		if avatarPath != "" {
			t.store.AddAvatar(guild.ID(), after.UserID, avatarPath, now)
		}
		changed = append(changed, fmt.Sprintf("avatar: %s", after.AvatarURL))
	}

	if len(changed) == 0 {
		return nil
	}

	content := fmt.Sprintf("Member %s was updated: %s", before.DisplayName(), strings.Join(changed, ", "))
	t.journal.Send(ctx, "member/update", guild, content, journal.Attributes{
		"icon":   "person",
		"before": before,
		"after":  after,
	})
	return nil
}

// archiveAvatar downloads the avatar and writes it to the archive, returning
// the archive path. It does not touch the history store.
func (t *Tracker) archiveAvatar(ctx context.Context, guildID, userID, url string, at time.Time) (string, error) {
	if t.fetch == nil {
		return "", nil
	}
	data, err := t.fetch(ctx, url)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("avatars/%s/%s/%d", guildID, userID, at.UnixNano())
	if _, err := t.avatars.Save(ctx, path, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return path, nil
}

// AddAlt records two members as suspected alternate accounts and journals
// the association.
func (t *Tracker) AddAlt(ctx context.Context, guild platform.Guild, first, second platform.Member) {
	t.logger.Info("adding suspected alt account pair",
		"first", first.UserID, "second", second.UserID, "guild", guild.ID())
	t.store.AddAlt(guild.ID(), first.UserID, second.UserID)

	content := fmt.Sprintf("Added %s and %s as possible alt accounts.",
		first.DisplayName(), second.DisplayName())
	t.journal.Send(ctx, "alt/add", guild, content, journal.Attributes{
		"icon":  "item_add",
		"users": []platform.Member{first, second},
	})
}

// ClearAlts removes every alt association for the member and journals it.
func (t *Tracker) ClearAlts(ctx context.Context, guild platform.Guild, member platform.Member) {
	t.store.ClearAlts(guild.ID(), member.UserID)

	content := fmt.Sprintf("Removed all alt accounts in %s's chain", member.DisplayName())
	t.journal.Send(ctx, "alt/clear", guild, content, journal.Attributes{
		"icon": "item_clear",
		"user": member,
	})
}

// Aliases returns the recorded history for a member.
func (t *Tracker) Aliases(guild platform.Guild, userID string) History {
	return t.store.Aliases(guild.ID(), userID)
}
