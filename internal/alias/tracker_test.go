package alias_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenbot/warden/internal/alias"
	"github.com/wardenbot/warden/internal/journal"
	"github.com/wardenbot/warden/internal/platform"
	"github.com/wardenbot/warden/internal/storage"
	"github.com/wardenbot/warden/internal/testutils"
)

// recorder captures every journal event under its subtree.
type recorder struct {
	mu     sync.Mutex
	events []journal.Event
}

func (r *recorder) Path() string                          { return "/alias" }
func (r *recorder) Recursive() bool                       { return true }
func (r *recorder) Filter(ev journal.Event) (bool, error) { return true, nil }

func (r *recorder) Handle(_ context.Context, ev journal.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) received() []journal.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]journal.Event(nil), r.events...)
}

func newTestTracker(t *testing.T, fetch alias.Fetcher) (*alias.Tracker, *recorder) {
	t.Helper()
	router := journal.NewRouter(nil)
	rec := &recorder{}
	require.NoError(t, router.Register(rec))
	tracker := alias.NewTracker(router.Broadcaster("/alias"), alias.NewMemoryStore(), storage.NewMemStore(), fetch)
	return tracker, rec
}

func TestMemberUpdate(t *testing.T) {
	ctx := context.Background()
	guild := testutils.NewGuild("g1", "Test Guild", "mod-log")

	t.Run("username change is recorded and journaled", func(t *testing.T) {
		tracker, rec := newTestTracker(t, nil)

		before := platform.Member{UserID: "u1", Username: "OldName", Guild: guild}
		after := platform.Member{UserID: "u1", Username: "NewName", Guild: guild}
		require.NoError(t, tracker.MemberUpdate(ctx, before, after))

		events := rec.received()
		require.Len(t, events, 1)
		assert.Equal(t, "/alias/member/update", events[0].Path)
		assert.Contains(t, events[0].Content, "name: NewName")
		icon, ok := events[0].Attrs.Icon()
		require.True(t, ok)
		assert.Equal(t, "person", icon)

		history := tracker.Aliases(guild, "u1")
		require.Len(t, history.Usernames, 1)
		assert.Equal(t, "NewName", history.Usernames[0].Value)
	})

	t.Run("avatar change is archived", func(t *testing.T) {
		fetched := false
		fetch := func(ctx context.Context, url string) ([]byte, error) {
			fetched = true
			return []byte("pixels"), nil
		}
		tracker, rec := newTestTracker(t, fetch)

		before := platform.Member{UserID: "u1", Username: "Name", AvatarURL: "https://cdn/avatars/old.png", Guild: guild}
		after := platform.Member{UserID: "u1", Username: "Name", AvatarURL: "https://cdn/avatars/new.png", Guild: guild}
		require.NoError(t, tracker.MemberUpdate(ctx, before, after))

		assert.True(t, fetched)
		require.Len(t, rec.received(), 1)
		assert.Contains(t, rec.received()[0].Content, "avatar: https://cdn/avatars/new.png")

		history := tracker.Aliases(guild, "u1")
		require.Len(t, history.Avatars, 1)
		assert.NotEmpty(t, history.Avatars[0].Path)
	})

	t.Run("failed avatar fetch records nothing", func(t *testing.T) {
		fetch := func(ctx context.Context, url string) ([]byte, error) {
			return nil, errors.New("cdn unreachable")
		}
		tracker, rec := newTestTracker(t, fetch)

		before := platform.Member{UserID: "u1", Username: "OldName", AvatarURL: "https://cdn/avatars/old.png", Guild: guild}
		after := platform.Member{UserID: "u1", Username: "NewName", Nickname: "Nick", AvatarURL: "https://cdn/avatars/new.png", Guild: guild}
		require.Error(t, tracker.MemberUpdate(ctx, before, after))

		assert.Empty(t, rec.received())
		history := tracker.Aliases(guild, "u1")
		assert.Empty(t, history.Usernames)
		assert.Empty(t, history.Nicknames)
		assert.Empty(t, history.Avatars)
	})

	t.Run("no changes produce no event", func(t *testing.T) {
		tracker, rec := newTestTracker(t, nil)

		member := platform.Member{UserID: "u1", Username: "Same", Guild: guild}
		require.NoError(t, tracker.MemberUpdate(ctx, member, member))
		assert.Empty(t, rec.received())
	})

	t.Run("cleared nickname is not recorded", func(t *testing.T) {
		tracker, rec := newTestTracker(t, nil)

		before := platform.Member{UserID: "u1", Username: "Name", Nickname: "Nick", Guild: guild}
		after := platform.Member{UserID: "u1", Username: "Name", Nickname: "", Guild: guild}
		require.NoError(t, tracker.MemberUpdate(ctx, before, after))

		assert.Empty(t, rec.received())
		assert.Empty(t, tracker.Aliases(guild, "u1").Nicknames)
	})
}

func TestAlts(t *testing.T) {
	ctx := context.Background()
	guild := testutils.NewGuild("g1", "Test Guild", "mod-log")

	first := platform.Member{UserID: "u1", Username: "X", Guild: guild}
	second := platform.Member{UserID: "u2", Username: "Y", Guild: guild}

	t.Run("add links both directions and journals", func(t *testing.T) {
		tracker, rec := newTestTracker(t, nil)
		tracker.AddAlt(ctx, guild, first, second)

		events := rec.received()
		require.Len(t, events, 1)
		assert.Equal(t, "/alias/alt/add", events[0].Path)
		assert.Equal(t, "Added X and Y as possible alt accounts.", events[0].Content)
		icon, _ := events[0].Attrs.Icon()
		assert.Equal(t, "item_add", icon)

		assert.Equal(t, []string{"u2"}, tracker.Aliases(guild, "u1").Alts)
		assert.Equal(t, []string{"u1"}, tracker.Aliases(guild, "u2").Alts)
	})

	t.Run("clear removes the chain and journals", func(t *testing.T) {
		tracker, rec := newTestTracker(t, nil)
		tracker.AddAlt(ctx, guild, first, second)
		tracker.ClearAlts(ctx, guild, first)

		events := rec.received()
		require.Len(t, events, 2)
		assert.Equal(t, "/alias/alt/clear", events[1].Path)
		icon, _ := events[1].Attrs.Icon()
		assert.Equal(t, "item_clear", icon)

		assert.Empty(t, tracker.Aliases(guild, "u1").Alts)
		assert.Empty(t, tracker.Aliases(guild, "u2").Alts)
	})
}
