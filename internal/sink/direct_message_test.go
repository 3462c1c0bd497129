package sink_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenbot/warden/internal/attachment"
	"github.com/wardenbot/warden/internal/journal"
	"github.com/wardenbot/warden/internal/platform"
	"github.com/wardenbot/warden/internal/sink"
	"github.com/wardenbot/warden/internal/testutils"
)

func readFile(t *testing.T, f *attachment.File) string {
	t.Helper()
	rc, err := f.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestDirectMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("labels content with the guild name", func(t *testing.T) {
		user := testutils.NewUser("operator")
		guild := testutils.NewGuild("g1", "Test Guild", "mod-log")

		r := journal.NewRouter(nil)
		require.NoError(t, r.Register(sink.NewDirectMessage("/alts", true, user)))

		r.Publish(ctx, "/alts/add", guild, "Added X and Y", journal.Attributes{"icon": "item_add"})

		sent := user.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, "[Test Guild] Added X and Y", sent[0].Content)
	})

	t.Run("scope-less events are delivered unlabeled", func(t *testing.T) {
		user := testutils.NewUser("operator")

		r := journal.NewRouter(nil)
		require.NoError(t, r.Register(sink.NewDirectMessage("/internal", true, user)))

		r.Publish(ctx, "/internal/restart", nil, "Bot restarting", nil)

		sent := user.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, "Bot restarting", sent[0].Content)
	})

	t.Run("forwards the embed verbatim", func(t *testing.T) {
		user := testutils.NewUser("operator")
		embed := &platform.Embed{Title: "Alias report"}

		s := sink.NewDirectMessage("/alias", true, user)
		require.NoError(t, s.Handle(ctx, journal.Event{
			Path:    "/alias/report",
			Content: "report",
			Attrs:   journal.Attributes{"embed": embed},
		}))

		sent := user.Sent()
		require.Len(t, sent, 1)
		assert.Same(t, embed, sent[0].Embed)
	})

	t.Run("duplicates a single attachment", func(t *testing.T) {
		user := testutils.NewUser("operator")
		f := attachment.New("avatar.png", strings.NewReader("pixels"))

		s := sink.NewDirectMessage("/alias", true, user)
		require.NoError(t, s.Handle(ctx, journal.Event{
			Path:    "/alias/avatar",
			Content: "avatar changed",
			Attrs:   journal.Attributes{"file": f},
		}))

		sent := user.Sent()
		require.Len(t, sent, 1)
		require.Len(t, sent[0].Files, 1)
		delivered := sent[0].Files[0]
		assert.NotSame(t, f, delivered)
		assert.Equal(t, "avatar.png", delivered.Name())
		assert.Equal(t, "pixels", readFile(t, delivered))

		// The original handle is still fully readable.
		assert.Equal(t, "pixels", readFile(t, f))
	})

	t.Run("two sinks get independent copies of the same files", func(t *testing.T) {
		first := testutils.NewUser("op-one")
		second := testutils.NewUser("op-two")
		guild := testutils.NewGuild("g1", "Test Guild", "mod-log")

		f1 := attachment.New("a.png", strings.NewReader("first-bytes"))
		f2 := attachment.New("b.png", strings.NewReader("second-bytes"))

		r := journal.NewRouter(nil)
		require.NoError(t, r.Register(sink.NewDirectMessage("/alias", true, first)))
		require.NoError(t, r.Register(sink.NewDirectMessage("/alias", true, second)))

		r.Publish(ctx, "/alias/avatars", guild, "avatars", journal.Attributes{
			"files": []*attachment.File{f1, f2},
		})

		for _, user := range []*testutils.User{first, second} {
			sent := user.Sent()
			require.Len(t, sent, 1, "user %s", user.UserID)
			require.Len(t, sent[0].Files, 2)
			assert.Equal(t, "a.png", sent[0].Files[0].Name())
			assert.Equal(t, "first-bytes", readFile(t, sent[0].Files[0]))
			assert.Equal(t, "b.png", sent[0].Files[1].Name())
			assert.Equal(t, "second-bytes", readFile(t, sent[0].Files[1]))
		}
	})

	t.Run("nil recipient is rejected at registration", func(t *testing.T) {
		r := journal.NewRouter(nil)
		err := r.Register(sink.NewDirectMessage("/alts", true, nil))
		assert.ErrorIs(t, err, journal.ErrMisconfiguredListener)
	})
}
