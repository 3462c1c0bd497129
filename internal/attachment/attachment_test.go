package attachment_test

import (
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenbot/warden/internal/attachment"
)

// onceReader fails the test if read again after exhaustion, mimicking a
// live download body.
type onceReader struct {
	r    io.Reader
	done bool
	t    *testing.T
}

func (o *onceReader) Read(p []byte) (int, error) {
	if o.done {
		o.t.Error("source read after exhaustion")
		return 0, io.EOF
	}
	n, err := o.r.Read(p)
	if err == io.EOF {
		o.done = true
	}
	return n, err
}

func readAll(t *testing.T, f *attachment.File) string {
	t.Helper()
	rc, err := f.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestDuplicate(t *testing.T) {
	t.Run("N duplicates are independently readable", func(t *testing.T) {
		f := attachment.New("avatar.png", strings.NewReader("avatar-bytes"))

		dups := make([]*attachment.File, 3)
		for i := range dups {
			dup, err := f.Duplicate()
			require.NoError(t, err)
			dups[i] = dup
		}

		// Consume in reverse order; every copy still reads fully.
		for i := len(dups) - 1; i >= 0; i-- {
			assert.Equal(t, "avatar-bytes", readAll(t, dups[i]))
			assert.Equal(t, "avatar.png", dups[i].Name())
		}

		// The original stays readable too.
		assert.Equal(t, "avatar-bytes", readAll(t, f))
	})

	t.Run("reading one copy does not drain another", func(t *testing.T) {
		f := attachment.New("report.txt", strings.NewReader("contents"))
		first, err := f.Duplicate()
		require.NoError(t, err)
		second, err := f.Duplicate()
		require.NoError(t, err)

		assert.Equal(t, "contents", readAll(t, first))
		assert.Equal(t, "contents", readAll(t, second))
		assert.Equal(t, "contents", readAll(t, first))
	})

	t.Run("source reader is consumed at most once", func(t *testing.T) {
		src := &onceReader{r: strings.NewReader("payload"), t: t}
		f := attachment.New("one-shot.bin", src)

		for i := 0; i < 4; i++ {
			dup, err := f.Duplicate()
			require.NoError(t, err)
			assert.Equal(t, "payload", readAll(t, dup))
		}
	})
}

func TestOpenYieldsFreshCursors(t *testing.T) {
	f := attachment.FromBytes("data.bin", []byte("0123456789"))

	r1, err := f.Open()
	require.NoError(t, err)
	r2, err := f.Open()
	require.NoError(t, err)

	buf := make([]byte, 4)
	_, err = io.ReadFull(r1, buf)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(buf))

	all, err := io.ReadAll(r2)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(all))
}

func TestNoSource(t *testing.T) {
	f := attachment.New("empty", nil)
	_, err := f.Open()
	assert.ErrorIs(t, err, attachment.ErrNoSource)
}

func TestFromFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "archive/avatars/u1.png", []byte("pixels"), 0644))

	f, err := attachment.FromFs(fs, "archive/avatars/u1.png")
	require.NoError(t, err)
	assert.Equal(t, "u1.png", f.Name())
	assert.Equal(t, "pixels", readAll(t, f))

	_, err = attachment.FromFs(fs, "archive/missing.png")
	assert.Error(t, err)
}
