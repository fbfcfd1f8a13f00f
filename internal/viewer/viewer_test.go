package viewer

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/chatdock/internal/chatlog"
	"github.com/five82/chatdock/internal/settings"
	"github.com/five82/chatdock/internal/watch"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func writeChat(t *testing.T, fs afero.Fs, path string, n int, mtime time.Time) {
	t.Helper()
	entries := make([][]string, n)
	for i := range entries {
		entries[i] = []string{"", fmt.Sprintf("u%d", i), fmt.Sprintf("m%d", i)}
	}
	data, err := json.Marshal(map[string]any{"chat": entries})
	require.NoError(t, err)
	writeRaw(t, fs, path, string(data), mtime)
}

func writeRaw(t *testing.T, fs afero.Fs, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	require.NoError(t, fs.Chtimes(path, mtime, mtime))
}

func storedSession(t *testing.T, store settings.MemoryStore) settings.Session {
	t.Helper()
	_, ok := store[settings.SessionKey]
	require.True(t, ok, "session not saved")
	return settings.LoadSession(store)
}

func TestLoad_RendersAndTracks(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := settings.MemoryStore{}
	writeChat(t, fs, "/chat.json", 3, epoch)

	v := New(fs, store, nil)
	require.NoError(t, v.Load("/chat.json"))

	assert.Equal(t, "u0: m0\nu1: m1\nu2: m2", v.Text())
	assert.Equal(t, watch.Tracking, v.Watching())
	assert.Equal(t, "/chat.json", v.Path())
	assert.Equal(t, settings.Session{LastFile: "/chat.json", MessageLimit: 50}, storedSession(t, store))
}

func TestLoad_SameFileTwiceIsIdentical(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeChat(t, fs, "/chat.json", 70, epoch)

	v := New(fs, settings.MemoryStore{}, nil)
	require.NoError(t, v.Load("/chat.json"))
	first := v.Lines()
	require.NoError(t, v.Load("/chat.json"))
	assert.Equal(t, first, v.Lines())
	assert.Len(t, first, 50)
}

func TestLoad_MissingFileShowsErrorAndStaysIdle(t *testing.T) {
	store := settings.MemoryStore{}
	v := New(afero.NewMemMapFs(), store, nil)

	err := v.Load("/nope.json")
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.True(t, strings.HasPrefix(v.Text(), "ERROR: read /nope.json"))
	assert.Equal(t, watch.Idle, v.Watching())
	assert.Empty(t, store)
}

func TestLoad_BadJSONKeepsPreviousTracking(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeChat(t, fs, "/good.json", 2, epoch)
	writeRaw(t, fs, "/bad.json", `{"chat": [`, epoch)

	v := New(fs, settings.MemoryStore{}, nil)
	require.NoError(t, v.Load("/good.json"))
	require.Error(t, v.Load("/bad.json"))

	assert.True(t, strings.HasPrefix(v.Text(), "ERROR: decode chat json"))
	assert.Equal(t, "/good.json", v.Path())
}

func TestLoad_FormatErrorStillTracks(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := settings.MemoryStore{}
	writeRaw(t, fs, "/chat.json", `{"messages": []}`, epoch)

	v := New(fs, store, nil)
	err := v.Load("/chat.json")
	var fe *chatlog.FormatError
	require.ErrorAs(t, err, &fe)

	assert.Equal(t, "ERROR: missing chat key", v.Text())
	assert.Equal(t, watch.Tracking, v.Watching())
	assert.Equal(t, "/chat.json", storedSession(t, store).LastFile)

	writeChat(t, fs, "/chat.json", 1, epoch.Add(time.Second))
	assert.True(t, v.Tick())
	assert.Equal(t, "u0: m0", v.Text())
}

func TestTick_RendersOnlyOnModTimeChange(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeChat(t, fs, "/chat.json", 2, epoch)

	v := New(fs, settings.MemoryStore{}, nil)
	require.NoError(t, v.Load("/chat.json"))
	renders := v.Renders()

	assert.False(t, v.Tick())
	assert.False(t, v.Tick())
	assert.Equal(t, renders, v.Renders())

	writeChat(t, fs, "/chat.json", 4, epoch.Add(time.Second))
	assert.True(t, v.Tick())
	assert.Equal(t, renders+1, v.Renders())
	assert.Len(t, v.Lines(), 4)

	assert.False(t, v.Tick())
	assert.Equal(t, renders+1, v.Renders())
}

func TestTick_DoesNotSaveSession(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := settings.MemoryStore{}
	writeChat(t, fs, "/chat.json", 2, epoch)

	v := New(fs, store, nil)
	require.NoError(t, v.Load("/chat.json"))
	delete(store, settings.SessionKey)

	writeChat(t, fs, "/chat.json", 3, epoch.Add(time.Second))
	require.True(t, v.Tick())
	_, saved := store[settings.SessionKey]
	assert.False(t, saved)
}

func TestTick_VanishedFileIsSilent(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeChat(t, fs, "/chat.json", 2, epoch)

	v := New(fs, settings.MemoryStore{}, nil)
	require.NoError(t, v.Load("/chat.json"))
	text := v.Text()
	require.NoError(t, fs.Remove("/chat.json"))

	assert.False(t, v.Tick())
	assert.Equal(t, text, v.Text())
	assert.NoError(t, v.Err())
}

func TestTick_BrokenRewriteShowsErrorOnce(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeChat(t, fs, "/chat.json", 2, epoch)

	v := New(fs, settings.MemoryStore{}, nil)
	require.NoError(t, v.Load("/chat.json"))

	writeRaw(t, fs, "/chat.json", `{"chat": [`, epoch.Add(time.Second))
	assert.True(t, v.Tick())
	assert.Contains(t, v.Text(), "ERROR:")
	renders := v.Renders()
	assert.False(t, v.Tick())
	assert.Equal(t, renders, v.Renders())
}

func TestSetLimit_ClampsSavesAndReloads(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := settings.MemoryStore{}
	writeChat(t, fs, "/chat.json", 10, epoch)

	v := New(fs, store, nil)
	require.NoError(t, v.Load("/chat.json"))
	require.Len(t, v.Lines(), 10)

	assert.Equal(t, 4, v.SetLimit(4))
	assert.Equal(t, []string{"u6: m6", "u7: m7", "u8: m8", "u9: m9"}, v.Lines())
	assert.Equal(t, settings.Session{LastFile: "/chat.json", MessageLimit: 4}, storedSession(t, store))

	assert.Equal(t, 3, v.SetLimit(0))
	assert.Equal(t, 100, v.SetLimit(101))
}

func TestSetLimit_WithoutFileOnlySaves(t *testing.T) {
	store := settings.MemoryStore{}
	v := New(afero.NewMemMapFs(), store, nil)

	v.SetLimit(20)
	assert.Equal(t, 0, v.Renders())
	assert.Equal(t, settings.Session{MessageLimit: 20}, storedSession(t, store))
}

func TestRestore_LoadsLastFileWithoutSaving(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeChat(t, fs, "/chat.json", 10, epoch)
	store := settings.MemoryStore{settings.SessionKey: `{"last_file": "/chat.json", "message_limit": 5}`}
	blob := store[settings.SessionKey]

	v := New(fs, store, nil)
	v.Restore()

	assert.Equal(t, 5, v.Limit())
	assert.Len(t, v.Lines(), 5)
	assert.Equal(t, watch.Tracking, v.Watching())
	assert.Equal(t, blob, store[settings.SessionKey])
}

func TestRestore_MissingLastFileStaysIdle(t *testing.T) {
	store := settings.MemoryStore{settings.SessionKey: `{"last_file": "/gone.json", "message_limit": 8}`}
	v := New(afero.NewMemMapFs(), store, nil)
	v.Restore()

	assert.Equal(t, 8, v.Limit())
	assert.Equal(t, watch.Idle, v.Watching())
	assert.Empty(t, v.Text())
}

func TestRestore_BrokenLastFileRecoversOnTick(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeRaw(t, fs, "/chat.json", `{"chat": [`, epoch)
	store := settings.MemoryStore{settings.SessionKey: `{"last_file": "/chat.json", "message_limit": 5}`}

	v := New(fs, store, nil)
	v.Restore()

	assert.True(t, strings.HasPrefix(v.Text(), "ERROR: decode chat json"))
	assert.Equal(t, watch.Tracking, v.Watching())
	assert.Equal(t, "/chat.json", v.Path())

	writeChat(t, fs, "/chat.json", 7, epoch.Add(time.Second))
	require.True(t, v.Tick())
	assert.Equal(t, []string{"u2: m2", "u3: m3", "u4: m4", "u5: m5", "u6: m6"}, v.Lines())
	assert.False(t, v.Tick())
}

func TestRestore_BrokenLastFileIsRetriedOnceWhenUnchanged(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeRaw(t, fs, "/chat.json", `{"chat": [`, epoch)
	store := settings.MemoryStore{settings.SessionKey: `{"last_file": "/chat.json", "message_limit": 5}`}

	v := New(fs, store, nil)
	v.Restore()

	assert.True(t, v.Tick())
	assert.True(t, epoch.Equal(v.ModTime()))
	assert.False(t, v.Tick())
}

func TestRestore_BrokenLastFileSurvivesLimitChange(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeRaw(t, fs, "/chat.json", `{"chat": [`, epoch)
	store := settings.MemoryStore{settings.SessionKey: `{"last_file": "/chat.json", "message_limit": 5}`}

	v := New(fs, store, nil)
	v.Restore()
	v.SetLimit(6)

	assert.Equal(t, settings.Session{LastFile: "/chat.json", MessageLimit: 6}, storedSession(t, store))
}
