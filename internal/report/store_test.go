package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finadvisor/pkg/errors"
)

func TestFilesystemStore_SaveAndPath(t *testing.T) {
	dir := t.TempDir()
	store := NewFilesystemStore(dir, nil)
	scope := Scope{AppName: "finadvisor", UserID: "user-1", SessionID: "sess-1"}

	doc := Compose("Buy", Sections{Sector: "sector text"})
	err := store.Save(context.Background(), scope, Filename("AAPL"), MIMEMarkdown, []byte(doc))
	require.NoError(t, err)

	path := store.Path(scope, "AAPL_investment_advice.md")
	assert.Equal(t, filepath.Join(dir, "finadvisor", "user-1", "sess-1", "AAPL_investment_advice.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc, string(data))
}

func TestFilesystemStore_Overwrites(t *testing.T) {
	dir := t.TempDir()
	store := NewFilesystemStore(dir, nil)
	scope := Scope{AppName: "finadvisor", UserID: "user-1", SessionID: "sess-1"}
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, scope, "AAPL_investment_advice.md", MIMEMarkdown, []byte("first")))
	require.NoError(t, store.Save(ctx, scope, "AAPL_investment_advice.md", MIMEMarkdown, []byte("second")))

	data, err := os.ReadFile(store.Path(scope, "AAPL_investment_advice.md"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestFilesystemStore_RequiresName(t *testing.T) {
	store := NewFilesystemStore(t.TempDir(), nil)

	err := store.Save(context.Background(), Scope{}, "", MIMEMarkdown, []byte("x"))
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestFilesystemStore_CancelledContext(t *testing.T) {
	store := NewFilesystemStore(t.TempDir(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Save(ctx, Scope{AppName: "a", UserID: "u", SessionID: "s"}, "x.md", MIMEMarkdown, []byte("x"))
	assert.Error(t, err)
}
