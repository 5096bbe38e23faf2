package export

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadStoreDeliverAndGet(t *testing.T) {
	store := NewDownloadStore(time.Minute,
		WithDownloadBasePath("/admin/shell/downloads/"),
		WithTokenGenerator(func() string { return "tok-1" }),
	)
	receipt, err := store.Deliver(context.Background(), File{Name: "orders.csv", Data: []byte("a,b")})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", receipt.Token)
	assert.Equal(t, "/admin/shell/downloads/tok-1", receipt.Location)
	assert.Equal(t, 3, receipt.Size)

	file, ok := store.Get("tok-1")
	require.True(t, ok)
	assert.Equal(t, "orders.csv", file.Name)

	store.Delete("tok-1")
	_, ok = store.Get("tok-1")
	assert.False(t, ok)
}

func TestDownloadStoreExpires(t *testing.T) {
	store := NewDownloadStore(20 * time.Millisecond)
	receipt, err := store.Deliver(context.Background(), File{Name: "f.json"})
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)
	if _, ok := store.Get(receipt.Token); ok {
		t.Fatalf("expected download to expire")
	}
}

func TestDirDeliveryWritesFile(t *testing.T) {
	dir := t.TempDir()
	receipt, err := DirDelivery{Dir: dir}.Deliver(context.Background(), File{Name: "../leads.csv", Data: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, "leads.csv", receipt.Filename)
	assert.FileExists(t, receipt.Location)
}
