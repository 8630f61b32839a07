package cart_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velamode/orderdesk/cart"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store := cart.NewStore(cart.NewFilePersister(dir, "session-a"))
	store.Add("Crate", "crate.jpg", variant(1, "Small"), 3, false)
	store.Add("Crate", "crate.jpg", variant(2, "Large"), 2, true)

	// A fresh persister against the same file must reproduce the exact
	// mapping: keys, quantities, flags.
	reloaded := cart.NewStore(cart.NewFilePersister(dir, "session-a"))
	assert.Equal(t, store.Snapshot(), reloaded.Snapshot())
	assert.Equal(t, 5, reloaded.ItemCount())
	assert.Equal(t, 2, reloaded.MTOItemCount())
}

func TestLoadMissingFileIsEmptyCart(t *testing.T) {
	store := cart.NewStore(cart.NewFilePersister(t.TempDir(), "nobody"))
	assert.Equal(t, 0, store.Len())
}

func TestCorruptSnapshotIsEmptyCart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, cart.StorageKey+"-session-b.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := cart.NewStore(cart.NewFilePersister(dir, "session-b"))
	assert.Equal(t, 0, store.Len())

	// The broken store keeps working and re-persists cleanly.
	store.Add("Crate", "", variant(1, "Small"), 1, false)
	reloaded := cart.NewStore(cart.NewFilePersister(dir, "session-b"))
	assert.Equal(t, 1, reloaded.ItemCount())
}

func TestManagerKeepsSessionsSeparate(t *testing.T) {
	manager := cart.NewManager(t.TempDir())

	manager.ForUser(1).Add("Crate", "", variant(1, "Small"), 2, false)
	manager.ForUser(2).Add("Crate", "", variant(1, "Small"), 9, false)

	assert.Equal(t, 2, manager.ForUser(1).ItemCount())
	assert.Equal(t, 9, manager.ForUser(2).ItemCount())

	// Same key returns the same store.
	assert.Same(t, manager.ForUser(1), manager.ForUser(1))
}
