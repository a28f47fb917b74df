package sqlite

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/louisbranch/mediagraph/internal/storage"
)

var storeSeq atomic.Int64

// openTestStore opens a private in-memory database per test.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:store_test_%d?mode=memory&cache=shared", storeSeq.Add(1))
	store, err := Open(dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestChannelRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	record := storage.ChannelRecord{
		ID:            "1",
		OwnerMemberID: "7",
		Title:         "astronomy",
		IsPublic:      true,
		RewardAccount: "5Fq...",
	}
	if err := store.PutChannel(ctx, record); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.GetChannel(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != record {
		t.Fatalf("got %+v, want %+v", got, record)
	}

	record.Title = "astrophysics"
	record.IsCensored = true
	if err := store.PutChannel(ctx, record); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err = store.GetChannel(ctx, "1")
	if err != nil {
		t.Fatalf("get after upsert: %v", err)
	}
	if got.Title != "astrophysics" || !got.IsCensored {
		t.Fatalf("upsert not applied: %+v", got)
	}

	if err := store.DeleteChannel(ctx, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetChannel(ctx, "1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCountActiveVideos(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.PutChannel(ctx, storage.ChannelRecord{ID: "1", IsPublic: true}); err != nil {
		t.Fatalf("put channel: %v", err)
	}
	if err := store.PutChannel(ctx, storage.ChannelRecord{ID: "2", IsPublic: true, IsCensored: true}); err != nil {
		t.Fatalf("put censored channel: %v", err)
	}

	videos := []storage.VideoRecord{
		{ID: "10", ChannelID: "1", CategoryID: "cat", IsPublic: true},
		{ID: "11", ChannelID: "1", CategoryID: "cat", IsPublic: true, IsCensored: true},
		{ID: "12", ChannelID: "1", CategoryID: "other", IsPublic: true},
		{ID: "13", ChannelID: "1", IsPublic: false},
		{ID: "14", ChannelID: "2", CategoryID: "cat", IsPublic: true},
	}
	for _, v := range videos {
		if err := store.PutVideo(ctx, v); err != nil {
			t.Fatalf("put video %s: %v", v.ID, err)
		}
	}

	tests := []struct {
		name       string
		channelID  string
		categoryID string
		want       int64
	}{
		{"channel scope", "1", "", 2},
		{"category scope", "", "cat", 1},
		{"channel and category", "1", "cat", 1},
		{"censored channel excluded", "2", "", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := store.CountActiveVideos(ctx, tc.channelID, tc.categoryID)
			if err != nil {
				t.Fatalf("count: %v", err)
			}
			if got != tc.want {
				t.Fatalf("count = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestChannelPermissionsFullReplace(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	seed := []storage.ChannelPermissionRecord{
		{ChannelID: "1", MemberID: "7", Permission: "AddVideo"},
		{ChannelID: "1", MemberID: "7", Permission: "DeleteVideo"},
		{ChannelID: "1", MemberID: "9", Permission: "AgentRemark"},
	}
	for _, p := range seed {
		if err := store.PutChannelPermission(ctx, p); err != nil {
			t.Fatalf("put permission: %v", err)
		}
	}

	if err := store.DeleteChannelPermissions(ctx, "1"); err != nil {
		t.Fatalf("delete permissions: %v", err)
	}
	got, err := store.ListChannelPermissions(ctx, "1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no permissions after delete, got %d", len(got))
	}
}

func TestInTxRollback(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := store.InTx(ctx, func(tx storage.Store) error {
		if err := tx.PutChannel(ctx, storage.ChannelRecord{ID: "1"}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}
	if _, err := store.GetChannel(ctx, "1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("channel should have been rolled back, got err %v", err)
	}
}

func TestInTxCommitAndNesting(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	err := store.InTx(ctx, func(tx storage.Store) error {
		if err := tx.PutChannel(ctx, storage.ChannelRecord{ID: "1"}); err != nil {
			return err
		}
		return tx.InTx(ctx, func(inner storage.Store) error {
			return inner.PutVideo(ctx, storage.VideoRecord{ID: "10", ChannelID: "1"})
		})
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	if _, err := store.GetChannel(ctx, "1"); err != nil {
		t.Fatalf("channel not committed: %v", err)
	}
	if _, err := store.GetVideo(ctx, "10"); err != nil {
		t.Fatalf("video not committed: %v", err)
	}
}

func TestWatermark(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	mark, err := store.GetWatermark(ctx)
	if err != nil {
		t.Fatalf("get empty watermark: %v", err)
	}
	if mark != (storage.Watermark{}) {
		t.Fatalf("expected zero watermark, got %+v", mark)
	}

	want := storage.Watermark{BlockHeight: 42, IndexInBlock: 3}
	if err := store.SetWatermark(ctx, want); err != nil {
		t.Fatalf("set: %v", err)
	}
	mark, err = store.GetWatermark(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if mark != want {
		t.Fatalf("watermark = %+v, want %+v", mark, want)
	}
}

func TestMetaprotocolTransactionLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	record := storage.MetaprotocolTransactionRecord{
		ID:          "120-3",
		Status:      storage.TransactionStatusPending,
		BlockHeight: 120, IndexInBlock: 3,
	}
	if err := store.PutMetaprotocolTransaction(ctx, record); err != nil {
		t.Fatalf("put pending: %v", err)
	}

	record.Status = storage.TransactionStatusErrored
	record.ErrorMessage = "unsupported channel owner remark message"
	if err := store.PutMetaprotocolTransaction(ctx, record); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	got, err := store.GetMetaprotocolTransaction(ctx, "120-3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != storage.TransactionStatusErrored || got.ErrorMessage == "" {
		t.Fatalf("got %+v", got)
	}
}

func TestDataObjectRelationUnset(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	record := storage.DataObjectRecord{
		ID:                 "obj-1",
		StorageBagID:       "dynamic:channel:1",
		Size:               2048,
		IpfsHash:           "Qm...",
		ChannelAvatarForID: "1",
	}
	if err := store.PutDataObject(ctx, record); err != nil {
		t.Fatalf("put: %v", err)
	}

	record.ChannelAvatarForID = ""
	if err := store.PutDataObject(ctx, record); err != nil {
		t.Fatalf("unset relation: %v", err)
	}

	got, err := store.GetDataObject(ctx, "obj-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ChannelAvatarForID != "" {
		t.Fatal("avatar relation should be unset")
	}
	if got.IpfsHash != "Qm..." {
		t.Fatal("object row must survive relation unset")
	}
}
