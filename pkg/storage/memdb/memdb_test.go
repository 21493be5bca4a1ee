package memdb

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"profanity/pkg/storage"
)

func TestStore_AddWords(t *testing.T) {
	db := New()
	ctx := context.Background()

	err := db.AddWords(ctx, storage.ListProfanity, "Fuck", "shit", "FUCK", "alaskan pipeline")
	if err != nil {
		t.Fatalf("unexpected error adding words: %v", err)
	}

	got, err := db.Words(ctx, storage.ListProfanity)
	if err != nil {
		t.Fatalf("unexpected error reading words: %v", err)
	}
	want := []string{"fuck", "shit", "alaskan pipeline"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want words %v, got words %v", want, got)
	}

	allow, err := db.Words(ctx, storage.ListAllow)
	if err != nil {
		t.Fatalf("unexpected error reading allow-list: %v", err)
	}
	if len(allow) != 0 {
		t.Errorf("want empty allow-list, got %v", allow)
	}
}

func TestStore_RemoveWord(t *testing.T) {
	db := New()
	ctx := context.Background()

	if err := db.AddWords(ctx, storage.ListAllow, "Scunthorpe", "Penistone"); err != nil {
		t.Fatalf("unexpected error adding words: %v", err)
	}

	if err := db.RemoveWord(ctx, storage.ListAllow, "SCUNTHORPE"); err != nil {
		t.Errorf("unexpected error removing word: %v", err)
	}
	if err := db.RemoveWord(ctx, storage.ListAllow, "scunthorpe"); !errors.Is(err, storage.ErrWordNotFound) {
		t.Errorf("want ErrWordNotFound, got %v", err)
	}

	got, _ := db.Words(ctx, storage.ListAllow)
	if !reflect.DeepEqual(got, []string{"penistone"}) {
		t.Errorf("want [penistone], got %v", got)
	}
}

func TestStore_Clear(t *testing.T) {
	db := New()
	ctx := context.Background()

	db.AddWords(ctx, storage.ListProfanity, "fuck")
	db.AddWords(ctx, storage.ListAllow, "scunthorpe")

	if err := db.Clear(ctx, storage.ListProfanity); err != nil {
		t.Fatalf("unexpected error clearing list: %v", err)
	}

	got, _ := db.Words(ctx, storage.ListProfanity)
	if len(got) != 0 {
		t.Errorf("want empty profanity list, got %v", got)
	}
	allow, _ := db.Words(ctx, storage.ListAllow)
	if len(allow) != 1 {
		t.Errorf("want allow-list untouched, got %v", allow)
	}
}

func TestStore_UnknownList(t *testing.T) {
	db := New()
	ctx := context.Background()

	if _, err := db.Words(ctx, "blocked"); !errors.Is(err, storage.ErrUnknownList) {
		t.Errorf("Words: want ErrUnknownList, got %v", err)
	}
	if err := db.AddWords(ctx, "blocked", "x"); !errors.Is(err, storage.ErrUnknownList) {
		t.Errorf("AddWords: want ErrUnknownList, got %v", err)
	}
	if err := db.RemoveWord(ctx, "blocked", "x"); !errors.Is(err, storage.ErrUnknownList) {
		t.Errorf("RemoveWord: want ErrUnknownList, got %v", err)
	}
	if err := db.Clear(ctx, "blocked"); !errors.Is(err, storage.ErrUnknownList) {
		t.Errorf("Clear: want ErrUnknownList, got %v", err)
	}
}
