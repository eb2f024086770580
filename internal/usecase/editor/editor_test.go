package editor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"memepop/internal/domain"
	"memepop/internal/preset"

	"github.com/wb-go/wbf/zlog"
)

func newTestEditor(t *testing.T, profile string, maxSessions int) (*Editor, *preset.Store) {
	t.Helper()

	zlog.Init()
	store := preset.MustNew(profile)
	return NewEditor(store, &zlog.Logger, maxSessions), store
}

func mustCreate(t *testing.T, e *Editor) *domain.Session {
	t.Helper()

	s, err := e.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return s
}

func TestCreate_ClonesDefaults(t *testing.T) {
	e, store := newTestEditor(t, domain.ProfileMemePop, 10)
	s := mustCreate(t, e)

	if s.ID == "" {
		t.Fatal("expected session ID")
	}
	if s.Profile != domain.ProfileMemePop {
		t.Errorf("Profile = %q, want memepop", s.Profile)
	}
	defaults := store.Texts()
	if len(s.Texts) != len(defaults) {
		t.Fatalf("expected %d texts, got %d", len(defaults), len(s.Texts))
	}
	for i := range defaults {
		if s.Texts[i] != defaults[i] {
			t.Errorf("texts[%d] = %+v, want %+v", i, s.Texts[i], defaults[i])
		}
	}
	if s.Tint != nil {
		t.Errorf("new session should have no tint, got %+v", s.Tint)
	}
	if len(s.Elements) != 0 {
		t.Errorf("new session should have no mounted elements, got %v", s.Elements)
	}
}

func TestEditText_LeavesDefaultsUnchanged(t *testing.T) {
	e, store := newTestEditor(t, domain.ProfileMemePop, 10)
	ctx := context.Background()
	s := mustCreate(t, e)

	got, err := e.EditText(ctx, s.ID, 0, "ยินดีต้อนรับ 🎉")
	if err != nil {
		t.Fatalf("EditText: %v", err)
	}
	if got.Texts[0].Text != "ยินดีต้อนรับ 🎉" {
		t.Errorf("text = %q, want edited value", got.Texts[0].Text)
	}
	if store.Texts()[0].Text != "Meme, I embrace." {
		t.Errorf("defaults changed: %q", store.Texts()[0].Text)
	}

	other := mustCreate(t, e)
	if other.Texts[0].Text != "Meme, I embrace." {
		t.Errorf("edit leaked into another session: %q", other.Texts[0].Text)
	}
}

func TestEditText_NotEditable(t *testing.T) {
	e, _ := newTestEditor(t, domain.ProfileMemePop, 10)
	s := mustCreate(t, e)

	_, err := e.EditText(context.Background(), s.ID, 1, "hijack")
	if !errors.Is(err, ErrNotEditable) {
		t.Fatalf("err = %v, want ErrNotEditable", err)
	}

	cur, _ := e.Get(context.Background(), s.ID)
	if cur.Texts[1].Text != "memepop.vercel.app" {
		t.Errorf("locked text changed: %q", cur.Texts[1].Text)
	}
}

func TestEditColor(t *testing.T) {
	ctx := context.Background()

	e, _ := newTestEditor(t, domain.ProfileMemePop, 10)
	s := mustCreate(t, e)

	got, err := e.EditColor(ctx, s.ID, 0, "#ffcc00")
	if err != nil {
		t.Fatalf("EditColor: %v", err)
	}
	if got.Texts[0].Color != "#ffcc00" {
		t.Errorf("color = %q, want #ffcc00", got.Texts[0].Color)
	}

	if _, err := e.EditColor(ctx, s.ID, 0, "nope"); !errors.Is(err, ErrInvalidEdit) {
		t.Errorf("err = %v, want ErrInvalidEdit", err)
	}
	if _, err := e.EditColor(ctx, s.ID, 1, "red"); !errors.Is(err, ErrColorLocked) {
		t.Errorf("err = %v, want ErrColorLocked", err)
	}

	classic, _ := newTestEditor(t, domain.ProfileClassic, 10)
	cs := mustCreate(t, classic)
	if _, err := classic.EditColor(ctx, cs.ID, 0, "red"); !errors.Is(err, ErrColorLocked) {
		t.Errorf("classic err = %v, want ErrColorLocked", err)
	}
}

func TestMove(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEditor(t, domain.ProfileMemePop, 10)
	s := mustCreate(t, e)

	got, err := e.Move(ctx, s.ID, 1, 0, 100)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if got.Texts[1].XPercent != 0 || got.Texts[1].YPercent != 100 {
		t.Errorf("position = (%v, %v), want (0, 100)", got.Texts[1].XPercent, got.Texts[1].YPercent)
	}

	if _, err := e.Move(ctx, s.ID, 1, 101, 50); !errors.Is(err, ErrInvalidEdit) {
		t.Errorf("err = %v, want ErrInvalidEdit", err)
	}
	if _, err := e.Move(ctx, s.ID, 5, 10, 10); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestApplyEdit_IsAtomic(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEditor(t, domain.ProfileMemePop, 10)
	s := mustCreate(t, e)

	text := "changed"
	y := 150.0
	_, err := e.ApplyEdit(ctx, s.ID, 0, domain.TextEdit{Text: &text, YPercent: &y})
	if !errors.Is(err, ErrInvalidEdit) {
		t.Fatalf("err = %v, want ErrInvalidEdit", err)
	}

	cur, _ := e.Get(ctx, s.ID)
	if cur.Texts[0].Text != "Meme, I embrace." {
		t.Errorf("partial edit applied: %q", cur.Texts[0].Text)
	}

	if _, err := e.ApplyEdit(ctx, s.ID, 0, domain.TextEdit{}); !errors.Is(err, ErrInvalidEdit) {
		t.Errorf("empty edit err = %v, want ErrInvalidEdit", err)
	}
}

func TestSelectTint(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEditor(t, domain.ProfileMemePop, 10)
	s := mustCreate(t, e)

	got, err := e.SelectTint(ctx, s.ID, "Original")
	if err != nil {
		t.Fatalf("SelectTint: %v", err)
	}
	if got.Tint == nil || got.Tint.Alpha != 0 {
		t.Fatalf("Original tint = %+v, want alpha 0", got.Tint)
	}
	if !got.Tint.Transparent() {
		t.Error("Original tint should leave the image unchanged")
	}

	got, err = e.SelectTint(ctx, s.ID, "ม่วง")
	if err != nil {
		t.Fatalf("SelectTint: %v", err)
	}
	if got.Tint.Red != 72 || got.Tint.Blue != 134 {
		t.Errorf("purple tint = %+v", got.Tint)
	}

	got, err = e.SelectTint(ctx, s.ID, "")
	if err != nil {
		t.Fatalf("SelectTint blank: %v", err)
	}
	if got.Tint != nil {
		t.Errorf("blank selection should clear tint, got %+v", got.Tint)
	}

	if _, err := e.SelectTint(ctx, s.ID, "Magenta"); !errors.Is(err, ErrUnknownTint) {
		t.Errorf("err = %v, want ErrUnknownTint", err)
	}
}

func TestSelectTint_UnknownSessionFirst(t *testing.T) {
	ctx := context.Background()

	for _, profile := range []string{domain.ProfileMemePop, domain.ProfileClassic} {
		e, _ := newTestEditor(t, profile, 10)
		if _, err := e.SelectTint(ctx, "missing", "Magenta"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("%s: err = %v, want ErrSessionNotFound", profile, err)
		}
	}
}

func TestSelectTint_OverlayDisabled(t *testing.T) {
	e, _ := newTestEditor(t, domain.ProfileClassic, 10)
	s := mustCreate(t, e)

	if _, err := e.SelectTint(context.Background(), s.ID, "Original"); !errors.Is(err, ErrOverlayDisabled) {
		t.Errorf("err = %v, want ErrOverlayDisabled", err)
	}
}

func TestElementRegistry(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEditor(t, domain.ProfileMemePop, 10)
	s := mustCreate(t, e)

	if _, ok, _ := e.Element(ctx, s.ID, 0); ok {
		t.Fatal("element present before mount")
	}

	if err := e.Mount(ctx, s.ID, 0, "text-0"); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	handle, ok, err := e.Element(ctx, s.ID, 0)
	if err != nil || !ok || handle != "text-0" {
		t.Fatalf("Element = (%q, %v, %v), want text-0", handle, ok, err)
	}

	if err := e.Mount(ctx, s.ID, 9, "text-9"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
	if err := e.Mount(ctx, s.ID, 1, ""); !errors.Is(err, ErrInvalidElementID) {
		t.Errorf("err = %v, want ErrInvalidElementID", err)
	}

	if err := e.Unmount(ctx, s.ID, 0); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	if _, ok, _ := e.Element(ctx, s.ID, 0); ok {
		t.Error("element still present after unmount")
	}
}

func TestDelete_ClearsElements(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEditor(t, domain.ProfileMemePop, 10)
	s := mustCreate(t, e)

	if err := e.Mount(ctx, s.ID, 0, "text-0"); err != nil {
		t.Fatal(err)
	}
	if err := e.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, err := e.Element(ctx, s.ID, 0); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
	if err := e.Delete(ctx, s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second delete err = %v, want ErrSessionNotFound", err)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEditor(t, domain.ProfileMemePop, 10)
	s := mustCreate(t, e)

	e.EditText(ctx, s.ID, 0, "edited")
	e.SelectTint(ctx, s.ID, "Red")
	e.Mount(ctx, s.ID, 0, "text-0")

	got, err := e.Reset(ctx, s.ID)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got.Texts[0].Text != "Meme, I embrace." || got.Tint != nil || len(got.Elements) != 0 {
		t.Errorf("reset session = %+v", got)
	}
}

func TestGet_ReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEditor(t, domain.ProfileMemePop, 10)
	s := mustCreate(t, e)

	snap, _ := e.Get(ctx, s.ID)
	snap.Texts[0].Text = "mutated snapshot"
	snap.Elements[0] = "ghost"

	cur, _ := e.Get(ctx, s.ID)
	if cur.Texts[0].Text != "Meme, I embrace." {
		t.Errorf("snapshot mutation leaked: %q", cur.Texts[0].Text)
	}
	if _, ok := cur.Elements[0]; ok {
		t.Error("snapshot element leaked into registry")
	}
}

func TestCreate_Limit(t *testing.T) {
	e, _ := newTestEditor(t, domain.ProfileMemePop, 2)
	mustCreate(t, e)
	mustCreate(t, e)

	if _, err := e.Create(context.Background()); !errors.Is(err, ErrTooManySessions) {
		t.Errorf("err = %v, want ErrTooManySessions", err)
	}
	if e.Count() != 2 {
		t.Errorf("Count() = %d, want 2", e.Count())
	}
}

func TestUnknownSession(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEditor(t, domain.ProfileMemePop, 10)

	if _, err := e.Get(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get err = %v", err)
	}
	if _, err := e.EditText(ctx, "missing", 0, "x"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("EditText err = %v", err)
	}
	if err := e.Mount(ctx, "missing", 0, "h"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Mount err = %v", err)
	}
}

func TestConcurrentSessions(t *testing.T) {
	ctx := context.Background()
	e, store := newTestEditor(t, domain.ProfileMemePop, 100)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := e.Create(ctx)
			if err != nil {
				t.Error(err)
				return
			}
			if _, err := e.Move(ctx, s.ID, 0, 10, 20); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if e.Count() != 20 {
		t.Errorf("Count() = %d, want 20", e.Count())
	}
	if d := store.Texts()[0]; d.XPercent != 50 || d.YPercent != 90 {
		t.Errorf("defaults moved: (%v, %v)", d.XPercent, d.YPercent)
	}
}

func TestEvictIdle(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEditor(t, domain.ProfileMemePop, 10)

	stale := mustCreate(t, e)
	cutoff := time.Now().Add(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	fresh := mustCreate(t, e)

	if n := e.EvictIdle(ctx, cutoff); n != 1 {
		t.Fatalf("evicted %d sessions, want 1", n)
	}
	if _, err := e.Get(ctx, stale.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("stale session: err = %v, want ErrSessionNotFound", err)
	}
	if _, err := e.Get(ctx, fresh.ID); err != nil {
		t.Errorf("fresh session evicted: %v", err)
	}
}

func TestEvictIdle_EditKeepsSessionAlive(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEditor(t, domain.ProfileMemePop, 10)

	s := mustCreate(t, e)
	time.Sleep(5 * time.Millisecond)
	cutoff := time.Now()
	time.Sleep(5 * time.Millisecond)

	if _, err := e.Move(ctx, s.ID, 0, 10, 20); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if n := e.EvictIdle(ctx, cutoff); n != 0 {
		t.Fatalf("evicted %d sessions, want 0", n)
	}
	if e.Count() != 1 {
		t.Errorf("Count = %d, want 1", e.Count())
	}
}

func TestEditText_GraphemeLimit(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEditor(t, domain.ProfileMemePop, 10)
	s := mustCreate(t, e)

	// Each flame heart is four code points but one character.
	hearts := strings.Repeat("❤️‍🔥", maxTextGraphemes)
	if _, err := e.EditText(ctx, s.ID, 0, hearts); err != nil {
		t.Fatalf("EditText at limit: %v", err)
	}

	_, err := e.EditText(ctx, s.ID, 0, strings.Repeat("a", maxTextGraphemes+1))
	if !errors.Is(err, ErrInvalidEdit) {
		t.Fatalf("err = %v, want ErrInvalidEdit", err)
	}

	cur, _ := e.Get(ctx, s.ID)
	if cur.Texts[0].Text != hearts {
		t.Error("rejected edit changed the text")
	}
}
