package mixer

import (
	"errors"
	"testing"
)

type fakeMuter map[string]bool

func (f fakeMuter) SetMute(id string, muted bool) error {
	f[id] = muted
	return nil
}

func newBoard(t *testing.T, muted map[string]bool) (*Board, fakeMuter) {
	t.Helper()
	target := fakeMuter{}
	b := NewBoard(target)
	for id, m := range muted {
		if err := b.Track(id, m); err != nil {
			t.Fatalf("Track(%s): %v", id, err)
		}
	}
	return b, target
}

func TestSoloMutesOthersAndRestores(t *testing.T) {
	b, target := newBoard(t, map[string]bool{"drums": false, "bass": true, "vox": false})

	if err := b.Solo("vox"); err != nil {
		t.Fatalf("Solo: %v", err)
	}
	want := map[string]bool{"drums": true, "bass": true, "vox": false}
	for id, m := range want {
		if target[id] != m {
			t.Errorf("during solo %s muted = %v, want %v", id, target[id], m)
		}
	}
	if b.Soloed() != "vox" {
		t.Errorf("Soloed = %q, want vox", b.Soloed())
	}

	if err := b.Unsolo(); err != nil {
		t.Fatalf("Unsolo: %v", err)
	}
	want = map[string]bool{"drums": false, "bass": true, "vox": false}
	for id, m := range want {
		if target[id] != m {
			t.Errorf("after unsolo %s muted = %v, want %v", id, target[id], m)
		}
	}
}

func TestSoloKeepsSoloedStemsOwnMute(t *testing.T) {
	b, target := newBoard(t, map[string]bool{"drums": true, "bass": false})

	b.Solo("drums")
	if !target["drums"] || !target["bass"] {
		t.Errorf("state = %v, want both muted", target)
	}

	// unmuting the soloed stem makes it the only audible one
	b.SetMute("drums", false)
	if target["drums"] || !target["bass"] {
		t.Errorf("state = %v, want only bass muted", target)
	}
}

func TestMuteDuringSoloIsRemembered(t *testing.T) {
	b, target := newBoard(t, map[string]bool{"drums": false, "bass": false})

	b.Solo("drums")
	b.SetMute("bass", true)
	b.SetMute("bass", false)
	if !target["bass"] {
		t.Error("bass audible while drums soloed")
	}
	b.Unsolo()
	if target["bass"] || b.Muted("bass") {
		t.Error("bass still muted after unsolo")
	}
}

func TestTrackDuringSolo(t *testing.T) {
	b, target := newBoard(t, map[string]bool{"drums": false})
	b.Solo("drums")
	b.Track("keys", false)
	if !target["keys"] {
		t.Error("stem loaded during solo is audible")
	}
}

func TestEffectiveCountsSolo(t *testing.T) {
	b, _ := newBoard(t, map[string]bool{"drums": false, "bass": true})
	if b.Effective("drums") || !b.Effective("bass") || b.Effective("keys") {
		t.Error("without solo only bass should be silent")
	}
	b.Solo("drums")
	if b.Effective("drums") || !b.Effective("bass") || !b.Effective("keys") {
		t.Error("during solo everything but drums should be silent")
	}
	if b.Muted("keys") {
		t.Error("Effective changed the own mute of an untracked stem")
	}
}

func TestForgetSoloedStemReleasesSolo(t *testing.T) {
	b, target := newBoard(t, map[string]bool{"drums": false, "bass": false})
	b.Solo("drums")
	b.Forget("drums")
	if b.Soloed() != "" {
		t.Errorf("Soloed = %q after forgetting it", b.Soloed())
	}
	if target["bass"] {
		t.Error("bass still muted after the soloed stem went away")
	}
}

func TestUnknownStem(t *testing.T) {
	b, _ := newBoard(t, nil)
	if err := b.Solo("ghost"); !errors.Is(err, ErrUnknownStem) {
		t.Errorf("Solo = %v, want ErrUnknownStem", err)
	}
	if err := b.SetMute("ghost", true); !errors.Is(err, ErrUnknownStem) {
		t.Errorf("SetMute = %v, want ErrUnknownStem", err)
	}
	if err := b.Unsolo(); err != nil {
		t.Errorf("Unsolo without solo = %v, want nil", err)
	}
}
