package theme

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuiltinThemesRegistered(t *testing.T) {
	want := []string{"dracula", "gruvbox", "nord", "solarized", "tokyonight"}
	if diff := cmp.Diff(want, Available()); diff != "" {
		t.Fatalf("themes mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultIsTokyoNight(t *testing.T) {
	if got := Current().Name; got != "tokyonight" {
		t.Fatalf("expected tokyonight default, got %q", got)
	}
}

func TestSetAndCycle(t *testing.T) {
	t.Cleanup(func() { Set("tokyonight") })

	if Set("missing") {
		t.Fatal("expected unknown theme to be rejected")
	}
	if !Set("solarized") {
		t.Fatal("expected solarized to be accepted")
	}
	if got := Cycle(); got != "tokyonight" {
		t.Fatalf("expected cycle solarized -> tokyonight, got %q", got)
	}
	if got := Cycle(); got != "dracula" {
		t.Fatalf("expected cycle to wrap to dracula, got %q", got)
	}
	if Current().Name != "dracula" {
		t.Fatalf("expected current dracula, got %q", Current().Name)
	}
}

func TestThemesFillEverySlot(t *testing.T) {
	for _, name := range Available() {
		if !Set(name) {
			t.Fatalf("Set(%q) failed", name)
		}
		th := Current()
		slots := map[string]string{
			"Primary": th.Primary.Dark, "Accent": th.Accent.Dark, "Error": th.Error.Dark,
			"Success": th.Success.Dark, "Partial": th.Partial.Dark, "Text": th.Text.Dark,
			"TextMuted": th.TextMuted.Dark, "Background": th.Background.Light,
			"BorderFocused": th.BorderFocused.Light,
		}
		for slot, v := range slots {
			if v == "" {
				t.Errorf("theme %s: empty %s", name, slot)
			}
		}
	}
	Set("tokyonight")
}
