package chrome

import "testing"

func TestResolveUnknownFallsBackToNone(t *testing.T) {
	if got := Resolve("nonexistent"); got != KindNone {
		t.Fatalf("Resolve(nonexistent) = %v, want KindNone", got)
	}
	if got := Resolve(""); got != KindNone {
		t.Fatalf("Resolve(\"\") = %v, want KindNone", got)
	}
}

func TestInsetYZeroForNone(t *testing.T) {
	if KindNone.InsetY() != 0 {
		t.Fatalf("KindNone.InsetY() != 0")
	}
	if KindMacOS.InsetY() == 0 {
		t.Fatalf("KindMacOS.InsetY() should reserve titlebar space")
	}
}

func TestRenderNoneIsEmpty(t *testing.T) {
	if KindNone.Render(100) != "" {
		t.Fatalf("KindNone.Render must produce no fragment")
	}
}

func TestParseBackgroundSolidColor(t *testing.T) {
	bg := ParseBackground("#112233")
	if len(bg.Colors) != 1 || bg.Colors[0] != "#112233" {
		t.Fatalf("ParseBackground(#112233) = %+v", bg)
	}
}

func TestParseBackgroundGradient(t *testing.T) {
	bg := ParseBackground("#112233, #445566")
	if len(bg.Colors) != 2 {
		t.Fatalf("ParseBackground gradient = %+v, want 2 colors", bg)
	}
}

func TestParseBackgroundImagePath(t *testing.T) {
	bg := ParseBackground("./assets/wall.png")
	if bg.Image == "" {
		t.Fatalf("ParseBackground(path) should treat a non-color string as an image")
	}
}

func TestRenderSolidBackground(t *testing.T) {
	bg := Background{Colors: []string{"#000000"}}
	svg := bg.Render(100, 50)
	if svg == "" {
		t.Fatalf("Render should emit a rect for a solid background")
	}
}
