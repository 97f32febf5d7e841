package fonts

import (
	"testing"

	"github.com/gogpu/gg/text"
)

func TestRegularTTF(t *testing.T) {
	if len(RegularTTF()) == 0 {
		t.Fatal("RegularTTF() is empty")
	}
}

func TestSourceShared(t *testing.T) {
	a, err := Source()
	if err != nil {
		t.Fatalf("Source() error: %v", err)
	}
	b, _ := Source()
	if a != b {
		t.Error("Source() parsed the font twice")
	}
}

func TestFaceMeasures(t *testing.T) {
	small, err := Face(10)
	if err != nil {
		t.Fatalf("Face(10) error: %v", err)
	}
	large, _ := Face(20)

	ws, _ := text.Measure("42%", small)
	wl, _ := text.Measure("42%", large)
	if ws <= 0 {
		t.Fatalf("width at 10px = %v, want > 0", ws)
	}
	if wl <= ws {
		t.Errorf("width at 20px = %v, want more than %v", wl, ws)
	}
}
