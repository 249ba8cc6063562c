package render

import (
	"context"
	"strings"
	"testing"
)

func TestConvertWithoutRsvg(t *testing.T) {
	old := rsvgBinary
	rsvgBinary = "gdlkit-no-such-converter"
	defer func() { rsvgBinary = old }()

	if Available() {
		t.Fatal("Available() = true for a missing binary")
	}

	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if err == nil || !strings.Contains(err.Error(), "requires librsvg") {
		t.Errorf("ToPDF error = %v, want install hint", err)
	}
	_, err = ToPNG(context.Background(), []byte("<svg/>"), 2)
	if err == nil || !strings.Contains(err.Error(), "png export") {
		t.Errorf("ToPNG error = %v, want install hint", err)
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`
	png, err := ToPNG(context.Background(), []byte(svg), 1)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if !strings.HasPrefix(string(png), "\x89PNG") {
		t.Error("output is not a PNG")
	}
}
