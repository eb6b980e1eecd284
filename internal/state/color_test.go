package state

import (
	"errors"
	"image/color"
	"testing"
)

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "#ffffff", want: "#ffffff"},
		{in: "#FF0000", want: "#ff0000"},
		{in: "#0f0", want: "#00ff00"},
		{in: "3b82f6", want: "#3b82f6"},
		{in: "red", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Fatalf("NormalizeColor(%q) err = %v, want ErrInvalidColor", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeColor(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeColor(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexOf(t *testing.T) {
	if got := HexOf(color.NRGBA{R: 255, A: 255}); got != "#ff0000" {
		t.Errorf("HexOf(red) = %q", got)
	}
}

func TestParseTool(t *testing.T) {
	for _, tool := range []Tool{ToolPen, ToolImage} {
		got, err := ParseTool(tool.String())
		if err != nil || got != tool {
			t.Errorf("ParseTool(%q) = %v, %v", tool.String(), got, err)
		}
	}
	if _, err := ParseTool("eraser"); err == nil {
		t.Error("ParseTool(eraser) should fail")
	}
}
