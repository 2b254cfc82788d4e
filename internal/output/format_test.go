package output

import (
	"bytes"
	"strings"
	"testing"

	"todoapp/internal/service"
	"todoapp/internal/store"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		task service.Task
		want string
	}{
		{"open", service.Task{ID: "1", Title: "Write spec"}, "   1  [ ] Write spec\n"},
		{"completed", service.Task{ID: "12", Title: "Ship", Completed: true}, "  12  [x] Ship\n"},
		{"description", service.Task{ID: "3", Title: "Shop", Description: "buy\nmilk"}, "   3  [ ] Shop\n          buy milk\n"},
		{"untitled", service.Task{ID: "4", Title: "  "}, "   4  [ ] (untitled)\n"},
		{"long id", service.Task{ID: "abcdef", Title: "x"}, "abcdef  [ ] x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.task)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatState_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatState(&buf, store.State{Filter: service.FilterCompleted})
	want := "------------\nCompleted (0)\n------------\nno tasks found\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatTaskDetail(t *testing.T) {
	var buf bytes.Buffer
	FormatTaskDetail(&buf, service.Task{ID: "9", Title: "T", Description: "D", Completed: true})
	if !strings.Contains(buf.String(), "status:      completed\n") {
		t.Errorf("unexpected detail %q", buf.String())
	}
}

func TestPromptConfirmer(t *testing.T) {
	tests := map[string]bool{
		"y\n":   true,
		"YES\n": true,
		"n\n":   false,
		"\n":    false,
		"":      false,
		"y":     true,
	}
	for in, want := range tests {
		var out bytes.Buffer
		c := PromptConfirmer{In: strings.NewReader(in), Out: &out}
		if got := c.Confirm("Delete?"); got != want {
			t.Errorf("Confirm with %q = %v, want %v", in, got, want)
		}
		if !strings.HasPrefix(out.String(), "Delete? [y/N] ") {
			t.Errorf("unexpected prompt %q", out.String())
		}
	}
}
