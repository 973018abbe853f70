package cli

import (
	"bytes"
	"context"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"png", "svg", "pdf", "json"}},
		{"p", []string{"png", "pdf"}},
		{"png,", []string{"png,svg", "png,pdf", "png,json"}},
		{"png,svg,j", []string{"png,svg,json"}},
		{"png,svg,pdf,json,", nil},
	}
	for _, tt := range tests {
		got, dir := completeFormats(nil, nil, tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("completeFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if dir&cobra.ShellCompDirectiveNoSpace == 0 {
			t.Errorf("completeFormats(%q) directive = %v, want NoSpace", tt.in, dir)
		}
	}
}

// complete runs cobra's hidden completion command and returns its output.
func complete(t *testing.T, args ...string) string {
	t.Helper()
	isolate(t)
	c := New(discard, LogInfo)
	t.Cleanup(func() { c.Close() })
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{cobra.ShellCompRequestCmd}, args...))
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestFlagValueCompletion(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"generate", "--strategy", ""}, []string{"frontier", "spiral"}},
		{[]string{"layout", "sizes.json", "--strategy", "sp"}, []string{"spiral"}},
		{[]string{"visualize", "l.json", "--renderer", ""}, []string{"auto", "content", "fixed"}},
		{[]string{"generate", "--format", "png,"}, []string{"png,svg", "png,json"}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out := complete(t, tt.args...)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("completion output %q missing %q", out, w)
				}
			}
		})
	}
}

func TestPositionalCompletionFiltersExtensions(t *testing.T) {
	out := complete(t, "layout", "")
	for _, ext := range manifestExts {
		if !strings.Contains(out, ext) {
			t.Errorf("layout completion %q missing extension %q", out, ext)
		}
	}
	if out := complete(t, "stats", ""); !strings.Contains(out, "json") {
		t.Errorf("stats completion = %q, want json filter", out)
	}
}
