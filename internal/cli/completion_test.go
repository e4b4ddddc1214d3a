package cli

import (
	"bytes"
	"strings"
	"testing"
)

func twoTargets(url string) string {
	return oneTarget(url) + "\n[[targets]]\nid = \"staging\"\nurl = \"" + url + "/staging\"\n"
}

func TestCompleteTargets(t *testing.T) {
	f := newFixture(t, twoTargets)
	c := New(&bytes.Buffer{}, LogInfo)

	tests := []struct {
		name string
		args []string
		want []string
		skip []string
	}{
		{"all", []string{"--target", ""}, []string{"local", "staging"}, nil},
		{"prefix", []string{"--target", "st"}, []string{"staging"}, []string{"local"}},
		{"already given", []string{"--target", "local", "--target", ""}, []string{"staging"}, []string{"local\t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"__complete", "publish", "-c", f.config}, tt.args...)
			out, err := execute(t, c, args...)
			if err != nil {
				t.Fatalf("complete: %v\n%s", err, out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w+"\t") {
					t.Errorf("missing %q in:\n%s", w, out)
				}
			}
			for _, s := range tt.skip {
				if strings.Contains(out, s) {
					t.Errorf("unexpected %q in:\n%s", s, out)
				}
			}
		})
	}
}

func TestCompleteTargetsMissingConfig(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	out, err := execute(t, c, "__complete", "publish", "-c", t.TempDir()+"/none.toml", "--target", "")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if strings.Contains(out, "\t") {
		t.Errorf("completions offered without a project file:\n%s", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := execute(t, c, "completion", shell)
		if err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, "pubkit") {
			t.Errorf("completion %s does not mention pubkit", shell)
		}
	}
	if _, err := execute(t, c, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh succeeded, want error")
	}
}
