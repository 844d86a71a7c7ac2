package command

import (
	"bytes"
	"context"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/px/pkg/errors"
	"github.com/matzehuels/px/pkg/project"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		manager project.Manager
		args    string
		want    string
	}{
		{project.ManagerNPM, "install react", "install react"},
		{project.ManagerNPM, "rm react", "rm react"},
		{project.ManagerYarn, "install react", "add react"},
		{project.ManagerYarn, "i -D react", "add -D react"},
		{project.ManagerYarn, "install", "install"},
		{project.ManagerYarn, "install --frozen-lockfile", "install --frozen-lockfile"},
		{project.ManagerPNPM, "add react", "add react"},
		{project.ManagerPNPM, "uninstall react", "remove react"},
		{project.ManagerPNPM, "un react", "remove react"},
		{project.ManagerYarn, "rm react", "remove react"},
		{project.ManagerPNPM, "run build", "run build"},
		{project.ManagerPNPM, "", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.manager)+" "+tt.args, func(t *testing.T) {
			args := strings.Fields(tt.args)
			orig := slices.Clone(args)
			got := strings.Join(Normalize(tt.manager, args), " ")
			if got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
			if !slices.Equal(args, orig) {
				t.Error("Normalize modified its input")
			}
		})
	}
}

func TestCommandString(t *testing.T) {
	if got := New(project.ManagerNPM, "install", "-D", "react").String(); got != "npm install -D react" {
		t.Errorf("String() = %q", got)
	}
	if got := New(project.ManagerYarn).String(); got != "yarn" {
		t.Errorf("String() = %q", got)
	}
	if got := New(project.ManagerPNPM, "install", "react").Verb(); got != "add" {
		t.Errorf("Verb() = %q, want add", got)
	}
}

func TestIsDevInstall(t *testing.T) {
	tests := []struct {
		args string
		want bool
	}{
		{"install react", false},
		{"install -D react", true},
		{"add react --save-dev", true},
		{"add --dev react", true},
		{"install --save-exact react", false},
		{"install -d react", false},
	}
	for _, tt := range tests {
		if got := IsDevInstall(strings.Fields(tt.args)); got != tt.want {
			t.Errorf("IsDevInstall(%q) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestVerbs(t *testing.T) {
	for _, v := range []string{"install", "i", "add"} {
		if !IsInstallVerb(v) {
			t.Errorf("IsInstallVerb(%q) = false", v)
		}
	}
	for _, v := range []string{"uninstall", "un", "remove", "rm"} {
		if !IsUninstallVerb(v) {
			t.Errorf("IsUninstallVerb(%q) = false", v)
		}
	}
	if IsInstallVerb("run") || IsUninstallVerb("run") {
		t.Error("run is neither install nor uninstall")
	}
}

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	var stdout bytes.Buffer
	r := ExecRunner{Dir: t.TempDir(), Stdout: &stdout, Stderr: &stdout}

	if err := r.Run(context.Background(), Command{Manager: "sh", Args: []string{"-c", "echo hello"}}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if strings.TrimSpace(stdout.String()) != "hello" {
		t.Errorf("stdout = %q", stdout.String())
	}

	err := r.Run(context.Background(), Command{Manager: "sh", Args: []string{"-c", "exit 3"}})
	code, ok := errors.ExitCode(err)
	if !ok || code != 3 {
		t.Errorf("ExitCode() = %d, %v; want 3, true", code, ok)
	}

	err = r.Run(context.Background(), Command{Manager: "px-no-such-manager"})
	if code, _ := errors.ExitCode(err); code != 127 {
		t.Errorf("missing executable exit code = %d, want 127", code)
	}
}

type recordingRunner struct {
	ran    []string
	failAt int
}

func (r *recordingRunner) Run(ctx context.Context, cmd Command) error {
	r.ran = append(r.ran, cmd.String())
	if len(r.ran) == r.failAt {
		return &errors.CommandError{Command: cmd.String(), ExitCode: 2}
	}
	return nil
}

func TestSequence(t *testing.T) {
	cmds := []Command{
		New(project.ManagerNPM, "install", "react"),
		New(project.ManagerNPM, "install", "-D", "@types/react"),
	}

	r := &recordingRunner{}
	var echoed []string
	if err := Sequence(context.Background(), r, cmds, func(c Command) { echoed = append(echoed, c.String()) }); err != nil {
		t.Fatalf("Sequence() error: %v", err)
	}
	if len(r.ran) != 2 || !slices.Equal(echoed, r.ran) {
		t.Errorf("ran = %v, echoed = %v", r.ran, echoed)
	}

	r = &recordingRunner{failAt: 1}
	err := Sequence(context.Background(), r, cmds, nil)
	if code, ok := errors.ExitCode(err); !ok || code != 2 {
		t.Errorf("ExitCode = %d, %v; want 2", code, ok)
	}
	if len(r.ran) != 1 {
		t.Errorf("sequence should stop at first failure, ran %v", r.ran)
	}
}
