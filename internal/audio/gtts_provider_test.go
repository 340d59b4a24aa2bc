package audio

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

func TestGTTSProviderArgs(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		want   []string
	}{
		{
			name:   "plain",
			config: &Config{Language: "pt"},
			want:   []string{"casa", "-l", "pt", "-o", "casa_pt.mp3"},
		},
		{
			name:   "slow with tld",
			config: &Config{Language: "pt", GTTSSlow: true, GTTSTLD: "com.br"},
			want:   []string{"casa", "-l", "pt", "--slow", "--tld", "com.br", "-o", "casa_pt.mp3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewGTTSProvider(tt.config).args("casa", "casa_pt.mp3")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("args() = %v, want %v", got, tt.want)
			}
		})
	}
}

// fakeCommand writes a shell script that mimics gtts-cli by writing to
// the file following -o and logging its arguments.
func fakeCommand(t *testing.T, exitCode int) (string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}

	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	script := filepath.Join(dir, "gtts-cli")
	content := `#!/bin/sh
echo "$@" >> "` + argsFile + `"
out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "-o" ]; then out="$2"; fi
  shift
done
if [ ` + string(rune('0'+exitCode)) + ` -ne 0 ]; then
  echo "429 Too Many Requests" >&2
  exit ` + string(rune('0'+exitCode)) + `
fi
printf 'ID3' > "$out"
`
	if err := os.WriteFile(script, []byte(content), 0755); err != nil {
		t.Fatalf("failed to write fake command: %v", err)
	}
	return script, argsFile
}

func TestGTTSProviderGenerateAudio(t *testing.T) {
	script, argsFile := fakeCommand(t, 0)

	provider := NewGTTSProvider(&Config{Language: "en"})
	provider.command = script

	outputFile := filepath.Join(t.TempDir(), "EN_", "I like cats.__en.mp3")
	if err := provider.GenerateAudio(context.Background(), "I like cats.", outputFile); err != nil {
		t.Fatalf("GenerateAudio() error = %v", err)
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(data) != "ID3" {
		t.Errorf("output = %q, want ID3", data)
	}

	args, _ := os.ReadFile(argsFile)
	if !strings.Contains(string(args), "-l en") {
		t.Errorf("args = %q, want language flag", args)
	}
}

func TestGTTSProviderGenerateAudioFailure(t *testing.T) {
	script, _ := fakeCommand(t, 1)

	provider := NewGTTSProvider(&Config{Language: "pt"})
	provider.command = script

	err := provider.GenerateAudio(context.Background(), "casa", filepath.Join(t.TempDir(), "casa_pt.mp3"))
	if err == nil {
		t.Fatal("GenerateAudio() expected error")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error = %v, want command output included", err)
	}
}

func TestGTTSProviderIsAvailable(t *testing.T) {
	provider := NewGTTSProvider(&Config{Language: "pt"})
	provider.command = "palavra-no-such-command"

	if err := provider.IsAvailable(); err == nil {
		t.Error("IsAvailable() should fail for a missing command")
	}
}

func TestESpeakProviderDefaults(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		wantVoice string
		wantSpeed int
	}{
		{"configured", &Config{Language: "pt", ESpeakVoice: "pt-br", ESpeakSpeed: 140}, "pt-br", 140},
		{"language as voice", &Config{Language: "en"}, "en", 150},
		{"clamped slow", &Config{Language: "pt", ESpeakSpeed: 10}, "pt", 80},
		{"clamped fast", &Config{Language: "pt", ESpeakSpeed: 900}, "pt", 450},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewESpeakProvider(tt.config)
			if p.voice != tt.wantVoice {
				t.Errorf("voice = %s, want %s", p.voice, tt.wantVoice)
			}
			if p.speed != tt.wantSpeed {
				t.Errorf("speed = %d, want %d", p.speed, tt.wantSpeed)
			}
		})
	}
}
