package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ScriptedGenerator mocks a text generation backend. Replies and Errors are
// consumed in call order; once exhausted the last reply is repeated. Respond,
// when set, takes precedence over both.
type ScriptedGenerator struct {
	Replies []string
	Errors  []error
	Respond func(prompt string) (string, error)

	mu      sync.Mutex
	Prompts []string
}

// Generate records the prompt and returns the next scripted reply
func (s *ScriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	call := len(s.Prompts)
	s.Prompts = append(s.Prompts, prompt)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if s.Respond != nil {
		return s.Respond(prompt)
	}

	if call < len(s.Errors) && s.Errors[call] != nil {
		return "", s.Errors[call]
	}

	switch {
	case len(s.Replies) == 0:
		return "", nil
	case call < len(s.Replies):
		return s.Replies[call], nil
	default:
		return s.Replies[len(s.Replies)-1], nil
	}
}

// Name returns the backend name
func (s *ScriptedGenerator) Name() string {
	return "scripted"
}

// Calls returns the number of Generate calls so far
func (s *ScriptedGenerator) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Prompts)
}

// AudioCall is one recorded GenerateAudio call
type AudioCall struct {
	Text       string
	OutputFile string
}

// MockAudioProvider mocks a text-to-speech provider. Successful calls write
// Data (or a small MP3 header) to the output file.
type MockAudioProvider struct {
	ProviderName string
	Errors       map[string]error // keyed by text
	AvailableErr error
	Data         []byte

	mu    sync.Mutex
	Calls []AudioCall
}

// GenerateAudio records the call and writes a fake audio file
func (m *MockAudioProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, AudioCall{Text: text, OutputFile: outputFile})
	m.mu.Unlock()

	if err, ok := m.Errors[text]; ok {
		return err
	}

	data := m.Data
	if data == nil {
		data = (&TestDataGenerator{}).GenerateAudioData()
	}

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return err
	}
	return os.WriteFile(outputFile, data, 0644)
}

// Name returns the provider name
func (m *MockAudioProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// IsAvailable returns AvailableErr
func (m *MockAudioProvider) IsAvailable() error {
	return m.AvailableErr
}

// Texts returns the texts of all recorded calls
func (m *MockAudioProvider) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	texts := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		texts[i] = c.Text
	}
	return texts
}

// TestDataGenerator generates test data
type TestDataGenerator struct{}

// GenerateAudioData generates mock audio data
func (g *TestDataGenerator) GenerateAudioData() []byte {
	// Simple mock MP3 header
	return []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00}
}

// SentenceReply builds a well-formed numbered WORD/EN/PT reply covering words
func (g *TestDataGenerator) SentenceReply(words ...string) string {
	var b strings.Builder
	for i, w := range words {
		fmt.Fprintf(&b, "%d. WORD: %s\nEN: I like the %s.\nPT: Eu gosto do %s.\n", i+1, w, w, w)
	}
	return b.String()
}

// ConjugationReply builds a well-formed conjugation reply for Portuguese -ar verbs
func (g *TestDataGenerator) ConjugationReply(verbs ...string) string {
	var b strings.Builder
	for _, v := range verbs {
		stem := strings.TrimSuffix(v, "ar")
		fmt.Fprintf(&b, "VERB: %s\n", v)
		fmt.Fprintf(&b, "PRESENT:\nEu %so\nVocê/Ele/Ela %sa\nNós %samos\nVocês/Eles/Elas %sam\n", stem, stem, stem, stem)
		fmt.Fprintf(&b, "PAST:\nEu %sei\nVocê/Ele/Ela %sou\nNós %samos\nVocês/Eles/Elas %saram\n", stem, stem, stem, stem)
		fmt.Fprintf(&b, "FUTURE:\nEu %sarei\nVocê/Ele/Ela %sará\nNós %saremos\nVocês/Eles/Elas %sarão\n", stem, stem, stem, stem)
		fmt.Fprintf(&b, "---\n")
	}
	return b.String()
}
