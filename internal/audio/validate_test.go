package audio

import (
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
		errMsg  string
	}{
		{name: "Portuguese word", text: "maçã"},
		{name: "Portuguese sentence", text: "Eu gosto de gatos."},
		{name: "English word", text: "apple"},
		{name: "empty text", text: "", wantErr: true, errMsg: "text cannot be empty"},
		{name: "whitespace only", text: "   \t\n", wantErr: true, errMsg: "text cannot be empty"},
		{name: "numbers only", text: "12345", wantErr: true, errMsg: "text must contain letters"},
		{name: "punctuation only", text: "?!...", wantErr: true, errMsg: "text must contain letters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != nil && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidateText() error = %v, want error containing %v", err.Error(), tt.errMsg)
			}
		})
	}
}
