package audio

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateText rejects text a speech engine cannot pronounce
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	for _, r := range text {
		if unicode.IsLetter(r) {
			return nil
		}
	}

	return fmt.Errorf("text must contain letters")
}
