package drafting

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/JaimeStill/nyaysetu/internal/keywords"
)

// Hash returns the SHA-256 of the canonical JSON of a request, keyed by
// document type. Object keys are sorted so field order never matters.
func Hash(dt keywords.DocumentType, request any) (string, error) {
	data, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return "", fmt.Errorf("normalize request: %w", err)
	}

	canonical, err := json.Marshal(map[string]any{
		"document_type": dt,
		"request":       generic,
	})
	if err != nil {
		return "", fmt.Errorf("marshal canonical request: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// ReferenceNumber formats RTI/{STATE}/{YEAR}/{HASH} from the first three
// letters of the state and the first eight hash characters.
func ReferenceNumber(state string, year int, hash string) string {
	var code []rune
	for _, r := range state {
		if unicode.IsLetter(r) {
			code = append(code, unicode.ToUpper(r))
		}
		if len(code) == 3 {
			break
		}
	}
	if len(hash) > 8 {
		hash = hash[:8]
	}
	return fmt.Sprintf("RTI/%s/%d/%s", string(code), year, strings.ToUpper(hash))
}
