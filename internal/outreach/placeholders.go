package outreach

import "strings"

// Sender is the workspace user the messages are written on behalf of.
type Sender struct {
	Name     string
	Email    string
	Company  string
	Position string
	Phone    string
}

const (
	placeholderName     = "[Seu Nome]"
	placeholderCompany  = "[Sua Empresa]"
	placeholderEmail    = "[Seu Email]"
	placeholderPosition = "[Seu Cargo]"
	placeholderPhone    = "[Seu Telefone]"
)

// ApplySender fills the sender placeholders the model is told to use. Lines
// holding the position or phone placeholder are dropped entirely when the
// sender has no such value, so signatures never show an empty slot.
func ApplySender(message string, s Sender) string {
	if strings.TrimSpace(s.Position) == "" {
		message = dropLinesWith(message, placeholderPosition)
	}
	if strings.TrimSpace(s.Phone) == "" {
		message = dropLinesWith(message, placeholderPhone)
	}

	r := strings.NewReplacer(
		placeholderName, s.Name,
		placeholderCompany, s.Company,
		placeholderEmail, s.Email,
		placeholderPosition, s.Position,
		placeholderPhone, s.Phone,
	)
	return strings.TrimSpace(r.Replace(message))
}

func dropLinesWith(text, marker string) string {
	if !strings.Contains(text, marker) {
		return text
	}
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.Contains(line, marker) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
