package classify

import (
	"strings"

	"github.com/promptform/promptform/pkg/model"
)

// synthesize builds a minimal registration form from the prompt alone. It
// never fails: a required name field always leads, and email/phone/message
// fields follow when the prompt mentions them. The input is already
// lowercased by Classify.
func (c *Classifier) synthesize(prompt string) model.FormSpec {
	rules := c.rules.Synthesizer

	fields := []model.FieldSpec{{
		Name:        "name",
		Label:       "Full Name",
		Type:        model.FieldTypeText,
		Required:    true,
		Placeholder: "Enter your full name",
	}}

	if containsAny(prompt, rules.EmailKeywords) {
		fields = append(fields, model.FieldSpec{
			Name:        "email",
			Label:       "Email Address",
			Type:        model.FieldTypeEmail,
			Required:    true,
			Placeholder: "Enter your email",
		})
	}
	if containsAny(prompt, rules.PhoneKeywords) {
		fields = append(fields, model.FieldSpec{
			Name:        "phone",
			Label:       "Phone Number",
			Type:        model.FieldTypeTel,
			Placeholder: "Enter your phone number",
		})
	}
	if containsAny(prompt, rules.MessageKeywords) {
		fields = append(fields, model.FieldSpec{
			Name:        "message",
			Label:       "Message",
			Type:        model.FieldTypeTextarea,
			Placeholder: "Enter your message",
		})
	}

	return model.FormSpec{
		Title:       synthesizedTitle(prompt, rules.TitleStopwords),
		Description: "Please fill out the form below",
		Fields:      fields,
	}
}

// synthesizedTitle derives a title from the first significant words of the
// prompt. It always ends in "Registration Form".
func synthesizedTitle(prompt string, stopwords []string) string {
	const suffix = "Registration Form"
	const maxWords = 3

	skip := make(map[string]struct{}, len(stopwords))
	for _, word := range stopwords {
		skip[word] = struct{}{}
	}

	var picked []string
	for _, word := range strings.FieldsFunc(prompt, func(r rune) bool {
		return !isWordRune(r)
	}) {
		if _, ok := skip[word]; ok {
			continue
		}
		picked = append(picked, titleCase(word))
		if len(picked) == maxWords {
			break
		}
	}

	if len(picked) == 0 {
		return suffix
	}
	return strings.Join(picked, " ") + " " + suffix
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '-' || r == '\'' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
