package classify

// FirstJSONObject returns the first balanced top-level JSON object embedded
// in text. Generators tend to wrap their JSON in prose or markdown fences;
// this walks the text brace-by-brace, tracking string and escape state, and
// returns the raw slice for the validator to judge.
func FirstJSONObject(text string) ([]byte, bool) {
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return []byte(text[start : i+1]), true
			}
		}
	}
	return nil, false
}
