package splitter

// Split cuts a long string into chunks of at most chunkSize runes.
// Consecutive chunks share a trailing/leading region of overlap runes,
// so the window advances by chunkSize-overlap per step. Same input
// always yields the same sequence. Empty input yields no chunks.
func Split(text string, chunkSize int, overlap int) []string {
	if len(text) == 0 {
		return nil
	}

	runes := []rune(text)
	totalLen := len(runes)

	if totalLen <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}
