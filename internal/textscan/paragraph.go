package textscan

// A paragraph break is a run of two or more consecutive line breaks,
// where a "\r\n" pair counts as a single break unit. The scans below
// reproduce the plugin's historical behavior exactly, including the
// forward/backward asymmetry in how CR units are stepped over; see the
// boundary tests before changing either direction.

// ForwardParagraph returns the rune offset of the start of the next
// paragraph after off: the position immediately following the next
// paragraph break. Line breaks directly at the cursor are skipped first,
// so repeated invocations walk paragraph by paragraph. Returns len(text)
// in runes when no further break exists.
func ForwardParagraph(text string, off int) int {
	runes := []rune(text)
	n := len(runes)
	i := off
	if i < 0 {
		i = 0
	}

	// Skip blank lines under the cursor.
	for i < n && IsLineBreak(runes[i]) {
		i++
	}

	for i < n {
		if !IsLineBreak(runes[i]) {
			i++
			continue
		}
		j := i
		units := 0
		for j < n && IsLineBreak(runes[j]) {
			if runes[j] == '\r' && j+1 < n && runes[j+1] == '\n' {
				j += 2
			} else {
				j++
			}
			units++
		}
		if units >= 2 {
			return j
		}
		i = j
	}
	return n
}

// BackwardParagraph returns the rune offset of the start of the current
// paragraph, or of the previous one when the cursor already sits at a
// paragraph start. Returns 0 when no earlier break exists.
func BackwardParagraph(text string, off int) int {
	runes := []rune(text)
	n := len(runes)
	i := off
	if i > n {
		i = n
	}

	// Skip blank lines immediately before the cursor.
	for i > 0 && IsLineBreak(runes[i-1]) {
		i--
	}

	for i > 0 {
		if !IsLineBreak(runes[i-1]) {
			i--
			continue
		}
		j := i
		units := 0
		for j > 0 && IsLineBreak(runes[j-1]) {
			if runes[j-1] == '\n' && j > 1 && runes[j-2] == '\r' {
				j -= 2
			} else {
				j--
			}
			units++
		}
		if units >= 2 {
			return i
		}
		i = j
	}
	return 0
}
