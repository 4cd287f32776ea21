package blocks

// DetectTextBlocks splits one line into blocks. chars must already be sorted
// by ascending X; the function does not sort or filter them.
//
// Two neighbours stay in the same block while the number of empty columns
// between them (x[i] - x[i-1] - 1) is below gapThreshold. A threshold of 0
// therefore puts every character in its own block.
func DetectTextBlocks(chars []Char, gapThreshold int) []TextBlock {
	if len(chars) == 0 {
		return nil
	}

	var out []TextBlock
	current := TextBlock{
		Start:      chars[0].X,
		End:        chars[0].X,
		Characters: []Char{chars[0]},
	}

	for i := 1; i < len(chars); i++ {
		gap := chars[i].X - chars[i-1].X - 1
		if gap >= gapThreshold {
			out = append(out, current)
			current = TextBlock{
				Start:      chars[i].X,
				End:        chars[i].X,
				Characters: []Char{chars[i]},
			}
			continue
		}
		current.End = chars[i].X
		current.Characters = append(current.Characters, chars[i])
	}

	return append(out, current)
}
