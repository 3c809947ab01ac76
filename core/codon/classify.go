package codon

// Gap is the alignment gap symbol.
const Gap = '-'

// isAmbiguous reports whether any character of the codon falls outside the
// plain nucleotide alphabet {a,c,g,t}. Gap characters therefore also count
// as ambiguous; with ambiguity checking enabled they are attributed to the
// ambiguous counter because that check runs first.
func isAmbiguous(codon []byte) bool {
	for _, b := range codon {
		switch b {
		case 'a', 'c', 'g', 't':
		default:
			return true
		}
	}
	return false
}

// isGapped reports whether the codon contains a gap character.
func isGapped(codon []byte) bool {
	for _, b := range codon {
		if b == Gap {
			return true
		}
	}
	return false
}
