package recommend

// sameID reports whether both identifiers are present and equal.
func sameID(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

func intOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
