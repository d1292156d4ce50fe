package element

// ResolveFilter implements the Element Filter (C2): given the caller's
// per-enum interest (0 = don't care, 1 = interested-but-droppable, 2 =
// vital) and the user's explicit selections, produce the set of catalog
// descriptors a probe run should match against.
//
// Algorithm (spec.md §4.2): increment filter[enum] for every user
// selection; if the user list is empty and no cell reached 2 from that
// alone, raise every cell to 2 ("select everything", so every catalog
// entry but UNDEF and MatchAll is selected whatever the caller's interest
// values); the result is every catalog entry whose filter cell is >= 2.
// Per spec.md §8 scenario 6,
// a vital caller pick (cell == 2) elsewhere means the blanket fallback did
// not fire, and in that case the caller's own interested-but-droppable
// picks (the original interest cell == 1) are retained alongside the vital
// one, not just the vital one alone.
func ResolveFilter(catalog []ElementDescriptor, callerInterest map[Enum]int, userSelected []Enum) []ElementDescriptor {
	filter := make(map[Enum]int, len(catalog))
	interest := make(map[Enum]int, len(catalog))
	for _, d := range catalog {
		filter[d.NDFDEnum] = callerInterest[d.NDFDEnum]
		interest[d.NDFDEnum] = callerInterest[d.NDFDEnum]
	}

	for _, e := range userSelected {
		filter[e]++
	}

	vital := false
	for _, v := range filter {
		if v >= 2 {
			vital = true
			break
		}
	}

	if len(userSelected) == 0 && !vital {
		for e := range filter {
			filter[e] = 2
		}
	}

	var result []ElementDescriptor
	for _, d := range catalog {
		if d.NDFDEnum == UNDEF || d.NDFDEnum == MatchAll {
			continue
		}
		if filter[d.NDFDEnum] >= 2 {
			result = append(result, d)
			continue
		}
		if vital && interest[d.NDFDEnum] == 1 {
			result = append(result, d)
		}
	}
	return result
}
