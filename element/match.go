package element

// MatchesMeta implements the per-field test of step 4 of the GRIB2 probe
// loop (spec.md §4.5): a descriptor field equal to its Option's None state
// is a wildcard; otherwise grid equality is required.
//
// For editions other than 2, only center, subcenter, and version are
// compared (the older editions don't carry the rest of the composite key).
// When the descriptor's template denotes a time interval (template 8 or 9)
// and the grid reports exactly one interval, IntervalLength must also
// match. When SurfaceType is specified, FirstSurfaceType, FirstSurfaceValue,
// and SecondSurfaceValue must all match.
func MatchesMeta(d ElementDescriptor, meta GridMeta) bool {
	if !d.Version.MatchesGrid(meta.Version) {
		return false
	}
	if !d.Center.MatchesGrid(meta.Center) {
		return false
	}
	if !d.Subcenter.MatchesGrid(meta.Subcenter) {
		return false
	}

	if meta.Version != 2 {
		return true
	}

	if !d.GeneratingID.MatchesGrid(meta.GeneratingID) {
		return false
	}
	if !d.ProductType.MatchesGrid(meta.ProductType) {
		return false
	}
	if !d.Template.MatchesGrid(meta.Template) {
		return false
	}
	if !d.Category.MatchesGrid(meta.Category) {
		return false
	}
	if !d.Subcategory.MatchesGrid(meta.Subcategory) {
		return false
	}

	if template, ok := d.Template.Get(); ok && (template == 8 || template == 9) && meta.NumIntervals == 1 {
		if !d.IntervalLength.MatchesGrid(meta.IntervalLength) {
			return false
		}
	}

	if _, hasSurfaceType := d.SurfaceType.Get(); hasSurfaceType {
		if !d.SurfaceType.MatchesGrid(meta.FirstSurfaceType) {
			return false
		}
		if !d.SurfaceValue.MatchesGrid(meta.FirstSurfaceValue) {
			return false
		}
		if !d.SecondSurfaceValue.MatchesGrid(meta.SecondSurfaceValue) {
			return false
		}
	}

	return true
}

// SelectDescriptor returns the first descriptor in filtered whose fields
// are satisfied by meta per MatchesMeta ("the first descriptor to match
// wins"), or false if none match.
func SelectDescriptor(filtered []ElementDescriptor, meta GridMeta) (ElementDescriptor, bool) {
	for _, d := range filtered {
		if MatchesMeta(d, meta) {
			return d, true
		}
	}
	return ElementDescriptor{}, false
}

// ReverseLookup implements step 7's descriptor reverse-lookup: it finds the
// catalog entry whose fields — including IntervalLength, SurfaceType, and
// the surface values — all equal meta's corresponding fields, returning
// UNDEF when no catalog entry matches exactly.
func ReverseLookup(catalog []ElementDescriptor, meta GridMeta) Enum {
	for _, d := range catalog {
		if d.NDFDEnum == UNDEF || d.NDFDEnum == MatchAll {
			continue
		}
		if !MatchesMeta(d, meta) {
			continue
		}
		if il, ok := d.IntervalLength.Get(); ok && il != meta.IntervalLength {
			continue
		}
		return d.NDFDEnum
	}
	return UNDEF
}
