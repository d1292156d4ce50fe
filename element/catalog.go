package element

// catalogEntries is the ordered, process-wide table of well-known NDFD
// variables (spec.md §3's ElementCatalog), terminated by UNDEF and
// MatchAll. Center/subcenter/version are NDFD's own (NCEP=7,
// NDFD-subcenter=14, GRIB edition 2); category/number follow the WMO
// GRIB2 parameter tables grib2/tables implements, except for the
// NDFD-local fire-weather and sky/mixing-height extensions (category 192),
// which NDFD defines outside the WMO tables.
var catalogEntries = []ElementDescriptor{
	{
		NDFDEnum: MaxT, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](8), Category: Some[uint8](0), Subcategory: Some[uint8](4),
		IntervalLength: Some(24), SurfaceType: Some[uint8](103), SurfaceValue: Some(2.0),
	},
	{
		NDFDEnum: MinT, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](8), Category: Some[uint8](0), Subcategory: Some[uint8](5),
		IntervalLength: Some(24), SurfaceType: Some[uint8](103), SurfaceValue: Some(2.0),
	},
	{
		NDFDEnum: PoP12, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](8), Category: Some[uint8](1), Subcategory: Some[uint8](8),
		IntervalLength: Some(12), SurfaceType: Some[uint8](1),
	},
	{
		NDFDEnum: Temp, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](0), Category: Some[uint8](0), Subcategory: Some[uint8](0),
		SurfaceType: Some[uint8](103), SurfaceValue: Some(2.0),
	},
	{
		NDFDEnum: WDir, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](0), Category: Some[uint8](2), Subcategory: Some[uint8](0),
		SurfaceType: Some[uint8](103), SurfaceValue: Some(10.0),
	},
	{
		NDFDEnum: WSpd, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](0), Category: Some[uint8](2), Subcategory: Some[uint8](1),
		SurfaceType: Some[uint8](103), SurfaceValue: Some(10.0),
	},
	{
		NDFDEnum: Td, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](0), Category: Some[uint8](0), Subcategory: Some[uint8](6),
		SurfaceType: Some[uint8](103), SurfaceValue: Some(2.0),
	},
	{
		NDFDEnum: Sky, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](0), Category: Some[uint8](6), Subcategory: Some[uint8](1),
		SurfaceType: Some[uint8](1),
	},
	{
		NDFDEnum: QPF, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](8), Category: Some[uint8](1), Subcategory: Some[uint8](8),
		IntervalLength: Some(6), SurfaceType: Some[uint8](1),
	},
	{
		NDFDEnum: Snow, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](8), Category: Some[uint8](1), Subcategory: Some[uint8](29),
		IntervalLength: Some(6), SurfaceType: Some[uint8](1),
	},
	{
		NDFDEnum: Wx, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](0), Category: Some[uint8](192), Subcategory: Some[uint8](193),
		SurfaceType: Some[uint8](1),
	},
	{
		NDFDEnum: WaveH, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](0), Category: Some[uint8](0), Subcategory: Some[uint8](3),
		SurfaceType: Some[uint8](1),
	},
	{
		NDFDEnum: AppT, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](0), Category: Some[uint8](0), Subcategory: Some[uint8](192),
		SurfaceType: Some[uint8](103), SurfaceValue: Some(2.0),
	},
	{
		NDFDEnum: RH, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](0), Category: Some[uint8](1), Subcategory: Some[uint8](1),
		SurfaceType: Some[uint8](103), SurfaceValue: Some(2.0),
	},
	{
		NDFDEnum: WGust, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](0), Category: Some[uint8](2), Subcategory: Some[uint8](22),
		SurfaceType: Some[uint8](103), SurfaceValue: Some(10.0),
	},
	{
		NDFDEnum: TCond, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](0), Category: Some[uint8](192), Subcategory: Some[uint8](194),
		SurfaceType: Some[uint8](1),
	},
	{
		NDFDEnum: MixHgt, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](0), Category: Some[uint8](3), Subcategory: Some[uint8](196),
		SurfaceType: Some[uint8](1),
	},
	{
		NDFDEnum: TransW, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](0), Category: Some[uint8](2), Subcategory: Some[uint8](197),
		SurfaceType: Some[uint8](104),
	},
	{
		NDFDEnum: CritFireO, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](0), Category: Some[uint8](192), Subcategory: Some[uint8](198),
		SurfaceType: Some[uint8](1),
	},
	{
		NDFDEnum: DryFireO, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](0), Category: Some[uint8](192), Subcategory: Some[uint8](199),
		SurfaceType: Some[uint8](1),
	},
	{
		NDFDEnum: ConvHazO, Version: Some[uint8](2), Center: Some[uint16](7), Subcenter: Some[uint16](14),
		ProductType: Some[uint8](0), Template: Some[uint16](0), Category: Some[uint8](192), Subcategory: Some[uint8](200),
		SurfaceType: Some[uint8](1),
	},
	// UNDEF and MatchAll: every field absent, matching anything.
	{NDFDEnum: UNDEF},
	{NDFDEnum: MatchAll},
}

var catalogIndex = func() map[Enum]int {
	idx := make(map[Enum]int, len(catalogEntries))
	for i, d := range catalogEntries {
		idx[d.NDFDEnum] = i
	}
	return idx
}()

// Catalog returns the ordered catalog of well-known element descriptors,
// including the trailing UNDEF and MatchAll entries.
func Catalog() []ElementDescriptor {
	out := make([]ElementDescriptor, len(catalogEntries))
	copy(out, catalogEntries)
	return out
}

// DescriptorFor returns the catalog entry for enum by indexed lookup.
// descriptor_for(e).NDFDEnum == e is maintained by construction.
func DescriptorFor(e Enum) ElementDescriptor {
	i, ok := catalogIndex[e]
	if !ok {
		return ElementDescriptor{NDFDEnum: UNDEF}
	}
	return catalogEntries[i]
}
