package domain

// TextureClass is a USDA soil-triangle texture category.
type TextureClass string

const (
	TextureClay          TextureClass = "CLAY"
	TextureClayLoam      TextureClass = "CLAY LOAM"
	TextureLoam          TextureClass = "LOAM"
	TextureLoamySand     TextureClass = "LOAMY SAND"
	TextureSand          TextureClass = "SAND"
	TextureSandyClay     TextureClass = "SANDY CLAY"
	TextureSiltyClay     TextureClass = "SILTY CLAY"
	TextureSiltyClayLoam TextureClass = "SILTY CLAY LOAM"
	TextureSiltLoam      TextureClass = "SILT LOAM"
	TextureSandyLoam     TextureClass = "SANDY LOAM"
	TextureSandyClayLoam TextureClass = "SANDY CLAY LOAM"
	TextureSilt          TextureClass = "SILT"
	TextureUnknown       TextureClass = "Unknown"
)

// TextureTableVersion identifies the encoding table below. It is stored in
// model metadata and checked at load time: a model trained against a
// different table would silently mispredict.
const TextureTableVersion = "v1-unified"

// textureCodes is the single canonical label→code table shared by the
// training and serving paths. Code 6 is intentionally unassigned: it belonged
// to a dead "SANDY LOAMY" entry that was unreachable from the classifier.
var textureCodes = map[TextureClass]int{
	TextureClay:          0,
	TextureClayLoam:      1,
	TextureLoam:          2,
	TextureLoamySand:     3,
	TextureSand:          4,
	TextureSandyClay:     5,
	TextureSiltyClay:     7,
	TextureSiltyClayLoam: 8,
	TextureSiltLoam:      9,
	TextureSandyLoam:     10,
	TextureSandyClayLoam: 11,
	TextureSilt:          12,
	TextureUnknown:       -1,
}

// EncodeTexture maps a texture class to its integer code in [-1,12].
// Unrecognized labels map to the Unknown code.
func EncodeTexture(tc TextureClass) int {
	if code, ok := textureCodes[tc]; ok {
		return code
	}
	return textureCodes[TextureUnknown]
}

// DecodeTexture maps an integer code back to its texture class.
func DecodeTexture(code int) TextureClass {
	for tc, c := range textureCodes {
		if c == code {
			return tc
		}
	}
	return TextureUnknown
}

// TextureClassCount reports the number of labels in the encoding table.
func TextureClassCount() int {
	return len(textureCodes)
}

// ClassifyTexture maps sand/silt/clay percentages to a texture class and its
// encoded value. The rules form an ordered cascade: conditions overlap and
// the first match wins, so reordering changes results on boundary soils.
// The `>` vs `>=` comparisons are exact; percentages need not sum to 100.
func ClassifyTexture(sand, silt, clay float64) (TextureClass, int) {
	var tc TextureClass
	switch {
	case silt+clay < 20:
		tc = TextureSand
	case sand > 52 && silt < 50 && clay < 20:
		tc = TextureLoamySand
	case sand > 52 && (silt >= 50 || clay >= 20):
		tc = TextureSandyLoam
	case silt >= 80 && clay < 12:
		tc = TextureSilt
	case silt >= 50 && clay >= 12 && clay < 27:
		tc = TextureSiltLoam
	case clay >= 27 && sand <= 45:
		tc = TextureClayLoam
	case clay >= 20 && clay < 27 && silt >= 28 && silt < 50 && sand <= 52:
		tc = TextureLoam
	case clay >= 35 && sand > 45:
		tc = TextureSandyClay
	case clay >= 35 && silt > 40:
		tc = TextureSiltyClay
	case clay >= 27 && clay < 40 && sand > 45:
		tc = TextureSandyClayLoam
	case clay >= 27 && clay < 40 && silt > 28 && sand <= 45:
		tc = TextureSiltyClayLoam
	default:
		tc = TextureUnknown
	}
	return tc, EncodeTexture(tc)
}
