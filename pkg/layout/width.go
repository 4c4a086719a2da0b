package layout

// Text slots of a container: a base-width rectangle fits defaultSlots grid
// cells of text, and a wider one keeps marginSlots cells of padding.
const (
	defaultSlots = 5
	marginSlots  = 3
)

// widthTier is the longest name that fits a base-width container and how
// many characters fit in one grid cell at a given font size.
type widthTier struct {
	maxLen  int
	perUnit int
}

var widthTiers = map[int]widthTier{
	12: {maxLen: 14, perUnit: 3},
	20: {maxLen: 9, perUnit: 2},
	28: {maxLen: 5, perUnit: 1},
	36: {maxLen: 2, perUnit: 1},
}

// AdditionalWidth returns the width to add to [ContainerWidth] so that name
// fits at fontSize. Names within the tier threshold need none; longer ones
// get at least one grid cell. Font sizes without a tier use a threshold of
// one character per cell.
func AdditionalWidth(name string, scale, fontSize int) int {
	tier, ok := widthTiers[fontSize]
	if !ok {
		tier = widthTier{maxLen: 1, perUnit: 1}
	}
	n := len(name)
	if n <= tier.maxLen {
		return 0
	}
	return scale * max(1, n/tier.perUnit-defaultSlots+marginSlots)
}

// ContainerWidthFor returns the full width of the rectangle for name.
func ContainerWidthFor(name string, scale, fontSize int) int {
	return ContainerWidth + AdditionalWidth(name, scale, fontSize)
}
