package moodboard

// Factory defaults.
const (
	DefaultColorHex = "#F4D03F"
	DefaultText     = "New text"
	// DefaultImageSrc is a placeholder image served as PNG so it decodes
	// without an SVG rasterizer.
	DefaultImageSrc = "https://placehold.co/320x220/png?text=Default+Image"
)

// itemFields is the union of every field an ItemOption can set. Each
// constructor seeds it with its own defaults, applies options in order and
// copies out the fields its variant carries.
type itemFields struct {
	base          ItemBase
	width, height float64
	hex           string
	text          string
	src           string
}

// ItemOption overrides one or more default fields of a new item. Options that
// name a field the variant does not have (WithHex on a text item) are ignored.
type ItemOption func(*itemFields)

// WithID sets the item id instead of generating one.
func WithID(id string) ItemOption {
	return func(f *itemFields) { f.base.ID = id }
}

// WithIDGenerator draws the item id from gen.
func WithIDGenerator(gen IDGenerator) ItemOption {
	return func(f *itemFields) {
		if gen != nil {
			f.base.ID = gen()
		}
	}
}

// WithPosition sets the top-left corner.
func WithPosition(x, y float64) ItemOption {
	return func(f *itemFields) { f.base.X, f.base.Y = x, y }
}

// WithSize sets width and height.
func WithSize(width, height float64) ItemOption {
	return func(f *itemFields) { f.width, f.height = width, height }
}

// WithZIndex sets the paint order key. Callers normally pass the board's
// MaxZIndex()+1; the factory never looks at a board.
func WithZIndex(z int) ItemOption {
	return func(f *itemFields) { f.base.ZIndex = z }
}

// WithHex sets a color item's fill.
func WithHex(hex string) ItemOption {
	return func(f *itemFields) { f.hex = hex }
}

// WithText sets a text item's content.
func WithText(text string) ItemOption {
	return func(f *itemFields) { f.text = text }
}

// WithSrc sets an image item's URL.
func WithSrc(src string) ItemOption {
	return func(f *itemFields) { f.src = src }
}

func buildFields(f itemFields, opts []ItemOption) itemFields {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	if f.base.ID == "" {
		f.base.ID = NewID()
	}
	return f
}

// NewColorItem returns a color block: #F4D03F, 120x120 at (80, 80), z 1.
func NewColorItem(opts ...ItemOption) ColorItem {
	f := buildFields(itemFields{
		base:  ItemBase{X: 80, Y: 80, ZIndex: 1},
		width: 120, height: 120,
		hex: DefaultColorHex,
	}, opts)
	return ColorItem{ItemBase: f.base, Hex: f.hex, Width: f.width, Height: f.height}
}

// NewTextItem returns a text note: "New text", 240x100 at (240, 100), z 2.
func NewTextItem(opts ...ItemOption) TextItem {
	f := buildFields(itemFields{
		base:  ItemBase{X: 240, Y: 100, ZIndex: 2},
		width: 240, height: 100,
		text: DefaultText,
	}, opts)
	return TextItem{ItemBase: f.base, Text: f.text, Width: f.width, Height: f.height}
}

// NewImageItem returns an image: placeholder src, 320x220 at (120, 120), z 1.
func NewImageItem(opts ...ItemOption) ImageItem {
	f := buildFields(itemFields{
		base:  ItemBase{X: 120, Y: 120, ZIndex: 1},
		width: 320, height: 220,
		src: DefaultImageSrc,
	}, opts)
	return ImageItem{ItemBase: f.base, Src: f.src, Width: f.width, Height: f.height}
}
