package moodboard

// ItemKind tags the variant of an Item.
type ItemKind string

const (
	KindColor ItemKind = "color" // solid rectangle filled with a hex color
	KindText  ItemKind = "text"  // note whose box is sized to fit its text
	KindImage ItemKind = "image" // rectangle displaying a remote image
)

// ItemBase holds the fields every item variant shares.
type ItemBase struct {
	// ID is unique within a board and never changes after creation.
	ID string
	// X and Y are the top-left corner in board units.
	X, Y float64
	// ZIndex orders painting and hit testing; higher paints on top.
	// Values need not be unique.
	ZIndex int
}

// Item is one placed element on a board. The variant set is closed:
// ColorItem, TextItem and ImageItem are the only implementations, and code
// that handles items type-switches over exactly those three.
//
// Items are values. Updating one means building a modified copy; an Item
// stored in a published BoardState is never changed.
type Item interface {
	Kind() ItemKind
	Base() ItemBase
	withBase(ItemBase) Item
}

// ColorItem is an opaque rectangle filled with Hex.
type ColorItem struct {
	ItemBase
	Hex           string
	Width, Height float64
}

// TextItem is a note. Width and Height are measured from Text when an edit is
// committed and are never resized directly.
type TextItem struct {
	ItemBase
	Text          string
	Width, Height float64
}

// ImageItem displays the image at Src scaled into its box.
type ImageItem struct {
	ItemBase
	Src           string
	Width, Height float64
}

func (ColorItem) Kind() ItemKind { return KindColor }
func (TextItem) Kind() ItemKind  { return KindText }
func (ImageItem) Kind() ItemKind { return KindImage }

func (it ColorItem) Base() ItemBase { return it.ItemBase }
func (it TextItem) Base() ItemBase  { return it.ItemBase }
func (it ImageItem) Base() ItemBase { return it.ItemBase }

func (it ColorItem) withBase(b ItemBase) Item { it.ItemBase = b; return it }
func (it TextItem) withBase(b ItemBase) Item  { it.ItemBase = b; return it }
func (it ImageItem) withBase(b ItemBase) Item { it.ItemBase = b; return it }
