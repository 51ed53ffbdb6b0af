package models

// Intent is the lifecycle instruction a client attaches to a nested item in
// an update submission. An empty intent leaves the item untouched.
type Intent string

const (
	IntentCreate    Intent = "create"
	IntentUpdate    Intent = "update"
	IntentRemove    Intent = "remove"
	IntentUnchanged Intent = ""
)

// Card belongs to a cards section and carries a single picture slot.
type Card struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	Picture     AssetSlot `json:"picture"`
	Intent      Intent    `json:"intent,omitempty"`
}

// Attachment belongs to an attachments section and carries one file slot.
type Attachment struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	File        AssetSlot `json:"file"`
	Intent      Intent    `json:"intent,omitempty"`
}

// Grid groups an ordered set of layouts inside a grids section.
type Grid struct {
	ID      string       `json:"id,omitempty"`
	Name    string       `json:"name"`
	Layouts []GridLayout `json:"layouts"`
	Intent  Intent       `json:"intent,omitempty"`
}

// GridLayout is one cell of a grid and may carry up to three asset slots.
type GridLayout struct {
	ID            string    `json:"id,omitempty"`
	Position      int       `json:"position"`
	Size          string    `json:"size"`
	Type          string    `json:"type"`
	Text          string    `json:"text"`
	Button        string    `json:"button"`
	Image         AssetSlot `json:"image"`
	ButtonPicture AssetSlot `json:"button_picture"`
	ButtonIcon    AssetSlot `json:"button_icon"`
	Intent        Intent    `json:"intent,omitempty"`
}

// GalleryItem carries an image plus an optional icon.
type GalleryItem struct {
	ID     string    `json:"id,omitempty"`
	Title  string    `json:"title"`
	Video  string    `json:"video"`
	Image  AssetSlot `json:"image"`
	Icon   AssetSlot `json:"icon"`
	Intent Intent    `json:"intent,omitempty"`
}

// AccordionItem has no asset slots and passes through on ordinary field merge.
type AccordionItem struct {
	ID     string `json:"id,omitempty"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Intent Intent `json:"intent,omitempty"`
}
