package binparse

// StringTableEntry is one decoded entry of a string table.
type StringTableEntry struct {
	// String is the decoded text, without terminator or byte-order mark.
	String string `json:"string"`
	// Offset is the position of the entry's first code unit relative to
	// the start of the table region.
	Offset int64 `json:"offset"`
}
