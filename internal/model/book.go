package model

// Book describes one catalog entry.  TotalCopies is the number of physical
// copies the library owns; AvailableCopies is how many of them are currently
// on the shelf.  AvailableCopies is mutated only by the loan ledger in
// response to approved transactions and must stay within [0, TotalCopies].
//
// Fields:
//  ID              – opaque identifier (uuid for records created here,
//                    arbitrary text for imported rows).
//  Title           – book title.
//  Author          – author name.
//  Category        – free-form category label.
//  TotalCopies     – copies owned.
//  AvailableCopies – copies on the shelf right now.
type Book struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Category        string `json:"category"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

// BookPatch enumerates the optional fields of a partial book update.  A nil
// field leaves the current value untouched.
type BookPatch struct {
	Title           *string `json:"title,omitempty"`
	Author          *string `json:"author,omitempty"`
	Category        *string `json:"category,omitempty"`
	TotalCopies     *int    `json:"total_copies,omitempty"`
	AvailableCopies *int    `json:"available_copies,omitempty"`
}

// Apply merges the patch into the book, field by field.
func (p BookPatch) Apply(b *Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.TotalCopies != nil {
		b.TotalCopies = *p.TotalCopies
	}
	if p.AvailableCopies != nil {
		b.AvailableCopies = *p.AvailableCopies
	}
}
