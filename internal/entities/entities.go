package entities

import "time"

// Book is the root entity. Identifiers are opaque strings supplied by the
// caller at creation time and never change afterwards.
type Book struct {
	ID             string `gorm:"primaryKey;size:64" json:"id"`
	Title          string `gorm:"index;size:512" json:"title"`
	Author         string `gorm:"index;size:256" json:"author"`
	Description    string `gorm:"type:text" json:"description,omitempty"`
	CoverReference string `gorm:"size:2048" json:"cover_reference,omitempty"`

	Notes []Note `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Note belongs to exactly one book. SortOrder is a pointer because absence
// is meaningful on writes: nil asks the repository to append the note after
// its siblings. Rows read back from the store always carry a value.
type Note struct {
	ID         string `gorm:"primaryKey;size:64" json:"id"`
	BookID     string `gorm:"index;size:64" json:"book_id"`
	Title      string `gorm:"size:512" json:"title"`
	PageNumber int    `gorm:"index" json:"page_number"`
	SortOrder  *int   `gorm:"column:sort_order" json:"sort_order,omitempty"`

	Images []Image `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE" json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Image is an entry attached to a note. URI may be empty for text-only
// entries. A nil SortOrder on write defaults to the entry's position in
// the sequence handed to the repository.
type Image struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	NoteID      string `gorm:"index;size:64" json:"note_id"`
	URI         string `gorm:"size:2048" json:"uri"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	SortOrder   *int   `gorm:"column:sort_order" json:"sort_order,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
