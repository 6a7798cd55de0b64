package models

// Series groups books and manuscripts. A series still holding either
// cannot be deleted.
type Series struct {
	SeriesID    int64        `gorm:"primaryKey;autoIncrement" json:"series_id"`
	Title       string       `gorm:"size:256;not null;uniqueIndex" json:"title"`
	Volumes     int64        `gorm:"not null" json:"volumes"`
	Books       []Book       `gorm:"foreignKey:SeriesID;constraint:OnDelete:RESTRICT" json:"-"`
	Manuscripts []Manuscript `gorm:"foreignKey:SeriesID;constraint:OnDelete:RESTRICT" json:"-"`
}

// Book is a published title. EditorID is cleared when its editor is deleted.
type Book struct {
	BookID          int64         `gorm:"primaryKey;autoIncrement" json:"book_id"`
	EditorID        *int64        `gorm:"index" json:"editor_id"`
	SeriesID        *int64        `gorm:"index" json:"series_id"`
	Title           string        `gorm:"size:256;not null;uniqueIndex" json:"title"`
	PublicationDate Date          `gorm:"not null" json:"publication_date"`
	EditionNumber   int64         `gorm:"not null" json:"edition_number"`
	IsInPrint       bool          `gorm:"not null" json:"is_in_print"`
	Authorships     []AuthorBook  `gorm:"foreignKey:BookID;constraint:OnDelete:RESTRICT" json:"-"`
	SalesRecords    []SalesRecord `gorm:"foreignKey:BookID;constraint:OnDelete:RESTRICT" json:"-"`
}

// Manuscript is a work under contract that has not been published.
type Manuscript struct {
	ManuscriptID int64              `gorm:"primaryKey;autoIncrement" json:"manuscript_id"`
	EditorID     *int64             `gorm:"index" json:"editor_id"`
	SeriesID     *int64             `gorm:"index" json:"series_id"`
	WorkingTitle string             `gorm:"size:256;not null;uniqueIndex" json:"working_title"`
	DueDate      Date               `gorm:"not null" json:"due_date"`
	Advance      int64              `gorm:"not null" json:"advance"`
	Authorships  []AuthorManuscript `gorm:"foreignKey:ManuscriptID;constraint:OnDelete:RESTRICT" json:"-"`
}

// AuthorBook is a row of the authors/books bridge.
type AuthorBook struct {
	AuthorID int64 `gorm:"primaryKey;autoIncrement:false" json:"author_id"`
	BookID   int64 `gorm:"primaryKey;autoIncrement:false;index" json:"book_id"`
}

// AuthorManuscript is a row of the authors/manuscripts bridge.
type AuthorManuscript struct {
	AuthorID     int64 `gorm:"primaryKey;autoIncrement:false" json:"author_id"`
	ManuscriptID int64 `gorm:"primaryKey;autoIncrement:false;index" json:"manuscript_id"`
}

// TableName overrides the table name for Series
func (Series) TableName() string { return "series" }

// TableName overrides the table name for Book
func (Book) TableName() string { return "books" }

// TableName overrides the table name for Manuscript
func (Manuscript) TableName() string { return "manuscripts" }

// TableName overrides the table name for AuthorBook
func (AuthorBook) TableName() string { return "authors_books" }

// TableName overrides the table name for AuthorManuscript
func (AuthorManuscript) TableName() string { return "authors_manuscripts" }

func (s *Series) ID() int64     { return s.SeriesID }
func (b *Book) ID() int64       { return b.BookID }
func (m *Manuscript) ID() int64 { return m.ManuscriptID }

func (s *Series) Assign(args map[string]any) {
	for k, v := range args {
		switch k {
		case "title":
			s.Title = asString(v)
		case "volumes":
			s.Volumes = asInt64(v)
		}
	}
}

func (b *Book) Assign(args map[string]any) {
	for k, v := range args {
		switch k {
		case "editor_id":
			b.EditorID = asInt64Ptr(v)
		case "series_id":
			b.SeriesID = asInt64Ptr(v)
		case "title":
			b.Title = asString(v)
		case "publication_date":
			b.PublicationDate = asDate(v)
		case "edition_number":
			b.EditionNumber = asInt64(v)
		case "is_in_print":
			b.IsInPrint = asBool(v)
		}
	}
}

func (m *Manuscript) Assign(args map[string]any) {
	for k, v := range args {
		switch k {
		case "editor_id":
			m.EditorID = asInt64Ptr(v)
		case "series_id":
			m.SeriesID = asInt64Ptr(v)
		case "working_title":
			m.WorkingTitle = asString(v)
		case "due_date":
			m.DueDate = asDate(v)
		case "advance":
			m.Advance = asInt64(v)
		}
	}
}
