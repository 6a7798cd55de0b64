package models

import "github.com/shopspring/decimal"

// Author writes books and manuscripts.
//
// The association fields only declare the foreign keys other tables hold on
// authors; they are never loaded.
type Author struct {
	AuthorID              int64              `gorm:"primaryKey;autoIncrement" json:"author_id"`
	FirstName             string             `gorm:"size:64;not null" json:"first_name"`
	LastName              string             `gorm:"size:64;not null" json:"last_name"`
	Metadata              *AuthorMetadata    `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"-"`
	BookAuthorships       []AuthorBook       `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"-"`
	ManuscriptAuthorships []AuthorManuscript `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"-"`
}

// AuthorMetadata holds the one-to-one profile of an author.
type AuthorMetadata struct {
	AuthorMetadataID int64  `gorm:"primaryKey;autoIncrement" json:"author_metadata_id"`
	AuthorID         int64  `gorm:"not null;uniqueIndex" json:"author_id"`
	Age              int64  `gorm:"not null" json:"age"`
	Biography        string `gorm:"size:4096;not null" json:"biography"`
	PhotoURL         string `gorm:"column:photo_url;size:256;not null" json:"photo_url"`
	PhotoResHoriz    int64  `gorm:"not null" json:"photo_res_horiz"`
	PhotoResVert     int64  `gorm:"not null" json:"photo_res_vert"`
}

// Editor is assigned books and manuscripts, which keep their rows with a
// null editor when the editor goes.
type Editor struct {
	EditorID    int64           `gorm:"primaryKey;autoIncrement" json:"editor_id"`
	FirstName   string          `gorm:"size:64;not null" json:"first_name"`
	LastName    string          `gorm:"size:64;not null" json:"last_name"`
	Salary      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"salary"`
	Books       []Book          `gorm:"foreignKey:EditorID;constraint:OnDelete:SET NULL" json:"-"`
	Manuscripts []Manuscript    `gorm:"foreignKey:EditorID;constraint:OnDelete:SET NULL" json:"-"`
}

// Salesperson manages clients.
type Salesperson struct {
	SalespersonID int64           `gorm:"primaryKey;autoIncrement" json:"salesperson_id"`
	FirstName     string          `gorm:"size:64;not null" json:"first_name"`
	LastName      string          `gorm:"size:64;not null" json:"last_name"`
	Salary        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"salary"`
	Clients       []Client        `gorm:"foreignKey:SalespersonID;constraint:OnDelete:RESTRICT" json:"-"`
}

// Client is a business customer served by one salesperson.
type Client struct {
	ClientID      int64  `gorm:"primaryKey;autoIncrement" json:"client_id"`
	SalespersonID int64  `gorm:"not null;index" json:"salesperson_id"`
	Email         string `gorm:"size:64;not null;uniqueIndex" json:"email"`
	Phone         string `gorm:"size:11;not null;uniqueIndex" json:"phone"`
	BusinessName  string `gorm:"size:64;not null;uniqueIndex" json:"business_name"`
	StreetAddress string `gorm:"size:64;not null" json:"street_address"`
	City          string `gorm:"size:64;not null" json:"city"`
	State         string `gorm:"size:2;not null" json:"state"`
	Zipcode       string `gorm:"size:9;not null" json:"zipcode"`
}

// TableName overrides the table name for Author
func (Author) TableName() string { return "authors" }

// TableName overrides the table name for AuthorMetadata
func (AuthorMetadata) TableName() string { return "authors_metadata" }

// TableName overrides the table name for Editor
func (Editor) TableName() string { return "editors" }

// TableName overrides the table name for Salesperson
func (Salesperson) TableName() string { return "salespeople" }

// TableName overrides the table name for Client
func (Client) TableName() string { return "clients" }

func (a *Author) ID() int64         { return a.AuthorID }
func (m *AuthorMetadata) ID() int64 { return m.AuthorMetadataID }
func (e *Editor) ID() int64         { return e.EditorID }
func (s *Salesperson) ID() int64    { return s.SalespersonID }
func (c *Client) ID() int64         { return c.ClientID }

func (a *Author) Assign(args map[string]any) {
	for k, v := range args {
		switch k {
		case "first_name":
			a.FirstName = asString(v)
		case "last_name":
			a.LastName = asString(v)
		}
	}
}

func (m *AuthorMetadata) Assign(args map[string]any) {
	for k, v := range args {
		switch k {
		case "author_id":
			m.AuthorID = asInt64(v)
		case "age":
			m.Age = asInt64(v)
		case "biography":
			m.Biography = asString(v)
		case "photo_url":
			m.PhotoURL = asString(v)
		case "photo_res_horiz":
			m.PhotoResHoriz = asInt64(v)
		case "photo_res_vert":
			m.PhotoResVert = asInt64(v)
		}
	}
}

func (e *Editor) Assign(args map[string]any) {
	for k, v := range args {
		switch k {
		case "first_name":
			e.FirstName = asString(v)
		case "last_name":
			e.LastName = asString(v)
		case "salary":
			e.Salary = asDecimal(v)
		}
	}
}

func (s *Salesperson) Assign(args map[string]any) {
	for k, v := range args {
		switch k {
		case "first_name":
			s.FirstName = asString(v)
		case "last_name":
			s.LastName = asString(v)
		case "salary":
			s.Salary = asDecimal(v)
		}
	}
}

func (c *Client) Assign(args map[string]any) {
	for k, v := range args {
		switch k {
		case "salesperson_id":
			c.SalespersonID = asInt64(v)
		case "email":
			c.Email = asString(v)
		case "phone":
			c.Phone = asString(v)
		case "business_name":
			c.BusinessName = asString(v)
		case "street_address":
			c.StreetAddress = asString(v)
		case "city":
			c.City = asString(v)
		case "state":
			c.State = asString(v)
		case "zipcode":
			c.Zipcode = asString(v)
		}
	}
}
