package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/publishing-house/internal/handlers"
	"github.com/localnerve/publishing-house/internal/resources"
	"github.com/localnerve/publishing-house/internal/services"
	"gorm.io/gorm"
)

// Route is one entry of the route table.
type Route struct {
	Method      string
	Path        string
	Description string
	Handler     fiber.Handler
}

var paramPattern = regexp.MustCompile(`:(\w+)(<[^>]*>)?`)

// DisplayPath rewrites Fiber parameters such as :id<int> as {id}.
func DisplayPath(path string) string {
	return paramPattern.ReplaceAllString(path, "{$1}")
}

func article(noun string) string {
	if strings.ContainsRune("aeiou", rune(noun[0])) {
		return "an " + noun
	}
	return "a " + noun
}

func param(name string) string {
	return ":" + name + "<int>"
}

var (
	id    = param(handlers.ParamID)
	outer = param(handlers.ParamOuter)
	inner = param(handlers.ParamInner)
	a1    = param(handlers.ParamA1)
	a2    = param(handlers.ParamA2)
)

// table builds routes for one path family.
type table []Route

func (t *table) add(method, path, description string, h fiber.Handler) {
	*t = append(*t, Route{Method: method, Path: path, Description: description, Handler: h})
}

// update registers PATCH and PUT with the same handler.
func (t *table) update(path, description string, h fiber.Handler) {
	t.add(fiber.MethodPatch, path, description, h)
	t.add(fiber.MethodPut, path, description, h)
}

// entity adds the list and id routes of d at base. Create is optional
// because books and manuscripts are only created through their authors.
func (t *table) entity(db *gorm.DB, d *resources.Descriptor, base string, create bool) {
	t.add(fiber.MethodGet, base, fmt.Sprintf("list every %s", d.Name), (&handlers.List{DB: db, Entity: d}).Handle)
	if create {
		t.add(fiber.MethodPost, base, "create "+article(d.Name), (&handlers.Create{DB: db, Entity: d}).Handle)
	}
	byID := base + "/" + id
	t.add(fiber.MethodGet, byID, "get "+article(d.Name)+" by id", (&handlers.Get{DB: db, Entity: d}).Handle)
	t.update(byID, "update "+article(d.Name), (&handlers.Update{DB: db, Entity: d}).Handle)
	t.add(fiber.MethodDelete, byID, "delete "+article(d.Name), (&handlers.Delete{DB: db, Entity: d}).Handle)
}

// nested adds the routes of inner rows under base. scope describes the
// outer rows in the help text.
func (t *table) nested(n handlers.Nested, base, scope string, create bool) {
	name := n.Relation.Inner.Name
	plural := n.Relation.Inner.Table
	t.add(fiber.MethodGet, base, fmt.Sprintf("list the %s of %s", plural, scope), (&handlers.ListNested{Nested: n}).Handle)
	if create {
		t.add(fiber.MethodPost, base, fmt.Sprintf("create %s for %s", article(name), scope), (&handlers.CreateNested{Nested: n}).Handle)
	}
	byID := base + "/" + inner
	t.add(fiber.MethodGet, byID, fmt.Sprintf("get %s of %s", article(name), scope), (&handlers.GetNested{Nested: n}).Handle)
	t.update(byID, fmt.Sprintf("update %s of %s", article(name), scope), (&handlers.UpdateNested{Nested: n}).Handle)
	t.add(fiber.MethodDelete, byID, fmt.Sprintf("delete %s of %s", article(name), scope), (&handlers.DeleteNested{Nested: n}).Handle)
}

// Relations of the resource graph.
var (
	AuthorBooks = services.Relation{
		Outer: resources.Describe(resources.KindAuthor), Inner: resources.Describe(resources.KindBook), Bridge: "authors_books",
	}
	AuthorManuscripts = services.Relation{
		Outer: resources.Describe(resources.KindAuthor), Inner: resources.Describe(resources.KindManuscript), Bridge: "authors_manuscripts",
	}
	AuthorMetadata = services.Relation{
		Outer: resources.Describe(resources.KindAuthor), Inner: resources.Describe(resources.KindAuthorMetadata),
	}
	EditorBooks = services.Relation{
		Outer: resources.Describe(resources.KindEditor), Inner: resources.Describe(resources.KindBook),
	}
	EditorManuscripts = services.Relation{
		Outer: resources.Describe(resources.KindEditor), Inner: resources.Describe(resources.KindManuscript),
	}
	SeriesBooks = services.Relation{
		Outer: resources.Describe(resources.KindSeries), Inner: resources.Describe(resources.KindBook),
	}
	SeriesManuscripts = services.Relation{
		Outer: resources.Describe(resources.KindSeries), Inner: resources.Describe(resources.KindManuscript),
	}
	SalespersonClients = services.Relation{
		Outer: resources.Describe(resources.KindSalesperson), Inner: resources.Describe(resources.KindClient),
	}
)

// Routes returns the API route table in registration order.
func Routes(db *gorm.DB) []Route {
	var t table

	// Authors
	t.entity(db, resources.Describe(resources.KindAuthor), "/authors", true)
	t.nested(handlers.Under(db, AuthorBooks), "/authors/"+outer+"/books", "an author", true)
	t.nested(handlers.Under(db, AuthorManuscripts), "/authors/"+outer+"/manuscripts", "an author", true)

	metadata := &handlers.OneToOne{DB: db, Relation: AuthorMetadata}
	metadataPath := "/authors/" + id + "/metadata"
	t.add(fiber.MethodGet, metadataPath, "get an author's metadata", metadata.Get)
	t.add(fiber.MethodPost, metadataPath, "create an author's metadata", metadata.Create)
	t.update(metadataPath, "update an author's metadata", metadata.Update)
	t.add(fiber.MethodDelete, metadataPath, "delete an author's metadata", metadata.Delete)

	pair := "/authors/" + a1 + "/" + a2
	t.add(fiber.MethodGet, pair, "get two distinct authors", (&handlers.Pair{DB: db, Relation: AuthorBooks}).Handle)
	t.nested(handlers.Coauthored(db, AuthorBooks), pair+"/books", "two co-authors", true)
	t.nested(handlers.Coauthored(db, AuthorManuscripts), pair+"/manuscripts", "two co-authors", true)

	// Books and manuscripts
	t.entity(db, resources.Describe(resources.KindBook), "/books", false)
	t.entity(db, resources.Describe(resources.KindManuscript), "/manuscripts", false)

	// Editors
	t.entity(db, resources.Describe(resources.KindEditor), "/editors", true)
	t.nested(handlers.Under(db, EditorBooks), "/editors/"+outer+"/books", "an editor", false)
	t.nested(handlers.Under(db, EditorManuscripts), "/editors/"+outer+"/manuscripts", "an editor", false)

	// Series
	t.entity(db, resources.Describe(resources.KindSeries), "/series", true)
	t.nested(handlers.Under(db, SeriesBooks), "/series/"+outer+"/books", "a series", false)
	t.nested(handlers.Under(db, SeriesManuscripts), "/series/"+outer+"/manuscripts", "a series", false)

	// Salespeople and clients
	t.entity(db, resources.Describe(resources.KindSalesperson), "/salespeople", true)
	t.nested(handlers.Under(db, SalespersonClients), "/salespeople/"+outer+"/clients", "a salesperson", true)
	t.entity(db, resources.Describe(resources.KindClient), "/clients", true)

	// Sales records
	sales := &handlers.SalesHandler{DB: db}
	year := param(handlers.ParamYear)
	month := param(handlers.ParamMonth)
	book := param(handlers.ParamBook)
	t.add(fiber.MethodGet, "/sales_records/"+id, "get a sales record by id",
		(&handlers.Get{DB: db, Entity: resources.Describe(resources.KindSalesRecord)}).Handle)
	t.add(fiber.MethodGet, "/sales_records/years/"+year, "list the sales records of a year", sales.ByYear)
	t.add(fiber.MethodGet, "/sales_records/years/"+year+"/months/"+month, "list the sales records of a month", sales.ByMonth)
	t.add(fiber.MethodGet, "/sales_records/years/"+year+"/months/"+month+"/books/"+book,
		"get the sales record of a book for a month", sales.ForBookMonth)
	t.add(fiber.MethodGet, "/sales_records/books/"+book, "list the sales records of a book", sales.ByBook)

	return t
}
