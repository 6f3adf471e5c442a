package catalog

import (
	"strings"
	"time"

	"github.com/jonwraymond/coursecms/cache"
	"github.com/jonwraymond/coursecms/ids"
)

// Reference is a column in another table that points at this table's id.
type Reference struct {
	Table  string
	Column string
}

// Table describes how an entity maps to SQL and to the cache.
type Table struct {
	// Name is the SQL table.
	Name string

	// Namespace prefixes the entity's cache keys.
	Namespace string

	// Columns lists the writable columns, excluding id and timestamps.
	Columns []string

	// OrderBy is the ORDER BY clause for lists.
	OrderBy string

	// FilterColumn, when set, lets List narrow by one column value. Lists
	// are then cached per value and writes clear the whole namespace.
	FilterColumn string

	// TTL is how long list responses stay cached.
	TTL time.Duration

	// IDs generates primary keys on create.
	IDs ids.Strategy

	// Referrers block deletion while any row references the record.
	Referrers []Reference

	// Children are removed together with the record.
	Children []Reference
}

// Tables of the catalog.
var (
	CategoryTable = Table{
		Name:      "categories",
		Namespace: "categories",
		Columns:   []string{"name", "description"},
		OrderBy:   "id ASC",
		TTL:       cache.TTLReference,
		IDs:       ids.Sequential{Width: 2},
		Referrers: []Reference{{Table: "course_categories", Column: "category_id"}},
	}

	CourseTypeTable = Table{
		Name:      "course_types",
		Namespace: "courseTypes",
		Columns:   []string{"name", "description"},
		OrderBy:   "id ASC",
		TTL:       cache.TTLReference,
		IDs:       ids.Sequential{Width: 2},
	}

	InstitutionTable = Table{
		Name:      "institutions",
		Namespace: "institutions",
		Columns:   []string{"name", "description", "logo_url", "website"},
		OrderBy:   "id ASC",
		TTL:       cache.TTLReference,
		IDs:       ids.Yearly{SeqWidth: 3},
	}

	InstructorTable = Table{
		Name:         "instructors",
		Namespace:    "instructors",
		Columns:      []string{"institution_id", "name", "title", "bio", "photo_url"},
		OrderBy:      "created_at DESC",
		FilterColumn: "institution_id",
		TTL:          cache.TTLFiltered,
		IDs:          ids.Timestamped{Prefix: "INS"},
	}

	NewsTable = Table{
		Name:      "news",
		Namespace: "news",
		Columns:   []string{"title", "content", "thumbnail_url", "is_published"},
		OrderBy:   "created_at DESC",
		TTL:       cache.TTLVolatile,
		IDs:       ids.Timestamped{Prefix: "NEWS"},
	}

	PopupTable = Table{
		Name:      "popups",
		Namespace: "popups",
		Columns:   []string{"title", "content", "image_url", "link_url", "starts_at", "ends_at", "is_active"},
		OrderBy:   "created_at DESC",
		TTL:       cache.TTLReference,
		IDs:       ids.Timestamped{Prefix: "POP"},
	}

	CourseTable = Table{
		Name:      "courses",
		Namespace: "courses",
		Columns: []string{
			"institution_id", "instructor_id", "course_type_id", "title",
			"description", "price", "thumbnail_url", "is_published",
		},
		OrderBy:      "created_at DESC",
		FilterColumn: "institution_id",
		TTL:          cache.TTLVolatile,
		IDs:          ids.Timestamped{Prefix: "CRS", Random: true},
		Children:     []Reference{{Table: "course_categories", Column: "course_id"}},
	}

	AdminUserTable = Table{
		Name:      "admin_users",
		Namespace: "adminUsers",
		Columns:   []string{"username", "name", "role", "password_hash"},
		OrderBy:   "created_at DESC",
		TTL:       cache.TTLReference,
		IDs:       ids.Timestamped{Prefix: "ADM", Random: true},
	}

	BannerTable = Table{
		Name:      "banners",
		Namespace: "banners",
		Columns:   []string{"title", "image_url", "link_url", "sort_order", "is_active"},
		OrderBy:   "sort_order ASC, id ASC",
		TTL:       cache.TTLReference,
		IDs:       ids.Timestamped{Prefix: "BNR"},
	}
)

// Filterable reports whether List accepts a filter value.
func (t Table) Filterable() bool {
	return t.FilterColumn != ""
}

func (t Table) selectList() string {
	return "id, " + strings.Join(t.Columns, ", ") + ", created_at, updated_at"
}

func (t Table) listQuery(filtered bool) string {
	q := "SELECT " + t.selectList() + " FROM " + t.Name
	if filtered {
		q += " WHERE " + t.FilterColumn + " = ?"
	}
	return q + " ORDER BY " + t.OrderBy
}

func (t Table) getQuery() string {
	return "SELECT " + t.selectList() + " FROM " + t.Name + " WHERE id = ?"
}

func (t Table) insertQuery() string {
	cols := append(append([]string{"id"}, t.Columns...), "created_at", "updated_at")
	return "INSERT INTO " + t.Name + " (" + strings.Join(cols, ", ") + ") VALUES (:" + strings.Join(cols, ", :") + ")"
}

func (t Table) updateQuery(cols []string) string {
	sets := make([]string, 0, len(cols)+1)
	for _, c := range cols {
		sets = append(sets, c+" = :"+c)
	}
	sets = append(sets, "updated_at = :updated_at")
	return "UPDATE " + t.Name + " SET " + strings.Join(sets, ", ") + " WHERE id = :id"
}

func (t Table) deleteQuery() string {
	return "DELETE FROM " + t.Name + " WHERE id = ?"
}

func (r Reference) countQuery() string {
	return "SELECT COUNT(*) FROM " + r.Table + " WHERE " + r.Column + " = ?"
}

func (r Reference) deleteQuery() string {
	return "DELETE FROM " + r.Table + " WHERE " + r.Column + " = ?"
}
