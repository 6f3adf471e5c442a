package catalog

import (
	"github.com/jonwraymond/coursecms/cache"
	"github.com/jonwraymond/coursecms/observe"
)

// Catalog holds one Resource per entity, all sharing a store and a cache.
type Catalog struct {
	Categories   *Resource[Category, *Category]
	CourseTypes  *Resource[CourseType, *CourseType]
	Institutions *Resource[Institution, *Institution]
	Instructors  *Resource[Instructor, *Instructor]
	News         *Resource[News, *News]
	Popups       *Resource[Popup, *Popup]
	Courses      *Resource[Course, *Course]
	AdminUsers   *Resource[AdminUser, *AdminUser]
	Banners      *Resource[Banner, *Banner]
}

// New wires every entity over db and rt.
func New(db DB, rt *cache.ReadThrough, mw *observe.Middleware, opts ...RepositoryOption) *Catalog {
	return &Catalog{
		Categories:   NewResource(NewRepository[Category](db, CategoryTable, opts...), rt, mw),
		CourseTypes:  NewResource(NewRepository[CourseType](db, CourseTypeTable, opts...), rt, mw),
		Institutions: NewResource(NewRepository[Institution](db, InstitutionTable, opts...), rt, mw),
		Instructors:  NewResource(NewRepository[Instructor](db, InstructorTable, opts...), rt, mw),
		News:         NewResource(NewRepository[News](db, NewsTable, opts...), rt, mw),
		Popups:       NewResource(NewRepository[Popup](db, PopupTable, opts...), rt, mw),
		Courses:      NewResource(NewRepository[Course](db, CourseTable, opts...), rt, mw),
		AdminUsers:   NewResource(NewRepository[AdminUser](db, AdminUserTable, opts...), rt, mw),
		Banners:      NewResource(NewRepository[Banner](db, BannerTable, opts...), rt, mw),
	}
}
