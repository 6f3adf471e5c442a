package catalog

import "time"

// Base carries the columns every catalog table shares. The write path sets
// all three; client-supplied values are ignored.
type Base struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Meta returns the shared columns of a record.
func (b *Base) Meta() *Base { return b }

// Record is satisfied by a pointer to any entity that embeds Base.
type Record[T any] interface {
	*T
	Meta() *Base
}

// Category groups courses by subject.
type Category struct {
	Base
	Name        string `db:"name" json:"name" validate:"required,max=100"`
	Description string `db:"description" json:"description" validate:"max=500"`
}

// CourseType classifies courses by delivery format.
type CourseType struct {
	Base
	Name        string `db:"name" json:"name" validate:"required,max=100"`
	Description string `db:"description" json:"description" validate:"max=500"`
}

// Institution offers courses and employs instructors.
type Institution struct {
	Base
	Name        string `db:"name" json:"name" validate:"required,max=200"`
	Description string `db:"description" json:"description"`
	LogoURL     string `db:"logo_url" json:"logoUrl" validate:"omitempty,max=500"`
	Website     string `db:"website" json:"website" validate:"omitempty,url"`
}

// Instructor teaches at one institution.
type Instructor struct {
	Base
	InstitutionID string `db:"institution_id" json:"institutionId" validate:"required"`
	Name          string `db:"name" json:"name" validate:"required,max=100"`
	Title         string `db:"title" json:"title" validate:"max=100"`
	Bio           string `db:"bio" json:"bio"`
	PhotoURL      string `db:"photo_url" json:"photoUrl" validate:"omitempty,max=500"`
}

// News is a published announcement.
type News struct {
	Base
	Title        string `db:"title" json:"title" validate:"required,max=200"`
	Content      string `db:"content" json:"content" validate:"required"`
	ThumbnailURL string `db:"thumbnail_url" json:"thumbnailUrl" validate:"omitempty,max=500"`
	IsPublished  bool   `db:"is_published" json:"isPublished"`
}

// Popup is a time-boxed notice shown on the public site.
type Popup struct {
	Base
	Title    string     `db:"title" json:"title" validate:"required,max=200"`
	Content  string     `db:"content" json:"content"`
	ImageURL string     `db:"image_url" json:"imageUrl" validate:"omitempty,max=500"`
	LinkURL  string     `db:"link_url" json:"linkUrl" validate:"omitempty,max=500"`
	StartsAt *time.Time `db:"starts_at" json:"startsAt"`
	EndsAt   *time.Time `db:"ends_at" json:"endsAt"`
	IsActive bool       `db:"is_active" json:"isActive"`
}

// Course is offered by an institution and belongs to any number of
// categories through the course_categories join table.
type Course struct {
	Base
	InstitutionID string   `db:"institution_id" json:"institutionId" validate:"required"`
	InstructorID  string   `db:"instructor_id" json:"instructorId"`
	CourseTypeID  string   `db:"course_type_id" json:"courseTypeId"`
	Title         string   `db:"title" json:"title" validate:"required,max=200"`
	Description   string   `db:"description" json:"description"`
	Price         int64    `db:"price" json:"price" validate:"min=0"`
	ThumbnailURL  string   `db:"thumbnail_url" json:"thumbnailUrl" validate:"omitempty,max=500"`
	IsPublished   bool     `db:"is_published" json:"isPublished"`
	CategoryIDs   []string `db:"-" json:"categoryIds,omitempty" validate:"dive,required"`
}

// AdminUser can sign in to the admin console. Password is write-only: it
// is hashed into PasswordHash on every write and cleared afterwards.
type AdminUser struct {
	Base
	Username     string `db:"username" json:"username" validate:"required,min=3,max=50"`
	Name         string `db:"name" json:"name" validate:"max=100"`
	Role         string `db:"role" json:"role" validate:"required,oneof=admin editor"`
	Password     string `db:"-" json:"password,omitempty"`
	PasswordHash string `db:"password_hash" json:"-"`
}

// Banner is a hero image on the public site.
type Banner struct {
	Base
	Title     string `db:"title" json:"title" validate:"required,max=200"`
	ImageURL  string `db:"image_url" json:"imageUrl" validate:"required,max=500"`
	LinkURL   string `db:"link_url" json:"linkUrl" validate:"omitempty,max=500"`
	SortOrder int    `db:"sort_order" json:"sortOrder"`
	IsActive  bool   `db:"is_active" json:"isActive"`
}
