package blog

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

const (
	excerptLength  = 120
	wordsPerMinute = 200
)

// Author writes posts.
type Author struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex" json:"email"`
	Bio       string    `gorm:"type:text" json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Posts     []Post    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
}

// BeforeCreate assigns a UUID to new authors.
func (a *Author) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Post is an article kept in a manual order per author.
type Post struct {
	ID          string     `gorm:"type:char(36);primaryKey" json:"id"`
	AuthorID    string     `gorm:"type:char(36);index;not null" json:"author_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Slug        string     `gorm:"size:255;uniqueIndex" json:"slug"`
	Body        string     `gorm:"type:text" json:"body"`
	Status      string     `gorm:"size:20;default:draft" json:"status"`
	Position    int        `gorm:"column:order_column;index" json:"order_column"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Author      *Author    `json:"author,omitempty"`
	Comments    []Comment  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// BeforeCreate assigns a UUID to new posts.
func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// OrderColumn uses the default order column.
func (p *Post) OrderColumn() string {
	return ""
}

// SortScope orders posts among those of the same author.
func (p *Post) SortScope(db *gorm.DB) *gorm.DB {
	return db.Where("author_id = ?", p.AuthorID)
}

// AppendedAttribute computes the excerpt and reading_time attributes.
func (p *Post) AppendedAttribute(name string) interface{} {
	switch name {
	case "excerpt":
		return p.Excerpt()
	case "reading_time":
		return p.ReadingTime()
	default:
		return nil
	}
}

// Excerpt returns the start of the body, cut on a word boundary.
func (p *Post) Excerpt() string {
	body := strings.Join(strings.Fields(p.Body), " ")
	if utf8.RuneCountInString(body) <= excerptLength {
		return body
	}

	cut := string([]rune(body)[:excerptLength])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}

// ReadingTime estimates the minutes needed to read the body.
func (p *Post) ReadingTime() int {
	words := len(strings.Fields(p.Body))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

// Comment is a reader's reaction to a post.
type Comment struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	PostID     string    `gorm:"type:char(36);index;not null" json:"post_id"`
	AuthorName string    `gorm:"size:255" json:"author_name"`
	Body       string    `gorm:"type:text" json:"body"`
	Approved   bool      `gorm:"default:false" json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Post       *Post     `json:"post,omitempty"`
}

// BeforeCreate assigns a UUID to new comments.
func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Models lists the models to migrate.
func Models() []interface{} {
	return []interface{}{&Author{}, &Post{}, &Comment{}}
}
