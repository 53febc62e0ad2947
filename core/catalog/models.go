package catalog

import "time"

// Access levels as declared by the backend on detail responses. The client
// reflects this flag; it never computes entitlement on its own.
type Access string

const (
	AccessFull   Access = "full"
	AccessLocked Access = "locked"
)

// Toggleable boolean flags. Quick-toggle actions may only touch these.
const (
	FlagActive   = "isActive"
	FlagFeatured = "isFeatured"
	FlagFree     = "isFree"
)

// Author is the read-only ownership reference nested in every entity;
// it is never edited from these pages.
type Author struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Meta is the shared shape of every catalog record, mirrored from the
// backend's JSON. The backend owns identity, counts and timestamps.
type Meta struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	IsActive    bool    `json:"isActive"`
	IsFeatured  bool    `json:"isFeatured"`
	IsFree      bool    `json:"isFree"`
	Image       string  `json:"image,omitempty"`

	// detail-response access fields
	Access       Access `json:"access,omitempty"`
	HasPurchased bool   `json:"hasPurchased,omitempty"`

	Author    Author    `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// RowMeta allows generic code to reach the shared record fields.
func (m *Meta) RowMeta() *Meta { return m }

func (m Meta) RowID() string { return m.ID }

// Flag reads one of the toggleable boolean fields by its wire name.
func (m Meta) Flag(name string) (value, ok bool) {
	switch name {
	case FlagActive:
		return m.IsActive, true
	case FlagFeatured:
		return m.IsFeatured, true
	case FlagFree:
		return m.IsFree, true
	}
	return false, false
}

// SetFlag writes one of the toggleable boolean fields by its wire name.
func (m *Meta) SetFlag(name string, value bool) bool {
	switch name {
	case FlagActive:
		m.IsActive = value
	case FlagFeatured:
		m.IsFeatured = value
	case FlagFree:
		m.IsFree = value
	default:
		return false
	}
	return true
}

// AccessLevel resolves the server-declared access flag. The explicit `access`
// field wins; older endpoints declare entitlement via hasPurchased/isFree
// instead.
func (m Meta) AccessLevel() Access {
	if m.Access != "" {
		return m.Access
	}
	if m.HasPurchased || m.IsFree || m.Price == 0 {
		return AccessFull
	}
	return AccessLocked
}

// RowPtr constrains generic list helpers to entity types embedding Meta.
type RowPtr[T any] interface {
	*T
	RowMeta() *Meta
}

type Course struct {
	Meta
	ExamType         string   `json:"examType,omitempty"`
	Language         string   `json:"language,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	Requirements     []string `json:"requirements,omitempty"`
	TotalVideos      int      `json:"totalVideos,omitempty"`
	EnrolledStudents int      `json:"enrolledStudents,omitempty"`
	TotalRatings     int      `json:"totalRatings,omitempty"`
	Rating           float64  `json:"rating,omitempty"`
}

type Ebook struct {
	Meta
	FileURL   string   `json:"fileUrl,omitempty"`
	FileSize  int64    `json:"fileSize,omitempty"`
	Pages     int      `json:"pages,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Downloads int      `json:"downloads,omitempty"`
}

type LiveTest struct {
	Meta
	ExamType       string    `json:"examType,omitempty"`
	StartTime      time.Time `json:"startTime,omitempty"`
	Duration       int       `json:"duration,omitempty"` // minutes
	TotalQuestions int       `json:"totalQuestions,omitempty"`
	MaxMarks       int       `json:"maxMarks,omitempty"`
	Enrolled       int       `json:"enrolled,omitempty"`
}

type StudyMaterial struct {
	Meta
	ExamType  string `json:"examType,omitempty"`
	Format    string `json:"format,omitempty"` // pdf, doc...
	Year      string `json:"year,omitempty"`
	FileURL   string `json:"fileUrl,omitempty"`
	FileSize  int64  `json:"fileSize,omitempty"`
	Downloads int    `json:"downloads,omitempty"`
}

type TestSeries struct {
	Meta
	ExamType   string `json:"examType,omitempty"`
	TotalTests int    `json:"totalTests,omitempty"`
	Validity   int    `json:"validity,omitempty"` // days
	Enrolled   int    `json:"enrolled,omitempty"`
}

type Video struct {
	Meta
	CourseID string `json:"courseId,omitempty"`
	URL      string `json:"url,omitempty"`
	Duration int    `json:"duration,omitempty"` // seconds
	Views    int    `json:"views,omitempty"`
}

type Notice struct {
	Meta
	Body   string `json:"body,omitempty"`
	Link   string `json:"link,omitempty"`
	Pinned bool   `json:"pinned,omitempty"`
}

// Order mirrors the payments/orders admin page rows. Title/Price in Meta
// describe the purchased item; the rest is the transaction.
type Order struct {
	Meta
	ItemID    string  `json:"itemId,omitempty"`
	ItemType  string  `json:"itemType,omitempty"` // course, ebook, testseries...
	Amount    float64 `json:"amount,omitempty"`
	Status    string  `json:"status,omitempty"` // created, paid, failed, refunded
	PaymentID string  `json:"paymentId,omitempty"`
}
