package catalog

import (
	"github.com/go-playground/validator/v10"

	"github.com/careerpath/frontend/core"
)

// Form is the single state record behind an edit page. Bind pre-populates it
// from an existing entity (update mode); Payload builds the outgoing body.
// List-like fields travel as arrays but are edited as comma-separated
// strings; Bind joins them, Payload splits them back.
type Form[T any] interface {
	Bind(entity T)
	Payload() interface{}
	// Validate runs client-side before any network call; a violation must
	// block submission. `creating` gates the requirements that only hold on
	// the create path (eg an uploaded file).
	Validate(validate *validator.Validate, creating bool) error
}

// Upload is the outcome of the independent file-upload sub-flow; it is merged
// into form state without persisting the parent entity.
type Upload struct {
	URL  string `mapstructure:"url"`
	Size int64  `mapstructure:"size"`
}

// FileForm is implemented by forms whose entity carries an uploaded file.
type FileForm interface {
	ApplyUpload(up Upload)
}

var errFileRequired = core.FieldError{Field: "fileUrl", Error: "a file must be uploaded first"}

type CourseForm struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description" validate:"required"`
	Category     string  `json:"category" validate:"required"`
	ExamType     string  `json:"examType"`
	Language     string  `json:"language"`
	Price        float64 `json:"price" validate:"required_if=IsFree false"`
	IsFree       bool    `json:"isFree"`
	IsActive     bool    `json:"isActive"`
	IsFeatured   bool    `json:"isFeatured"`
	Image        string  `json:"image"`
	Tags         string  `json:"tags"`         // comma-separated while editing
	Requirements string  `json:"requirements"` // comma-separated while editing
}

func (f *CourseForm) Bind(c Course) {
	f.Title = c.Title
	f.Description = c.Description
	f.Category = c.Category
	f.ExamType = c.ExamType
	f.Language = c.Language
	f.Price = c.Price
	f.IsFree = c.IsFree
	f.IsActive = c.IsActive
	f.IsFeatured = c.IsFeatured
	f.Image = c.Image
	f.Tags = core.JoinCSV(c.Tags)
	f.Requirements = core.JoinCSV(c.Requirements)
}

func (f *CourseForm) Payload() interface{} {
	return struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		Category     string   `json:"category"`
		ExamType     string   `json:"examType,omitempty"`
		Language     string   `json:"language,omitempty"`
		Price        float64  `json:"price"`
		IsFree       bool     `json:"isFree"`
		IsActive     bool     `json:"isActive"`
		IsFeatured   bool     `json:"isFeatured"`
		Image        string   `json:"image,omitempty"`
		Tags         []string `json:"tags"`
		Requirements []string `json:"requirements"`
	}{
		Title:        core.CleanString(f.Title),
		Description:  core.CleanString(f.Description),
		Category:     f.Category,
		ExamType:     f.ExamType,
		Language:     f.Language,
		Price:        f.Price,
		IsFree:       f.IsFree,
		IsActive:     f.IsActive,
		IsFeatured:   f.IsFeatured,
		Image:        f.Image,
		Tags:         core.SplitCSV(f.Tags),
		Requirements: core.SplitCSV(f.Requirements),
	}
}

func (f *CourseForm) Validate(validate *validator.Validate, creating bool) error {
	f.Title = core.CleanString(f.Title)
	f.Description = core.CleanString(f.Description)
	return validate.Struct(f)
}

type EbookForm struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"required_if=IsFree false"`
	IsFree      bool    `json:"isFree"`
	IsActive    bool    `json:"isActive"`
	IsFeatured  bool    `json:"isFeatured"`
	Pages       int     `json:"pages"`
	Tags        string  `json:"tags"` // comma-separated while editing
	FileURL     string  `json:"fileUrl"`
	FileSize    int64   `json:"fileSize"`
}

func (f *EbookForm) Bind(e Ebook) {
	f.Title = e.Title
	f.Description = e.Description
	f.Category = e.Category
	f.Price = e.Price
	f.IsFree = e.IsFree
	f.IsActive = e.IsActive
	f.IsFeatured = e.IsFeatured
	f.Pages = e.Pages
	f.Tags = core.JoinCSV(e.Tags)
	f.FileURL = e.FileURL
	f.FileSize = e.FileSize
}

func (f *EbookForm) ApplyUpload(up Upload) {
	f.FileURL = up.URL
	f.FileSize = up.Size
}

func (f *EbookForm) Payload() interface{} {
	return struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Price       float64  `json:"price"`
		IsFree      bool     `json:"isFree"`
		IsActive    bool     `json:"isActive"`
		IsFeatured  bool     `json:"isFeatured"`
		Pages       int      `json:"pages,omitempty"`
		Tags        []string `json:"tags"`
		FileURL     string   `json:"fileUrl"`
		FileSize    int64    `json:"fileSize,omitempty"`
	}{
		Title:       core.CleanString(f.Title),
		Description: core.CleanString(f.Description),
		Category:    f.Category,
		Price:       f.Price,
		IsFree:      f.IsFree,
		IsActive:    f.IsActive,
		IsFeatured:  f.IsFeatured,
		Pages:       f.Pages,
		Tags:        core.SplitCSV(f.Tags),
		FileURL:     f.FileURL,
		FileSize:    f.FileSize,
	}
}

func (f *EbookForm) Validate(validate *validator.Validate, creating bool) error {
	f.Title = core.CleanString(f.Title)
	f.Description = core.CleanString(f.Description)
	if err := validate.Struct(f); err != nil {
		return err
	}
	// the file is uploaded in a separate sub-flow; creating without one is
	// invalid, but an update may keep the existing file untouched
	if creating && f.FileURL == "" {
		return core.NewValidationError(nil, errFileRequired)
	}
	return nil
}

type StudyMaterialForm struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	ExamType    string  `json:"examType"`
	Format      string  `json:"format"`
	Year        string  `json:"year"`
	Price       float64 `json:"price" validate:"required_if=IsFree false"`
	IsFree      bool    `json:"isFree"`
	IsActive    bool    `json:"isActive"`
	FileURL     string  `json:"fileUrl"`
	FileSize    int64   `json:"fileSize"`
}

func (f *StudyMaterialForm) Bind(m StudyMaterial) {
	f.Title = m.Title
	f.Description = m.Description
	f.Category = m.Category
	f.ExamType = m.ExamType
	f.Format = m.Format
	f.Year = m.Year
	f.Price = m.Price
	f.IsFree = m.IsFree
	f.IsActive = m.IsActive
	f.FileURL = m.FileURL
	f.FileSize = m.FileSize
}

func (f *StudyMaterialForm) ApplyUpload(up Upload) {
	f.FileURL = up.URL
	f.FileSize = up.Size
}

func (f *StudyMaterialForm) Payload() interface{} {
	return struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		ExamType    string  `json:"examType,omitempty"`
		Format      string  `json:"format,omitempty"`
		Year        string  `json:"year,omitempty"`
		Price       float64 `json:"price"`
		IsFree      bool    `json:"isFree"`
		IsActive    bool    `json:"isActive"`
		FileURL     string  `json:"fileUrl"`
		FileSize    int64   `json:"fileSize,omitempty"`
	}{
		Title:       core.CleanString(f.Title),
		Description: core.CleanString(f.Description),
		Category:    f.Category,
		ExamType:    f.ExamType,
		Format:      f.Format,
		Year:        f.Year,
		Price:       f.Price,
		IsFree:      f.IsFree,
		IsActive:    f.IsActive,
		FileURL:     f.FileURL,
		FileSize:    f.FileSize,
	}
}

func (f *StudyMaterialForm) Validate(validate *validator.Validate, creating bool) error {
	f.Title = core.CleanString(f.Title)
	f.Description = core.CleanString(f.Description)
	if err := validate.Struct(f); err != nil {
		return err
	}
	if creating && f.FileURL == "" {
		return core.NewValidationError(nil, errFileRequired)
	}
	return nil
}

type NoticeForm struct {
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body" validate:"required"`
	Link     string `json:"link" validate:"omitempty,url"`
	Pinned   bool   `json:"pinned"`
	IsActive bool   `json:"isActive"`
}

func (f *NoticeForm) Bind(n Notice) {
	f.Title = n.Title
	f.Body = n.Body
	f.Link = n.Link
	f.Pinned = n.Pinned
	f.IsActive = n.IsActive
}

func (f *NoticeForm) Payload() interface{} {
	return struct {
		Title    string `json:"title"`
		Body     string `json:"body"`
		Link     string `json:"link,omitempty"`
		Pinned   bool   `json:"pinned"`
		IsActive bool   `json:"isActive"`
	}{
		Title:    core.CleanString(f.Title),
		Body:     core.CleanString(f.Body),
		Link:     core.CleanString(f.Link),
		Pinned:   f.Pinned,
		IsActive: f.IsActive,
	}
}

func (f *NoticeForm) Validate(validate *validator.Validate, creating bool) error {
	f.Title = core.CleanString(f.Title)
	f.Body = core.CleanString(f.Body)
	return validate.Struct(f)
}

// interface conformance
var (
	_ Form[Course]        = (*CourseForm)(nil)
	_ Form[Ebook]         = (*EbookForm)(nil)
	_ Form[StudyMaterial] = (*StudyMaterialForm)(nil)
	_ Form[Notice]        = (*NoticeForm)(nil)
	_ FileForm            = (*EbookForm)(nil)
	_ FileForm            = (*StudyMaterialForm)(nil)
)
