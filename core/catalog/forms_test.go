package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerpath/frontend/core"
)

func TestCourseForm_Payload_tags(t *testing.T) {
	validate, _ := core.NewValidator()

	form := &CourseForm{
		Title:       "UPSC Complete",
		Description: "everything",
		Category:    "upsc",
		IsFree:      true,
		Tags:        "UPSC, Notes,  ",
	}
	require.NoError(t, form.Validate(validate, true))

	data, err := json.Marshal(form.Payload())
	require.NoError(t, err)

	var payload struct {
		Tags         []string `json:"tags"`
		Requirements []string `json:"requirements"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, []string{"UPSC", "Notes"}, payload.Tags)
	assert.Equal(t, []string{}, payload.Requirements)
}

func TestCourseForm_BindRoundTrip(t *testing.T) {
	c := Course{
		Meta:         Meta{ID: "c1", Title: "SSC Prep", Description: "d", Category: "ssc", Price: 499},
		Tags:         []string{"SSC", "CGL"},
		Requirements: []string{"basic maths"},
	}

	form := new(CourseForm)
	form.Bind(c)
	assert.Equal(t, "SSC, CGL", form.Tags)
	assert.Equal(t, "basic maths", form.Requirements)

	// editing then submitting unchanged reproduces the original arrays
	assert.Equal(t, c.Tags, core.SplitCSV(form.Tags))
	assert.Equal(t, c.Requirements, core.SplitCSV(form.Requirements))
}

func TestCourseForm_conditionalPrice(t *testing.T) {
	validate, _ := core.NewValidator()

	paid := &CourseForm{Title: "T", Description: "D", Category: "ssc", IsFree: false}
	assert.Error(t, paid.Validate(validate, true), "price is required when the course is not free")

	paid.Price = 499
	assert.NoError(t, paid.Validate(validate, true))

	free := &CourseForm{Title: "T", Description: "D", Category: "ssc", IsFree: true}
	assert.NoError(t, free.Validate(validate, true), "free courses need no price")
}

func TestEbookForm_fileRequiredOnCreate(t *testing.T) {
	validate, _ := core.NewValidator()

	form := &EbookForm{Title: "T", Description: "D", Category: "c", IsFree: true}
	err := form.Validate(validate, true)
	require.Error(t, err)
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "fileUrl", vErr.Fields[0].Field)

	// update mode keeps the existing file
	assert.NoError(t, form.Validate(validate, false))

	// the upload sub-flow merges its result into form state
	form.ApplyUpload(Upload{URL: "https://cdn.test/e.pdf", Size: 1024})
	assert.NoError(t, form.Validate(validate, true))
	assert.Equal(t, int64(1024), form.FileSize)
}

func TestStudyMaterialForm_payload(t *testing.T) {
	validate, _ := core.NewValidator()

	form := &StudyMaterialForm{
		Title:       " Previous Papers ",
		Description: "solved",
		Category:    "ssc",
		Format:      "pdf",
		Year:        "2023",
		IsFree:      true,
		FileURL:     "https://cdn.test/m.pdf",
	}
	require.NoError(t, form.Validate(validate, true))

	data, err := json.Marshal(form.Payload())
	require.NoError(t, err)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "Previous Papers", payload["title"])
	assert.Equal(t, "pdf", payload["format"])
}

func TestNoticeForm(t *testing.T) {
	validate, _ := core.NewValidator()

	form := &NoticeForm{Title: "Exam dates", Link: "not a url"}
	assert.Error(t, form.Validate(validate, true), "body required, link must be a URL")

	form.Body = "Prelims on June 5"
	form.Link = "https://careerpath.in/notices/1"
	assert.NoError(t, form.Validate(validate, true))
}
