package service

import (
	"testing"

	"academy_backend/internal/access"
	"academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSections() []model.CourseSection {
	return []model.CourseSection{
		{
			Title:    "公开导论",
			Order:    1,
			IsPublic: true,
			Lessons: []model.CourseLesson{
				{Title: "课程介绍", Order: 1, ContentItems: []model.ContentItem{
					{Type: model.ContentVideo, Title: "欢迎视频", VideoID: 42},
				}},
			},
		},
		{
			Title:    "正式内容",
			Order:    2,
			IsPublic: false,
			Lessons: []model.CourseLesson{
				{Title: "第一讲", Order: 1, ContentItems: []model.ContentItem{
					{Type: model.ContentPDF, Title: "讲义", FileURL: "/files/lecture1.pdf"},
					{Type: model.ContentVideo, Title: "录播", VideoID: 43},
				}},
			},
		},
	}
}

func TestProjectSectionsPreview(t *testing.T) {
	out := ProjectSections(sampleSections(), AccessPreview)

	// 目录结构保留，所有内容块剥离
	require.Len(t, out, 2)
	assert.Equal(t, "公开导论", out[0].Title)
	assert.Equal(t, "第一讲", out[1].Lessons[0].Title)
	for _, section := range out {
		for _, lesson := range section.Lessons {
			assert.Nil(t, lesson.ContentItems)
		}
	}
}

func TestProjectSectionsLimited(t *testing.T) {
	out := ProjectSections(sampleSections(), AccessLimited)

	// 公开章节保留内容块，非公开章节剥离
	require.Len(t, out, 2)
	assert.Len(t, out[0].Lessons[0].ContentItems, 1)
	assert.Nil(t, out[1].Lessons[0].ContentItems)
}

func TestProjectSectionsFull(t *testing.T) {
	sections := sampleSections()
	out := ProjectSections(sections, AccessFull)

	require.Len(t, out, 2)
	assert.Len(t, out[1].Lessons[0].ContentItems, 2)
}

func TestProjectSectionsSortsByOrder(t *testing.T) {
	sections := []model.CourseSection{
		{
			Title: "第二章", Order: 2,
			Lessons: []model.CourseLesson{
				{Title: "第二讲", Order: 2},
				{Title: "第一讲", Order: 1},
			},
		},
		{Title: "第一章", Order: 1},
	}

	for _, level := range []CourseAccessLevel{AccessPreview, AccessLimited, AccessFull} {
		out := ProjectSections(sections, level)
		require.Len(t, out, 2)
		assert.Equal(t, "第一章", out[0].Title, "level %s", level)
		assert.Equal(t, "第二章", out[1].Title, "level %s", level)
		assert.Equal(t, "第一讲", out[1].Lessons[0].Title, "level %s", level)
		assert.Equal(t, "第二讲", out[1].Lessons[1].Title, "level %s", level)
	}

	// 输入顺序不被修改
	assert.Equal(t, "第二章", sections[0].Title)
	assert.Equal(t, "第二讲", sections[0].Lessons[0].Title)
}

func TestProjectSectionsIdempotent(t *testing.T) {
	once := ProjectSections(sampleSections(), AccessLimited)
	twice := ProjectSections(once, AccessLimited)
	assert.Equal(t, once, twice)
}

func TestProjectSectionsDoesNotMutateInput(t *testing.T) {
	sections := sampleSections()
	ProjectSections(sections, AccessPreview)
	assert.Len(t, sections[1].Lessons[0].ContentItems, 2)
}

func TestResolveAccessLevel(t *testing.T) {
	staff := access.StaffActor(1, []model.StaffRole{model.RoleProduction})
	noRoleStaff := access.StaffActor(2, nil)
	client := access.ClientActor(3)

	cases := []struct {
		name     string
		actor    *access.Actor
		enrolled bool
		want     CourseAccessLevel
	}{
		{"匿名访客", nil, false, AccessPreview},
		{"已登录未报名", client, false, AccessLimited},
		{"已报名学员", client, true, AccessFull},
		{"内部员工", staff, false, AccessFull},
		{"无角色员工不算内部", noRoleStaff, false, AccessLimited},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, resolveAccessLevel(tc.actor, tc.enrolled))
		})
	}
}
