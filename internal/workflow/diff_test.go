package workflow_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bugdesk.app/api-server/internal/model"
	"bugdesk.app/api-server/internal/workflow"
)

var _ = Describe("Diff", func() {
	var before *model.Issue

	BeforeEach(func() {
		before = &model.Issue{
			ID:        100,
			ProjectID: 10,
			Title:     "login broken",
			Priority:  model.PriorityMajor,
			Status:    model.StatusNew,
			Reporter:  &model.User{ID: 5},
			Comments:  []model.Comment{{ID: 1, Content: "seen it too"}},
		}
	})

	It("classifies an identical clone as no change", func() {
		Expect(workflow.Diff(before, before.Clone())).To(Equal(workflow.ChangeNone))
	})

	It("classifies a title edit as a text change", func() {
		after := before.Clone()
		after.Title = "login broken on mobile"
		Expect(workflow.Diff(before, after)).To(Equal(workflow.ChangeText))
	})

	It("classifies a status transition as a non-text change", func() {
		after := before.Clone()
		after.Status = model.StatusAssigned
		Expect(workflow.Diff(before, after)).To(Equal(workflow.ChangeOther))
	})

	It("lets a text change dominate a mixed edit", func() {
		after := before.Clone()
		after.Description = "repro steps"
		after.Status = model.StatusAssigned
		after.Assignee = &model.User{ID: 3}
		Expect(workflow.Diff(before, after)).To(Equal(workflow.ChangeText))
	})

	It("compares users by id, not by pointer", func() {
		after := before.Clone()
		after.Reporter = &model.User{ID: 5, Username: "renamed"}
		Expect(workflow.Diff(before, after)).To(Equal(workflow.ChangeNone))
	})

	It("detects an edited comment", func() {
		after := before.Clone()
		after.Comments[0].Content = "edited"
		Expect(workflow.Diff(before, after)).To(Equal(workflow.ChangeOther))
	})

	It("detects a removed assignee", func() {
		before.Assignee = &model.User{ID: 3}
		after := before.Clone()
		after.Assignee = nil
		Expect(workflow.Diff(before, after)).To(Equal(workflow.ChangeOther))
	})
})
