package workflow_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bugdesk.app/api-server/internal/model"
	"bugdesk.app/api-server/internal/workflow"
)

var _ = Describe("RolePolicy", func() {
	policy := workflow.NewRolePolicy()

	DescribeTable("CanCreateUser",
		func(role model.Role, want bool) {
			got, err := policy.CanCreateUser(role)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("admin", model.RoleAdmin, true),
		Entry("project lead", model.RoleProjectLead, false),
		Entry("developer", model.RoleDeveloper, false),
		Entry("tester", model.RoleTester, false),
	)

	DescribeTable("CanCreateIssue",
		func(role model.Role, want bool) {
			got, err := policy.CanCreateIssue(role)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("admin", model.RoleAdmin, true),
		Entry("project lead", model.RoleProjectLead, false),
		Entry("developer", model.RoleDeveloper, false),
		Entry("tester", model.RoleTester, true),
	)

	It("restricts project creation and deletion to admins", func() {
		for _, role := range []model.Role{model.RoleProjectLead, model.RoleDeveloper, model.RoleTester} {
			create, err := policy.CanCreateProject(role)
			Expect(err).NotTo(HaveOccurred())
			Expect(create).To(BeFalse())

			del, err := policy.CanDeleteProject(role)
			Expect(err).NotTo(HaveOccurred())
			Expect(del).To(BeFalse())
		}

		create, err := policy.CanCreateProject(model.RoleAdmin)
		Expect(err).NotTo(HaveOccurred())
		Expect(create).To(BeTrue())
	})

	It("errors on an unknown role instead of answering false", func() {
		_, err := policy.CanCreateIssue(model.Role("GHOST"))
		var unknownRole *workflow.UnknownRoleError
		Expect(errors.As(err, &unknownRole)).To(BeTrue())
	})

	Describe("CanDeleteComment", func() {
		It("lets an admin delete anyone's comment", func() {
			ok, err := policy.CanDeleteComment(1, 2, model.RoleAdmin)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("lets authors delete their own comment", func() {
			ok, err := policy.CanDeleteComment(2, 2, model.RoleDeveloper)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("denies deleting someone else's comment", func() {
			ok, err := policy.CanDeleteComment(2, 3, model.RoleTester)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})

	Describe("IsDeveloper", func() {
		It("is true only for the developer role", func() {
			for role, want := range map[model.Role]bool{
				model.RoleAdmin:       false,
				model.RoleProjectLead: false,
				model.RoleDeveloper:   true,
				model.RoleTester:      false,
			} {
				got, err := policy.IsDeveloper(role)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(want), "role %s", role)
			}
		})
	})
})
