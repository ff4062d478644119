package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bugdesk.app/api-server/internal/model"
	"bugdesk.app/api-server/internal/service"
	"bugdesk.app/api-server/internal/store"
	"bugdesk.app/api-server/internal/workflow"
)

var _ = Describe("CommentService", func() {
	var (
		ctx    context.Context
		stores *mockStores
		svc    service.CommentService

		admin  *model.User
		dev    *model.User
		tester *model.User
	)

	BeforeEach(func() {
		ctx = context.Background()
		stores = newMockStores()
		svc = service.NewCommentService(stores.comments, stores.issues, stores.users, workflow.NewRolePolicy())

		admin = &model.User{ID: 1, Username: "admin", Role: model.RoleAdmin}
		dev = &model.User{ID: 3, Username: "dev1", Role: model.RoleDeveloper}
		tester = &model.User{ID: 4, Username: "tester1", Role: model.RoleTester}

		users := map[int64]*model.User{admin.ID: admin, dev.ID: dev, tester.ID: tester}
		stores.users.getByIDFn = func(_ context.Context, id int64) (*model.User, error) {
			if u, ok := users[id]; ok {
				return u, nil
			}
			return nil, store.ErrNotFound
		}
		stores.issues.existsFn = func(_ context.Context, id int64) (bool, error) {
			return id == 100, nil
		}
	})

	Describe("Add", func() {
		It("attaches the comment to the issue with the actor as author", func() {
			var created *model.Comment
			stores.comments.createFn = func(_ context.Context, c *model.Comment) error {
				created = c
				return nil
			}

			got, err := svc.Add(ctx, dev.ID, 100, "can reproduce on main")
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(Equal(got))
			Expect(got.Author).To(Equal(dev))
			Expect(got.IssueID).To(Equal(int64(100)))
			Expect(got.ID).NotTo(BeZero())
		})

		It("fails on a missing issue", func() {
			_, err := svc.Add(ctx, dev.ID, 999, "lost")
			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
		})

		It("rejects an anonymous caller", func() {
			_, err := svc.Add(ctx, 0, 100, "anon")
			Expect(errors.Is(err, workflow.ErrNotLoggedIn)).To(BeTrue())
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			stores.comments.getByIDFn = func(_ context.Context, id int64) (*model.Comment, error) {
				if id == 200 {
					return &model.Comment{ID: 200, IssueID: 100, Author: dev, Content: "old"}, nil
				}
				return nil, store.ErrNotFound
			}
		})

		It("lets the author edit their comment", func() {
			updated := false
			stores.comments.updateFn = func(_ context.Context, c *model.Comment) error {
				updated = true
				Expect(c.Content).To(Equal("new"))
				return nil
			}

			got, err := svc.Update(ctx, dev.ID, 200, "new")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Content).To(Equal("new"))
			Expect(updated).To(BeTrue())
		})

		It("rejects everyone else, admins included", func() {
			_, err := svc.Update(ctx, admin.ID, 200, "new")
			Expect(errors.Is(err, workflow.ErrUnauthorized)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			stores.comments.getByIDFn = func(_ context.Context, id int64) (*model.Comment, error) {
				if id == 200 {
					return &model.Comment{ID: 200, IssueID: 100, Author: dev, Content: "old"}, nil
				}
				return nil, store.ErrNotFound
			}
		})

		It("lets the author delete their comment", func() {
			Expect(svc.Delete(ctx, dev.ID, 200)).To(Succeed())
		})

		It("lets an admin delete anyone's comment", func() {
			Expect(svc.Delete(ctx, admin.ID, 200)).To(Succeed())
		})

		It("rejects other users", func() {
			err := svc.Delete(ctx, tester.ID, 200)
			Expect(errors.Is(err, workflow.ErrUnauthorized)).To(BeTrue())
		})
	})

	Describe("ListByIssue", func() {
		It("fails on a missing issue", func() {
			_, err := svc.ListByIssue(ctx, 999)
			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
		})
	})
})
