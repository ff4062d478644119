package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bugdesk.app/api-server/internal/service"
)

var _ = Describe("SearchService", func() {
	It("refuses to search without an API key", func() {
		svc := service.NewSearchService(&mockIssueStore{}, "")

		_, err := svc.SearchByNaturalLanguage(context.Background(), 10, 4, "blockers from last week")
		Expect(errors.Is(err, service.ErrSearchDisabled)).To(BeTrue())
	})
})
