package repository_test

import (
	"context"
	"testing"

	"github.com/fabianopolone123/ERP-TI/internal"
	"github.com/fabianopolone123/ERP-TI/internal/core/database/dbtest"
	userDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/user"
	"github.com/fabianopolone123/ERP-TI/internal/user"
	"github.com/fabianopolone123/ERP-TI/internal/user/repository"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestUserRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Repository Suite")
}

var _ = Describe("UserRepository", func() {
	var (
		ctx  context.Context
		repo user.RepositoryAPI
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, err := dbtest.Open()
		Expect(err).NotTo(HaveOccurred())
		repo = repository.NewUserRepository(db)
	})

	newUser := func(name string) *userDatamodel.User {
		u := &userDatamodel.User{Department: "TI", FullName: name}
		Expect(repo.CreateUser(ctx, u)).To(Succeed())
		return u
	}

	newGroup := func(name string) *userDatamodel.UserGroup {
		g := &userDatamodel.UserGroup{Name: name}
		Expect(repo.CreateGroup(ctx, g)).To(Succeed())
		return g
	}

	It("finds groups by name ignoring case and padding", func() {
		g := newGroup("TI")
		found, err := repo.FindGroupByName(ctx, " ti ")
		Expect(err).NotTo(HaveOccurred())
		Expect(found.ID).To(Equal(g.ID))
	})

	It("maps a duplicate group name onto a conflict", func() {
		newGroup("Compras")
		Expect(repo.CreateGroup(ctx, &userDatamodel.UserGroup{Name: "Compras"})).To(MatchError(internal.ErrDuplicateGroup))
	})

	It("maps a duplicate membership onto a conflict", func() {
		u := newUser("Ana")
		g := newGroup("TI")
		Expect(repo.AddMember(ctx, g.ID, u.ID)).To(Succeed())
		Expect(repo.AddMember(ctx, g.ID, u.ID)).To(MatchError(internal.ErrDuplicateMembership))
	})

	It("reads group names per user sorted by lowercase name", func() {
		ana := newUser("Ana")
		bruno := newUser("Bruno")
		ti := newGroup("TI")
		compras := newGroup("compras")
		Expect(repo.AddMember(ctx, ti.ID, ana.ID)).To(Succeed())
		Expect(repo.AddMember(ctx, compras.ID, ana.ID)).To(Succeed())
		Expect(repo.AddMember(ctx, ti.ID, bruno.ID)).To(Succeed())

		names, err := repo.GroupNamesForUser(ctx, ana.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(Equal([]string{"compras", "TI"}))

		byUser, err := repo.GroupNamesByUser(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(byUser[bruno.ID]).To(Equal([]string{"TI"}))

		Expect(repo.RemoveMember(ctx, compras.ID, ana.ID)).To(Succeed())
		names, _ = repo.GroupNamesForUser(ctx, ana.ID)
		Expect(names).To(Equal([]string{"TI"}))
	})

	It("lists group members by lowercase name", func() {
		g := newGroup("TI")
		for _, n := range []string{"carla", "Bruno", "ana"} {
			Expect(repo.AddMember(ctx, g.ID, newUser(n).ID)).To(Succeed())
		}
		members, err := repo.GroupMembers(ctx, g.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(HaveLen(3))
		Expect(members[0].FullName).To(Equal("ana"))
		Expect(members[2].FullName).To(Equal("carla"))
	})
})
