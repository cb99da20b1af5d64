package ticket_test

import (
	"context"
	"sync"

	"github.com/fabianopolone123/ERP-TI/internal"
	"github.com/fabianopolone123/ERP-TI/internal/core/database/dbtest"
	ticketDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/ticket"
	userDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/user"
	"github.com/fabianopolone123/ERP-TI/internal/core/events"
	"github.com/fabianopolone123/ERP-TI/internal/ticket"
	ticketRepository "github.com/fabianopolone123/ERP-TI/internal/ticket/repository"
	"github.com/fabianopolone123/ERP-TI/internal/user"
	userRepository "github.com/fabianopolone123/ERP-TI/internal/user/repository"
	"github.com/fabianopolone123/ERP-TI/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

func countTickets(db *gorm.DB) int64 {
	var n int64
	Expect(db.Model(&ticketDatamodel.Ticket{}).Count(&n).Error).To(Succeed())
	return n
}

func countMessages(db *gorm.DB) int64 {
	var n int64
	Expect(db.Model(&ticketDatamodel.TicketMessage{}).Count(&n).Error).To(Succeed())
	return n
}

var validTicket = ticket.CreateTicketDTO{
	Title:       "Printer offline",
	Description: "The second floor printer is not responding",
	Type:        ticket.TypeIncident,
	Urgency:     ticket.UrgencyHigh,
}

var _ = Describe("Ticket Service", func() {
	var (
		ctx       context.Context
		db        *gorm.DB
		users     *user.Service
		publisher *recordingPublisher
		service   *ticket.Service
		ana       internal.Identity
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = dbtest.Open()
		Expect(err).NotTo(HaveOccurred())

		users = user.NewService(userRepository.NewUserRepository(db), "TI", logger.Discard())
		publisher = &recordingPublisher{}
		service = ticket.NewService(ticketRepository.NewTicketRepository(db), users, publisher, logger.Discard())
		ana = internal.Identity{UserID: 1, Name: "Ana"}
	})

	addStaff := func(name string) *user.User {
		groups, err := users.ListGroups(ctx)
		Expect(err).NotTo(HaveOccurred())
		var groupID int64
		for _, g := range groups {
			if g.Name == "TI" {
				groupID = g.ID
			}
		}
		if groupID == 0 {
			g, err := users.CreateGroup(ctx, user.CreateGroupDTO{Name: "TI"})
			Expect(err).NotTo(HaveOccurred())
			groupID = g.ID
		}
		u, err := users.CreateUser(ctx, user.CreateUserDTO{Department: "TI", FullName: name})
		Expect(err).NotTo(HaveOccurred())
		Expect(users.AssignToGroup(ctx, groupID, u.ID)).To(Succeed())
		return u
	}

	Describe("Create", func() {
		It("opens a pending ticket authored by the caller", func() {
			t, err := service.Create(ctx, ana, validTicket)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.ID).To(BeNumerically(">", 0))
			Expect(t.Status.State()).To(Equal(ticket.StatePending))
			Expect(t.Author).To(Equal("Ana"))
			Expect(t.LegacySource).To(BeEmpty())
			Expect(t.LegacyID).To(BeNil())
			Expect(publisher.types()).To(Equal([]string{events.EventTypeTicketCreated}))
		})

		It("falls back to the default author for an anonymous caller", func() {
			t, err := service.Create(ctx, internal.Identity{}, validTicket)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Author).To(Equal(ticket.DefaultAuthor))
		})

		It("hands out strictly increasing ids", func() {
			var last int64
			for i := 0; i < 5; i++ {
				t, err := service.Create(ctx, ana, validTicket)
				Expect(err).NotTo(HaveOccurred())
				Expect(t.ID).To(BeNumerically(">", last))
				last = t.ID
			}
		})

		DescribeTable("rejects incomplete tickets without writing",
			func(mutate func(*ticket.CreateTicketDTO)) {
				dto := validTicket
				mutate(&dto)
				_, err := service.Create(ctx, ana, dto)
				Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
				Expect(countTickets(db)).To(BeZero())
				Expect(publisher.types()).To(BeEmpty())
			},
			Entry("empty title", func(d *ticket.CreateTicketDTO) { d.Title = "  " }),
			Entry("empty description", func(d *ticket.CreateTicketDTO) { d.Description = "" }),
			Entry("empty type", func(d *ticket.CreateTicketDTO) { d.Type = "" }),
			Entry("empty urgency", func(d *ticket.CreateTicketDTO) { d.Urgency = "" }),
			Entry("unknown type", func(d *ticket.CreateTicketDTO) { d.Type = "bug" }),
			Entry("unknown urgency", func(d *ticket.CreateTicketDTO) { d.Urgency = "asap" }),
		)
	})

	Describe("Move", func() {
		var created *ticket.Ticket

		BeforeEach(func() {
			var err error
			created, err = service.Create(ctx, ana, validTicket)
			Expect(err).NotTo(HaveOccurred())
		})

		It("moves between any canonical columns without a guard", func() {
			for _, col := range []string{"closed", "pending", "in_progress", "closed"} {
				t, err := service.Move(ctx, created.ID, col)
				Expect(err).NotTo(HaveOccurred())
				Expect(t.Status.State()).To(Equal(col))
			}
			stored, err := service.Get(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Status.String()).To(Equal("closed"))
			Expect(stored.Assignee).To(BeEmpty())
		})

		It("assigns the ticket when dropped on a staff column", func() {
			maria := addStaff("Maria")

			t, err := service.Move(ctx, created.ID, ticket.StaffColumnKey(maria.ID))
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Status.Assignee()).To(Equal("Maria"))
			Expect(t.Assignee).To(Equal("Maria"))

			board, err := service.Board(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(board.Column(ticket.StaffColumnKey(maria.ID)).Tickets).To(HaveLen(1))
		})

		It("sends the ticket back to pending when the assignee leaves the staff group", func() {
			maria := addStaff("Maria")
			_, err := service.Move(ctx, created.ID, ticket.StaffColumnKey(maria.ID))
			Expect(err).NotTo(HaveOccurred())

			groups, _ := users.ListGroups(ctx)
			Expect(users.RemoveFromGroup(ctx, groups[0].ID, maria.ID)).To(Succeed())

			board, err := service.Board(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(board.Columns).To(HaveLen(3))
			Expect(board.Column("pending").Tickets).To(HaveLen(1))

			stored, _ := service.Get(ctx, created.ID)
			Expect(stored.Status.String()).To(Equal("Maria"))
		})

		It("rejects columns that are not on the board", func() {
			_, err := service.Move(ctx, created.ID, "user_42")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))

			_, err = service.Move(ctx, created.ID, "finalizado")
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
		})

		It("refuses a staff column whose member has no name", func() {
			nameless := addStaff("Maria")
			Expect(db.Model(&userDatamodel.User{}).Where("id = ?", nameless.ID).
				Update("full_name", "   ").Error).To(Succeed())

			_, err := service.Move(ctx, created.ID, ticket.StaffColumnKey(nameless.ID))
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidColumn))

			stored, err := service.Get(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Status.String()).To(Equal(ticket.StatePending))
			Expect(stored.Assignee).To(BeEmpty())
		})

		It("reports unknown tickets", func() {
			_, err := service.Move(ctx, 999, "closed")
			Expect(err).To(MatchError(internal.ErrTicketNotFound))
		})

		It("finalizes to closed", func() {
			t, err := service.Finalize(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Status.State()).To(Equal(ticket.StateClosed))
			Expect(publisher.types()).To(ContainElement(events.EventTypeTicketMoved))
		})
	})

	Describe("Messages", func() {
		var created *ticket.Ticket

		BeforeEach(func() {
			var err error
			created, err = service.Create(ctx, ana, validTicket)
			Expect(err).NotTo(HaveOccurred())
		})

		It("keeps the public and internal logs apart", func() {
			_, err := service.PostMessage(ctx, ana, created.ID, ticket.ChannelPublic, ticket.PostMessageDTO{Message: "any news?"})
			Expect(err).NotTo(HaveOccurred())
			bruno := internal.Identity{Name: "Bruno"}
			_, err = service.PostMessage(ctx, bruno, created.ID, ticket.ChannelInternal, ticket.PostMessageDTO{Message: "toner is out"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.PostMessage(ctx, bruno, created.ID, ticket.ChannelPublic, ticket.PostMessageDTO{Message: "on it", Attachment: "C:/shots/printer.png"})
			Expect(err).NotTo(HaveOccurred())

			public, err := service.ListMessages(ctx, created.ID, ticket.ChannelPublic)
			Expect(err).NotTo(HaveOccurred())
			Expect(public).To(HaveLen(2))
			Expect(public[0].Author).To(Equal("Ana"))
			Expect(public[1].Attachment).To(Equal("C:/shots/printer.png"))

			internalLog, err := service.ListMessages(ctx, created.ID, ticket.ChannelInternal)
			Expect(err).NotTo(HaveOccurred())
			Expect(internalLog).To(HaveLen(1))
			Expect(internalLog[0].Message).To(Equal("toner is out"))
		})

		It("rejects an empty message without writing", func() {
			_, err := service.PostMessage(ctx, ana, created.ID, ticket.ChannelPublic, ticket.PostMessageDTO{Message: "   "})
			Expect(err).To(MatchError(internal.ErrEmptyMessage))
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeEmptyMessage))
			Expect(countMessages(db)).To(BeZero())
		})

		It("rejects unknown channels", func() {
			_, err := service.PostMessage(ctx, ana, created.ID, ticket.Channel("private"), ticket.PostMessageDTO{Message: "hi"})
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
			Expect(countMessages(db)).To(BeZero())
		})

		It("reports unknown tickets", func() {
			_, err := service.PostMessage(ctx, ana, 999, ticket.ChannelPublic, ticket.PostMessageDTO{Message: "hi"})
			Expect(err).To(MatchError(internal.ErrTicketNotFound))
		})
	})

	Describe("List", func() {
		It("returns newest first", func() {
			first, _ := service.Create(ctx, ana, validTicket)
			second, _ := service.Create(ctx, ana, validTicket)

			list, err := service.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[0].ID).To(Equal(second.ID))
			Expect(list[1].ID).To(Equal(first.ID))
		})
	})
})
