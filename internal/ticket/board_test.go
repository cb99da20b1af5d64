package ticket_test

import (
	"testing"

	"github.com/fabianopolone123/ERP-TI/internal/ticket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTicket(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ticket Suite")
}

var _ = Describe("Status", func() {
	It("parses canonical states exactly", func() {
		for _, s := range ticket.CanonicalStates {
			st := ticket.ParseStatus(s)
			Expect(st.IsCanonical()).To(BeTrue())
			Expect(st.String()).To(Equal(s))
		}
	})

	It("treats anything else as an assignee name", func() {
		st := ticket.ParseStatus(" Maria ")
		Expect(st.IsCanonical()).To(BeFalse())
		Expect(st.Assignee()).To(Equal("Maria"))
		Expect(st.String()).To(Equal("Maria"))

		Expect(ticket.ParseStatus("Closed").IsCanonical()).To(BeFalse())
	})

	It("reads a blank column as pending", func() {
		Expect(ticket.ParseStatus("").State()).To(Equal(ticket.StatePending))
	})

	It("round-trips through text encoding", func() {
		var st ticket.Status
		Expect(st.UnmarshalText([]byte("in_progress"))).To(Succeed())
		b, err := st.MarshalText()
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal("in_progress"))
	})
})

var _ = Describe("Board", func() {
	staff := []ticket.StaffMember{{ID: 3, Name: "Bruno"}, {ID: 7, Name: "Maria"}}

	DescribeTable("ResolveColumn",
		func(raw string, expected string) {
			Expect(ticket.ResolveColumn(ticket.ParseStatus(raw), staff)).To(Equal(expected))
		},
		Entry("pending", "pending", "pending"),
		Entry("in progress", "in_progress", "in_progress"),
		Entry("closed", "closed", "closed"),
		Entry("staff name", "Maria", "user_7"),
		Entry("staff name in another case", " bruno ", "user_3"),
		Entry("staff column key", "user_3", "user_3"),
		Entry("column key of someone who left", "user_99", "pending"),
		Entry("unknown name", "Carlos", "pending"),
		Entry("legacy wording", "finalizado", "pending"),
	)

	It("builds canonical columns followed by staff columns", func() {
		board := ticket.BuildBoard(nil, staff)
		keys := []string{}
		for _, c := range board.Columns {
			keys = append(keys, c.Key)
			Expect(c.Tickets).NotTo(BeNil())
		}
		Expect(keys).To(Equal([]string{"pending", "in_progress", "closed", "user_3", "user_7"}))
		Expect(board.Column("user_7").Title).To(Equal("Maria"))
	})

	It("falls back to pending once the assignee leaves the staff", func() {
		tickets := []*ticket.Ticket{
			{ID: 1, Status: ticket.AssignedTo("Maria")},
			{ID: 2, Status: ticket.Canonical(ticket.StateClosed)},
		}

		board := ticket.BuildBoard(tickets, staff)
		Expect(board.Column("user_7").Tickets).To(HaveLen(1))

		board = ticket.BuildBoard(tickets, staff[:1])
		Expect(board.Column("user_7")).To(BeNil())
		Expect(board.Column("pending").Tickets).To(HaveLen(1))
		Expect(board.Column("pending").Tickets[0].ID).To(Equal(int64(1)))
		Expect(board.Column("closed").Tickets).To(HaveLen(1))
	})

	It("parses staff column keys", func() {
		id, ok := ticket.ParseStaffColumnKey("user_12")
		Expect(ok).To(BeTrue())
		Expect(id).To(Equal(int64(12)))

		for _, bad := range []string{"user_", "user_x", "user_-1", "pending", "12"} {
			_, ok := ticket.ParseStaffColumnKey(bad)
			Expect(ok).To(BeFalse(), bad)
		}
	})
})
