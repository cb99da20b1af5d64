package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/fabianopolone123/ERP-TI/internal"
	"github.com/fabianopolone123/ERP-TI/internal/ticket"
	"github.com/spf13/cobra"
)

var (
	ticketAuthor   string
	ticketCreate   ticket.CreateTicketDTO
	ticketMessage  ticket.PostMessageDTO
	ticketInternal bool
)

var ticketCmd = &cobra.Command{
	Use:   "ticket",
	Short: "Work with helpdesk tickets",
}

var ticketListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent tickets",
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *Application) error {
		tickets, err := app.Tickets.List(cmd.Context())
		if err != nil {
			return err
		}
		printTickets(cmd.OutOrStdout(), tickets)
		return nil
	}),
}

var ticketCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a ticket",
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *Application) error {
		t, err := app.Tickets.Create(cmd.Context(), internal.Identity{Name: ticketAuthor}, ticketCreate)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ticket %d opened by %s\n", t.ID, t.Author)
		return nil
	}),
}

var ticketMoveCmd = &cobra.Command{
	Use:   "move <id> <column>",
	Short: "Move a ticket to pending, in_progress, closed or a user_<id> staff column",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *Application) error {
		id, err := parseTicketID(args[0])
		if err != nil {
			return err
		}
		t, err := app.Tickets.Move(cmd.Context(), id, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ticket %d is now %s\n", t.ID, t.Status)
		return nil
	}),
}

var ticketFinalizeCmd = &cobra.Command{
	Use:   "finalize <id>",
	Short: "Close a ticket",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *Application) error {
		id, err := parseTicketID(args[0])
		if err != nil {
			return err
		}
		t, err := app.Tickets.Finalize(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ticket %d is now %s\n", t.ID, t.Status)
		return nil
	}),
}

var ticketBoardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print the board grouped by column",
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *Application) error {
		board, err := app.Tickets.Board(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, col := range board.Columns {
			fmt.Fprintf(out, "== %s [%s] (%d)\n", col.Title, col.Key, len(col.Tickets))
			printTickets(out, col.Tickets)
		}
		return nil
	}),
}

var ticketMessageCmd = &cobra.Command{
	Use:   "message <id>",
	Short: "Post to a ticket thread",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *Application) error {
		id, err := parseTicketID(args[0])
		if err != nil {
			return err
		}
		channel := ticket.ChannelPublic
		if ticketInternal {
			channel = ticket.ChannelInternal
		}
		msg, err := app.Tickets.PostMessage(cmd.Context(), internal.Identity{Name: ticketAuthor}, id, channel, ticketMessage)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "message %d posted on ticket %d (%s)\n", msg.ID, id, msg.Channel)
		return nil
	}),
}

func parseTicketID(raw string) (int64, error) {
	return parseID("ticket", raw)
}

func printTickets(w io.Writer, tickets []*ticket.Ticket) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tURGENCY\tSTATUS")
	for _, t := range tickets {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Author, t.Urgency, t.Status)
	}
	_ = tw.Flush()
}

func init() {
	ticketCmd.PersistentFlags().StringVar(&ticketAuthor, "as", "", "name recorded as author")

	f := ticketCreateCmd.Flags()
	f.StringVar(&ticketCreate.Title, "title", "", "ticket title")
	f.StringVar(&ticketCreate.Description, "description", "", "ticket description")
	f.StringVar(&ticketCreate.Type, "type", "", "incident, request, improvement or scheduled")
	f.StringVar(&ticketCreate.Urgency, "urgency", ticket.UrgencyNormal, "normal, low, medium, high or urgent")
	f.StringVar(&ticketCreate.Attachment, "attachment", "", "stored attachment name")

	m := ticketMessageCmd.Flags()
	m.StringVar(&ticketMessage.Message, "text", "", "message text")
	m.StringVar(&ticketMessage.Attachment, "attachment", "", "stored attachment name")
	m.BoolVar(&ticketInternal, "internal", false, "post to the internal staff thread")

	ticketCmd.AddCommand(ticketListCmd, ticketCreateCmd, ticketMoveCmd, ticketFinalizeCmd, ticketBoardCmd, ticketMessageCmd)
}

func parseID(kind, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, raw)
	}
	return id, nil
}
