package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/changebookinfo"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/issuebook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/makeholdrequest"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/holdqueue"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/loanhistory"
)

const (
	groupCirculation = "circulation"
	groupCatalog     = "catalog"
	groupDesk        = "desk"

	dateLayout = "2006-01-02"
)

/***** circulation *****/

func (a *app) issueCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "issue <book-id> <borrower-id>",
		Short:   "Issue a book, or offer a hold request when it is out",
		GroupID: groupCirculation,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			staff, err := a.currentStaff()
			if err != nil {
				return err
			}

			_, err = a.issueBook.Handle(cmd.Context(), issuebook.BuildCommand(ids[0], ids[1], staff.ID, a.now()))

			return err
		},
	}
}

func (a *app) returnCmd() *cobra.Command {
	var loanID, borrowerID uint64

	cmd := &cobra.Command{
		Use:     "return <book-id>",
		Short:   "Take a book back and settle the fine",
		GroupID: groupCirculation,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			staff, err := a.currentStaff()
			if err != nil {
				return err
			}

			loan := core.ID(loanID)
			if loan.IsZero() {
				if loan, err = a.currentLoanOf(ids[0]); err != nil {
					return err
				}
			}

			_, err = a.returnBook.Handle(
				cmd.Context(),
				returnbook.BuildCommandForBorrower(ids[0], loan, staff.ID, core.ID(borrowerID), a.now()),
			)

			return err
		},
	}

	cmd.Flags().Uint64Var(&loanID, "loan", 0, "loan to close (default: the book's current loan)")
	cmd.Flags().Uint64Var(&borrowerID, "borrower", 0, "borrower bringing the book back (default: the loan's borrower)")

	return cmd
}

func (a *app) holdCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "hold <book-id> <borrower-id>",
		Short:   "Place a hold request on an issued book",
		GroupID: groupCirculation,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			_, err = a.makeHold.Handle(cmd.Context(), makeholdrequest.BuildCommand(ids[0], ids[1], a.now()))

			return err
		},
	}
}

func (a *app) historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "history <borrower-id>",
		Short:   "Show all loans of a borrower from the journal",
		GroupID: groupCirculation,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			history, err := a.loanHistory.Handle(cmd.Context(), loanhistory.BuildQuery(ids[0]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if history.Count == 0 {
				_, err = fmt.Fprintln(out, "No loans.")
				return err
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "LOAN\tBOOK\tISSUED\tRETURNED\tOVERDUE\tFINE")

			for _, loan := range history.Loans {
				returned, overdue, fine := "-", "-", "-"

				if loan.Returned {
					returned = loan.ReturnedAt.Format(dateLayout)
					overdue = strconv.Itoa(loan.DaysOverdue)
					fine = fineStatus(loan)
				}

				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					loan.LoanID, loan.BookID, loan.IssuedAt.Format(dateLayout), returned, overdue, fine)
			}

			if err = w.Flush(); err != nil {
				return err
			}

			_, err = fmt.Fprintf(out, "%d loan(s), %d open, unpaid fines %s\n",
				history.Count, history.OpenCount, history.UnpaidFines)

			return err
		},
	}
}

func fineStatus(loan loanhistory.LoanEntry) string {
	switch {
	case loan.Fine == 0:
		return "-"
	case loan.FinePaid:
		return loan.Fine.String() + " paid"
	default:
		return loan.Fine.String() + " unpaid"
	}
}

func (a *app) holdsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "holds <book-id>",
		Short:   "Show the hold requests of a book, earliest first",
		GroupID: groupCirculation,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			queue, err := a.holdQueue.Handle(cmd.Context(), holdqueue.BuildQuery(ids[0], a.now()))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), queue.String())

			return err
		},
	}
}

/***** catalog *****/

func (a *app) editCmd() *cobra.Command {
	var title, subject, author string

	cmd := &cobra.Command{
		Use:     "edit <book-id>",
		Short:   "Change title, subject or author of a book, asks for each without flags",
		GroupID: groupCatalog,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			var command changebookinfo.Command

			flags := cmd.Flags()
			if flags.Changed("title") || flags.Changed("subject") || flags.Changed("author") {
				command = changebookinfo.BuildCommand(
					ids[0],
					changedValue(cmd, "title", title),
					changedValue(cmd, "subject", subject),
					changedValue(cmd, "author", author),
					a.now(),
				)
			} else {
				if _, err = a.registry.Book(ids[0]); err != nil {
					return err
				}

				if command, err = changebookinfo.CommandFromPrompts(cmd.Context(), a.prompter, ids[0], a.now()); err != nil {
					return err
				}
			}

			_, err = a.changeBookInfo.Handle(cmd.Context(), command)

			return err
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&subject, "subject", "", "new subject")
	cmd.Flags().StringVar(&author, "author", "", "new author")

	return cmd
}

func changedValue(cmd *cobra.Command, flag, value string) *string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}

	return &value
}

func (a *app) booksCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "books",
		Short:   "List all books",
		GroupID: groupCatalog,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			books := a.registry.Books()
			if len(books) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No books.")
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tSUBJECT\tSTATUS\tHOLDS")

			for _, book := range books {
				unlock, err := a.registry.LockBook(book.ID)
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
					book.ID, book.Title(), book.Author(), book.Subject(), book.Status(), len(book.HoldRequests()))
				unlock()
			}

			return w.Flush()
		},
	}
}

func (a *app) bookCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "book <book-id>",
		Short:   "Show a book with its current loan and hold requests",
		GroupID: groupCatalog,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			unlock, err := a.registry.LockBook(ids[0])
			if err != nil {
				return err
			}

			book, err := a.registry.Book(ids[0])
			if err != nil {
				unlock()
				return err
			}

			_, _ = fmt.Fprintf(out, "Book %s: %q by %s (%s), %s\n",
				book.ID, book.Title(), book.Author(), book.Subject(), book.Status())

			if loan, ok := book.CurrentLoan(); ok {
				due := loan.IssuedAt.AddDate(0, 0, a.registry.Policy().LoanPeriodDays)
				_, _ = fmt.Fprintf(out, "On loan to %s (borrower %s, loan %s) since %s, due %s\n",
					loan.Borrower.Name, loan.Borrower.ID, loan.ID, loan.IssuedAt.Format(dateLayout), due.Format(dateLayout))
			}

			unlock()

			queue, err := a.holdQueue.Handle(cmd.Context(), holdqueue.BuildQuery(ids[0], a.now()))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(out, queue.String())

			return err
		},
	}
}

func (a *app) borrowersCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "borrowers",
		Short:   "List all borrowers",
		GroupID: groupCatalog,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			borrowers := a.registry.Borrowers()
			if len(borrowers) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No borrowers.")
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tNAME\tLOANS\tHOLDS\tFINE")

			for _, borrower := range borrowers {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
					borrower.ID, borrower.Name, len(borrower.Loans()), len(borrower.HoldRequests()), borrower.OutstandingFine())
			}

			return w.Flush()
		},
	}
}

func (a *app) borrowerCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "borrower <borrower-id>",
		Short:   "Show a borrower with loans, hold requests and outstanding fine",
		GroupID: groupCatalog,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			borrower, err := a.registry.Borrower(ids[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Borrower %s: %s, %s\n", borrower.ID, borrower.Name, borrower.Address)
			_, _ = fmt.Fprintf(out, "Outstanding fine: %s\n", borrower.OutstandingFine())

			for _, loan := range borrower.Loans() {
				_, _ = fmt.Fprintf(out, "Borrowed: %q (book %s, loan %s) since %s\n",
					loan.Book.Title(), loan.Book.ID, loan.ID, loan.IssuedAt.Format(dateLayout))
			}

			for _, hr := range borrower.HoldRequests() {
				_, _ = fmt.Fprintf(out, "On hold: %q (book %s) requested %s\n",
					hr.Book.Title(), hr.Book.ID, hr.RequestedAt.Format(dateLayout))
			}

			return nil
		},
	}
}

func (a *app) addBookCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add-book <title> <subject> <author>",
		Short:   "Add a book to the catalog",
		GroupID: groupCatalog,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			book := a.registry.AddBook(args[0], args[1], args[2])
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Book %s added.\n", book.ID)

			return err
		},
	}
}

func (a *app) addBorrowerCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add-borrower <name> <address>",
		Short:   "Register a borrower",
		GroupID: groupCatalog,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			borrower := a.registry.RegisterBorrower(args[0], args[1])
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Borrower %s registered.\n", borrower.ID)

			return err
		},
	}
}

/***** desk *****/

func (a *app) addStaffCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add-staff <name> <address> <employee-number> <wage>",
		Short:   "Add a staff member",
		GroupID: groupDesk,
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			wage, err := strconv.ParseFloat(args[3], 64)
			if err != nil || wage < 0 {
				return fmt.Errorf("invalid wage %q", args[3])
			}

			staff := a.registry.AddStaff(args[0], args[1], args[2], core.Money(wage))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Staff member %s added.\n", staff.ID)

			return err
		},
	}
}

func (a *app) staffCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "staff [staff-id]",
		Short:   "Show or change the staff member at the desk",
		GroupID: groupDesk,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				ids, err := parseIDs(args)
				if err != nil {
					return err
				}

				if err = a.selectStaff(ids[0]); err != nil {
					return err
				}
			}

			staff, err := a.currentStaff()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "At the desk: %s (staff %s, %s)\n", staff.Name, staff.ID, staff.EmployeeNumber)

			return err
		},
	}
}

func (a *app) policyCmd() *cobra.Command {
	var loanDays, expiryDays int
	var finePerDay float64

	cmd := &cobra.Command{
		Use:     "policy",
		Short:   "Show the lending policy, flags change it",
		GroupID: groupDesk,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			policy := a.registry.Policy()
			flags := cmd.Flags()

			if flags.Changed("loan-days") {
				policy.LoanPeriodDays = loanDays
			}

			if flags.Changed("fine") {
				policy.FinePerDay = core.Money(finePerDay)
			}

			if flags.Changed("expiry-days") {
				policy.HoldRequestExpiryDays = expiryDays
			}

			if err := a.registry.SetPolicy(policy); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Loan period %d day(s), fine %s per day, hold requests expire after %d day(s)\n",
				policy.LoanPeriodDays, policy.FinePerDay, policy.HoldRequestExpiryDays)

			return err
		},
	}

	cmd.Flags().IntVar(&loanDays, "loan-days", 0, "days a book may be kept without a fine")
	cmd.Flags().Float64Var(&finePerDay, "fine", 0, "fine per overdue day")
	cmd.Flags().IntVar(&expiryDays, "expiry-days", 0, "days after which hold requests expire, 0 never")

	return cmd
}

func (a *app) quitCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "quit",
		Aliases: []string{"exit"},
		Short:   "End the session",
		GroupID: groupDesk,
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a.done = true

			return nil
		},
	}
}

func parseIDs(args []string) ([]core.ID, error) {
	ids := make([]core.ID, 0, len(args))

	for _, arg := range args {
		id, err := core.ParseID(arg)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}
