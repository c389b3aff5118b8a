package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/catalog"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/changebookinfo"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/issuebook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/makeholdrequest"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/holdqueue"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/loanhistory"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/observable"
)

const (
	// OutcomeRefused counts commands that hit a precondition violation, usually because another
	// worker changed the book in between.
	OutcomeRefused = "refused"

	// OutcomeSkipped counts returns drawn for a book that was not on loan.
	OutcomeSkipped = "skipped"
)

// Option configures a Simulation.
type Option func(*Simulation)

// WithInstrumentation wraps all handlers with logging, metrics and tracing.
func WithInstrumentation(instrumentation observable.Instrumentation) Option {
	return func(s *Simulation) {
		s.instrumentation = instrumentation
	}
}

// WithLogger sets the logger for progress messages.
func WithLogger(logger shell.Logger) Option {
	return func(s *Simulation) {
		s.logger = logger
	}
}

// Simulation runs random circulation scenarios against a registry and journal.
type Simulation struct {
	registry *catalog.Registry
	config   Config
	clock    *clock
	prompter *autoPrompter

	instrumentation observable.Instrumentation
	logger          shell.Logger

	issueBook      shell.CoreCommandHandler[issuebook.Command]
	returnBook     shell.CoreCommandHandler[returnbook.Command]
	makeHold       shell.CoreCommandHandler[makeholdrequest.Command]
	changeBookInfo shell.CoreCommandHandler[changebookinfo.Command]
	loanHistory    shell.CoreQueryHandler[loanhistory.Query, loanhistory.LoanHistory]
	holdQueue      shell.CoreQueryHandler[holdqueue.Query, holdqueue.HoldQueue]

	reportMu sync.Mutex
	report   Report
}

// New creates a Simulation. The registry may already contain entities, more are added in Run.
func New(registry *catalog.Registry, journal shell.Journal, config Config, opts ...Option) (*Simulation, error) {
	if registry == nil || journal == nil {
		return nil, errors.Join(ErrInvalidConfig, errors.New("registry and journal are required"))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		registry: registry,
		config:   config,
		clock:    &clock{now: config.Start},
		prompter: newAutoPrompter(config.Seed, config.YesProbability),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.wrapHandlers(journal); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Simulation) wrapHandlers(journal shell.Journal) error {
	var err error

	i := s.instrumentation

	if s.issueBook, err = observable.NewCommandWrapper[issuebook.Command](
		issuebook.NewCommandHandler(s.registry, journal, s.prompter),
		observable.CommandOptions[issuebook.Command](i)...,
	); err != nil {
		return err
	}

	if s.returnBook, err = observable.NewCommandWrapper[returnbook.Command](
		returnbook.NewCommandHandler(s.registry, journal, s.prompter),
		observable.CommandOptions[returnbook.Command](i)...,
	); err != nil {
		return err
	}

	if s.makeHold, err = observable.NewCommandWrapper[makeholdrequest.Command](
		makeholdrequest.NewCommandHandler(s.registry, journal, s.prompter),
		observable.CommandOptions[makeholdrequest.Command](i)...,
	); err != nil {
		return err
	}

	if s.changeBookInfo, err = observable.NewCommandWrapper[changebookinfo.Command](
		changebookinfo.NewCommandHandler(s.registry, journal, s.prompter),
		observable.CommandOptions[changebookinfo.Command](i)...,
	); err != nil {
		return err
	}

	if s.loanHistory, err = observable.NewQueryWrapper[loanhistory.Query, loanhistory.LoanHistory](
		loanhistory.NewQueryHandler(journal),
		observable.QueryOptions[loanhistory.Query, loanhistory.LoanHistory](i)...,
	); err != nil {
		return err
	}

	s.holdQueue, err = observable.NewQueryWrapper[holdqueue.Query, holdqueue.HoldQueue](
		holdqueue.NewQueryHandler(s.registry),
		observable.QueryOptions[holdqueue.Query, holdqueue.HoldQueue](i)...,
	)

	return err
}

// Run tops up the catalog, executes the configured number of scenarios with the worker pool
// and checks the circulation invariants of every book afterward.
// A canceled context stops the run early; the partial report is returned with the context error.
func (s *Simulation) Run(ctx context.Context) (Report, error) {
	started := time.Now()
	s.report = newReport()

	books, borrowers, staff := s.setup()
	s.logInfo("simulation started",
		"workers", s.config.Workers,
		"operations", s.config.Operations,
		"books", len(books),
		"borrowers", len(borrowers),
		"staff", len(staff),
	)

	requestQueue := make(chan Scenario, s.config.Workers*2)

	var wg sync.WaitGroup
	s.startWorkers(ctx, &wg, requestQueue)

	selector := newScenarioSelector(s.config.Seed, books, borrowers, staff)

	var runErr error

generate:
	for op := 0; op < s.config.Operations; op++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break generate
		case requestQueue <- selector.next():
		}
	}

	close(requestQueue)
	wg.Wait()

	report := s.finishReport(started)
	s.logInfo("simulation finished",
		"operations", report.Operations,
		"errors", report.Errors,
		"duration_ms", shell.ToMilliseconds(report.Duration),
	)

	if runErr != nil {
		return report, runErr
	}

	if report.InvariantViolation != nil {
		return report, report.InvariantViolation
	}

	return report, nil
}

func (s *Simulation) setup() (books, borrowers, staff []core.ID) {
	for n := len(s.registry.Books()); n < s.config.MinBooks; n++ {
		s.registry.AddBook(fmt.Sprintf("Simulated Book %d", n+1), "Simulation", fmt.Sprintf("Author %d", n%7+1))
	}

	for n := len(s.registry.Borrowers()); n < s.config.MinBorrowers; n++ {
		s.registry.RegisterBorrower(fmt.Sprintf("Borrower %d", n+1), fmt.Sprintf("%d Simulation Street", n+1))
	}

	for n := len(s.registry.StaffMembers()); n < s.config.MinStaff; n++ {
		s.registry.AddStaff(fmt.Sprintf("Clerk %d", n+1), "Library", fmt.Sprintf("SIM-%03d", n+1), core.Money(2000))
	}

	for _, book := range s.registry.Books() {
		books = append(books, book.ID)
	}

	for _, borrower := range s.registry.Borrowers() {
		borrowers = append(borrowers, borrower.ID)
	}

	for _, member := range s.registry.StaffMembers() {
		staff = append(staff, member.ID)
	}

	return books, borrowers, staff
}

func (s *Simulation) startWorkers(ctx context.Context, wg *sync.WaitGroup, requestQueue <-chan Scenario) {
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)

		go func(workerID int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(s.config.Seed + int64(workerID) + 1)) //nolint:gosec

			for scenario := range requestQueue {
				if ctx.Err() != nil {
					continue
				}

				outcome, err := s.execute(ctx, rng, scenario)
				s.record(scenario.Type, outcome, err)
			}
		}(i)
	}
}

func (s *Simulation) execute(ctx context.Context, rng *rand.Rand, scenario Scenario) (string, error) {
	var step time.Duration
	if s.config.MaxClockStep > 0 {
		step = time.Duration(rng.Int63n(int64(s.config.MaxClockStep) + 1))
	}

	now := s.clock.advance(step)

	var (
		result shell.HandlerResult
		err    error
	)

	switch scenario.Type {
	case ScenarioIssue:
		result, err = s.issueBook.Handle(ctx, issuebook.BuildCommand(scenario.BookID, scenario.BorrowerID, scenario.StaffID, now))

	case ScenarioReturn:
		loanID, onLoan, lookupErr := s.currentLoanOf(scenario.BookID)
		if lookupErr != nil {
			return shell.StatusError, lookupErr
		}

		if !onLoan {
			return OutcomeSkipped, nil
		}

		result, err = s.returnBook.Handle(ctx, returnbook.BuildCommand(scenario.BookID, loanID, scenario.StaffID, now))

	case ScenarioHold:
		result, err = s.makeHold.Handle(ctx, makeholdrequest.BuildCommand(scenario.BookID, scenario.BorrowerID, now))

	case ScenarioEdit:
		title := fmt.Sprintf("Simulated Book %s, edition %d", scenario.BookID, rng.Intn(3)+1)
		result, err = s.changeBookInfo.Handle(ctx, changebookinfo.BuildCommand(scenario.BookID, &title, nil, nil, now))

	case ScenarioHistory:
		_, err = s.loanHistory.Handle(ctx, loanhistory.BuildQuery(scenario.BorrowerID))
		result = shell.HandlerResult{Outcome: shell.StatusSuccess}

	case ScenarioHoldQueue:
		_, err = s.holdQueue.Handle(ctx, holdqueue.BuildQuery(scenario.BookID, now))
		result = shell.HandlerResult{Outcome: shell.StatusSuccess}

	default:
		return shell.StatusError, fmt.Errorf("unknown scenario type %q", scenario.Type)
	}

	switch {
	case err == nil:
		return result.Outcome, nil
	case core.IsKind(err, core.ErrPreconditionViolation):
		return OutcomeRefused, nil
	default:
		return shell.StatusForError(err), err
	}
}

func (s *Simulation) currentLoanOf(bookID core.ID) (core.ID, bool, error) {
	unlock, err := s.registry.LockBook(bookID)
	if err != nil {
		return 0, false, err
	}
	defer unlock()

	book, err := s.registry.Book(bookID)
	if err != nil {
		return 0, false, err
	}

	loan, ok := book.CurrentLoan()
	if !ok {
		return 0, false, nil
	}

	return loan.ID, true, nil
}

func (s *Simulation) record(scenarioType ScenarioType, outcome string, err error) {
	s.reportMu.Lock()
	defer s.reportMu.Unlock()

	s.report.add(scenarioType, outcome, err)

	if err != nil {
		s.logError("simulated operation failed", "scenario", string(scenarioType), "error", err.Error())
	}
}

func (s *Simulation) finishReport(started time.Time) Report {
	s.reportMu.Lock()
	defer s.reportMu.Unlock()

	s.report.Questions = s.prompter.questions.Load()
	s.report.Messages = s.prompter.messages.Load()
	s.report.SimulatedTime = s.clock.current().Sub(s.config.Start)
	s.report.Duration = time.Since(started)
	s.report.InvariantViolation = s.registry.CheckInvariants()

	return s.report
}

func (s *Simulation) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Simulation) logError(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}
