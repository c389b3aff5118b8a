package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/journal/postgresengine/internal/adapters"
)

const (
	defaultTableName               = "circulation_events"
	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgCloseRowsFailed          = "failed to close database rows"
	logMsgScanRowFailed            = "failed to scan database row"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgDBExecFailed             = "database execution failed during event append"
	logMsgRowsAffectedFailed       = "failed to get rows affected count"
	logMsgSchemaFailed             = "failed to create journal schema"
	logMsgQueryCompleted           = "query completed"
	logMsgEventsAppended           = "events appended"
	logMsgConcurrencyConflict      = "concurrency conflict detected"
	logMsgSchemaEnsured            = "schema ensured"
	logMsgSQLExecuted              = "executed sql for: "
	logMsgOperation                = "journal operation: "
	logAttrError                   = "error"
	logAttrQuery                   = "query"
	logAttrTable                   = "table"
	logAttrEventType               = "event_type"
	logAttrEventCount              = "event_count"
	logAttrDurationMS              = "duration_ms"
	logAttrRowsAffected            = "rows_affected"
	logAttrExpectedSequence        = "expected_sequence"
	logActionQuery                 = "query"
	logActionAppend                = "append"
	logActionSchema                = "schema"
	metricQueryDuration            = "journal_query_duration_seconds"
	metricAppendDuration           = "journal_append_duration_seconds"
	metricConcurrencyConflicts     = "journal_concurrency_conflicts_total"
	metricLabelEngine              = "engine"
	metricEngineName               = "postgres"
	colEventType                   = "event_type"
	colOccurredAt                  = "occurred_at"
	colPayload                     = "payload"
	colMetadata                    = "metadata"
	colSequenceNumber              = "sequence_number"
	cteContext                     = "context"
	cteVals                        = "vals"
	dialectPostgres                = "postgres"
	aliasMaxSeq                    = "max_seq"
	castText                       = "?::text"
	castTimestamp                  = "?::timestamp with time zone"
	castJsonb                      = "?::jsonb"
	payloadContains                = "payload @> ?::jsonb"
)

type sqlQueryString = string

// Engine is the PostgreSQL journal engine.
// Rows are selected and inserted with SQL built by goqu. Appends are conditional inserts
// that only write when the filtered stream's max sequence number is still the expected one.
type Engine struct {
	db               adapters.DBAdapter
	tableName        string
	logger           journal.Logger
	metricsCollector journal.MetricsCollector
}

// NewEngineFromPGXPool creates an Engine on top of a pgx pool.
func NewEngineFromPGXPool(db *pgxpool.Pool, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, journal.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapter(db), options...)
}

// NewEngineFromSQLDB creates an Engine on top of database/sql (lib/pq driver).
func NewEngineFromSQLDB(db *sql.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, journal.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLAdapter(db), options...)
}

// NewEngineFromSQLX creates an Engine on top of sqlx.
func NewEngineFromSQLX(db *sqlx.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, journal.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLXAdapter(db), options...)
}

func newEngine(db adapters.DBAdapter, options ...Option) (*Engine, error) {
	e := &Engine{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// EnsureTable creates the journal table and its indexes if they do not exist yet.
func (e *Engine) EnsureTable(ctx context.Context) error {
	for _, statement := range e.schemaStatements() {
		start := time.Now()
		_, err := e.db.Exec(ctx, statement)
		e.logQueryWithDuration(statement, logActionSchema, time.Since(start))

		if err != nil {
			if e.logger != nil {
				e.logger.Error(logMsgSchemaFailed, logAttrError, err.Error(), logAttrQuery, statement)
			}

			return errors.Join(journal.ErrCreatingSchemaFailed, err)
		}
	}

	e.logOperation(logMsgSchemaEnsured, logAttrTable, e.tableName)

	return nil
}

func (e *Engine) schemaStatements() []sqlQueryString {
	table := pgx.Identifier{e.tableName}.Sanitize()
	typeIndex := pgx.Identifier{e.tableName + "_event_type_idx"}.Sanitize()
	payloadIndex := pgx.Identifier{e.tableName + "_payload_idx"}.Sanitize()

	return []sqlQueryString{
		"CREATE TABLE IF NOT EXISTS " + table + " (" +
			"sequence_number BIGSERIAL PRIMARY KEY, " +
			"occurred_at TIMESTAMP WITH TIME ZONE NOT NULL, " +
			"event_type TEXT NOT NULL, " +
			"payload JSONB NOT NULL, " +
			"metadata JSONB NOT NULL DEFAULT '{}'::jsonb)",
		"CREATE INDEX IF NOT EXISTS " + typeIndex + " ON " + table + " (event_type)",
		"CREATE INDEX IF NOT EXISTS " + payloadIndex + " ON " + table + " USING gin (payload jsonb_path_ops)",
	}
}

// Query retrieves the events matching filter in sequence order, plus the max sequence number of that stream.
func (e *Engine) Query(ctx context.Context, filter journal.Filter) (
	journal.StorableEvents,
	journal.MaxSequenceNumberUint,
	error,
) {

	sqlQuery, err := e.buildSelectQuery(filter)
	if err != nil {
		if e.logger != nil {
			e.logger.Error(logMsgBuildSelectQueryFailed, logAttrError, err.Error())
		}

		return nil, 0, err
	}

	start := time.Now()
	rows, err := e.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	e.logQueryWithDuration(sqlQuery, logActionQuery, duration)

	if err != nil {
		if e.logger != nil {
			e.logger.Error(logMsgDBQueryFailed, logAttrError, err.Error(), logAttrQuery, sqlQuery)
		}

		return nil, 0, errors.Join(journal.ErrQueryingEventsFailed, err)
	}
	defer e.closeRows(rows)

	stream, maxSequenceNumber, err := e.scanRows(rows)
	if err != nil {
		return nil, 0, err
	}

	e.recordDuration(metricQueryDuration, duration)
	e.logOperation(logMsgQueryCompleted, logAttrEventCount, len(stream), logAttrDurationMS, toMilliseconds(duration))

	return stream, maxSequenceNumber, nil
}

func (e *Engine) scanRows(rows adapters.DBRows) (journal.StorableEvents, journal.MaxSequenceNumberUint, error) {
	var (
		eventType      string
		occurredAt     time.Time
		payload        []byte
		metadata       []byte
		sequenceNumber int64
	)

	stream := make(journal.StorableEvents, 0)
	maxSequenceNumber := journal.MaxSequenceNumberUint(0)

	for rows.Next() {
		if err := rows.Scan(&eventType, &occurredAt, &payload, &metadata, &sequenceNumber); err != nil {
			if e.logger != nil {
				e.logger.Error(logMsgScanRowFailed, logAttrError, err.Error())
			}

			return nil, 0, errors.Join(journal.ErrScanningDBRowFailed, err)
		}

		event, err := journal.BuildStorableEvent(eventType, occurredAt, payload, metadata)
		if err != nil {
			if e.logger != nil {
				e.logger.Error(logMsgBuildStorableEventFailed, logAttrError, err.Error(), logAttrEventType, eventType)
			}

			return nil, 0, errors.Join(journal.ErrBuildingStorableEventFailed, err)
		}

		stream = append(stream, event)
		maxSequenceNumber = journal.MaxSequenceNumberUint(sequenceNumber)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.Join(journal.ErrScanningDBRowFailed, err)
	}

	return stream, maxSequenceNumber, nil
}

func (e *Engine) closeRows(rows adapters.DBRows) {
	if err := rows.Close(); err != nil && e.logger != nil {
		e.logger.Warn(logMsgCloseRowsFailed, logAttrError, err.Error())
	}
}

// Append inserts the events atomically if the stream selected by filter still ends at
// expectedMaxSequenceNumber, otherwise it returns journal.ErrConcurrencyConflict.
//
// Pass the same filter that was used for the Query the decision was based on.
func (e *Engine) Append(
	ctx context.Context,
	filter journal.Filter,
	expectedMaxSequenceNumber journal.MaxSequenceNumberUint,
	event journal.StorableEvent,
	additionalEvents ...journal.StorableEvent,
) error {

	allEvents := append(journal.StorableEvents{event}, additionalEvents...)

	sqlQuery, err := e.buildInsertQuery(allEvents, filter, expectedMaxSequenceNumber)
	if err != nil {
		if e.logger != nil {
			e.logger.Error(logMsgBuildInsertQueryFailed, logAttrError, err.Error(), logAttrEventCount, len(allEvents))
		}

		return err
	}

	start := time.Now()
	result, err := e.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	e.logQueryWithDuration(sqlQuery, logActionAppend, duration)

	if err != nil {
		if e.logger != nil {
			e.logger.Error(logMsgDBExecFailed, logAttrError, err.Error(), logAttrQuery, sqlQuery)
		}

		return errors.Join(journal.ErrAppendingEventFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		if e.logger != nil {
			e.logger.Error(logMsgRowsAffectedFailed, logAttrError, err.Error())
		}

		return errors.Join(journal.ErrGettingRowsAffectedFailed, err)
	}

	if rowsAffected < int64(len(allEvents)) {
		e.incrementCounter(metricConcurrencyConflicts)
		e.logOperation(
			logMsgConcurrencyConflict,
			logAttrEventCount, len(allEvents),
			logAttrRowsAffected, rowsAffected,
			logAttrExpectedSequence, expectedMaxSequenceNumber,
		)

		return journal.ErrConcurrencyConflict
	}

	e.recordDuration(metricAppendDuration, duration)
	e.logOperation(logMsgEventsAppended, logAttrEventCount, len(allEvents), logAttrDurationMS, toMilliseconds(duration))

	return nil
}

func (e *Engine) buildSelectQuery(filter journal.Filter) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(e.tableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.I(colSequenceNumber).Asc())

	selectStmt, err := e.addWhereClause(filter, selectStmt)
	if err != nil {
		return "", err
	}

	sqlQuery, _, err := selectStmt.ToSQL()
	if err != nil {
		return "", errors.Join(journal.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// buildInsertQuery builds one INSERT ... SELECT that writes all events only if the
// context CTE still reports the expected max sequence number.
func (e *Engine) buildInsertQuery(
	events journal.StorableEvents,
	filter journal.Filter,
	expectedMaxSequenceNumber journal.MaxSequenceNumberUint,
) (sqlQueryString, error) {

	builder := goqu.Dialect(dialectPostgres)

	contextStmt := builder.
		From(e.tableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq))

	contextStmt, err := e.addWhereClause(filter, contextStmt)
	if err != nil {
		return "", err
	}

	var valuesStmt *goqu.SelectDataset
	for _, event := range events {
		row := builder.Select(
			goqu.L(castText, event.EventType).As(colEventType),
			goqu.L(castTimestamp, event.OccurredAt).As(colOccurredAt),
			goqu.L(castJsonb, string(event.PayloadJSON)).As(colPayload),
			goqu.L(castJsonb, string(event.MetadataJSON)).As(colMetadata),
		)

		if valuesStmt == nil {
			valuesStmt = row
			continue
		}

		valuesStmt = valuesStmt.UnionAll(row)
	}

	insertStmt := builder.
		Insert(e.tableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		With(cteContext, contextStmt).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(
					goqu.T(cteVals).Col(colEventType),
					goqu.T(cteVals).Col(colOccurredAt),
					goqu.T(cteVals).Col(colPayload),
					goqu.T(cteVals).Col(colMetadata),
				).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber))),
		)

	sqlQuery, _, err := insertStmt.ToSQL()
	if err != nil {
		return "", errors.Join(journal.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// addWhereClause translates the filter: items are OR-ed, event types inside an item are OR-ed,
// predicates are OR-ed or AND-ed, the time range is AND-ed on top.
func (e *Engine) addWhereClause(filter journal.Filter, stmt *goqu.SelectDataset) (*goqu.SelectDataset, error) {
	conditions := make([]goqu.Expression, 0)

	if len(filter.Items()) > 0 {
		itemExpressions := make([]goqu.Expression, 0, len(filter.Items()))

		for _, item := range filter.Items() {
			itemExpression, err := itemExpressionFor(item)
			if err != nil {
				return nil, err
			}

			itemExpressions = append(itemExpressions, itemExpression)
		}

		conditions = append(conditions, goqu.Or(itemExpressions...))
	}

	if !filter.OccurredFrom().IsZero() {
		conditions = append(conditions, goqu.C(colOccurredAt).Gte(filter.OccurredFrom()))
	}

	if !filter.OccurredUntil().IsZero() {
		conditions = append(conditions, goqu.C(colOccurredAt).Lte(filter.OccurredUntil()))
	}

	if len(conditions) == 0 {
		return stmt, nil
	}

	return stmt.Where(conditions...), nil
}

func itemExpressionFor(item journal.FilterItem) (goqu.Expression, error) {
	parts := make([]goqu.Expression, 0, 2)

	if len(item.EventTypes()) > 0 {
		parts = append(parts, goqu.C(colEventType).In(item.EventTypes()))
	}

	if len(item.Predicates()) > 0 {
		predicateExpressions := make([]goqu.Expression, 0, len(item.Predicates()))

		for _, predicate := range item.Predicates() {
			containment, err := jsoniter.ConfigFastest.MarshalToString(map[string]string{predicate.Key(): predicate.Val()})
			if err != nil {
				return nil, errors.Join(journal.ErrBuildingQueryFailed, err)
			}

			predicateExpressions = append(predicateExpressions, goqu.L(payloadContains, containment))
		}

		if item.AllPredicatesMustMatch() {
			parts = append(parts, goqu.And(predicateExpressions...))
		} else {
			parts = append(parts, goqu.Or(predicateExpressions...))
		}
	}

	if len(parts) == 0 {
		return goqu.L("TRUE"), nil
	}

	return goqu.And(parts...), nil
}

func (e *Engine) recordDuration(metric string, duration time.Duration) {
	if e.metricsCollector != nil {
		e.metricsCollector.RecordDuration(metric, duration, map[string]string{metricLabelEngine: metricEngineName})
	}
}

func (e *Engine) incrementCounter(metric string) {
	if e.metricsCollector != nil {
		e.metricsCollector.IncrementCounter(metric, map[string]string{metricLabelEngine: metricEngineName})
	}
}

func (e *Engine) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if e.logger != nil {
		e.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

func (e *Engine) logOperation(action string, args ...any) {
	if e.logger != nil {
		e.logger.Info(logMsgOperation+action, args...)
	}
}

// toMilliseconds rounds to 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
