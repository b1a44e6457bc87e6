package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrorDump is a log-friendly flattening of an error chain, including the
// driver-level details of the snapshot database when one is involved.
type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	DBDriver     string `json:"db_driver,omitempty"`
	DBCode       string `json:"db_code,omitempty"`
	DBConstraint string `json:"db_constraint,omitempty"`
	DBTable      string `json:"db_table,omitempty"`
	DBDetail     string `json:"db_detail,omitempty"`
	DBMessage    string `json:"db_message,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		d.DBDriver = "pgx"
		d.DBCode = pgxErr.Code
		d.DBConstraint = pgxErr.ConstraintName
		d.DBTable = pgxErr.TableName
		d.DBDetail = pgxErr.Detail
		d.DBMessage = pgxErr.Message
		return d
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		d.DBDriver = "pq"
		d.DBCode = string(pqErr.Code)
		d.DBConstraint = pqErr.Constraint
		d.DBTable = pqErr.Table
		d.DBDetail = pqErr.Detail
		d.DBMessage = pqErr.Message
		return d
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		d.DBDriver = "sqlite3"
		d.DBCode = fmt.Sprintf("%d/%d", int(liteErr.Code), int(liteErr.ExtendedCode))
		d.DBMessage = liteErr.Error()
		return d
	}

	return d
}
