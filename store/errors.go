package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"seapass-backend/models"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// MySQL server errors that mean the server went away mid-request.
var mysqlConnErrors = map[uint16]bool{
	1040: true, // too many connections
	1053: true, // server shutdown in progress
	2002: true, // can't connect through socket
	2003: true, // can't connect to server
	2006: true, // server has gone away
	2013: true, // lost connection during query
}

// classify maps a driver/gorm error onto the store error taxonomy.
// Typed errors pass through untouched.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var (
		verr *models.ValidationError
		cerr *models.ConnectionError
		qerr *models.QueryError
		ierr *models.InternalError
	)
	if errors.As(err, &verr) || errors.As(err, &cerr) || errors.As(err, &qerr) || errors.As(err, &ierr) {
		return err
	}

	if isConnectionFailure(err) {
		return &models.ConnectionError{Op: op, Err: err}
	}
	return &models.QueryError{Op: op, Err: err}
}

func isConnectionFailure(err error) bool {
	switch {
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, mysql.ErrInvalidConn),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return true
	}

	if strings.Contains(err.Error(), "sql: database is closed") {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return mysqlConnErrors[myErr.Number]
	}

	// SQLSTATE class 08 = connection exception, 57P = operator intervention
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return strings.HasPrefix(code, "08") || strings.HasPrefix(code, "57P")
	}
	return false
}
