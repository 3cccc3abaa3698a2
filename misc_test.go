package gokeyset

import (
	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type tGORMMockFn func() (string, *gorm.DB, sqlmock.Sqlmock, error)

// _gormMocks lists the dialects every SQL-shape test runs against.
var _gormMocks = []tGORMMockFn{
	newGORMMySQLMock,
	newGORMPostgresMock,
}

// _placeholder matches both "?" (MySQL) and "$N" (Postgres) placeholders.
const _placeholder = `(?:\$\d+|\?)`

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db.Debug(), mock, nil
}

// tScore is the record type shared by the paginator tests.
type tScore struct {
	ID    int64
	Score *int64
	Name  string
}

var (
	_scoreIDKey   = Key[tScore]("id", KeyTypeNumeric, func(s tScore) any { return s.ID })
	_scoreKey     = Key[tScore]("score", KeyTypeNumeric, func(s tScore) any { return s.Score })
	_scoreNameKey = Key[tScore]("name", KeyTypeText, func(s tScore) any { return s.Name })

	_scoreColumns = Columns[tScore]{
		"id":    func(s tScore) any { return s.ID },
		"score": func(s tScore) any { return s.Score },
		"name":  func(s tScore) any { return s.Name },
	}
)

func scoreIDs(rows []tScore) []int64 {
	ret := make([]int64, 0, len(rows))
	for _, r := range rows {
		ret = append(ret, r.ID)
	}

	return ret
}
