package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BaseRepository provides common database functionality
type BaseRepository struct {
	db *gorm.DB
}

func NewBaseRepository(db *gorm.DB) BaseRepository {
	return BaseRepository{db: db}
}

// DB returns the underlying database connection
func (r *BaseRepository) DB() *gorm.DB {
	return r.db
}

// byOrder sorts on the "order" column with id as tie breaker. The column
// name is a reserved word, so it goes through clause quoting.
func byOrder() clause.OrderBy {
	return clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: "order"}},
		{Column: clause.Column{Name: "id"}},
	}}
}
