package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// 约束名，与 migrations 保持一致
const (
	ConstraintUserEmail      = "uq_users_email"
	ConstraintUserEmployeeID = "uq_users_employee_id"
	ConstraintShiftUserDate  = "uq_shift_assignments_user_date"
)

// ErrNotPending 换班申请已不处于 PENDING，条件更新未命中
var ErrNotPending = errors.New("swap request is not pending")

// DuplicateError 违反唯一约束
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate key violates %s", e.Constraint)
}

// ForeignKeyError 引用的记录不存在
type ForeignKeyError struct {
	Constraint string
}

func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("foreign key violation on %s", e.Constraint)
}

// IsDuplicate 判断错误是否为（指定约束的）唯一冲突；constraint 为空时匹配任意约束
func IsDuplicate(err error, constraint string) bool {
	var dup *DuplicateError
	if !errors.As(err, &dup) {
		return false
	}
	return constraint == "" || dup.Constraint == constraint
}

// IsForeignKey 判断错误是否为外键违例
func IsForeignKey(err error) bool {
	var fk *ForeignKeyError
	return errors.As(err, &fk)
}

// translate 将驱动层约束错误转换为仓储错误，其余原样返回
func translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return &DuplicateError{Constraint: pgErr.ConstraintName}
	case pgForeignKeyViolation:
		return &ForeignKeyError{Constraint: pgErr.ConstraintName}
	default:
		return err
	}
}
