// Package specification implements composable query predicates applied to a
// GORM query before execution.
package specification

import "gorm.io/gorm"

type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
