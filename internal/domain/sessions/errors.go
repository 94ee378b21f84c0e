package sessions

import "github.com/preston-bernstein/team-ledger/internal/domain"

var (
	errRequiredDate  = domain.NewInputError("date", "is required")
	errRequiredStart = domain.NewInputError("startTime", "is required")
)
