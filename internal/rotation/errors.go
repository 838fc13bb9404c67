package rotation

import pkgerrors "github.com/ray8844/saida-de-campo/pkg/errors"

var (
	ErrGroupRequired = pkgerrors.Validation("group id is required")
	ErrInvalidDate   = pkgerrors.Validation("service date must be a YYYY-MM-DD calendar date")
	ErrInvalidPolicy = pkgerrors.Validation("generation mode must be single or full")
	ErrOutingExists  = pkgerrors.Conflict("assignments already exist for this group and date, delete them before generating again")
	ErrNoBrothers    = pkgerrors.InsufficientData("group has no active brothers")
	ErrNoTerritories = pkgerrors.InsufficientData("group has no active territories")
)
