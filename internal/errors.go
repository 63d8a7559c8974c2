package internal

import "errors"

var (
	ErrInvalidMonthFormat = errors.New("invalid month format (expected YYYY-MM)")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidLimit       = errors.New("invalid limit")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidKind        = errors.New("invalid entry kind")
	ErrMonthNotFound      = errors.New("no data found for month")
	ErrStoreUnreadable    = errors.New("ledger store unreadable")
)
