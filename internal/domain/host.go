package domain

import "time"

type Host struct {
	ID           string
	Name         string
	BusinessName string
	PasscodeHash string
	CreatedAt    time.Time
}
