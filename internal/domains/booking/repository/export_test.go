package repository

var (
	EligibleFilter = eligibleFilter
	AttachFilter   = attachFilter
)
