package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrNoTargets        = goerr.New("no targets resolved")
	ErrAllTargetsFailed = goerr.New("all targets failed")
	ErrStateNotFound    = goerr.New("list state not found")
	ErrAliasesNotFound  = goerr.New("alias cache not found")
	ErrDefaultsNotFound = goerr.New("no stored defaults")
)
