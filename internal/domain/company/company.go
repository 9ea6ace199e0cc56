// Package company holds the company directory record as exposed by the storage engine.
package company

import "time"

// Company is a single directory record. The search subsystem reads companies; ingestion
// owns writes, so there are no mutators here.
type Company struct {
	ID          string
	Name        string
	OneLiner    string
	Website     string
	Batch       string
	Stage       string
	Status      string
	TeamSize    int
	FoundedAt   time.Time
	IsHiring    bool
	IsNonprofit bool
	Location    string
	Tags        []string
	Industries  []string
	Regions     []string
}
