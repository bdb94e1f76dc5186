// Package resultsservice computes election results and participation from
// the vote ledger. Every number is derived at read time; there are no stored
// counters to drift out of sync with the ledger.
package resultsservice
