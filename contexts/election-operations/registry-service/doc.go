// Package registryservice implements administrative CRUD for elections,
// candidates and voters inside the election-operations context, including the
// bulk CSV voter import used before voting opens. It never touches the vote
// ledger; vote rows are written exclusively by the voting-engine module.
package registryservice
