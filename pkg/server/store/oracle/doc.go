// Package oracle provides database/sql implementations of the store
// interfaces defined in the parent store package.
//
// The SQL is written against the shared Oracle schema (PEOPLE, APPS,
// lkp_hr_employees and the LKP_PTA_* tables) and uses positional :n bind
// placeholders. The interfaces these types implement are defined in
// pkg/server/store.
package oracle
