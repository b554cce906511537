// Package model defines the row and payload types for the archive database.
//
// This package contains plain structs that map to the Oracle schema the
// backend reads and writes. The schema is owned by the wider HR system;
// the backend never migrates it.
//
// # Core Models
//
//   - ArchivedEmployee: one row of the archive list with computed
//     warrant/card columns
//   - ArchiveDetails: a single archive with its nested documents
//   - Document: an archived document with its legislation links
//   - HREmployee / HREmployeeDetails: unarchived employee master data
//   - Status, DocumentType, Legislation: lookup tables
//   - DashboardCounts: the four dashboard counters
//
// # Database Schema
//
// The Oracle schema uses the following key tables:
//
//   - lkp_hr_employees: employee master data (note the DEPARTEMENT column
//     spelling; the JSON key is department)
//   - LKP_PTA_EMP_ARCH: one row per archived employee
//   - LKP_PTA_EMP_DOCS: archived documents, soft-deleted via DISABLED
//   - LKP_PTA_DOC_LEGISL: document to legislation links
//   - LKP_PTA_EMP_STATUS, LKP_PTA_DOC_TYPES, LKP_PTA_LEGISL: lookups
//   - PEOPLE, LKP_PTA_USR_SECUR, LKP_PTA_SECURITY: user security levels
//
// JSON tags reproduce the keys the front-end consumes; nullable columns
// use pointer fields so NULL crosses the wire as null.
package model
