// Package auditservice keeps the append-only audit trail. Other modules
// record through a best-effort port; a failed audit write never fails the
// operation being audited.
package auditservice
