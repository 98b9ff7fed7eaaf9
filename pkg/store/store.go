// Package store defines the storage interfaces for the Lenskeep core.
package store

// Store is an interface for managing users, studios, memberships, clients,
// invitations, and the audit log.
type Store interface {
	UserStore
	StudioStore
	MemberStore
	ClientStore
	InvitationStore
	AuditStore
}
